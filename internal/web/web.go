// Package web embeds the HTML templates and static assets of the library UI.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// ParseTemplates parses every *.html template from dir, or from the
// embedded copy when dir is empty.
func ParseTemplates(funcs template.FuncMap, dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(funcs)
	if dir != "" {
		return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
	}
	return tmpl.ParseFS(templateFiles, "templates/*.html")
}

// Static returns the static asset tree rooted at dir, or the embedded copy
// when dir is empty.
func Static(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// "static" is a compile-time embedded directory.
		panic(err)
	}
	return sub
}
