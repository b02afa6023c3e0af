// Package validation checks user input before it reaches the library store.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Error reports every invalid field with a human readable message, keyed by
// the field's JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps go-playground/validator with friendlier errors.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New creates a validator. The notfuture tag compares years against the
// wall clock.
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a validator with a fixed notion of "now".
func NewWithClock(now func() time.Time) *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	val := &Validator{v: v, now: now}
	// Registration only fails on an empty tag name or nil func.
	_ = v.RegisterValidation("notfuture", val.notFuture)
	return val
}

// Validate returns nil or an *Error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// MaxYear is the latest publication year accepted.
func (v *Validator) MaxYear() int {
	return v.now().Year()
}

func (v *Validator) notFuture(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return fl.Field().Int() <= int64(v.MaxYear())
	default:
		return false
	}
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[e.Field()] = v.friendlyMessage(e)
	}
	return &Error{Fields: fields}
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "notfuture":
		return fmt.Sprintf("must not be later than %d", v.MaxYear())
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
