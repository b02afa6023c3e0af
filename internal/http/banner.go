package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/assets"
)

type BannerController struct {
	fetcher *assets.Fetcher
}

func NewBannerController(fetcher *assets.Fetcher) *BannerController {
	return &BannerController{fetcher: fetcher}
}

// Banner serves the cached banner animation, or 404 when it is unavailable.
func (controller *BannerController) Banner(c *gin.Context) {
	if controller.fetcher == nil {
		respondError(c, http.StatusNotFound, "banner unavailable")
		return
	}

	data, ok := controller.fetcher.Banner(c.Request.Context())
	if !ok {
		respondError(c, http.StatusNotFound, "banner unavailable")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/json", data)
}
