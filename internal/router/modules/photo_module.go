package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"pixelcove/internal/container"
	handlers "pixelcove/internal/interface/http"
	"pixelcove/internal/interface/middleware"
)

// PhotoModule registers the public image catalogue proxy:
// GET /api/photos/search, GET /api/photos/random, GET /api/photos/:id
// Browsing does not require a session; the per-IP limiter protects the
// upstream API quota. Private addresses bypass it for local development.

type PhotoModule struct {
	Handler *handlers.PhotoHandler
}

func NewPhotoModule(h *handlers.PhotoHandler) *PhotoModule {
	return &PhotoModule{Handler: h}
}

func (m *PhotoModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	photos := rg.Group("/photos", rl)
	{
		photos.GET("/search", m.Handler.Search)
		photos.GET("/random", m.Handler.Random)
		photos.GET("/:id", m.Handler.Get)
	}
}
