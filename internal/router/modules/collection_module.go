package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"pixelcove/internal/container"
	handlers "pixelcove/internal/interface/http"
	"pixelcove/internal/interface/middleware"
	"pixelcove/pkg/helpers"
)

// CollectionModule wires the collection routes.
// Everything is session-protected except the photo listing, which is the
// shareable public view of a collection.

type CollectionModule struct {
	Handler *handlers.CollectionHandler
	JWT     *helpers.JWTManager
}

func NewCollectionModule(h *handlers.CollectionHandler, jwt *helpers.JWTManager) *CollectionModule {
	return &CollectionModule{Handler: h, JWT: jwt}
}

func (m *CollectionModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	// Public: anyone with the link can view a collection's image ids
	rg.GET("/collections/:id/photos", publicLimiter, m.Handler.ListPhotos)

	auth := rg.Group("/collections")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/create", m.Handler.Create)
		auth.GET("/user", m.Handler.ListMine)
		auth.GET("/user/:id", m.Handler.GetMine)
		auth.PUT("/add-image", m.Handler.AddImage)
		auth.DELETE("/remove-image", m.Handler.RemoveImage)
		auth.DELETE("/delete/:id", m.Handler.Delete)
		auth.GET("/search", m.Handler.Search)
	}
}
