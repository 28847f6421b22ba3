package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"pixelcove/internal/container"
	handlers "pixelcove/internal/interface/http"
	"pixelcove/internal/interface/middleware"
)

// OAuthModule registers the browser-facing OAuth flows:
// GET /api/auth/google, GET /api/auth/google/callback,
// GET /api/auth/github, GET /api/auth/github/callback

type OAuthModule struct {
	Handler *handlers.OAuthHandler
}

func NewOAuthModule(h *handlers.OAuthHandler) *OAuthModule {
	return &OAuthModule{Handler: h}
}

func (m *OAuthModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth", rl)
	{
		auth.GET("/google", m.Handler.GoogleLogin)
		auth.GET("/google/callback", m.Handler.GoogleCallback)
		auth.GET("/github", m.Handler.GithubLogin)
		auth.GET("/github/callback", m.Handler.GithubCallback)
	}
}
