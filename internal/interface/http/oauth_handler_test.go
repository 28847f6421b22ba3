package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"pixelcove/pkg/helpers"
)

func newOAuthRouter(h *OAuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/auth/github", h.GithubLogin)
	r.GET("/auth/github/callback", h.GithubCallback)
	r.GET("/auth/google", h.GoogleLogin)
	return r
}

func TestOAuthHandler_UnconfiguredProvider(t *testing.T) {
	h := &OAuthHandler{Cookies: helpers.NewCookie("localhost", false)}
	r := newOAuthRouter(h)

	for _, path := range []string{"/auth/github", "/auth/google", "/auth/github/callback"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := newRecorder(r, req)
		assert.Equal(t, http.StatusNotImplemented, w.Code, path)
	}
}

func TestOAuthHandler_LoginRedirectsWithState(t *testing.T) {
	h := &OAuthHandler{
		Cookies: helpers.NewCookie("localhost", false),
		githubConfig: &oauth2.Config{
			ClientID: "cid",
			Endpoint: oauth2.Endpoint{AuthURL: "https://example.com/authorize"},
		},
	}
	r := newOAuthRouter(h)

	req, _ := http.NewRequest(http.MethodGet, "/auth/github", nil)
	w := newRecorder(r, req)

	assert.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.Contains(t, loc, "https://example.com/authorize")
	assert.Contains(t, loc, "state=")

	var stateCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "oauth_state" {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie, "state cookie must be set")
	assert.NotEmpty(t, stateCookie.Value)
	assert.Contains(t, loc, "state="+stateCookie.Value)
}

func TestOAuthHandler_CallbackRejectsStateMismatch(t *testing.T) {
	h := &OAuthHandler{
		Cookies:      helpers.NewCookie("localhost", false),
		githubConfig: &oauth2.Config{ClientID: "cid"},
	}
	r := newOAuthRouter(h)

	t.Run("no state cookie", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/auth/github/callback?state=abc&code=x", nil)
		w := newRecorder(r, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cookie and query disagree", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/auth/github/callback?state=abc&code=x", nil)
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "different"})
		w := newRecorder(r, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
