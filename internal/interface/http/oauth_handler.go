package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"pixelcove/config"
	"pixelcove/internal/application"
	"pixelcove/internal/domain/entity"
	"pixelcove/pkg/helpers"
	"pixelcove/pkg/response"
)

// OAuthUserService is the slice of the user service the OAuth flow needs.
type OAuthUserService interface {
	GetOrCreateByEmail(ctx context.Context, email, name, avatarURL string) (*entity.User, error)
	IssueTokens(u *entity.User) (application.TokenPair, error)
}

// OAuthHandler implements the Google and GitHub sign-in flows. Google goes
// through OIDC discovery and a verified id_token; GitHub has no OIDC support
// so the profile comes from its REST API after the code exchange.
type OAuthHandler struct {
	Svc         OAuthUserService
	Logger      *logrus.Logger
	Cookies     *helpers.Manager
	FrontendURL string

	googleVerifier *oidc.IDTokenVerifier
	googleConfig   *oauth2.Config
	githubConfig   *oauth2.Config

	// overridable in tests
	githubAPIBase string
}

func NewOAuthHandler(ctx context.Context, cfg *config.Config, svc OAuthUserService, logger *logrus.Logger, cookies *helpers.Manager) (*OAuthHandler, error) {
	h := &OAuthHandler{
		Svc:           svc,
		Logger:        logger,
		Cookies:       cookies,
		FrontendURL:   cfg.FrontendURL,
		githubAPIBase: "https://api.github.com",
	}

	if cfg.GoogleClientID != "" {
		provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
		if err != nil {
			return nil, fmt.Errorf("google oidc discovery: %w", err)
		}
		h.googleVerifier = provider.Verifier(&oidc.Config{ClientID: cfg.GoogleClientID})
		h.googleConfig = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthCallbackBase + "/api/auth/google/callback",
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		}
	}

	if cfg.GithubClientID != "" {
		h.githubConfig = &oauth2.Config{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			RedirectURL:  cfg.OAuthCallbackBase + "/api/auth/github/callback",
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		}
	}

	return h, nil
}

func randState() (string, error) {
	b := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GoogleLogin handles GET /auth/google
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	h.redirectToProvider(c, h.googleConfig, "google")
}

// GithubLogin handles GET /auth/github
func (h *OAuthHandler) GithubLogin(c *gin.Context) {
	h.redirectToProvider(c, h.githubConfig, "github")
}

func (h *OAuthHandler) redirectToProvider(c *gin.Context, conf *oauth2.Config, name string) {
	if conf == nil {
		response.Error[any](c, http.StatusNotImplemented, name+" sign-in is not configured", nil)
		return
	}
	state, err := randState()
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	h.Cookies.SetState(c, state)
	c.Redirect(http.StatusFound, conf.AuthCodeURL(state))
}

// checkState compares the callback state to the cookie set at login and
// clears the cookie either way.
func (h *OAuthHandler) checkState(c *gin.Context) bool {
	want, err := c.Cookie("oauth_state")
	h.Cookies.ClearState(c)
	if err != nil || want == "" || c.Query("state") != want {
		response.Error[any](c, http.StatusBadRequest, "oauth state mismatch", nil)
		return false
	}
	return true
}

// GoogleCallback handles GET /auth/google/callback
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	if h.googleConfig == nil {
		response.Error[any](c, http.StatusNotImplemented, "google sign-in is not configured", nil)
		return
	}
	if !h.checkState(c) {
		return
	}
	ctx := c.Request.Context()
	token, err := h.googleConfig.Exchange(ctx, c.Query("code"))
	if err != nil {
		h.failCallback(c, "google code exchange failed", err)
		return
	}
	rawID, ok := token.Extra("id_token").(string)
	if !ok {
		h.failCallback(c, "google response missing id_token", nil)
		return
	}
	idToken, err := h.googleVerifier.Verify(ctx, rawID)
	if err != nil {
		h.failCallback(c, "google id_token verification failed", err)
		return
	}
	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		h.failCallback(c, "cannot parse google id_token claims", err)
		return
	}
	if claims.Email == "" {
		h.failCallback(c, "google account has no email", nil)
		return
	}
	h.finishLogin(c, claims.Email, claims.Name, claims.Picture)
}

// GithubCallback handles GET /auth/github/callback
func (h *OAuthHandler) GithubCallback(c *gin.Context) {
	if h.githubConfig == nil {
		response.Error[any](c, http.StatusNotImplemented, "github sign-in is not configured", nil)
		return
	}
	if !h.checkState(c) {
		return
	}
	ctx := c.Request.Context()
	token, err := h.githubConfig.Exchange(ctx, c.Query("code"))
	if err != nil {
		h.failCallback(c, "github code exchange failed", err)
		return
	}
	client := h.githubConfig.Client(ctx, token)

	var profile struct {
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, client, h.githubAPIBase+"/user", &profile); err != nil {
		h.failCallback(c, "cannot fetch github profile", err)
		return
	}
	if profile.Email == "" {
		// the public email can be hidden, fall back to the emails endpoint
		email, err := h.primaryGithubEmail(ctx, client)
		if err != nil {
			h.failCallback(c, "cannot resolve github email", err)
			return
		}
		profile.Email = email
	}
	name := profile.Name
	if name == "" {
		name = profile.Login
	}
	h.finishLogin(c, profile.Email, name, profile.AvatarURL)
}

func (h *OAuthHandler) primaryGithubEmail(ctx context.Context, client *http.Client) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(ctx, client, h.githubAPIBase+"/user/emails", &emails); err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("no verified email on github account")
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// finishLogin upserts the account, sets the session cookie pair and sends the
// browser back to the frontend.
func (h *OAuthHandler) finishLogin(c *gin.Context, email, name, avatarURL string) {
	u, err := h.Svc.GetOrCreateByEmail(c.Request.Context(), email, name, avatarURL)
	if err != nil {
		h.failCallback(c, "cannot upsert oauth account", err)
		return
	}
	pair, err := h.Svc.IssueTokens(u)
	if err != nil {
		h.failCallback(c, "cannot issue session tokens", err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	c.Redirect(http.StatusFound, h.FrontendURL)
}

func (h *OAuthHandler) failCallback(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).Warn(msg)
	}
	response.Error[any](c, http.StatusBadGateway, msg, nil)
}
