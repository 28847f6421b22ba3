package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcove/internal/application"
	"pixelcove/internal/domain/domainerr"
	"pixelcove/internal/domain/entity"
	"pixelcove/pkg/helpers"
	"pixelcove/pkg/validation"
)

type mockUserService struct {
	RegisterFunc      func(ctx context.Context, name, email, password string) (*entity.User, error)
	LoginFunc         func(ctx context.Context, email, password string) (*entity.User, application.TokenPair, error)
	RefreshFunc       func(ctx context.Context, refreshToken string) (*entity.User, application.TokenPair, error)
	GetProfileFunc    func(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfileFunc func(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.User, error)
	UploadAvatarFunc  func(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error)
}

func (m *mockUserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &entity.User{ID: testUserID, Name: name, Email: email}, nil
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*entity.User, application.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, application.TokenPair{}, domainerr.ErrInvalidCredentials
}

func (m *mockUserService) Refresh(ctx context.Context, refreshToken string) (*entity.User, application.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, application.TokenPair{}, domainerr.ErrInvalidCredentials
}

func (m *mockUserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return &entity.User{ID: userID}, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, in)
	}
	return &entity.User{ID: userID, Name: in.Name, AvatarURL: in.AvatarURL}, nil
}

func (m *mockUserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if m.UploadAvatarFunc != nil {
		return m.UploadAvatarFunc(ctx, userID, r, filename, contentType)
	}
	return "", nil
}

func newUserRouter(svc *mockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	h := NewUserHandler(svc, nil, helpers.NewCookie("localhost", false))

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", h.Logout)
	auth := r.Group("/", withUser)
	auth.GET("/profile", h.GetProfile)
	auth.PUT("/profile", h.UpdateProfile)
	return r
}

func newRecorder(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testPair() application.TokenPair {
	return application.TokenPair{
		AccessToken:        "access",
		AccessTokenExpiry:  time.Now().Add(time.Hour),
		RefreshToken:       "refresh",
		RefreshTokenExpiry: time.Now().Add(24 * time.Hour),
	}
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockUserService{
			RegisterFunc: func(ctx context.Context, name, email, password string) (*entity.User, error) {
				assert.Equal(t, "Ada", name)
				assert.Equal(t, "ada@example.com", email)
				return &entity.User{ID: testUserID, Name: name, Email: email}, nil
			},
		}
		w, env := doJSON(t, newUserRouter(svc), http.MethodPost, "/register",
			gin.H{"name": "Ada", "email": "ada@example.com", "password": "password123"})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "account created", env.Message)
	})

	t.Run("short password", func(t *testing.T) {
		w, env := doJSON(t, newUserRouter(&mockUserService{}), http.MethodPost, "/register",
			gin.H{"name": "Ada", "email": "ada@example.com", "password": "short"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid payload", env.Message)
	})

	t.Run("taken email", func(t *testing.T) {
		svc := &mockUserService{
			RegisterFunc: func(ctx context.Context, name, email, password string) (*entity.User, error) {
				return nil, domainerr.ErrEmailTaken
			},
		}
		w, env := doJSON(t, newUserRouter(svc), http.MethodPost, "/register",
			gin.H{"name": "Ada", "email": "ada@example.com", "password": "password123"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "email already registered", env.Message)
	})
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("success sets session cookies", func(t *testing.T) {
		svc := &mockUserService{
			LoginFunc: func(ctx context.Context, email, password string) (*entity.User, application.TokenPair, error) {
				return &entity.User{ID: testUserID, Email: email}, testPair(), nil
			},
		}
		w, env := doJSON(t, newUserRouter(svc), http.MethodPost, "/login",
			gin.H{"email": "ada@example.com", "password": "password123"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "login successful", env.Message)

		cookies := w.Result().Cookies()
		names := make([]string, 0, len(cookies))
		for _, c := range cookies {
			names = append(names, c.Name)
			assert.True(t, c.HttpOnly, "session cookie %s must be HttpOnly", c.Name)
		}
		assert.Contains(t, names, "access_token")
		assert.Contains(t, names, "refresh_token")
	})

	t.Run("wrong credentials", func(t *testing.T) {
		w, env := doJSON(t, newUserRouter(&mockUserService{}), http.MethodPost, "/login",
			gin.H{"email": "ada@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid credentials", env.Message)
	})
}

func TestUserHandler_Refresh(t *testing.T) {
	t.Run("missing cookie", func(t *testing.T) {
		w, env := doJSON(t, newUserRouter(&mockUserService{}), http.MethodPost, "/refresh", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "missing refresh token", env.Message)
	})

	t.Run("valid cookie rotates the pair", func(t *testing.T) {
		svc := &mockUserService{
			RefreshFunc: func(ctx context.Context, refreshToken string) (*entity.User, application.TokenPair, error) {
				assert.Equal(t, "old-refresh", refreshToken)
				return &entity.User{ID: testUserID}, testPair(), nil
			},
		}
		r := newUserRouter(svc)

		req, err := http.NewRequest(http.MethodPost, "/refresh", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "old-refresh"})

		w := newRecorder(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserHandler_Logout(t *testing.T) {
	w, env := doJSON(t, newUserRouter(&mockUserService{}), http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "logged out", env.Message)

	for _, c := range w.Result().Cookies() {
		assert.Less(t, c.MaxAge, 0, "cookie %s must be expired", c.Name)
	}
}

func TestUserHandler_Profile(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		svc := &mockUserService{
			GetProfileFunc: func(ctx context.Context, userID string) (*entity.User, error) {
				assert.Equal(t, testUserID, userID)
				return &entity.User{ID: userID, Email: "ada@example.com", Name: "Ada"}, nil
			},
		}
		w, env := doJSON(t, newUserRouter(svc), http.MethodGet, "/profile", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
	})

	t.Run("update", func(t *testing.T) {
		svc := &mockUserService{
			UpdateProfileFunc: func(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.User, error) {
				assert.Equal(t, "Ada L.", in.Name)
				return &entity.User{ID: userID, Name: in.Name}, nil
			},
		}
		w, env := doJSON(t, newUserRouter(svc), http.MethodPut, "/profile", gin.H{"name": "Ada L."})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "profile updated", env.Message)
	})

	t.Run("update rejects a bad avatar url", func(t *testing.T) {
		w, env := doJSON(t, newUserRouter(&mockUserService{}), http.MethodPut, "/profile", gin.H{"avatar_url": "not-a-url"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid payload", env.Message)
	})
}
