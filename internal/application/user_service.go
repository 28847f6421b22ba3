package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pixelcove/internal/domain/domainerr"
	"pixelcove/internal/domain/entity"
	"pixelcove/internal/domain/repository"
	"pixelcove/pkg/helpers"
	"pixelcove/pkg/mailer"
)

// UserService resolves credentials or OAuth profiles into user records and
// mints session token pairs.
type UserService struct {
	Repo        repository.UserRepository
	JWT         *helpers.JWTManager
	GCS         *storage.Client
	GCSBucket   string
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	AppName     string
	MailEnabled bool
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, gcs *storage.Client, gcsBucket string, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName string, mailEnabled bool) *UserService {
	return &UserService{
		Repo:        repo,
		JWT:         jwt,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
		Pub:         pub,
		Logger:      logger,
		AppName:     appName,
		MailEnabled: mailEnabled,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Register creates a credential account and enqueues a welcome email.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, domainerr.ErrEmailTaken
	} else if !errors.Is(err, domainerr.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, PasswordHash: hash, Name: name}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.enqueueWelcome(ctx, u)
	return u, nil
}

// Authenticate validates email/password. Lookup failure and password
// mismatch are reported identically to the caller; the distinction is only
// logged.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if s.Logger != nil && errors.Is(err, domainerr.ErrNotFound) {
			s.Logger.WithField("email", email).Debug("login: user not found")
		}
		return nil, domainerr.ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Debug("login: invalid password")
		}
		return nil, domainerr.ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens mints an access/refresh pair embedding the user's profile.
func (s *UserService) IssueTokens(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh validates a refresh token and issues a new pair with the user's
// current profile, so a renamed user does not carry stale claims forever.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, domainerr.ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, TokenPair{}, domainerr.ErrInvalidCredentials
	}
	pair, err := s.IssueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// GetOrCreateByEmail backs the OAuth callback: the first login for an email
// creates the record with no password hash, later logins reuse it.
func (s *UserService) GetOrCreateByEmail(ctx context.Context, email, name, avatarURL string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domainerr.ErrNotFound) {
		return nil, err
	}
	u = &entity.User{Email: email, Name: name, AvatarURL: avatarURL}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.enqueueWelcome(ctx, u)
	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name      string
	AvatarURL string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.AvatarURL != "" {
		u.AvatarURL = in.AvatarURL
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadAvatar stores an avatar image in GCS and updates the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", fmt.Errorf("avatar storage not configured")
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data:     map[string]any{"Name": u.Name, "AppName": s.AppName},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
