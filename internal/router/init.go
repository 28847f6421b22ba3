package router

import (
	"context"

	"pixelcove/internal/application"
	"pixelcove/internal/container"
	pginfra "pixelcove/internal/infrastructure/postgres"
	handlers "pixelcove/internal/interface/http"
	"pixelcove/internal/router/modules"
)

func buildUserHandlers(ctx context.Context) (*handlers.UserHandler, *handlers.OAuthHandler, error) {
	cfg := container.GetConfig()

	repo := pginfra.NewUserRepository(container.GetPGPool())
	service := application.NewUserService(
		repo,
		container.GetJWT(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetRabbitPub(),
		container.GetLogger(),
		cfg.AppName,
		cfg.MailSendEnabled,
	)

	userHandler := handlers.NewUserHandler(service, container.GetLogger(), container.GetCookies())

	oauthHandler, err := handlers.NewOAuthHandler(ctx, cfg, service, container.GetLogger(), container.GetCookies())
	if err != nil {
		return nil, nil, err
	}
	return userHandler, oauthHandler, nil
}

func buildCollectionHandler() *handlers.CollectionHandler {
	cfg := container.GetConfig()

	repo := pginfra.NewCollectionRepository(container.GetPGPool())
	service := application.NewCollectionService(
		repo,
		container.GetES(),
		cfg.ESCollectionsIndex,
		container.GetLogger(),
	)
	return handlers.NewCollectionHandler(service, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(ctx context.Context, r *Registry) error {
	userHandler, oauthHandler, err := buildUserHandlers(ctx)
	if err != nil {
		return err
	}

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewOAuthModule(oauthHandler))
	r.Add(modules.NewCollectionModule(buildCollectionHandler(), container.GetJWT()))
	r.Add(modules.NewPhotoModule(handlers.NewPhotoHandler(container.GetUnsplash(), container.GetLogger())))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return nil
}
