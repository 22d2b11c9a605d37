package setup

import (
	"github.com/atfs-dev/atfs/internal/config"
	"github.com/atfs-dev/atfs/internal/handler"
	"github.com/atfs-dev/atfs/internal/jwt"
	"github.com/atfs-dev/atfs/internal/mailer"
	"github.com/atfs-dev/atfs/internal/service"
	"github.com/atfs-dev/atfs/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Jwt     jwt.Service
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	transport := mailer.NewGateway(cfg.Public.Mailer)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, transport, jwtService, &cfg.Public)
	share := service.NewShare(storage, transport, &cfg.Public)
	files := service.NewFiles(storage)
	recovery := service.NewRecovery(storage, transport, &cfg.Public)

	h := handler.New(auth, share, files, recovery, storage, cfg)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Jwt:     jwtService,
	}, nil
}
