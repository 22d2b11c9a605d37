package handler

import (
	"context"

	"github.com/atfs-dev/atfs/internal/config"
	"github.com/atfs-dev/atfs/internal/domain"
	"github.com/atfs-dev/atfs/internal/service"
)

type AuthService interface {
	Login(creds domain.Credentials) (string, domain.Customer, error)
	VerifyEmail(email domain.Email) (string, error)
	Signup(email domain.Email, password domain.Password, tempId, code string) (domain.CustomerId, error)
}

type ShareService interface {
	Share(req domain.ShareRequest) (service.ShareAck, error)
	History(fileId domain.FileId) ([]domain.ShareAttempt, error)
}

type FileService interface {
	Register(file domain.File) (domain.FileId, error)
	Get(id domain.FileId) (domain.File, error)
	List(visibility string) ([]domain.File, error)
	Search(query string) ([]domain.File, error)
	AddFavorite(customerId domain.CustomerId, fileId domain.FileId) error
	AddDownload(customerId domain.CustomerId, fileId domain.FileId) error
}

type RecoveryService interface {
	RequestReset(email domain.Email) (string, error)
	ResetPassword(email domain.Email, tempId, code string, newPassword domain.Password) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     AuthService
	share    ShareService
	files    FileService
	recovery RecoveryService
	health   Pinger
	cfg      *config.Config
}

func New(auth AuthService, share ShareService, files FileService, recovery RecoveryService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, share, files, recovery, health, cfg}
}
