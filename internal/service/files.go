package service

import (
	"net/http"
	"strings"

	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
)

type FileStorage interface {
	File(id domain.FileId) (domain.File, error)
	SaveFile(f domain.File) (domain.FileId, error)
	Files(visibility string) ([]domain.File, error)
	SearchFiles(query string) ([]domain.File, error)
	AddFavorite(customerId domain.CustomerId, fileId domain.FileId) error
	AddDownload(customerId domain.CustomerId, fileId domain.FileId) error
}

type Files struct {
	storage FileStorage
}

func NewFiles(storage FileStorage) *Files {
	return &Files{storage: storage}
}

var validKinds = map[domain.FileKind]bool{
	domain.KindImage: true,
	domain.KindPDF:   true,
	domain.KindWord:  true,
}

// Register stores metadata for an admin-uploaded file.
func (f *Files) Register(file domain.File) (domain.FileId, error) {
	if file.Title == "" || file.Filename == "" || file.OriginalName == "" {
		return domain.FileId{}, &internal_errors.ErrorWithStatusCode{Message: "Missing file fields", StatusCode: http.StatusBadRequest}
	}
	if !validKinds[file.Kind] {
		return domain.FileId{}, &internal_errors.ErrorWithStatusCode{Message: "Unknown file kind", StatusCode: http.StatusBadRequest}
	}
	if file.Visibility == "" {
		file.Visibility = "public"
	}
	return f.storage.SaveFile(file)
}

// Get returns one file's metadata.
func (f *Files) Get(id domain.FileId) (domain.File, error) {
	return f.storage.File(id)
}

// List returns files at a visibility level, defaulting to public.
func (f *Files) List(visibility string) ([]domain.File, error) {
	if visibility == "" {
		visibility = "public"
	}
	return f.storage.Files(visibility)
}

// Search matches title and description against the query.
func (f *Files) Search(query string) ([]domain.File, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Empty search query", StatusCode: http.StatusBadRequest}
	}
	return f.storage.SearchFiles(query)
}

func (f *Files) AddFavorite(customerId domain.CustomerId, fileId domain.FileId) error {
	return f.storage.AddFavorite(customerId, fileId)
}

func (f *Files) AddDownload(customerId domain.CustomerId, fileId domain.FileId) error {
	return f.storage.AddDownload(customerId, fileId)
}
