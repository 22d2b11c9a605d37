package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
)

const fileColumns = `id, admin_id, title, description, filename, original_name, mime_type, size_bytes, visibility, kind, created_at`

// File fetches one file's metadata by id.
func (s *Storage) File(id domain.FileId) (domain.File, error) {
	var f domain.File
	err := s.db.QueryRow(`SELECT `+fileColumns+` FROM files WHERE id = $1`, id).
		Scan(&f.Id, &f.AdminId, &f.Title, &f.Description, &f.Filename, &f.OriginalName, &f.MimeType, &f.SizeBytes, &f.Visibility, &f.Kind, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.File{}, &internal_errors.ErrorWithStatusCode{Message: "File not found", StatusCode: http.StatusNotFound}
		}
		return domain.File{}, fmt.Errorf("failed to query file: %w", err)
	}
	return f, nil
}

// SaveFile registers uploaded file metadata and returns the generated id.
func (s *Storage) SaveFile(f domain.File) (domain.FileId, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var id domain.FileId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(
			`INSERT INTO files(admin_id, title, description, filename, original_name, mime_type, size_bytes, visibility, kind)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			f.AdminId, f.Title, f.Description, f.Filename, f.OriginalName, f.MimeType, f.SizeBytes, f.Visibility, f.Kind,
		).Scan(&id)
	})
	if err != nil {
		return domain.FileId{}, fmt.Errorf("failed to insert file: %w", err)
	}
	return id, nil
}

// Files lists file metadata for a visibility level, newest first.
func (s *Storage) Files(visibility string) ([]domain.File, error) {
	rows, err := s.db.Query(
		`SELECT `+fileColumns+` FROM files WHERE visibility = $1 ORDER BY created_at DESC`,
		visibility,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	return collectFiles(rows)
}

// SearchFiles matches the query against title and description.
func (s *Storage) SearchFiles(query string) ([]domain.File, error) {
	rows, err := s.db.Query(
		`SELECT `+fileColumns+` FROM files
		 WHERE title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC`,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search files: %w", err)
	}
	return collectFiles(rows)
}

func collectFiles(rows *sql.Rows) ([]domain.File, error) {
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(&f.Id, &f.AdminId, &f.Title, &f.Description, &f.Filename, &f.OriginalName, &f.MimeType, &f.SizeBytes, &f.Visibility, &f.Kind, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
