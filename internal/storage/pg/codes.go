package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
)

// SaveVerificationCode stores a one-time code keyed by its temp id.
func (s *Storage) SaveVerificationCode(code domain.VerificationCode) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO verification_codes(temp_id, recipient_email, code) VALUES($1, $2, $3)`,
			code.TempId, code.RecipientEmail, code.Code,
		)
		if err != nil {
			return fmt.Errorf("failed to insert verification code: %w", err)
		}
		return nil
	})
}

// VerificationCode fetches a stored code by temp id.
func (s *Storage) VerificationCode(tempId string) (domain.VerificationCode, error) {
	var code domain.VerificationCode
	err := s.db.QueryRow(
		`SELECT temp_id, recipient_email, code, created_at FROM verification_codes WHERE temp_id = $1`,
		tempId,
	).Scan(&code.TempId, &code.RecipientEmail, &code.Code, &code.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.VerificationCode{}, &internal_errors.ErrorWithStatusCode{Message: "Verification code not found", StatusCode: http.StatusNotFound}
		}
		return domain.VerificationCode{}, fmt.Errorf("failed to query verification code: %w", err)
	}
	return code, nil
}

// DeleteVerificationCode removes a used or abandoned code.
func (s *Storage) DeleteVerificationCode(tempId string) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM verification_codes WHERE temp_id = $1`, tempId)
		if err != nil {
			return fmt.Errorf("failed to delete verification code: %w", err)
		}
		return nil
	})
}
