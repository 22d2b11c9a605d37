package pg

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
)

// Delivery record store. Every update below is scoped by (file_id, id)
// jointly, never by file_id alone, so concurrent share attempts on the same
// file cannot corrupt each other.

// AppendShareAttempt creates a new pending attempt for the file and returns
// it with its generated id.
func (s *Storage) AppendShareAttempt(fileId domain.FileId, from domain.CustomerId, recipients []domain.Email) (domain.ShareAttempt, error) {
	ctx, cancel := opCtx()
	defer cancel()

	attempt := domain.ShareAttempt{
		FileId:     fileId,
		From:       from,
		Recipients: recipients,
		Status:     domain.SharePending,
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(
			`INSERT INTO share_attempts(file_id, sender_id, recipients, status)
			 VALUES($1, $2, $3, 'pending')
			 RETURNING id, created_at`,
			fileId, from, pq.Array(recipients),
		).Scan(&attempt.Id, &attempt.CreatedAt)
	})
	if err != nil {
		return domain.ShareAttempt{}, fmt.Errorf("failed to insert share attempt: %w", err)
	}
	return attempt, nil
}

// MarkShareStatus finalizes the matching attempt. The status='pending' guard
// makes the transition terminal: once success or failed is written, no
// further transition can occur.
func (s *Storage) MarkShareStatus(fileId domain.FileId, attemptId domain.ShareId, status domain.ShareStatus) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE share_attempts SET status = $3
			 WHERE file_id = $1 AND id = $2 AND status = 'pending'`,
			fileId, attemptId, status,
		)
		if err != nil {
			return fmt.Errorf("failed to update share status: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return &internal_errors.ErrorWithStatusCode{Message: "Share attempt not found or already finalized", StatusCode: http.StatusNotFound}
		}
		return nil
	})
}

// AppendAcceptedRecipients records the transport-confirmed recipients on the
// matching attempt.
func (s *Storage) AppendAcceptedRecipients(fileId domain.FileId, attemptId domain.ShareId, emails []domain.Email) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`UPDATE share_attempts
			 SET accepted_recipients = accepted_recipients || $3
			 WHERE file_id = $1 AND id = $2`,
			fileId, attemptId, pq.Array(emails),
		)
		if err != nil {
			return fmt.Errorf("failed to append accepted recipients: %w", err)
		}
		return nil
	})
}

// ShareAttempts returns the file's share history, oldest first.
func (s *Storage) ShareAttempts(fileId domain.FileId) ([]domain.ShareAttempt, error) {
	rows, err := s.db.Query(
		`SELECT id, file_id, sender_id, recipients, status, accepted_recipients, log, created_at
		 FROM share_attempts WHERE file_id = $1 ORDER BY created_at`,
		fileId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query share attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.ShareAttempt
	for rows.Next() {
		var a domain.ShareAttempt
		if err := rows.Scan(&a.Id, &a.FileId, &a.From, &a.Recipients, &a.Status, &a.AcceptedRecipients, &a.Log, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan share attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// AppendMailedFile adds the file to the sender's mailed history.
func (s *Storage) AppendMailedFile(customerId domain.CustomerId, fileId domain.FileId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO customer_mailed(customer_id, file_id) VALUES($1, $2)`,
			customerId, fileId,
		)
		if err != nil {
			return fmt.Errorf("failed to append mailed file: %w", err)
		}
		return nil
	})
}
