package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
)

const customerColumns = `id, email, username, first_name, last_name, password_hash, is_admin, profile_pic_url, created_at`

func scanCustomer(row *sql.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.Id, &c.Email, &c.Username, &c.FirstName, &c.LastName, &c.PassHash, &c.Admin, &c.ProfilePicURL, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, &internal_errors.ErrorWithStatusCode{Message: "Customer not found", StatusCode: http.StatusNotFound}
		}
		return domain.Customer{}, fmt.Errorf("failed to query customer: %w", err)
	}
	return c, nil
}

// Customer fetches one customer by id.
func (s *Storage) Customer(id domain.CustomerId) (domain.Customer, error) {
	row := s.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

// CustomerByLogin fetches a customer by email or username, matching however
// the user typed their login.
func (s *Storage) CustomerByLogin(login string) (domain.Customer, error) {
	row := s.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE email = $1 OR username = $1`, login)
	return scanCustomer(row)
}

// SaveCustomer inserts a new customer and returns the generated id.
func (s *Storage) SaveCustomer(c domain.Customer) (domain.CustomerId, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var id domain.CustomerId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(
			`INSERT INTO customers(email, username, first_name, last_name, password_hash, is_admin)
			 VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
			c.Email, c.Username, c.FirstName, c.LastName, c.PassHash, c.Admin,
		).Scan(&id)
	})
	if err != nil {
		return -1, fmt.Errorf("failed to insert customer: %w", err)
	}
	return id, nil
}

// UpdatePassword replaces the stored hash for the customer with this email.
func (s *Storage) UpdatePassword(email domain.Email, passHash string) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE customers SET password_hash = $2 WHERE email = $1`, email, passHash)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return &internal_errors.ErrorWithStatusCode{Message: "Customer not found", StatusCode: http.StatusNotFound}
		}
		return nil
	})
}

// AddFavorite records the file in the customer's favourites. Repeat
// favourites are a no-op.
func (s *Storage) AddFavorite(customerId domain.CustomerId, fileId domain.FileId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO customer_favourites(customer_id, file_id) VALUES($1, $2)
			 ON CONFLICT DO NOTHING`,
			customerId, fileId,
		)
		return err
	})
}

// AddDownload records a download against both the customer and the file.
func (s *Storage) AddDownload(customerId domain.CustomerId, fileId domain.FileId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO customer_downloads(customer_id, file_id) VALUES($1, $2)`,
			customerId, fileId,
		)
		return err
	})
}
