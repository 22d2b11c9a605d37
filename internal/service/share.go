package service

import (
	"context"
	"net/http"
	"net/mail"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/atfs-dev/atfs/internal/config"
	"github.com/atfs-dev/atfs/internal/domain"
	"github.com/atfs-dev/atfs/internal/errors"
	"github.com/atfs-dev/atfs/internal/logger"
	"github.com/atfs-dev/atfs/internal/mailer"
)

// ShareStorage is the delivery-record contract the orchestrator depends on.
type ShareStorage interface {
	File(id domain.FileId) (domain.File, error)
	Customer(id domain.CustomerId) (domain.Customer, error)
	AppendShareAttempt(fileId domain.FileId, from domain.CustomerId, recipients []domain.Email) (domain.ShareAttempt, error)
	MarkShareStatus(fileId domain.FileId, attemptId domain.ShareId, status domain.ShareStatus) error
	AppendAcceptedRecipients(fileId domain.FileId, attemptId domain.ShareId, emails []domain.Email) error
	AppendMailedFile(customerId domain.CustomerId, fileId domain.FileId) error
	ShareAttempts(fileId domain.FileId) ([]domain.ShareAttempt, error)
}

// ShareAck is returned to the caller before delivery is attempted.
type ShareAck struct {
	InvalidRecipients []domain.Email
}

// Share drives one share request from submission to terminal delivery state.
// The acknowledgment is decoupled from delivery: the caller gets an answer as
// soon as the pending attempt is recorded, and the mail transport runs in a
// background goroutine that finalizes the attempt exactly once.
type Share struct {
	storage   ShareStorage
	transport mailer.Transport
	cfg       *config.Public
}

func NewShare(storage ShareStorage, transport mailer.Transport, cfg *config.Public) *Share {
	return &Share{storage: storage, transport: transport, cfg: cfg}
}

// IsEmailValid reports whether addr parses as an email address.
func IsEmailValid(addr string) bool {
	_, err := mail.ParseAddress(addr)
	return err == nil
}

func partitionRecipients(recipients []domain.Email) (valid, invalid []domain.Email) {
	for _, r := range recipients {
		if IsEmailValid(r) {
			valid = append(valid, r)
		} else {
			invalid = append(invalid, r)
		}
	}
	return valid, invalid
}

// Share validates the request, records a pending attempt and returns. The
// invalid recipients are reported back so the caller can warn the user; the
// valid ones are handed to the asynchronous phase.
func (s *Share) Share(req domain.ShareRequest) (ShareAck, error) {
	valid, invalid := partitionRecipients(req.Recipients)
	if len(valid) == 0 {
		return ShareAck{}, &errors.ErrorWithStatusCode{Message: "Invalid recipient emails", StatusCode: http.StatusBadRequest}
	}

	// The attempt keeps the full original recipient list; only the valid
	// subset is ever handed to the transport.
	attempt, err := s.storage.AppendShareAttempt(req.FileId, req.From, req.Recipients)
	if err != nil {
		return ShareAck{}, err
	}

	go s.deliver(attempt, valid, req.Message)

	return ShareAck{InvalidRecipients: invalid}, nil
}

// History returns the file's share attempts.
func (s *Share) History(fileId domain.FileId) ([]domain.ShareAttempt, error) {
	return s.storage.ShareAttempts(fileId)
}

// deliver is the asynchronous phase. Every failure converts to a best-effort
// failed mark; nothing propagates back to the HTTP layer, whose response has
// already been sent.
func (s *Share) deliver(attempt domain.ShareAttempt, recipients []domain.Email, message string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("share delivery panicked", "attempt_id", attempt.Id, "panic", r)
			s.markFailed(attempt)
		}
	}()

	var sender domain.Customer
	var file domain.File

	var g errgroup.Group
	g.Go(func() error {
		var err error
		sender, err = s.storage.Customer(attempt.From)
		return err
	})
	g.Go(func() error {
		var err error
		file, err = s.storage.File(attempt.FileId)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Log.Error("share lookup failed", "attempt_id", attempt.Id, "error", err)
		s.markFailed(attempt)
		return
	}

	if message == "" {
		message = s.cfg.Mailer.DefaultMessage
	}

	job := &mailer.TransportJob{
		To:       recipients,
		Subject:  mailer.SubjectFileShared,
		HTMLBody: mailer.FileShareBody(sender.Email, message),
		Attachments: []mailer.Attachment{{
			Filename: file.OriginalName,
			Path:     filepath.Join(s.cfg.FileStorageRoot, file.Filename),
		}},
	}

	result, err := s.transport.Send(context.Background(), job)
	if err != nil || len(result.Accepted) == 0 {
		logger.Log.Error("share transport failed", "attempt_id", attempt.Id, "error", err)
		s.markFailed(attempt)
		return
	}

	if err := s.storage.MarkShareStatus(attempt.FileId, attempt.Id, domain.ShareSuccess); err != nil {
		logger.Log.Error("failed to mark share success", "attempt_id", attempt.Id, "error", err)
		return
	}
	if err := s.storage.AppendAcceptedRecipients(attempt.FileId, attempt.Id, result.Accepted); err != nil {
		logger.Log.Error("failed to record accepted recipients", "attempt_id", attempt.Id, "error", err)
	}
	if err := s.storage.AppendMailedFile(attempt.From, attempt.FileId); err != nil {
		logger.Log.Error("failed to record mailed file", "customer_id", attempt.From, "error", err)
	}
}

// markFailed is best-effort: a secondary persistence failure is logged and
// the attempt stays pending for an operator to reconcile.
func (s *Share) markFailed(attempt domain.ShareAttempt) {
	if err := s.storage.MarkShareStatus(attempt.FileId, attempt.Id, domain.ShareFailed); err != nil {
		logger.Log.Error("failed to mark share failed", "attempt_id", attempt.Id, "error", err)
	}
}
