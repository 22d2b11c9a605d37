package service

import (
	"context"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/atfs-dev/atfs/internal/config"
	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
	"github.com/atfs-dev/atfs/internal/logger"
	"github.com/atfs-dev/atfs/internal/mailer"
	"github.com/atfs-dev/atfs/internal/utils"
)

type RecoveryStorage interface {
	CustomerByLogin(login string) (domain.Customer, error)
	UpdatePassword(email domain.Email, passHash string) error
	SaveVerificationCode(code domain.VerificationCode) error
	VerificationCode(tempId string) (domain.VerificationCode, error)
	DeleteVerificationCode(tempId string) error
}

// Recovery runs the password-reset flow: a mailed one-time code, a code
// check, then the password update with a confirmation mail.
type Recovery struct {
	storage   RecoveryStorage
	transport mailer.Transport
	cfg       *config.Public
}

func NewRecovery(storage RecoveryStorage, transport mailer.Transport, cfg *config.Public) *Recovery {
	return &Recovery{storage: storage, transport: transport, cfg: cfg}
}

// RequestReset starts recovery for an existing account. Like signup
// verification, the code is persisted before the mail goes out; the reset
// alert is an extra notification mailed alongside the code.
func (r *Recovery) RequestReset(email domain.Email) (string, error) {
	if !IsEmailValid(email) {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Invalid email", StatusCode: http.StatusBadRequest}
	}

	customer, err := r.storage.CustomerByLogin(email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Email does not exist", StatusCode: http.StatusNotFound}
		}
		return "", err
	}

	code := utils.GenerateVerificationCode(r.cfg.VerificationCodeLen)
	tempId := utils.GenerateTempId()

	if err := r.storage.SaveVerificationCode(domain.VerificationCode{
		RecipientEmail: email,
		Code:           code,
		TempId:         tempId,
	}); err != nil {
		return "", err
	}

	go r.sendResetMails(customer, code, tempId)

	return tempId, nil
}

func (r *Recovery) sendResetMails(customer domain.Customer, code, tempId string) {
	codeJob := &mailer.TransportJob{
		To:       []string{customer.Email},
		Subject:  mailer.SubjectVerificationCode,
		HTMLBody: mailer.VerificationCodeBody(code),
	}
	result, err := r.transport.Send(context.Background(), codeJob)
	if err != nil || len(result.Accepted) == 0 {
		logger.Log.Error("failed to send recovery code", "error", err)
		if err := r.storage.DeleteVerificationCode(tempId); err != nil {
			logger.Log.Error("failed to clean up recovery code", "temp_id", tempId, "error", err)
		}
		return
	}

	alertJob := &mailer.TransportJob{
		To:       []string{customer.Email},
		Subject:  mailer.SubjectResetAttempt,
		HTMLBody: mailer.ResetAttemptBody(customer.Email, customer.Username),
	}
	if _, err := r.transport.Send(context.Background(), alertJob); err != nil {
		logger.Log.Error("failed to send reset alert", "error", err)
	}
}

// ResetPassword verifies the (tempId, email, code) triple, updates the stored
// hash and mails a confirmation.
func (r *Recovery) ResetPassword(email domain.Email, tempId, code string, newPassword domain.Password) error {
	stored, err := r.storage.VerificationCode(tempId)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return &internal_errors.ErrorWithStatusCode{Message: "Wrong verification code", StatusCode: http.StatusBadRequest}
		}
		return err
	}
	if stored.RecipientEmail != email || stored.Code != code {
		return &internal_errors.ErrorWithStatusCode{Message: "Wrong verification code", StatusCode: http.StatusBadRequest}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	if err := r.storage.UpdatePassword(email, string(passHash)); err != nil {
		return err
	}

	if err := r.storage.DeleteVerificationCode(tempId); err != nil { // cleanup
		logger.Log.Error("failed to delete recovery code", "temp_id", tempId, "error", err)
	}

	go func() {
		job := &mailer.TransportJob{
			To:       []string{email},
			Subject:  mailer.SubjectResetConfirmation,
			HTMLBody: mailer.ResetConfirmationBody(),
		}
		if _, err := r.transport.Send(context.Background(), job); err != nil {
			logger.Log.Error("failed to send reset confirmation", "error", err)
		}
	}()

	return nil
}
