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

type AuthStorage interface {
	CustomerByLogin(login string) (domain.Customer, error)
	SaveCustomer(c domain.Customer) (domain.CustomerId, error)
	SaveVerificationCode(code domain.VerificationCode) error
	VerificationCode(tempId string) (domain.VerificationCode, error)
	DeleteVerificationCode(tempId string) error
}

type Jwt interface {
	NewToken(c domain.Customer) (string, error)
}

type Auth struct {
	storage   AuthStorage
	transport mailer.Transport
	jwt       Jwt
	cfg       *config.Public
}

func NewAuth(storage AuthStorage, transport mailer.Transport, jwt Jwt, cfg *config.Public) *Auth {
	return &Auth{storage: storage, transport: transport, jwt: jwt, cfg: cfg}
}

// Login checks the credentials and returns an access token plus the customer
// profile. Unknown logins and wrong passwords are indistinguishable to the
// caller.
func (a *Auth) Login(creds domain.Credentials) (string, domain.Customer, error) {
	customer, err := a.storage.CustomerByLogin(creds.Login)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", domain.Customer{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
		}
		return "", domain.Customer{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PassHash), []byte(creds.Password)); err != nil {
		return "", domain.Customer{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	}

	token, err := a.jwt.NewToken(customer)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "customer_id", customer.Id, "error", err)
		return "", domain.Customer{}, err
	}
	return token, customer, nil
}

// VerifyEmail starts a signup flow: it persists a one-time code correlated by
// a temp id and mails it out in the background. The code row is written
// before the transport call so a confirmed send can always be verified; if
// the transport reports no accepted recipient the row is deleted best-effort.
func (a *Auth) VerifyEmail(email domain.Email) (string, error) {
	if !IsEmailValid(email) {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Invalid email", StatusCode: http.StatusBadRequest}
	}

	_, err := a.storage.CustomerByLogin(email)
	if err == nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Email already in use", StatusCode: http.StatusConflict}
	}
	if !internal_errors.IsNotFound(err) {
		return "", err
	}

	code := utils.GenerateVerificationCode(a.cfg.VerificationCodeLen)
	tempId := utils.GenerateTempId()

	if err := a.storage.SaveVerificationCode(domain.VerificationCode{
		RecipientEmail: email,
		Code:           code,
		TempId:         tempId,
	}); err != nil {
		return "", err
	}

	go a.sendCode(email, code, tempId)

	return tempId, nil
}

// sendCode mails a one-time code. Fire and forget: the HTTP response carrying
// the temp id is already on its way, so failures only clean up the stored
// code and log.
func (a *Auth) sendCode(email domain.Email, code, tempId string) {
	job := &mailer.TransportJob{
		To:       []string{email},
		Subject:  mailer.SubjectVerificationCode,
		HTMLBody: mailer.VerificationCodeBody(code),
	}

	result, err := a.transport.Send(context.Background(), job)
	if err != nil || len(result.Accepted) == 0 {
		logger.Log.Error("failed to send verification code", "error", err)
		if err := a.storage.DeleteVerificationCode(tempId); err != nil {
			logger.Log.Error("failed to clean up verification code", "temp_id", tempId, "error", err)
		}
	}
}

// Signup completes a verified signup: the (tempId, email, code) triple must
// match the stored verification code.
func (a *Auth) Signup(email domain.Email, password domain.Password, tempId, code string) (domain.CustomerId, error) {
	stored, err := a.storage.VerificationCode(tempId)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "Wrong verification code", StatusCode: http.StatusBadRequest}
		}
		return -1, err
	}
	if stored.RecipientEmail != email || stored.Code != code {
		return -1, &internal_errors.ErrorWithStatusCode{Message: "Wrong verification code", StatusCode: http.StatusBadRequest}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return -1, err
	}

	id, err := a.storage.SaveCustomer(domain.Customer{Email: email, PassHash: string(passHash)})
	if err != nil {
		return -1, err
	}

	if err := a.storage.DeleteVerificationCode(tempId); err != nil { // cleanup
		logger.Log.Error("failed to delete verification code", "temp_id", tempId, "error", err)
	}
	return id, nil
}
