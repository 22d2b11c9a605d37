package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atfs-dev/atfs/internal/domain"
	"github.com/atfs-dev/atfs/internal/service"
)

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// --- Mocks ---

type MockAuthService struct {
	MockLogin       func(creds domain.Credentials) (string, domain.Customer, error)
	MockVerifyEmail func(email domain.Email) (string, error)
	MockSignup      func(email domain.Email, password domain.Password, tempId, code string) (domain.CustomerId, error)
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, domain.Customer, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "", domain.Customer{}, nil
}

func (m *MockAuthService) VerifyEmail(email domain.Email) (string, error) {
	if m.MockVerifyEmail != nil {
		return m.MockVerifyEmail(email)
	}
	return "", nil
}

func (m *MockAuthService) Signup(email domain.Email, password domain.Password, tempId, code string) (domain.CustomerId, error) {
	if m.MockSignup != nil {
		return m.MockSignup(email, password, tempId, code)
	}
	return 1, nil
}

type MockShareService struct {
	MockShare   func(req domain.ShareRequest) (service.ShareAck, error)
	MockHistory func(fileId domain.FileId) ([]domain.ShareAttempt, error)
}

func (m *MockShareService) Share(req domain.ShareRequest) (service.ShareAck, error) {
	if m.MockShare != nil {
		return m.MockShare(req)
	}
	return service.ShareAck{}, nil
}

func (m *MockShareService) History(fileId domain.FileId) ([]domain.ShareAttempt, error) {
	if m.MockHistory != nil {
		return m.MockHistory(fileId)
	}
	return nil, nil
}

type MockFileService struct {
	MockRegister    func(file domain.File) (domain.FileId, error)
	MockGet         func(id domain.FileId) (domain.File, error)
	MockList        func(visibility string) ([]domain.File, error)
	MockSearch      func(query string) ([]domain.File, error)
	MockAddFavorite func(customerId domain.CustomerId, fileId domain.FileId) error
	MockAddDownload func(customerId domain.CustomerId, fileId domain.FileId) error
}

func (m *MockFileService) Register(file domain.File) (domain.FileId, error) {
	if m.MockRegister != nil {
		return m.MockRegister(file)
	}
	return domain.FileId{}, nil
}

func (m *MockFileService) Get(id domain.FileId) (domain.File, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.File{Id: id}, nil
}

func (m *MockFileService) List(visibility string) ([]domain.File, error) {
	if m.MockList != nil {
		return m.MockList(visibility)
	}
	return nil, nil
}

func (m *MockFileService) Search(query string) ([]domain.File, error) {
	if m.MockSearch != nil {
		return m.MockSearch(query)
	}
	return nil, nil
}

func (m *MockFileService) AddFavorite(customerId domain.CustomerId, fileId domain.FileId) error {
	if m.MockAddFavorite != nil {
		return m.MockAddFavorite(customerId, fileId)
	}
	return nil
}

func (m *MockFileService) AddDownload(customerId domain.CustomerId, fileId domain.FileId) error {
	if m.MockAddDownload != nil {
		return m.MockAddDownload(customerId, fileId)
	}
	return nil
}

type MockRecoveryService struct {
	MockRequestReset  func(email domain.Email) (string, error)
	MockResetPassword func(email domain.Email, tempId, code string, newPassword domain.Password) error
}

func (m *MockRecoveryService) RequestReset(email domain.Email) (string, error) {
	if m.MockRequestReset != nil {
		return m.MockRequestReset(email)
	}
	return "", nil
}

func (m *MockRecoveryService) ResetPassword(email domain.Email, tempId, code string, newPassword domain.Password) error {
	if m.MockResetPassword != nil {
		return m.MockResetPassword(email, tempId, code, newPassword)
	}
	return nil
}

type MockPinger struct {
	MockPing func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}
