package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atfs-dev/atfs/internal/config"
	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
	"github.com/atfs-dev/atfs/internal/middleware"
	"github.com/atfs-dev/atfs/internal/service"
)

func withCustomer(req *http.Request, customer *domain.Customer) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.CustomerClaimsKey, customer)
	return req.WithContext(ctx)
}

func TestShareFileHandler(t *testing.T) {
	h := &Handler{cfg: &config.Config{}}

	router := mux.NewRouter()
	router.HandleFunc("/v1/files/{file}/share", h.ShareFile).Methods("POST")

	fileId := uuid.New()
	route := "/v1/files/" + fileId.String() + "/share"
	customer := &domain.Customer{Id: 7, Email: "sender@example.com"}

	t.Run("accepted with invalid recipients reported", func(t *testing.T) {
		h.share = &MockShareService{
			MockShare: func(req domain.ShareRequest) (service.ShareAck, error) {
				assert.Equal(t, fileId, req.FileId)
				assert.Equal(t, domain.CustomerId(7), req.From)
				assert.Equal(t, []domain.Email{"good@example.com", "bad"}, req.Recipients)
				return service.ShareAck{InvalidRecipients: []domain.Email{"bad"}}, nil
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"recipients": ["good@example.com", "bad"], "message": "enjoy"}`))
		req = withCustomer(req, customer)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var resp shareResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, []string{"bad"}, resp.InvalidRecipients)
	})

	t.Run("all recipients invalid", func(t *testing.T) {
		h.share = &MockShareService{
			MockShare: func(req domain.ShareRequest) (service.ShareAck, error) {
				return service.ShareAck{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid recipient emails", StatusCode: http.StatusBadRequest}
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"recipients": ["bad"]}`))
		req = withCustomer(req, customer)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty recipients list", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{"recipients": []}`))
		req = withCustomer(req, customer)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed file id", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, "/v1/files/not-a-uuid/share", []byte(`{"recipients": ["good@example.com"]}`))
		req = withCustomer(req, customer)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no customer in context", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{"recipients": ["good@example.com"]}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetFileHandler(t *testing.T) {
	h := &Handler{cfg: &config.Config{}}

	router := mux.NewRouter()
	router.HandleFunc("/v1/files/{file}", h.GetFile).Methods("GET")

	fileId := uuid.New()
	attemptId := uuid.New()

	h.files = &MockFileService{
		MockGet: func(id domain.FileId) (domain.File, error) {
			return domain.File{Id: id, Title: "Quarterly report"}, nil
		},
	}
	h.share = &MockShareService{
		MockHistory: func(fid domain.FileId) ([]domain.ShareAttempt, error) {
			return []domain.ShareAttempt{{Id: attemptId, FileId: fid, Status: domain.ShareSuccess}}, nil
		},
	}

	req := createRequest(t, http.MethodGet, "/v1/files/"+fileId.String(), nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var file domain.File
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &file))
	assert.Equal(t, "Quarterly report", file.Title)
	require.Len(t, file.Shared, 1)
	assert.Equal(t, domain.ShareSuccess, file.Shared[0].Status)
}

func TestHealthHandlers(t *testing.T) {
	t.Run("health always ok", func(t *testing.T) {
		h := &Handler{}
		rr := httptest.NewRecorder()
		h.Health(rr, createRequest(t, http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("ready with db down", func(t *testing.T) {
		h := &Handler{health: &MockPinger{
			MockPing: func(ctx context.Context) error { return context.DeadlineExceeded },
		}}
		rr := httptest.NewRecorder()
		h.Ready(rr, createRequest(t, http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("ready with db up", func(t *testing.T) {
		h := &Handler{health: &MockPinger{}}
		rr := httptest.NewRecorder()
		h.Ready(rr, createRequest(t, http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
