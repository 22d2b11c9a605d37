package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atfs-dev/atfs/internal/domain"
	internal_errors "github.com/atfs-dev/atfs/internal/errors"
)

func mustSaveCustomer(t *testing.T, email, username string) domain.CustomerId {
	t.Helper()
	id, err := storage.SaveCustomer(domain.Customer{Email: email, Username: username, PassHash: "hash"})
	require.NoError(t, err)
	return id
}

func TestSaveCustomer(t *testing.T) {
	id := mustSaveCustomer(t, "save@example.com", "saver")
	assert.Greater(t, id, domain.CustomerId(0))

	_, err := storage.SaveCustomer(domain.Customer{Email: "save@example.com", PassHash: "hash"})
	assert.Error(t, err, "saving the same email twice should fail")
}

func TestCustomerByLogin(t *testing.T) {
	id := mustSaveCustomer(t, "login@example.com", "loginuser")

	byEmail, err := storage.CustomerByLogin("login@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.Id)

	byUsername, err := storage.CustomerByLogin("loginuser")
	require.NoError(t, err)
	assert.Equal(t, id, byUsername.Id)

	_, err = storage.CustomerByLogin("nonexistent@example.com")
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, 404, e.StatusCode)
}

func TestUpdatePassword(t *testing.T) {
	mustSaveCustomer(t, "pwd@example.com", "pwduser")

	require.NoError(t, storage.UpdatePassword("pwd@example.com", "newhash"))

	customer, err := storage.CustomerByLogin("pwd@example.com")
	require.NoError(t, err)
	assert.Equal(t, "newhash", customer.PassHash)

	err = storage.UpdatePassword("nonexistent@example.com", "newhash")
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, 404, e.StatusCode)
}

func TestAddFavorite(t *testing.T) {
	customerId := mustSaveCustomer(t, "fav@example.com", "favuser")
	fileId := mustSaveFile(t, customerId, "Favorite target")

	require.NoError(t, storage.AddFavorite(customerId, fileId))
	// repeat favourite is a no-op, not an error
	require.NoError(t, storage.AddFavorite(customerId, fileId))
}

func TestAddDownload(t *testing.T) {
	customerId := mustSaveCustomer(t, "dl@example.com", "dluser")
	fileId := mustSaveFile(t, customerId, "Download target")

	require.NoError(t, storage.AddDownload(customerId, fileId))
	require.NoError(t, storage.AddDownload(customerId, fileId))
}
