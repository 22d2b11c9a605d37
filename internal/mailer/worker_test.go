package mailer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atfs-dev/atfs/internal/config"
)

func stubbedWorker(send func(job *TransportJob) (*TransportResult, error)) *Worker {
	w := NewWorker(&config.Email{SMTPServer: "smtp.test", Username: "u", Password: "p"})
	w.send = send
	return w
}

func runWorker(t *testing.T, w *Worker, input string) reply {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, w.Run(strings.NewReader(input), &out))

	var rep reply
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	return rep
}

func TestWorkerRunSuccess(t *testing.T) {
	var received *TransportJob
	w := stubbedWorker(func(job *TransportJob) (*TransportResult, error) {
		received = job
		return &TransportResult{MessageID: "<m@test>", Accepted: job.To}, nil
	})

	rep := runWorker(t, w, `{"to":["a@example.com"],"subject":"s","html":"<p>x</p>"}`)

	assert.Equal(t, statusSuccess, rep.Status)
	require.NotNil(t, rep.Result)
	assert.Equal(t, []string{"a@example.com"}, rep.Result.Accepted)
	require.NotNil(t, received)
	assert.Equal(t, "s", received.Subject)
}

func TestWorkerRunSendFailure(t *testing.T) {
	w := stubbedWorker(func(job *TransportJob) (*TransportResult, error) {
		return nil, errors.New("connection refused")
	})

	rep := runWorker(t, w, `{"to":["a@example.com"]}`)

	assert.Equal(t, statusFailed, rep.Status)
	assert.Nil(t, rep.Result)
	assert.Contains(t, rep.Error, "connection refused")
}

func TestWorkerRunMalformedJob(t *testing.T) {
	sendCalled := false
	w := stubbedWorker(func(job *TransportJob) (*TransportResult, error) {
		sendCalled = true
		return nil, nil
	})

	rep := runWorker(t, w, `{not json`)

	assert.Equal(t, statusFailed, rep.Status)
	assert.Contains(t, rep.Error, "malformed job")
	assert.False(t, sendCalled)
}
