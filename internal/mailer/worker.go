package mailer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/atfs-dev/atfs/internal/config"
)

// Worker owns the SMTP credentials and performs exactly one send-and-reply
// cycle per process invocation. Stdout is the reply channel, so nothing else
// may be written to it.
type Worker struct {
	cfg *config.Email

	// send is swappable in tests
	send func(job *TransportJob) (*TransportResult, error)
}

func NewWorker(cfg *config.Email) *Worker {
	w := &Worker{cfg: cfg}
	w.send = w.sendSMTP
	return w
}

// Run decodes one TransportJob from in, attempts the send, and writes exactly
// one reply to out. After the reply the worker's obligation is discharged;
// the process is expected to exit. A returned error means the reply itself
// could not be produced.
func (w *Worker) Run(in io.Reader, out io.Writer) error {
	var job TransportJob
	if err := json.NewDecoder(in).Decode(&job); err != nil {
		return writeReply(out, reply{Status: statusFailed, Error: fmt.Sprintf("malformed job: %v", err)})
	}

	result, err := w.send(&job)
	if err != nil {
		return writeReply(out, reply{Status: statusFailed, Error: err.Error()})
	}
	return writeReply(out, reply{Status: statusSuccess, Result: result})
}

func writeReply(out io.Writer, rep reply) error {
	if err := json.NewEncoder(out).Encode(rep); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}
