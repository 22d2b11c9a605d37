package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/atfs-dev/atfs/internal/config"
	"github.com/atfs-dev/atfs/internal/errors"
	"github.com/atfs-dev/atfs/internal/logger"
)

var (
	mailSendSuccess = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mail_send_success_total",
		Help: "Total number of mail transport round trips that succeeded",
	})
	mailSendFailure = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mail_send_failure_total",
		Help: "Total number of mail transport round trips that failed",
	})
)

// Transport is the awaitable contract the services depend on.
type Transport interface {
	Send(ctx context.Context, job *TransportJob) (*TransportResult, error)
}

// Gateway performs one mail send per call by spawning a dedicated worker
// process. The worker is never pooled or reused: a slow or crashing SMTP
// session must not be able to affect the serving process. Every call resolves
// exactly once and the worker is terminated on all paths, including timeout.
type Gateway struct {
	workerPath string
	workerArgs []string
	timeout    time.Duration
}

func NewGateway(cfg config.Mailer) *Gateway {
	var args []string
	if cfg.ConfigFolder != "" {
		args = append(args, "-config_folder", cfg.ConfigFolder)
	}
	return &Gateway{
		workerPath: cfg.WorkerPath,
		workerArgs: args,
		timeout:    cfg.SendTimeout.Std(),
	}
}

// Send transmits job as the worker's single input message and waits for its
// single reply. The context deadline (capped by the configured timeout)
// force-kills a worker that never replies.
func (g *Gateway) Send(ctx context.Context, job *TransportJob) (*TransportResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("mail gateway: encode job: %w", err)
	}

	cmd := exec.CommandContext(ctx, g.workerPath, g.workerArgs...)
	cmd.Stdin = bytes.NewReader(payload)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	out, err := cmd.Output()
	if err != nil {
		// worker crashed, was killed by the deadline, or exited without
		// fulfilling its one-reply obligation
		mailSendFailure.Inc()
		logger.Log.Error("mail worker did not reply",
			"error", err,
			"stderr", stderr.String(),
			"elapsed", time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("mail gateway: worker timed out: %w", ctxErr)
		}
		return nil, fmt.Errorf("mail gateway: worker failed: %w", err)
	}

	var rep reply
	if err := json.Unmarshal(out, &rep); err != nil {
		mailSendFailure.Inc()
		return nil, fmt.Errorf("mail gateway: malformed worker reply: %w", err)
	}

	if rep.Status != statusSuccess || rep.Result == nil {
		mailSendFailure.Inc()
		return nil, &errors.ErrorWithStatusCode{Message: "Mail transport failed: " + rep.Error, StatusCode: 502}
	}

	mailSendSuccess.Inc()
	return rep.Result, nil
}
