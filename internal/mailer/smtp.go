package mailer

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net"
	"net/smtp"
	"time"

	"gopkg.in/gomail.v2"
)

// sendSMTP performs the actual provider call. The envelope is driven through
// net/smtp so each RCPT is accepted or rejected individually; the DATA payload
// (HTML body plus attachments) is built with gomail.
func (w *Worker) sendSMTP(job *TransportJob) (*TransportResult, error) {
	if len(job.To) == 0 {
		return nil, fmt.Errorf("no recipients")
	}

	client, err := w.connect()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	auth := smtp.PlainAuth("", w.cfg.Username, w.cfg.Password, w.cfg.SMTPServer)
	if err := client.Auth(auth); err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	if err := client.Mail(w.cfg.Username); err != nil {
		return nil, fmt.Errorf("mail from: %w", err)
	}

	var accepted, rejected []string
	for _, rcpt := range job.To {
		if err := client.Rcpt(rcpt); err != nil {
			rejected = append(rejected, rcpt)
			continue
		}
		accepted = append(accepted, rcpt)
	}
	if len(accepted) == 0 {
		return nil, fmt.Errorf("all %d recipients rejected", len(rejected))
	}

	messageID := generateMessageID(w.cfg.SMTPServer)
	msg, err := w.buildMessage(job, messageID)
	if err != nil {
		return nil, err
	}

	wr, err := client.Data()
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	if _, err := msg.WriteTo(wr); err != nil {
		wr.Close()
		return nil, fmt.Errorf("write message: %w", err)
	}
	if err := wr.Close(); err != nil {
		return nil, fmt.Errorf("close data: %w", err)
	}
	if err := client.Quit(); err != nil {
		return nil, fmt.Errorf("quit: %w", err)
	}

	return &TransportResult{MessageID: messageID, Accepted: accepted, Rejected: rejected}, nil
}

func (w *Worker) timeout() time.Duration {
	timeout := time.Duration(w.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

// connect dials the SMTP server. Port 465 = implicit TLS, otherwise STARTTLS.
func (w *Worker) connect() (*smtp.Client, error) {
	address := fmt.Sprintf("%s:%d", w.cfg.SMTPServer, w.cfg.SMTPPort)
	tlsConfig := &tls.Config{ServerName: w.cfg.SMTPServer}

	if w.cfg.SMTPPort == 465 {
		conn, err := tls.DialWithDialer(&net.Dialer{Timeout: w.timeout()}, "tcp", address, tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("dial (implicit TLS): %w", err)
		}
		client, err := smtp.NewClient(conn, w.cfg.SMTPServer)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("new client: %w", err)
		}
		return client, nil
	}

	conn, err := net.DialTimeout("tcp", address, w.timeout())
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	client, err := smtp.NewClient(conn, w.cfg.SMTPServer)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("new client: %w", err)
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		client.Close()
		return nil, fmt.Errorf("starttls: %w", err)
	}
	return client, nil
}

func (w *Worker) buildMessage(job *TransportJob, messageID string) (*gomail.Message, error) {
	from := job.From
	if from == "" {
		from = w.cfg.SystemAddress
	}
	if from == "" {
		return nil, fmt.Errorf("no from address configured")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", from, w.cfg.SenderName)
	msg.SetHeader("To", job.To...)
	msg.SetHeader("Subject", job.Subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", job.HTMLBody)
	for _, a := range job.Attachments {
		msg.Attach(a.Path, gomail.Rename(a.Filename))
	}
	return msg, nil
}

func generateMessageID(domain string) string {
	t := time.Now().UnixNano()
	pid := rand.Int63()
	return fmt.Sprintf("<%d.%d@%s>", t, pid, domain)
}
