package mailer

// Attachment references a file on disk by its absolute path. Filename is the
// name shown to the recipient, not the stored name.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// TransportJob is the transient payload for a single mail send. It lives for
// the duration of one Gateway.Send call and is never persisted.
type TransportJob struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTMLBody    string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// TransportResult is the provider-side outcome of a successful send.
// Accepted and Rejected partition the envelope recipients.
type TransportResult struct {
	MessageID string   `json:"messageId"`
	Accepted  []string `json:"accepted"`
	Rejected  []string `json:"rejected"`
}

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// reply is the single message a worker writes back before exiting.
type reply struct {
	Status string           `json:"status"`
	Result *TransportResult `json:"response,omitempty"`
	Error  string           `json:"error,omitempty"`
}
