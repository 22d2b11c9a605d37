package domain

import "time"

type ShareStatus string

const (
	SharePending ShareStatus = "pending"
	ShareSuccess ShareStatus = "success"
	ShareFailed  ShareStatus = "failed"
)

// ShareAttempt is one request to email a file to a set of recipients.
// It is created pending and finalized exactly once to success or failed.
type ShareAttempt struct {
	Id                 ShareId
	FileId             FileId
	From               CustomerId
	Recipients         Emails // as originally requested, immutable
	Status             ShareStatus
	AcceptedRecipients Emails // appended only after a confirmed send
	Log                string
	CreatedAt          time.Time
}

// ShareRequest is the HTTP-boundary input to the share pipeline.
type ShareRequest struct {
	FileId     FileId
	From       CustomerId
	Recipients []Email
	Message    string
}
