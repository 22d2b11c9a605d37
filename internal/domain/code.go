package domain

import "time"

// VerificationCode is a one-time code mailed during signup or recovery.
// TempId correlates the browser flow with the stored code.
type VerificationCode struct {
	RecipientEmail Email
	Code           string
	TempId         string
	CreatedAt      time.Time
}
