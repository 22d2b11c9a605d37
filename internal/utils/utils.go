package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateVerificationCode returns a short one-time code for email verification.
func GenerateVerificationCode(length int) string {
	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	if length > len(code) {
		length = len(code)
	}
	return code[:length]
}

// GenerateTempId correlates a signup/recovery flow with its stored code.
func GenerateTempId() string {
	return uuid.NewString()
}
