package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Mail subjects used across the delivery channels.
const (
	SubjectFileShared        = "(AT-File Server): A File Has Been Shared With You"
	SubjectVerificationCode  = "(AT-File Server): Here is your verification code!"
	SubjectResetAttempt      = "(AT-File Server): Password Reset Attempt"
	SubjectResetConfirmation = "(AT-File Server): Your Password Has Been Changed"
)

const bodyShell = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px;">
    <div style="background-color: #007BFF; color: #ffffff; padding: 10px 0; text-align: center;">
      <h1>{{.Header}}</h1>
    </div>
    <div style="padding: 20px; font-size: 16px; line-height: 1.5; color: #333333;">
      {{.Content}}
    </div>
    <div style="text-align: center; padding: 10px; font-size: 12px; color: #777777;">
      <p>&copy; AT-File Server. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`

var shellTmpl = template.Must(template.New("shell").Parse(bodyShell))

func renderShell(header string, content template.HTML) string {
	var buf bytes.Buffer
	// template is static, render cannot fail on valid input
	_ = shellTmpl.Execute(&buf, struct {
		Header  string
		Content template.HTML
	}{header, content})
	return buf.String()
}

// FileShareBody renders the mail sent alongside a shared file.
func FileShareBody(senderName, message string) string {
	content := fmt.Sprintf("<p>%s shared a file with you via AT-File Server.</p><p>%s</p>",
		template.HTMLEscapeString(senderName), template.HTMLEscapeString(message))
	return renderShell("A file has been shared with you", template.HTML(content))
}

// VerificationCodeBody renders the one-time code mail.
func VerificationCodeBody(code string) string {
	escaped := template.HTMLEscapeString(code)
	content := fmt.Sprintf("<p><b>%s</b> is your AT-File Server verification code</p>", escaped)
	return renderShell(escaped, template.HTML(content))
}

// ResetAttemptBody alerts a user that a password reset was requested for
// their account.
func ResetAttemptBody(email, username string) string {
	content := fmt.Sprintf(
		"<p>A password reset was requested for the account %s (%s).</p><p>If this was not you, please contact support immediately.</p>",
		template.HTMLEscapeString(username), template.HTMLEscapeString(email))
	return renderShell("Password reset attempt", template.HTML(content))
}

// ResetConfirmationBody informs a user that their password was changed.
func ResetConfirmationBody() string {
	content := "<p>Your AT-File Server password has been changed. If you did not perform this change, contact support immediately.</p>"
	return renderShell("Your password has been changed", template.HTML(content))
}
