package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// Config holds SMTP configuration.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// Service sends transactional mail.
type Service struct {
	config Config
}

// NewService creates a new email service.
func NewService(config Config) *Service {
	return &Service{config: config}
}

var resetTemplate = template.Must(template.New("reset").Parse(`
<html>
  <body style="font-family: sans-serif; color: #333;">
    <h2>Reset your password</h2>
    <p>A password reset was requested for {{.Email}}. Click the link below to
    choose a new password. The link expires in one hour.</p>
    <p><a href="{{.ResetURL}}">Reset password</a></p>
    <p>If you did not request this, you can ignore this email.</p>
  </body>
</html>
`))

// SendPasswordResetEmail sends a password reset email with the given token.
func (s *Service) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, map[string]string{
		"Email":    toEmail,
		"ResetURL": resetURL,
	}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Reset Your Password - Service Receipts"
	message := s.buildHTMLEmail(toEmail, subject, body.String())

	return s.send(toEmail, message)
}

func (s *Service) buildHTMLEmail(to, subject, htmlContent string) []byte {
	headers := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"
	return []byte(headers + htmlContent)
}

func (s *Service) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	return smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
}
