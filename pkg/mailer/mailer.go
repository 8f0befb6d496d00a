package mailer

import "log"

// Mailer delivers transactional mail. Delivery itself is an external
// collaborator; the core only hands off.
type Mailer interface {
	SendPasswordReset(email, token string) error
}

// LogMailer writes mail to the process log instead of delivering it.
// Used in development and tests.
type LogMailer struct{}

// NewLogMailer creates a new LogMailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// SendPasswordReset logs the reset token for the given address.
func (m *LogMailer) SendPasswordReset(email, token string) error {
	log.Printf("password reset requested for %s, token: %s", email, token)
	return nil
}
