// Package mailer sends single and templated bulk emails over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/gomail.v2"
)

// Credentials come from the environment so they never land in the config
// file.
const (
	EnvUsername = "SMTP_USERNAME"
	EnvPassword = "SMTP_PASSWORD"
)

// ErrNoCredentials is returned when the SMTP environment variables are
// missing.
var ErrNoCredentials = errors.New("SMTP_USERNAME and SMTP_PASSWORD must be set")

// Mailer holds SMTP connection settings.
type Mailer struct {
	server   string
	port     int
	from     string
	username string
	password string

	// send is swappable in tests.
	send func(*gomail.Message) error
}

// New reads credentials from the environment. An empty from address falls
// back to the username.
func New(server string, port int, from string) (*Mailer, error) {
	username := os.Getenv(EnvUsername)
	password := os.Getenv(EnvPassword)
	if username == "" || password == "" {
		return nil, ErrNoCredentials
	}
	if from == "" {
		from = username
	}
	m := &Mailer{
		server:   server,
		port:     port,
		from:     from,
		username: username,
		password: password,
	}
	m.send = func(msg *gomail.Message) error {
		dialer := gomail.NewDialer(m.server, m.port, m.username, m.password)
		return dialer.DialAndSend(msg)
	}
	return m, nil
}

// Send delivers one plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// Recipient is one bulk-send target with template values.
type Recipient struct {
	Email  string
	Fields map[string]string
}

// BulkResult reports per-recipient outcomes of a bulk send.
type BulkResult struct {
	Sent   int
	Failed int
	Errors []string
}

// SendBulk renders subject and body per recipient by replacing {name}-style
// placeholders with the recipient's fields, then sends each message.
// Individual failures are collected, not fatal.
func (m *Mailer) SendBulk(recipients []Recipient, subject, body string) *BulkResult {
	result := &BulkResult{}
	for _, r := range recipients {
		if err := m.Send(r.Email, render(subject, r.Fields), render(body, r.Fields)); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Sent++
	}
	return result
}

func render(template string, fields map[string]string) string {
	out := template
	for key, value := range fields {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}
