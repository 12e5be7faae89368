// Package preview renders the messages a campaign would deliver, without
// delivering them.
package preview

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jordan-wright/email"

	"email-campaign/models"
)

type Composer struct {
	from string
}

func NewComposer(from string) (*Composer, error) {
	if _, err := mail.ParseAddress(from); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", from, err)
	}
	return &Composer{from: from}, nil
}

// Compose builds the message addressed to a single recipient.
func (c *Composer) Compose(subject, message string, recipient models.Recipient) *email.Email {
	e := email.NewEmail()
	e.From = c.from
	e.To = []string{Address(recipient)}
	e.Subject = subject
	e.Text = []byte(message)
	return e
}

// WriteAll writes one .eml file per recipient into dir and returns the paths.
func (c *Composer) WriteAll(dir, subject, message string, recipients []models.Recipient) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}

	paths := make([]string, 0, len(recipients))
	for i, recipient := range recipients {
		raw, err := c.Compose(subject, message, recipient).Bytes()
		if err != nil {
			return paths, fmt.Errorf("failed to render message for %s: %w", recipient.Email, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("%03d-%s.eml", i+1, fileSafe(recipient.Email)))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// Address formats the recipient as a display-name address.
func Address(recipient models.Recipient) string {
	name := strings.TrimSpace(recipient.DisplayName())
	addr := mail.Address{Name: name, Address: recipient.Email}
	return addr.String()
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._@+-]`)

func fileSafe(s string) string {
	return unsafeChars.ReplaceAllString(strings.ToLower(s), "_")
}
