// Package recipients turns raw CSV rows and manual input into a validated,
// duplicate-free recipient collection.
package recipients

import (
	"errors"
	"fmt"
	"strings"

	"email-campaign/models"
	"email-campaign/utils"
)

var (
	ErrMissingEmail = errors.New("row has no email")
	ErrInvalidEmail = errors.New("invalid email format")
)

// InvalidEmailError reports the value that failed validation.
type InvalidEmailError struct {
	Value string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email format: %q", e.Value)
}

func (e *InvalidEmailError) Unwrap() error {
	return ErrInvalidEmail
}

// Row is one parsed CSV record keyed by lowercased header name.
type Row map[string]string

// Normalize trims the row's fields and validates the email.
func Normalize(row Row) (models.Recipient, error) {
	email := strings.TrimSpace(row["email"])
	if email == "" {
		return models.Recipient{}, ErrMissingEmail
	}
	return NewRecipient(email, row["first_name"], row["last_name"])
}

// NewRecipient builds a recipient from manual input.
func NewRecipient(email, firstName, lastName string) (models.Recipient, error) {
	email = strings.TrimSpace(email)
	if !utils.ValidateEmail(email) {
		return models.Recipient{}, &InvalidEmailError{Value: email}
	}
	return models.Recipient{
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}, nil
}
