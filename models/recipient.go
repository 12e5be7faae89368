package models

import "strings"

type Recipient struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Key is the identity used for uniqueness checks.
func (r Recipient) Key() string {
	return strings.ToLower(r.Email)
}

// DisplayName joins the first and last name the way the recipient list shows them.
func (r Recipient) DisplayName() string {
	return r.FirstName + " " + r.LastName
}
