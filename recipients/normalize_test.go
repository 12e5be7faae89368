package recipients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"email-campaign/models"
)

func TestNormalize(t *testing.T) {
	recipient, err := Normalize(Row{
		"email":      "  jane@example.com ",
		"first_name": " Jane ",
		"last_name":  "Doe\t",
	})
	require.NoError(t, err)
	assert.Equal(t, models.Recipient{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}, recipient)
}

func TestNormalize_DefaultsNames(t *testing.T) {
	recipient, err := Normalize(Row{"email": "jane@example.com"})
	require.NoError(t, err)
	assert.Empty(t, recipient.FirstName)
	assert.Empty(t, recipient.LastName)
}

func TestNormalize_MissingEmail(t *testing.T) {
	rows := []Row{
		{},
		{"email": ""},
		{"email": "   "},
		{"first_name": "Jane", "last_name": "Doe"},
	}
	for _, row := range rows {
		_, err := Normalize(row)
		assert.ErrorIs(t, err, ErrMissingEmail)
	}
}

func TestNormalize_InvalidEmail(t *testing.T) {
	for _, value := range []string{"jane", "jane@example", "jane@@example.com", "ja ne@example.com"} {
		_, err := Normalize(Row{"email": value})
		require.ErrorIs(t, err, ErrInvalidEmail, value)

		var invalid *InvalidEmailError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, value, invalid.Value)
		assert.Contains(t, err.Error(), value)
	}
}

func TestNewRecipient(t *testing.T) {
	recipient, err := NewRecipient(" bob@example.org", "Bob", "")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.org", recipient.Email)

	_, err = NewRecipient("", "Bob", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}
