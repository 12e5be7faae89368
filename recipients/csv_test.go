package recipients

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "Email, First_Name ,last_name\n" +
		"jane@example.com,Jane,Doe\n" +
		"\n" +
		"bob@example.com,Bob\n" +
		",,\n" +
		"ann@example.com,Ann,Lee,extra\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{"email": "jane@example.com", "first_name": "Jane", "last_name": "Doe"}, rows[0])

	_, hasLast := rows[1]["last_name"]
	assert.False(t, hasLast, "short records leave missing columns absent")
	assert.Equal(t, "Bob", rows[1]["first_name"])

	assert.Equal(t, "ann@example.com", rows[2]["email"])
}

func TestReadCSV_ByteOrderMark(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("\ufeffemail\njane@example.com\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "jane@example.com", rows[0]["email"])
}

func TestReadCSV_NoEmailColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("name,phone\nJane,555\n"))
	assert.ErrorIs(t, err, ErrNoEmailColumn)

	_, err = ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoEmailColumn)
}

func TestReadCSV_StrayQuotes(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("email,first_name\no\"brien@example.com,Pat\nbob@example.com,Bob\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `o"brien@example.com`, rows[0]["email"])
	assert.Equal(t, "Pat", rows[0]["first_name"])
	assert.Equal(t, "bob@example.com", rows[1]["email"])
}

func TestReadCSV_UnterminatedQuote(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("email\n\"jane@example.com\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "jane@example.com", strings.TrimSpace(rows[0]["email"]))
}
