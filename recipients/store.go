package recipients

import (
	"errors"
	"fmt"
	"io"

	"email-campaign/logger"
	"email-campaign/models"
)

var ErrIndexOutOfRange = errors.New("recipient index out of range")

// Renderer displays the collection after every change.
type Renderer interface {
	Render(list []models.Recipient)
}

// Rejection describes a CSV row that did not become a recipient.
type Rejection struct {
	Row    int
	Value  string
	Reason error
}

type ImportResult struct {
	Imported   int
	Rejected   []Rejection
	Duplicates []models.Recipient
}

// Store owns the ordered recipient collection. No two entries share a
// lowercased email. A Store is not safe for concurrent use.
type Store struct {
	items    []models.Recipient
	renderer Renderer
	log      *logger.Logger
}

func NewStore(renderer Renderer, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		renderer: renderer,
		log:      log.WithComponent("recipients"),
	}
}

// ReplaceAll discards the current contents in favour of list, deduplicated.
func (s *Store) ReplaceAll(list []models.Recipient) {
	s.replace(list)
	s.Render()
}

func (s *Store) replace(list []models.Recipient) []models.Recipient {
	unique, dropped := DedupWithDuplicates(list)
	s.items = unique
	return dropped
}

// ImportCSV clears the store and loads the valid rows of a CSV file.
// Invalid rows are logged and reported, duplicates are dropped.
func (s *Store) ImportCSV(reader io.Reader) (*ImportResult, error) {
	s.items = nil

	rows, err := ReadCSV(reader)
	if err != nil {
		s.Render()
		return nil, err
	}

	result := &ImportResult{}
	valid := make([]models.Recipient, 0, len(rows))
	for i, row := range rows {
		recipient, err := Normalize(row)
		if err != nil {
			rejection := Rejection{Row: i + 1, Value: row["email"], Reason: err}
			result.Rejected = append(result.Rejected, rejection)
			s.log.Warn().
				Int("row", rejection.Row).
				Str("value", rejection.Value).
				Err(err).
				Msg("rejected CSV row")
			continue
		}
		valid = append(valid, recipient)
	}

	result.Duplicates = s.replace(valid)
	result.Imported = len(s.items)

	s.log.Info().
		Int("rows", len(rows)).
		Int("imported", result.Imported).
		Int("rejected", len(result.Rejected)).
		Int("duplicates", len(result.Duplicates)).
		Msg("CSV imported")

	s.Render()
	return result, nil
}

// Add appends a manually entered recipient. A recipient whose email is
// already present is dropped.
func (s *Store) Add(recipient models.Recipient) error {
	validated, err := NewRecipient(recipient.Email, recipient.FirstName, recipient.LastName)
	if err != nil {
		return err
	}

	s.replace(append(s.items, validated))
	s.Render()
	return nil
}

// RemoveAt deletes the recipient at index.
func (s *Store) RemoveAt(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.items))
	}

	s.items = append(s.items[:index:index], s.items[index+1:]...)
	s.Render()
	return nil
}

// List returns a copy of the collection.
func (s *Store) List() []models.Recipient {
	out := make([]models.Recipient, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) Render() {
	if s.renderer != nil {
		s.renderer.Render(s.List())
	}
}
