package recipients

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNoEmailColumn = errors.New("email column not found in CSV")

// ReadCSV reads a header row followed by one recipient per record.
func ReadCSV(reader io.Reader) ([]Row, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true
	// stray quotes inside an address must not sink the rest of the file
	csvReader.LazyQuotes = true

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrNoEmailColumn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	hasEmail := false
	for i, col := range header {
		// Excel likes to prefix a BOM
		col = strings.TrimPrefix(col, "\ufeff")
		header[i] = strings.ToLower(strings.TrimSpace(col))
		if header[i] == "email" {
			hasEmail = true
		}
	}
	if !hasEmail {
		return nil, ErrNoEmailColumn
	}

	var rows []Row
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if isBlank(record) {
			continue
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) && col != "" {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
