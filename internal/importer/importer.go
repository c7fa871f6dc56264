// Package importer turns uploaded CRM contact exports into batches of
// partnership invites.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/hamzaalie/spotlight-circle-sub000/internal/encoding"
)

var ErrNoHeader = errors.New("no contact header row found: expected at least an email column")

// Contact is one parsed row of an uploaded export.
type Contact struct {
	Name     string
	Email    string
	Category string
	Notes    string
}

// columnAliases maps each logical field to the header names CRMs use for it.
// Matching is case-insensitive on trimmed cells.
var columnAliases = map[string][]string{
	"name":     {"name", "full name", "contact name", "contact"},
	"email":    {"email", "e-mail", "email address", "e-mail address"},
	"category": {"category", "profession", "industry", "type"},
	"notes":    {"notes", "note", "message", "comments"},
}

// Parser reads contact CSV exports. It locates the header row by matching
// column names against known CRM aliases; only the email column is required.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Contact, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if cols == nil {
		return nil, ErrNoHeader
	}

	var contacts []Contact

	for _, row := range rows[headerIdx+1:] {
		c := Contact{
			Name:     cellValue(row, cols["name"]),
			Email:    cellValue(row, cols["email"]),
			Category: cellValue(row, cols["category"]),
			Notes:    cellValue(row, cols["notes"]),
		}

		// Rows without an email cannot become invites; footers and blank
		// separator lines land here too.
		if c.Email == "" {
			continue
		}

		contacts = append(contacts, c)
	}

	return contacts, nil
}

// colIndex maps logical field names to their column index. Missing optional
// fields map to -1.
type colIndex map[string]int

func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := colIndex{"name": -1, "email": -1, "category": -1, "notes": -1}

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))

			for field, aliases := range columnAliases {
				if cols[field] != -1 {
					continue
				}

				for _, alias := range aliases {
					if name == alias {
						cols[field] = i
						break
					}
				}
			}
		}

		if cols["email"] != -1 {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
