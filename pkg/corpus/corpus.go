// Package corpus loads small tabular datasets from CSV and flattens their
// rows into documents.
package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/models"
)

var log = internal.GetLogger()

// Table is a parsed CSV file. Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load parses CSV data. The first record is the header. Empty input, ragged
// rows and duplicate column names are validation errors; nothing is
// recovered from a malformed file.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, models.NewValidationError("unable to parse CSV", err)
	}
	if len(records) == 0 {
		return nil, models.NewValidationError("CSV file is empty", nil)
	}

	header := make([]string, len(records[0]))
	seen := make(map[string]bool, len(header))
	for i, h := range records[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if seen[h] {
			return nil, models.NewValidationError(fmt.Sprintf("duplicate column %q", h), nil)
		}
		seen[h] = true
		header[i] = h
	}

	return &Table{Header: header, Rows: records[1:]}, nil
}

// LoadURL downloads and parses a remotely hosted CSV file.
func LoadURL(ctx context.Context, client *retryablehttp.Client, url string) (*Table, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building corpus request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, models.NewAPIError("corpus", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewAPIError(
			"corpus",
			resp.StatusCode,
			fmt.Errorf("unexpected status fetching %s", url),
		)
	}

	table, err := Load(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debugf("loaded corpus from %s: %d rows, %d columns", url, len(table.Rows), len(table.Header))

	return table, nil
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, models.NewValidationError(
			fmt.Sprintf("uploaded dataset must contain a '%s' column", name),
			nil,
		)
	}

	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Select returns a new table restricted to the given columns, in the given
// order.
func (t *Table) Select(columns ...string) (*Table, error) {
	idxs := make([]int, len(columns))
	var missing []string
	for i, c := range columns {
		idxs[i] = t.ColumnIndex(c)
		if idxs[i] < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError(
			"one or more selected columns do not exist in the uploaded data",
			errors.New(strings.Join(missing, ", ")),
		)
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		projected := make([]string, len(idxs))
		for i, idx := range idxs {
			projected[i] = row[idx]
		}
		rows[r] = projected
	}

	header := make([]string, len(columns))
	copy(header, columns)
	return &Table{Header: header, Rows: rows}, nil
}

// Documents flattens each row into a document by joining all of its values
// with single spaces. Document ids are row positions.
func (t *Table) Documents() []models.Document {
	docs := make([]models.Document, len(t.Rows))
	for i, row := range t.Rows {
		docs[i] = models.Document{ID: i, Text: strings.Join(row, " ")}
	}
	return docs
}

// String renders the table as aligned plain text without an index column.
func (t *Table) String() string {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}

	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}
