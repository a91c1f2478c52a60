package forecast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aifirst/llmdemos/pkg/corpus"
	"github.com/aifirst/llmdemos/pkg/models"
)

const priceColumnCount = 5

var ErrMalformedSeries = errors.New(
	"please ensure all data is properly formatted as comma-separated numerical values",
)

// Dataset is the historical price data a forecast is made from. Table keeps
// the price columns as entered, Series holds them parsed for charting and
// Source is the whole table the columns were taken from.
type Dataset struct {
	Table  *corpus.Table
	Series models.PriceSeries
	Source *corpus.Table
}

// FromTable selects the close, open, high, low and volume columns, in that
// order, from an uploaded table.
func FromTable(table *corpus.Table, columns []string) (*Dataset, error) {
	if len(columns) != priceColumnCount {
		return nil, models.NewValidationError(
			fmt.Sprintf("expected %d price columns, got %d", priceColumnCount, len(columns)),
			nil,
		)
	}

	selected, err := table.Select(columns...)
	if err != nil {
		return nil, err
	}
	if selected.Len() == 0 {
		return nil, models.NewValidationError("uploaded data contains no rows", nil)
	}

	series := models.PriceSeries{Columns: selected.Header, Rows: make([]models.PriceRow, selected.Len())}
	for r, row := range selected.Rows {
		values := make([]float64, priceColumnCount)
		for i, cell := range row {
			v, err := parseNumber(cell)
			if err != nil {
				return nil, models.NewValidationError(
					fmt.Sprintf("row %d column %q is not numeric", r+1, selected.Header[i]),
					err,
				)
			}
			values[i] = v
		}
		series.Rows[r] = priceRow(values)
	}

	return &Dataset{Table: selected, Series: series, Source: table}, nil
}

// ManualEntry holds comma-separated values typed in for each price column.
type ManualEntry struct {
	Close  string `json:"close" validate:"required"`
	Open   string `json:"open" validate:"required"`
	High   string `json:"high" validate:"required"`
	Low    string `json:"low" validate:"required"`
	Volume string `json:"volume" validate:"required"`
}

// FromManual parses manually entered series. Every field is required and all
// series must have the same length.
func FromManual(entry ManualEntry) (*Dataset, error) {
	fields := []string{entry.Close, entry.Open, entry.High, entry.Low, entry.Volume}

	columns := make([][]float64, priceColumnCount)
	for i, f := range fields {
		if strings.TrimSpace(f) == "" {
			return nil, models.NewValidationError("please fill out all fields to proceed", nil)
		}
		values, err := ParseSeries(f)
		if err != nil {
			return nil, err
		}
		if i > 0 && len(values) != len(columns[0]) {
			return nil, models.NewValidationError(
				"all price series must have the same number of values",
				nil,
			)
		}
		columns[i] = values
	}

	n := len(columns[0])
	series := models.PriceSeries{Columns: models.DefaultPriceColumns, Rows: make([]models.PriceRow, n)}
	table := &corpus.Table{Header: models.DefaultPriceColumns, Rows: make([][]string, n)}
	for r := 0; r < n; r++ {
		values := make([]float64, priceColumnCount)
		cells := make([]string, priceColumnCount)
		for i := range columns {
			values[i] = columns[i][r]
			cells[i] = strconv.FormatFloat(columns[i][r], 'f', -1, 64)
		}
		series.Rows[r] = priceRow(values)
		table.Rows[r] = cells
	}

	return &Dataset{Table: table, Series: series, Source: table}, nil
}

// ParseSeries parses a comma-separated list of numbers typed by a user.
func ParseSeries(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseFinite(p)
		if err != nil {
			return nil, models.NewValidationError(ErrMalformedSeries.Error(), err)
		}
		out[i] = v
	}
	return out, nil
}

// DataString serialises the dataset for the forecast prompt: the values of
// each row joined by spaces, rows joined by ", ".
func (d *Dataset) DataString() string {
	rows := make([]string, len(d.Table.Rows))
	for i, row := range d.Table.Rows {
		rows[i] = strings.Join(row, " ")
	}
	return strings.Join(rows, ", ")
}

// Historical renders the full source table, every uploaded column
// included, as plain text.
func (d *Dataset) Historical() string {
	if d.Source != nil {
		return d.Source.String()
	}
	return d.Table.String()
}

// parseNumber accepts plain numbers as well as values formatted like
// "$1,234.50".
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return parseFinite(s)
}

// parseFinite parses a number and rejects NaN and infinities, which
// strconv accepts but JSON and the chart cannot carry.
func parseFinite(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func priceRow(v []float64) models.PriceRow {
	return models.PriceRow{Close: v[0], Open: v[1], High: v[2], Low: v[3], Volume: v[4]}
}
