// Package loader reads metric histories from CSV and JSON files into the
// in-memory form the analytics engine consumes.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/errors"
)

// Series is one entity's metric history, ordered oldest first. Timestamps
// and Categories are optional and, when present, are the same length as
// Values.
type Series struct {
	EntityID   string      `json:"entity_id,omitempty"`
	Timestamps []time.Time `json:"timestamps,omitempty"`
	Values     []float64   `json:"values"`
	Categories []string    `json:"categories,omitempty"`
}

// LoadCSV reads a series from a CSV file. Accepted row shapes are
// value-only, timestamp,value and timestamp,value,category. A header row is
// skipped when the first field does not parse as a value or timestamp.
func LoadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIO, errors.CodeReadFailed, "cannot open csv file")
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses CSV series data from a reader.
func ReadCSV(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	series := &Series{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrorTypeIO, errors.CodeInvalidInput, "malformed csv row")
		}
		row++
		if len(record) == 0 {
			continue
		}

		if err := appendRecord(series, record); err != nil {
			if row == 1 {
				// Header row.
				continue
			}
			return nil, err
		}
	}

	if len(series.Values) == 0 {
		return nil, errors.NewValidationError(errors.CodeInsufficientData, "csv contains no data rows")
	}
	if len(series.Timestamps) > 0 && len(series.Timestamps) != len(series.Values) {
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "rows mix value-only and timestamped shapes")
	}
	if len(series.Categories) > 0 && len(series.Categories) != len(series.Values) {
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "rows mix categorized and uncategorized shapes")
	}
	return series, nil
}

func appendRecord(series *Series, record []string) error {
	switch len(record) {
	case 1:
		value, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return errors.NewValidationError(errors.CodeInvalidInput, "value field is not numeric")
		}
		series.Values = append(series.Values, value)
		return nil
	default:
		ts, err := parseTimestamp(strings.TrimSpace(record[0]))
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return errors.NewValidationError(errors.CodeInvalidInput, "value field is not numeric")
		}
		series.Timestamps = append(series.Timestamps, ts)
		series.Values = append(series.Values, value)
		if len(record) > 2 {
			series.Categories = append(series.Categories, strings.TrimSpace(record[2]))
		}
		return nil
	}
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.NewValidationError(errors.CodeInvalidInput, "timestamp field is not RFC3339 or yyyy-mm-dd")
}

// LoadJSON reads a series from a JSON file shaped like the Series struct.
func LoadJSON(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIO, errors.CodeReadFailed, "cannot open json file")
	}
	defer f.Close()

	return ReadJSON(f)
}

// ReadJSON parses series data from a reader.
func ReadJSON(r io.Reader) (*Series, error) {
	var series Series
	if err := json.NewDecoder(r).Decode(&series); err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIO, errors.CodeInvalidInput, "malformed json series")
	}
	if len(series.Values) == 0 {
		return nil, errors.NewValidationError(errors.CodeInsufficientData, "json series contains no values")
	}
	if len(series.Timestamps) > 0 && len(series.Timestamps) != len(series.Values) {
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "timestamps and values differ in length")
	}
	if len(series.Categories) > 0 && len(series.Categories) != len(series.Values) {
		return nil, errors.NewValidationError(errors.CodeInvalidInput, "categories and values differ in length")
	}
	return &series, nil
}
