package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"SHT20Monitor.influxDB/internal/logging"
	"SHT20Monitor.influxDB/internal/models"
)

// csvColumns holds the positions of the columns a row needs.
type csvColumns struct {
	time, field, value int
}

func (c csvColumns) complete() bool {
	return c.time >= 0 && c.field >= 0 && c.value >= 0
}

// headerColumns recognizes table header rows by the InfluxDB signature: an
// empty annotation column followed by result and table, or a leading error
// column for error tables. A response may hold several tables, each with its
// own header. Cell values alone never make a header.
func headerColumns(record []string) (csvColumns, bool) {
	cols := csvColumns{time: -1, field: -1, value: -1}
	switch {
	case len(record) > 0 && record[0] == "error":
		return cols, true
	case len(record) >= 3 && record[1] == "result" && record[2] == "table":
	default:
		return cols, false
	}

	for i, name := range record {
		switch name {
		case "_time":
			cols.time = i
		case "_field":
			cols.field = i
		case "_value":
			cols.value = i
		}
	}
	return cols, true
}

// parseCSV converts an InfluxDB CSV query response into rows. Annotation
// rows are skipped; malformed data rows are dropped; only a body the CSV
// reader cannot tokenize is an error.
func parseCSV(body []byte, rows rowBuilder) ([]models.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var (
		out  []models.RawRow
		cols csvColumns
		seen bool
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if c, ok := headerColumns(record); ok {
			cols, seen = c, true
			continue
		}
		if !seen || !cols.complete() {
			logging.Debugf("dropping CSV line without usable header: %v", record)
			continue
		}
		if len(record) <= max(cols.time, cols.field, cols.value) {
			logging.Debugf("dropping short CSV line: %v", record)
			continue
		}

		value, err := strconv.ParseFloat(record[cols.value], 64)
		if err != nil {
			logging.Debugf("dropping CSV line with non-numeric _value %q", record[cols.value])
			continue
		}
		ts, err := time.Parse(time.RFC3339Nano, record[cols.time])
		if err != nil {
			logging.Debugf("dropping CSV line with bad _time %q", record[cols.time])
			continue
		}
		if row, ok := rows.build(ts, record[cols.field], value); ok {
			out = append(out, row)
		}
	}
	return out, nil
}
