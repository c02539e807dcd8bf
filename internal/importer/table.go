// Package importer reads spreadsheet files into project records, writes the
// matching templates, and exports the workspace as CSV or JSON.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than .csv, .xlsx and .xls.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptySheet is returned when a file has no header row.
	ErrEmptySheet = errors.New("worksheet is empty")
	// ErrMissingColumns is returned when required columns are absent.
	ErrMissingColumns = errors.New("missing required columns")
)

// maxXLSRows caps how many rows are read from legacy workbooks.
const maxXLSRows = 100000

// Table is the first worksheet of a file: a header row and the data rows
// below it. Cells are trimmed; rows may be shorter than the header.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1. Matching ignores
// case, surrounding space, and the difference between spaces and underscores.
func (t Table) Index(name string) int {
	want := normalizeHeader(name)
	for i, h := range t.Headers {
		if normalizeHeader(h) == want {
			return i
		}
	}
	return -1
}

// Missing returns the names from cols that have no column in t.
func (t Table) Missing(cols ...string) []string {
	var out []string
	for _, c := range cols {
		if t.Index(c) < 0 {
			out = append(out, c)
		}
	}
	return out
}

// ReadTableFile opens path and reads its first worksheet.
func ReadTableFile(path string) (Table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return ReadTable(f, filepath.Base(path))
}

// ReadTable reads the first worksheet of r. The format is chosen from the
// extension of filename.
func ReadTable(r io.Reader, filename string) (Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r)
	default:
		return Table{}, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	if err != nil {
		return Table{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("%s: %w", filename, ErrEmptySheet)
	}

	t := Table{Headers: trimRow(rows[0])}
	for _, row := range rows[1:] {
		row = trimRow(row)
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptySheet
	}
	// Raw values keep numbers unformatted and dates as serials.
	return file.GetRows(sheet, excelize.Options{RawCellValue: true})
}

func readXLS(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, ErrEmptySheet
	}
	if wb.NumSheets() > 1 {
		return nil, errors.New("multiple worksheets found; save the data sheet on its own")
	}
	return wb.ReadAllCells(maxXLSRows), nil
}

func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

var amountCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// parseAmount accepts plain numbers as well as "$1,250.00" style values.
// Words that strconv reads as floats, such as "NaN" or "Inf", are rejected.
func parseAmount(s string) (float64, error) {
	s = amountCleaner.Replace(s)
	if !isNumeric(s) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

// isNumeric reports whether s is a finite decimal number.
func isNumeric(s string) bool {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return !strings.ContainsRune("0123456789.+-eE", r)
	}) {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"1-2-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// parseDate accepts the common text layouts and Excel date serials.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		// Plain years and small counts are not dates.
		if serial >= 20000 && serial <= 80000 {
			return excelize.ExcelDateToTime(serial, false)
		}
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
