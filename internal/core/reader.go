package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Table is a decoded source file: one header row and zero or more data rows.
// Rows may be ragged; consumers index through cell() which tolerates that.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AllowedFile reports whether the filename has a supported extension.
// Checked at submission time, before a job is created.
func AllowedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// ReadTable decodes a source file by extension. CSV input is decoded as
// UTF-8, falling back to Latin-1 when the bytes are not valid UTF-8.
func ReadTable(filename string, data []byte) (Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(data)
	case ".xlsx":
		return readXLSX(data)
	}
	return Table{}, ErrUnsupportedFormat
}

func readCSV(data []byte) (Table, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return Table{}, fmt.Errorf("decode latin-1: %w", err)
		}
		data = decoded
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	return splitHeader(records)
}

func readXLSX(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return splitHeader(rows)
}

func splitHeader(records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, fmt.Errorf("file has no header row")
	}
	return Table{Headers: records[0], Rows: records[1:]}, nil
}
