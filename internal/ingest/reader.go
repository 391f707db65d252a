package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// csvEncodings are tried in order until one decodes without errors,
// matching the encodings historically accepted for uploaded files.
var csvEncodings = []struct {
	name    string
	decoder *encoding.Decoder
}{
	{"utf-8", nil},
	{"latin-1", charmap.ISO8859_1.NewDecoder()},
	{"iso-8859-1", charmap.ISO8859_1.NewDecoder()},
	{"windows-1252", charmap.Windows1252.NewDecoder()},
	{"cp1252", charmap.Windows1252.NewDecoder()},
}

// ReadFile parses an uploaded rejection file by extension. Only .csv and
// .xlsx are accepted.
func ReadFile(fileName string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(fileName))
	}
}

// ReadCSV parses CSV content, trying legacy charsets when the bytes are not
// valid UTF-8.
func ReadCSV(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv content: %w", err)
	}

	var lastErr error
	for _, enc := range csvEncodings {
		decoded, decodeErr := decode(raw, enc.decoder)
		if decodeErr != nil {
			lastErr = decodeErr
			continue
		}
		table, parseErr := parseCSV(decoded)
		if parseErr != nil {
			lastErr = parseErr
			continue
		}
		return table, nil
	}

	names := make([]string, len(csvEncodings))
	for i, enc := range csvEncodings {
		names[i] = enc.name
	}
	return nil, fmt.Errorf("could not read csv with any of the encodings %s: %w",
		strings.Join(names, ", "), lastErr)
}

// ReadXLSX parses the first sheet of an XLSX workbook.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx contains no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx sheet %q is empty", sheets[0])
	}

	table := &Table{Columns: trimHeaders(rows[0])}
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func decode(raw []byte, decoder *encoding.Decoder) ([]byte, error) {
	if decoder == nil {
		trimmed := bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
		if !utf8.Valid(trimmed) {
			return nil, fmt.Errorf("content is not valid utf-8")
		}
		return trimmed, nil
	}
	return decoder.Bytes(raw)
}

func parseCSV(content []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}

	table := &Table{Columns: trimHeaders(records[0])}
	table.Rows = records[1:]
	return table, nil
}

func trimHeaders(headers []string) []string {
	trimmed := make([]string, len(headers))
	for i, h := range headers {
		trimmed[i] = strings.TrimSpace(h)
	}
	return trimmed
}
