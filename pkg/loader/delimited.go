package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// loadDelimited reads a CSV-like file. Records with the wrong number of
// fields, or that fail to parse, are dropped.
func loadDelimited(path string, comma rune) ([]Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readDelimited(f, comma)
}

func readDelimited(r io.Reader, comma rune) ([]Sheet, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = comma
	rdr.FieldsPerRecord = 0

	header, err := rdr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errNoSheets
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	sheet := Sheet{Headers: headerRow(header)}

	for {
		rec, err := rdr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		sheet.Rows = append(sheet.Rows, rec)
	}
	return []Sheet{sheet}, nil
}
