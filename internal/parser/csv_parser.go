package parser

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
)

// LookupEncoding resolves a character set name. "cp949" and its aliases
// map to Korean EUC-KR (x/text implements the CP949 superset under that
// name); everything else goes through the WHATWG label index.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "cp949", "ms949", "windows-949", "uhc":
		return korean.EUCKR, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrInvalidParameter, "unknown encoding %q", name)
	}
	return enc, nil
}

// ReadRawTable opens path and parses it with ParseRawTable.
func ReadRawTable(path string, opts Options) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessagef(errs.ErrFileAccess, "failed to open CSV file: %v", err)
	}
	defer file.Close()

	table, err := ParseRawTable(file, opts)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s", path)
	}
	table.Source = path
	return table, nil
}

// ParseRawTable decodes r, drops the preamble lines, takes the next record
// as the header and keeps every following record as a data row.
// Cells are kept as text; numeric interpretation belongs to the extractor.
func ParseRawTable(r io.Reader, opts Options) (*RawTable, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if opts.PreambleLines < 0 {
		return nil, errors.Wrapf(errs.ErrInvalidParameter, "preamble lines must not be negative, got %d", opts.PreambleLines)
	}

	reader := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // the units row is often shorter than the samples
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	table := &RawTable{}
	for record := 0; ; record++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, errors.Wrapf(errs.ErrMalformedInput, "line %d: %v", perr.Line, perr.Err)
			}
			return nil, errors.WithMessagef(errs.ErrFileAccess, "failed to read CSV data: %v", err)
		}
		switch {
		case record < opts.PreambleLines:
			continue
		case record == opts.PreambleLines:
			table.Header = row
		default:
			line, _ := reader.FieldPos(0)
			table.Rows = append(table.Rows, row)
			table.Lines = append(table.Lines, line)
		}
	}

	if table.Header == nil {
		return nil, errors.Wrap(errs.ErrMalformedInput, "no header line found")
	}
	return table, nil
}
