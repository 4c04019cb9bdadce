// Package csv implements the delimited-text reader for the raw athlete table.
// The whole input is decoded into memory; rows with the wrong width are
// skipped and counted rather than failing the run.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"athletes/internal/records"
)

// ErrUnsupportedEncoding is returned for an Encoding the parser cannot decode.
var ErrUnsupportedEncoding = errors.New("csv: unsupported encoding")

// Options configures the CSV parser. All fields are optional.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// Encoding names the input character set: "utf-8" (default),
	// "windows-1252" or "iso-8859-1".
	Encoding string

	// HeaderMap maps source header names to canonical keys. Headers without an
	// entry are normalized by NormalizeHeader.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs but not for concurrent use.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// maxLoggedSkips bounds per-row skip logging for badly broken inputs.
const maxLoggedSkips = 400

// Parse reads every record from r. It returns the rows, the number of rows
// skipped because they could not be parsed or had the wrong width, and an
// error only when the input cannot be read at all (including a missing
// header).
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	dec, err := decoderFor(p.opt.Encoding)
	if err != nil {
		return nil, 0, err
	}
	r = transform.NewReader(r, dec)

	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// Width is enforced below so a single bad row is skipped, not fatal.
	cr.FieldsPerRecord = -1

	var headers []string
	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = normalizeHeaders(h, p.opt.HeaderMap)
	}

	var out []records.Record
	var skipped int
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, skipped, fmt.Errorf("read csv: %w", err)
			}
			if skipped < maxLoggedSkips {
				log.Printf("csv: skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if len(headers) > 0 && len(row) != len(headers) {
			if skipped < maxLoggedSkips {
				log.Printf("csv: skipping row %d: incorrect number of fields (expected %d, got %d)", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[keyFor(i, headers)] = emptyToNil(val)
		}
		out = append(out, rec)
	}

	return out, skipped, nil
}

// decoderFor maps an encoding name to a decoder. UTF-8 input has its BOM
// removed.
func decoderFor(name string) (transform.Transformer, error) {
	var enc encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	case "iso-8859-1", "latin1":
		enc = charmap.ISO8859_1
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	return enc.NewDecoder(), nil
}

// keyFor returns the column key for index idx, using headers when available,
// otherwise synthesizing a "col_N" name.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// emptyToNil converts an empty string to nil; all other values are returned as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func normalizeHeaders(h []string, headerMap map[string]string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if m, ok := headerMap[c]; ok {
			res[i] = m
			continue
		}
		res[i] = NormalizeHeader(c)
	}
	return res
}
