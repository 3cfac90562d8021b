package isv

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Record is one line of the source dictionary.
type Record struct {
	// Line is the 1-based line number in the source file.
	Line int
	// ID is the entry id, as text whatever its JSON type.
	ID       string
	Headword string
	Addition string
	// POS is the formatted part-of-speech descriptor of the metadata array;
	// the structural tags are parsed from it.
	POS string
	// Extra holds the metadata array elements after POS.
	Extra []json.RawMessage
	// Table is the inflection table: a JSON string or object.
	Table json.RawMessage
	// FormattedPOS is the third column.
	FormattedPOS string
}

// Tags returns the structural tag set of the record.
func (r Record) Tags() Tags {
	return ParseTagPath(r.POS)
}

// IsMultiword reports a headword of several words that is not a list of
// variants and that comes with a declension table.
func (r Record) IsMultiword() bool {
	return strings.Contains(r.Headword, " ") && !strings.Contains(r.Headword, ",") && !isPlainTable(r.Table)
}

// IsReflexive reports a two-word headword one of whose words is "sę".
func (r Record) IsReflexive() bool {
	words := strings.Fields(r.Headword)
	if len(words) != 2 {
		return false
	}
	return words[0] == "sę" || words[1] == "sę"
}

// metadata fields before the extra ones.
const metadataFields = 4

// ParseRecord splits a source line into its three tab-separated columns and
// decodes the metadata array.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	cols := strings.Split(line, "\t")
	if len(cols) != 3 {
		return Record{}, fmt.Errorf("%w: %d tab-separated fields, want 3", ErrMalformedRecord, len(cols))
	}

	var meta []json.RawMessage
	if err := json.Unmarshal([]byte(cols[0]), &meta); err != nil {
		return Record{}, fmt.Errorf("%w: metadata: %v", ErrMalformedRecord, err)
	}
	if len(meta) < metadataFields {
		return Record{}, fmt.Errorf("%w: metadata has %d elements, want at least %d",
			ErrMalformedRecord, len(meta), metadataFields)
	}

	rec := Record{
		ID:           rawText(meta[0]),
		Headword:     rawText(meta[1]),
		Addition:     rawText(meta[2]),
		POS:          rawText(meta[3]),
		Extra:        meta[metadataFields:],
		Table:        json.RawMessage(cols[1]),
		FormattedPOS: strings.TrimSpace(cols[2]),
	}
	if !json.Valid(rec.Table) {
		return Record{}, fmt.Errorf("%w: inflection table of %q is not JSON", ErrMalformedRecord, rec.Headword)
	}
	return rec, nil
}

// rawText renders a JSON scalar as text: strings are unquoted, null is
// empty, anything else is kept verbatim.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// maxLineSize bounds a single source line; verb tables are long.
const maxLineSize = 16 << 20

// Records reads the source dictionary from r, skipping the header line and
// blank lines. The first parse failure ends the sequence.
func Records(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
		n := 0
		for sc.Scan() {
			n++
			if n == 1 {
				continue
			}
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			rec, err := ParseRecord(line)
			if err != nil {
				yield(Record{}, fmt.Errorf("line %d: %w", n, err))
				return
			}
			rec.Line = n
			if !yield(rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Record{}, fmt.Errorf("read source: %w", err))
		}
	}
}

// OpenSource opens a source dictionary, decompressing .gz and .bz2 files.
func OpenSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip source %s: %w", path, err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".bz2":
		return &stackedCloser{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

// stackedCloser closes a decompressor and its file in order.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
