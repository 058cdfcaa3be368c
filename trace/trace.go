// Package trace provides conditional-branch traces and the global history
// register a host keeps while replaying them.
package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Record is one resolved conditional branch.
type Record struct {
	PC    uint64
	Taken bool
}

// Source yields branch records in program order. Next returns io.EOF when
// the trace is exhausted.
type Source interface {
	Next() (Record, error)
}

// Reader parses a text trace. Each non-blank line holds a program counter
// and an outcome separated by whitespace or a comma:
//
//	0x400a10 T
//	4196880,0
//
// The pc is hex with a 0x prefix or decimal. The outcome is 1/0, T/N (or NT)
// or taken/not-taken, case-insensitive. Text after '#' is ignored.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next record.
func (r *Reader) Next() (Record, error) {
	for r.scanner.Scan() {
		r.line++

		text := r.scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return Record{}, errors.Errorf(
				"line %d: expected <pc> <outcome>, got %q", r.line, text)
		}

		pc, err := ParsePC(fields[0])
		if err != nil {
			return Record{}, errors.Wrapf(err, "line %d", r.line)
		}
		taken, err := ParseOutcome(fields[1])
		if err != nil {
			return Record{}, errors.Wrapf(err, "line %d", r.line)
		}

		return Record{PC: pc, Taken: taken}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, errors.Wrap(err, "failed to read trace")
	}

	return Record{}, io.EOF
}

// ParsePC parses a hex (0x-prefixed) or decimal program counter.
func ParsePC(s string) (uint64, error) {
	digits, base := s, 10
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		digits, base = s[2:], 16
	}

	pc, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid pc %q", s)
	}
	return pc, nil
}

// ParseOutcome parses a branch outcome.
func ParseOutcome(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "t", "taken":
		return true, nil
	case "0", "n", "nt", "not-taken":
		return false, nil
	}
	return false, errors.Errorf("invalid outcome %q", s)
}

// SliceSource replays records held in memory.
type SliceSource struct {
	records []Record
	pos     int
}

// NewSliceSource creates a Source over records.
func NewSliceSource(records []Record) *SliceSource {
	return &SliceSource{records: records}
}

// Next returns the next record.
func (s *SliceSource) Next() (Record, error) {
	if s.pos >= len(s.records) {
		return Record{}, io.EOF
	}
	r := s.records[s.pos]
	s.pos++
	return r, nil
}

// ReadAll drains a Source.
func ReadAll(src Source) ([]Record, error) {
	var records []Record
	for {
		r, err := src.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, r)
	}
}

// WriteTo writes records in the text format Reader accepts.
func WriteTo(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		outcome := "N"
		if r.Taken {
			outcome = "T"
		}
		if _, err := bw.WriteString("0x" + strconv.FormatUint(r.PC, 16) + " " + outcome + "\n"); err != nil {
			return errors.Wrap(err, "failed to write trace")
		}
	}
	return errors.Wrap(bw.Flush(), "failed to write trace")
}
