// Package stream splits a newline-delimited input into JSON values.
//
// Records are normally one per line, but a record may be broken across
// several lines. Reader reassembles such records with a heuristic: each line
// is appended to whatever is still pending and the result is tried as one
// JSON value. A parse failure means "wait for more input". Input that is
// malformed, rather than incomplete, is indistinguishable from a split
// record; it stays pending for the rest of the stream and suppresses every
// later record. The pending buffer is not bounded.
package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"iter"

	"go.uber.org/zap"

	"github.com/wippyai/wast-encode/errors"
)

// Reader yields the JSON values of a line-oriented stream.
type Reader struct {
	r       *bufio.Reader
	carry   []byte
	value   json.RawMessage
	err     error
	line    int
	carried int
	done    bool
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next advances to the next JSON value. It returns false at end of input or
// on a read error; Err distinguishes the two.
func (r *Reader) Next() bool {
	r.value = nil
	for !r.done {
		line, err := r.readLine()
		if err != nil {
			r.done = true
			if err != io.EOF {
				r.err = errors.ReadFailed(err)
				return false
			}
			if len(line) == 0 {
				return false
			}
		}
		r.line++

		if v, ok := r.feed(line); ok {
			r.value = v
			return true
		}
	}
	return false
}

// feed tries carry+line as one JSON value. Values that are JSON-falsy are
// consumed without being reported.
func (r *Reader) feed(line []byte) (json.RawMessage, bool) {
	candidate := make([]byte, 0, len(r.carry)+len(line))
	candidate = append(candidate, r.carry...)
	candidate = append(candidate, line...)

	if !json.Valid(candidate) {
		r.carry = candidate
		if len(line) > 0 {
			r.carried++
			Logger().Debug("incomplete record, carrying line",
				zap.Int("line", r.line),
				zap.Int("pending", len(r.carry)))
		}
		return nil, false
	}

	r.carry = nil
	if falsy(candidate) {
		Logger().Debug("skipping empty value", zap.Int("line", r.line))
		return nil, false
	}
	return candidate, true
}

// Value returns the most recent value produced by Next. The slice is not
// reused by later calls.
func (r *Reader) Value() json.RawMessage {
	return r.value
}

// Err returns the first read error, or nil at a clean end of input.
func (r *Reader) Err() error {
	return r.err
}

// Line returns the number of input lines read so far.
func (r *Reader) Line() int {
	return r.line
}

// Pending returns the number of bytes waiting for the rest of a record.
func (r *Reader) Pending() int {
	return len(r.carry)
}

// Carried returns how many non-empty lines had to be held back because they
// did not parse on their own.
func (r *Reader) Carried() int {
	return r.carried
}

// All returns an iterator over the remaining values. Check Err after the
// loop ends.
func (r *Reader) All() iter.Seq[json.RawMessage] {
	return func(yield func(json.RawMessage) bool) {
		for r.Next() {
			if !yield(r.Value()) {
				return
			}
		}
	}
}

// readLine returns the next line without its terminator. Lines end at
// "\n", "\r\n" or a lone "\r". After a "\r" the reader waits for one more
// byte to tell the last two apart.
func (r *Reader) readLine() ([]byte, error) {
	var line []byte
	for {
		c, err := r.r.ReadByte()
		if err != nil {
			return line, err
		}
		switch c {
		case '\n':
			return line, nil
		case '\r':
			if next, err := r.r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = r.r.ReadByte()
			}
			return line, nil
		}
		line = append(line, c)
	}
}

// falsy reports whether a valid JSON value is null, false, zero or "".
func falsy(v []byte) bool {
	v = bytes.TrimSpace(v)
	switch v[0] {
	case 'n', 'f':
		return true
	case '"':
		return len(v) == 2
	case '{', '[', 't':
		return false
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return false
	}
	return f == 0
}
