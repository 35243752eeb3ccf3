package command

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/wippyai/wast-encode/errors"
)

// Kind is the "type" tag of a command record.
type Kind string

const (
	KindModule          Kind = "module"
	KindAction          Kind = "action"
	KindAssertReturn    Kind = "assert_return"
	KindAssertTrap      Kind = "assert_trap"
	KindAssertInvalid   Kind = "assert_invalid"
	KindAssertMalformed Kind = "assert_malformed"
)

// Kinds lists the known command kinds in display order.
var Kinds = []Kind{
	KindModule,
	KindAction,
	KindAssertReturn,
	KindAssertTrap,
	KindAssertInvalid,
	KindAssertMalformed,
}

// Known reports whether k is one of the kinds the encoder handles.
func (k Kind) Known() bool {
	switch k {
	case KindModule, KindAction, KindAssertReturn, KindAssertTrap,
		KindAssertInvalid, KindAssertMalformed:
		return true
	}
	return false
}

// ActionKind is the "type" tag of an action record.
type ActionKind string

const (
	ActionInvoke ActionKind = "invoke"
	ActionGet    ActionKind = "get"
)

// Command is one test-suite step.
type Command struct {
	Type Kind `json:"type"`

	// Line is the wast source line. It is only used for logging, so any
	// JSON value is accepted; see SourceLine.
	Line json.RawMessage `json:"line,omitempty"`

	// Set when Type is module, assert_invalid or assert_malformed.
	Filename string `json:"filename,omitempty"`

	// Set when Type is action, assert_return or assert_trap.
	Action *Action `json:"action,omitempty"`

	// Set when Type is assert_return.
	Expected Values `json:"expected,omitempty"`

	// Raw is the record exactly as it was read.
	Raw json.RawMessage `json:"-"`
}

// Action is the invoke or get operation of a command.
type Action struct {
	Type  ActionKind `json:"type"`
	Field string     `json:"field"`
	Args  Values     `json:"args"`
}

// Decode parses one JSON record into a Command. Records that are not JSON
// objects, or whose encoded attributes have the wrong JSON type, fail with a
// decode error carrying the raw record. Attributes the encoder never reads
// are not checked.
func Decode(raw []byte) (*Command, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		err := errors.InvalidData(errors.PhaseDecode, nil, "record is not a JSON object")
		err.Value = raw
		return nil, err
	}

	var cmd Command
	if err := json.Unmarshal(trimmed, &cmd); err != nil {
		b := errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Value(raw).
			Cause(err).
			Detail("decode command")
		var te *json.UnmarshalTypeError
		if stderrors.As(err, &te) && te.Field != "" {
			b.Path(strings.Split(te.Field, ".")...)
		}
		return nil, b.Build()
	}
	cmd.Raw = raw
	return &cmd, nil
}

// SourceLine returns the wast source line, or 0 when the record has none or
// it is not an integer.
func (c *Command) SourceLine() int {
	var n int
	if err := json.Unmarshal(c.Line, &n); err != nil {
		return 0
	}
	return n
}

// Compact returns raw with insignificant whitespace removed. Input that is
// not valid JSON is returned unchanged.
func Compact(raw []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}

func (c *Command) String() string {
	msg := fmt.Sprintf("line: %d, type: %s", c.SourceLine(), c.Type)
	switch c.Type {
	case KindModule, KindAssertInvalid, KindAssertMalformed:
		msg += fmt.Sprintf(", filename: %s", c.Filename)
	case KindAction, KindAssertReturn, KindAssertTrap:
		if c.Action != nil {
			msg += fmt.Sprintf(", action type: %s, field: %s, args: %v", c.Action.Type, c.Action.Field, c.Action.Args)
		}
		if c.Type == KindAssertReturn {
			msg += fmt.Sprintf(", expected: %v", c.Expected)
		}
	}
	return "{" + msg + "}"
}
