package command

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is an argument or expected result. Only the "value" attribute is
// used for output; "type" is kept for logging.
type Value struct {
	Type  string
	Value json.RawMessage
}

// UnmarshalJSON accepts any JSON value. Non-object records leave Value empty,
// so they render as an empty token rather than failing the whole command.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}
	if t, ok := fields["type"]; ok {
		// a non-string type is ignored
		_ = json.Unmarshal(t, &v.Type)
	}
	if raw, ok := fields["value"]; ok {
		v.Value = raw
	}
	return nil
}

// Values is an ordered list of value records. A JSON value that is not an
// array decodes as an empty list.
type Values []Value

// UnmarshalJSON accepts any JSON value.
func (vs *Values) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*vs = nil
		return nil
	}
	var list []Value
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*vs = list
	return nil
}

// Text returns the textual form of the value as it appears on the runner's
// command line.
//
// Strings render without quotes, numbers the way JavaScript prints them
// (1.50 as 1.5, 1e2 as 100), booleans as true or false, arrays (v128 lanes) as their element texts joined by commas, and a
// missing or null value as the empty string.
func (v Value) Text() string {
	return text(v.Value)
}

func (v Value) String() string {
	return "{type: " + v.Type + ", value: " + v.Text() + "}"
}

func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case 'n':
		return ""
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return string(raw)
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = text(e)
		}
		return strings.Join(parts, ",")
	case '{':
		return string(Compact(raw))
	case 't', 'f':
		return string(raw)
	default:
		return number(string(raw))
	}
}

// number formats a JSON number literal like JavaScript's String(Number(s)):
// shortest round-trip digits, plain notation for magnitudes in [1e-6, 1e21)
// and exponent notation without zero padding outside it.
func number(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case err != nil:
		return s
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		out := strconv.FormatFloat(f, 'e', -1, 64)
		out = strings.Replace(out, "e-0", "e-", 1)
		return strings.Replace(out, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Join returns the texts of values separated by single spaces.
func Join(values Values) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Text()
	}
	return strings.Join(parts, " ")
}
