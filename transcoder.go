package wastencode

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/wippyai/wast-encode/command"
	"github.com/wippyai/wast-encode/encoder"
)

// Result is the outcome of one record.
type Result struct {
	// Raw is the record as read.
	Raw json.RawMessage

	// Command is nil when the record did not decode as a command object.
	Command *command.Command

	// ModulePath is the module path in effect after the record.
	ModulePath string

	// Line is the encoded runner command line; valid when OK is set.
	Line string
	OK   bool

	// Err is set when the record produced no line for a reason other than
	// being a module command.
	Err error
}

// Unhandled reports whether the record belongs on the diagnostic channel:
// it is not a command of a known kind.
func (r Result) Unhandled() bool {
	return r.Command == nil || !r.Command.Type.Known()
}

// Diagnostic returns the text written to the diagnostic channel for an
// unhandled record: the record as compact JSON.
func (r Result) Diagnostic() string {
	return string(command.Compact(r.Raw))
}

// Transcoder decodes and encodes records one at a time, keeping the module
// path between them.
type Transcoder struct {
	enc   *encoder.Encoder
	stats Stats
}

// NewTranscoder returns a Transcoder resolving module files against dir.
func NewTranscoder(dir string) *Transcoder {
	return &Transcoder{
		enc:   encoder.New(dir),
		stats: newStats(),
	}
}

// Step processes one record.
func (t *Transcoder) Step(raw json.RawMessage) Result {
	t.stats.Records++
	res := Result{Raw: raw}

	cmd, err := command.Decode(raw)
	if err != nil {
		res.Err = err
		res.ModulePath = t.enc.ModulePath()
		t.stats.Unhandled++
		Logger().Info("unhandled record", zap.ByteString("record", command.Compact(raw)), zap.Error(err))
		return res
	}
	res.Command = cmd

	res.Line, res.OK, res.Err = t.enc.Encode(cmd)
	res.ModulePath = t.enc.ModulePath()

	switch {
	case res.OK:
		t.stats.Lines++
		t.stats.Kinds[cmd.Type]++
	case res.Err == nil:
		t.stats.Kinds[cmd.Type]++
	case res.Unhandled():
		t.stats.Unhandled++
		Logger().Info("unhandled command", zap.String("type", string(cmd.Type)), zap.Int("line", cmd.SourceLine()))
	default:
		t.stats.Skipped++
	}
	return res
}

// Stats returns a copy of the counters accumulated so far.
func (t *Transcoder) Stats() Stats {
	return t.stats.clone()
}
