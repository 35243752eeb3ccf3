package encoder

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/wast-encode/command"
	"github.com/wippyai/wast-encode/errors"
)

// NullModule is the file name used for the module path before the first
// module command.
const NullModule = "__NULL__.wasm"

// Encoder encodes commands against the most recently loaded module.
type Encoder struct {
	dir        string
	modulePath string
}

// New returns an Encoder resolving module file names against dir.
func New(dir string) *Encoder {
	return &Encoder{
		dir:        dir,
		modulePath: resolve(dir, NullModule),
	}
}

// Dir returns the base directory.
func (e *Encoder) Dir() string {
	return e.dir
}

// ModulePath returns the path actions are currently encoded against.
func (e *Encoder) ModulePath() string {
	return e.modulePath
}

// Encode dispatches one command. It reports ok when the command produced an
// output line. A module command only updates the module path. Unknown
// command kinds fail with KindUnknownCommand and unknown action tags with
// KindUnknownAction; neither changes the encoder state.
func (e *Encoder) Encode(cmd *command.Command) (line string, ok bool, err error) {
	switch cmd.Type {
	case command.KindAction, command.KindAssertReturn, command.KindAssertTrap:
		if cmd.Action == nil {
			err = errors.New(errors.PhaseEncode, errors.KindFieldMissing).
				Path("action").
				Tag(string(cmd.Type)).
				Detail("command has no action").
				Build()
			Logger().Warn("command not encoded",
				zap.Int("line", cmd.SourceLine()),
				zap.Error(err))
			return "", false, err
		}
	}

	switch cmd.Type {
	case command.KindModule:
		e.modulePath = resolve(e.dir, cmd.Filename)
		Logger().Debug("module loaded",
			zap.Int("line", cmd.SourceLine()),
			zap.String("path", e.modulePath))
		return "", false, nil

	case command.KindAction:
		line, err = e.EncodeAction(cmd.Action)

	case command.KindAssertReturn:
		line, err = e.EncodeAction(cmd.Action)
		line += " --assert-return " + command.Join(cmd.Expected)

	case command.KindAssertTrap:
		line, err = e.EncodeAction(cmd.Action)
		line += " --assert-trap"

	case command.KindAssertInvalid:
		return resolve(e.dir, cmd.Filename) + " --assert-invalid", true, nil

	case command.KindAssertMalformed:
		return resolve(e.dir, cmd.Filename) + " --assert-malformed", true, nil

	default:
		return "", false, errors.UnknownCommand(string(cmd.Type), cmd.Raw)
	}

	if err != nil {
		Logger().Warn("command not encoded",
			zap.Int("line", cmd.SourceLine()),
			zap.String("type", string(cmd.Type)),
			zap.Error(err))
		return "", false, err
	}
	return line, true, nil
}

// EncodeAction encodes an invoke or get action against the current module.
func (e *Encoder) EncodeAction(action *command.Action) (string, error) {
	if action == nil {
		return "", errors.FieldMissing(errors.PhaseEncode, nil, "action")
	}

	var b strings.Builder
	b.WriteString(e.modulePath)

	switch action.Type {
	case command.ActionInvoke:
		b.WriteString(" --invoke ")
		b.WriteString(action.Field)
		if len(action.Args) > 0 {
			b.WriteByte(' ')
			b.WriteString(command.Join(action.Args))
		}
	case command.ActionGet:
		b.WriteString(" --get ")
		b.WriteString(action.Field)
	default:
		return "", errors.UnknownAction(string(action.Type))
	}
	return b.String(), nil
}

// resolve joins by plain concatenation so the runner sees dir exactly as
// given.
func resolve(dir, filename string) string {
	return dir + "/" + filename
}
