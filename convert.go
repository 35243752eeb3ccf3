package wastencode

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/wast-encode/errors"
	"github.com/wippyai/wast-encode/stream"
)

// Convert reads records from in and writes one runner command line per
// producing record to out, in input order. Records of unknown kind are
// written to diag as compact JSON, one per line. Module file names are
// resolved against dir.
//
// Convert returns at end of input. Read and write failures end the run
// with an error; the returned Stats cover the records processed until then.
func Convert(ctx context.Context, dir string, in io.Reader, out, diag io.Writer) (Stats, error) {
	r := stream.NewReader(in)
	t := NewTranscoder(dir)

	finish := func(err error) (Stats, error) {
		stats := t.Stats()
		stats.Carried = r.Carried()
		stats.Pending = r.Pending()
		if err != nil {
			return stats, err
		}
		Logger().Info("conversion finished",
			zap.Int("records", stats.Records),
			zap.Int("lines", stats.Lines),
			zap.Int("unhandled", stats.Unhandled),
			zap.Int("pending", stats.Pending))
		return stats, nil
	}

	for raw := range r.All() {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		res := t.Step(raw)
		switch {
		case res.OK:
			if _, err := io.WriteString(out, res.Line+"\n"); err != nil {
				return finish(errors.WriteFailed("output", err))
			}
		case res.Unhandled():
			if _, err := io.WriteString(diag, res.Diagnostic()+"\n"); err != nil {
				return finish(errors.WriteFailed("diagnostics", err))
			}
		}
	}
	return finish(r.Err())
}
