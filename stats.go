package wastencode

import (
	"github.com/wippyai/wast-encode/command"
)

// Stats counts what a run did.
type Stats struct {
	// Kinds counts handled commands per kind, including module commands.
	Kinds map[command.Kind]int

	// Records is the number of JSON values read.
	Records int
	// Lines is the number of lines written to the output.
	Lines int
	// Unhandled counts records echoed to the diagnostic channel.
	Unhandled int
	// Skipped counts known commands that could not be encoded, such as
	// an action with an unknown tag.
	Skipped int
	// Carried is the number of input lines that did not parse on their own.
	Carried int
	// Pending is the size of an unfinished record left at end of input.
	Pending int
}

func newStats() Stats {
	return Stats{Kinds: make(map[command.Kind]int, len(command.Kinds))}
}

func (s Stats) clone() Stats {
	c := s
	c.Kinds = make(map[command.Kind]int, len(s.Kinds))
	for k, v := range s.Kinds {
		c.Kinds[k] = v
	}
	return c
}
