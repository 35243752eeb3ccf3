package main

import (
	"strings"
	"testing"

	wastencode "github.com/wippyai/wast-encode"
	"github.com/wippyai/wast-encode/command"
)

func TestRenderSummary_Plain(t *testing.T) {
	stats := wastencode.Stats{
		Kinds: map[command.Kind]int{
			command.KindModule:       2,
			command.KindAssertReturn: 5,
		},
		Records:   9,
		Lines:     5,
		Unhandled: 2,
	}

	got := renderSummary(stats, false)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	if lines[0] != "wast-encode: 9 records" {
		t.Errorf("title = %q", lines[0])
	}
	if len(lines) != 1+len(command.Kinds)+5 {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}

	want := map[string]string{
		"module":        "2",
		"assert_return": "5",
		"assert_trap":   "0",
		"unhandled":     "2",
		"lines written": "5",
	}
	for _, l := range lines[1:] {
		fields := strings.Fields(l)
		label := strings.Join(fields[:len(fields)-1], " ")
		if w, ok := want[label]; ok && fields[len(fields)-1] != w {
			t.Errorf("%s = %s, want %s", label, fields[len(fields)-1], w)
		}
	}
}

func TestRenderSummary_Styled(t *testing.T) {
	got := renderSummary(wastencode.Stats{Records: 1}, true)
	for _, s := range []string{"wast-encode: 1 records", "module", "unhandled", "lines written"} {
		if !strings.Contains(got, s) {
			t.Errorf("styled summary missing %q:\n%s", s, got)
		}
	}
}
