package encoder

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/wast-encode/command"
	"github.com/wippyai/wast-encode/errors"
)

func decode(t *testing.T, raw string) *command.Command {
	t.Helper()
	cmd, err := command.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode(%s): %v", raw, err)
	}
	return cmd
}

func TestNew_SentinelPath(t *testing.T) {
	e := New("out")
	if got := e.ModulePath(); got != "out/__NULL__.wasm" {
		t.Errorf("ModulePath = %q, want out/__NULL__.wasm", got)
	}
	if e.Dir() != "out" {
		t.Errorf("Dir = %q", e.Dir())
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   string
		ok     bool
	}{
		{
			name:   "invoke with args",
			record: `{"type":"action","action":{"type":"invoke","field":"add","args":[{"value":"1"},{"value":"2"}]}}`,
			want:   "out/__NULL__.wasm --invoke add 1 2",
			ok:     true,
		},
		{
			name:   "invoke without args has no trailing space",
			record: `{"type":"action","action":{"type":"invoke","field":"nop","args":[]}}`,
			want:   "out/__NULL__.wasm --invoke nop",
			ok:     true,
		},
		{
			name:   "invoke with missing args",
			record: `{"type":"action","action":{"type":"invoke","field":"nop"}}`,
			want:   "out/__NULL__.wasm --invoke nop",
			ok:     true,
		},
		{
			name:   "get",
			record: `{"type":"action","action":{"type":"get","field":"g"}}`,
			want:   "out/__NULL__.wasm --get g",
			ok:     true,
		},
		{
			name:   "assert_return keeps expected order",
			record: `{"type":"assert_return","action":{"type":"invoke","field":"swap","args":[{"value":"1"},{"value":"2"}]},"expected":[{"value":"2"},{"value":"1"}]}`,
			want:   "out/__NULL__.wasm --invoke swap 1 2 --assert-return 2 1",
			ok:     true,
		},
		{
			name:   "assert_return on get",
			record: `{"type":"assert_return","action":{"type":"get","field":"g"},"expected":[{"type":"i32","value":"7"}]}`,
			want:   "out/__NULL__.wasm --get g --assert-return 7",
			ok:     true,
		},
		{
			name:   "assert_return with no results",
			record: `{"type":"assert_return","action":{"type":"invoke","field":"f","args":[]},"expected":[]}`,
			want:   "out/__NULL__.wasm --invoke f --assert-return ",
			ok:     true,
		},
		{
			name:   "assert_trap",
			record: `{"type":"assert_trap","action":{"type":"invoke","field":"div","args":[{"value":"1"},{"value":"0"}]},"text":"integer divide by zero","expected":[{"type":"i32"}]}`,
			want:   "out/__NULL__.wasm --invoke div 1 0 --assert-trap",
			ok:     true,
		},
		{
			name:   "assert_invalid",
			record: `{"type":"assert_invalid","filename":"bad.wasm","text":"type mismatch"}`,
			want:   "out/bad.wasm --assert-invalid",
			ok:     true,
		},
		{
			name:   "assert_malformed",
			record: `{"type":"assert_malformed","filename":"bad.0.wat","module_type":"text"}`,
			want:   "out/bad.0.wat --assert-malformed",
			ok:     true,
		},
		{
			name:   "module",
			record: `{"type":"module","filename":"a.wasm"}`,
			want:   "",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New("out")
			got, ok, err := e.Encode(decode(t, tt.record))
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if ok != tt.ok {
				t.Errorf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_ModuleSequence(t *testing.T) {
	e := New("out")
	invoke := `{"type":"action","action":{"type":"invoke","field":"add","args":[{"value":"1"},{"value":"2"}]}}`

	steps := []struct {
		record string
		want   string
	}{
		{invoke, "out/__NULL__.wasm --invoke add 1 2"},
		{`{"type":"module","filename":"a.wasm"}`, ""},
		{invoke, "out/a.wasm --invoke add 1 2"},
		{`{"type":"assert_invalid","filename":"bad.wasm"}`, "out/bad.wasm --assert-invalid"},
		{`{"type":"assert_trap","action":{"type":"invoke","field":"t","args":[]}}`, "out/a.wasm --invoke t --assert-trap"},
		{`{"type":"module","filename":"b.wasm"}`, ""},
		{`{"type":"assert_return","action":{"type":"get","field":"g"},"expected":[{"value":"0"}]}`, "out/b.wasm --get g --assert-return 0"},
	}

	for i, s := range steps {
		got, _, err := e.Encode(decode(t, s.record))
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got != s.want {
			t.Errorf("step %d: got %q, want %q", i, got, s.want)
		}
	}
	if e.ModulePath() != "out/b.wasm" {
		t.Errorf("ModulePath = %q, want out/b.wasm", e.ModulePath())
	}
}

func TestEncode_PathIsNotCleaned(t *testing.T) {
	e := New("out/")
	got, _, err := e.Encode(decode(t, `{"type":"assert_malformed","filename":"x.wat"}`))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got != "out//x.wat --assert-malformed" {
		t.Errorf("got %q", got)
	}
}

func TestEncode_UnknownCommand(t *testing.T) {
	e := New("out")
	raw := `{"type":"unknown_thing","x":1}`
	line, ok, err := e.Encode(decode(t, raw))
	if ok || line != "" {
		t.Errorf("unknown command produced %q", line)
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindUnknownCommand}) {
		t.Fatalf("error = %v, want unknown command", err)
	}

	var e2 *errors.Error
	if !stderrors.As(err, &e2) {
		t.Fatal("expected *errors.Error")
	}
	if e2.Tag != "unknown_thing" {
		t.Errorf("Tag = %q", e2.Tag)
	}
	if e.ModulePath() != "out/__NULL__.wasm" {
		t.Errorf("unknown command changed module path to %q", e.ModulePath())
	}
}

func TestEncode_UnknownAction(t *testing.T) {
	records := []string{
		`{"type":"action","action":{"type":"call","field":"f"}}`,
		`{"type":"assert_return","action":{"type":"call","field":"f"},"expected":[{"value":"1"}]}`,
		`{"type":"assert_trap","action":{"type":"call","field":"f"}}`,
	}

	for _, raw := range records {
		e := New("out")
		line, ok, err := e.Encode(decode(t, raw))
		if ok || line != "" {
			t.Errorf("%s: produced %q", raw, line)
		}
		if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindUnknownAction}) {
			t.Errorf("%s: error = %v, want unknown action", raw, err)
		}
	}
}

func TestEncode_MissingAction(t *testing.T) {
	e := New("out")
	_, ok, err := e.Encode(decode(t, `{"type":"action"}`))
	if ok {
		t.Error("expected no output")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindFieldMissing}) {
		t.Fatalf("error = %v, want field missing", err)
	}
	var e2 *errors.Error
	if !stderrors.As(err, &e2) || e2.Tag != "action" || len(e2.Path) != 1 || e2.Path[0] != "action" {
		t.Errorf("error = %+v, want tag and path action", e2)
	}
}

func TestEncodeAction_Nil(t *testing.T) {
	_, err := New("out").EncodeAction(nil)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindFieldMissing}) {
		t.Errorf("error = %v, want field missing", err)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	records := []string{
		`{"type":"module","filename":"m.wasm"}`,
		`{"type":"assert_return","action":{"type":"invoke","field":"f","args":[{"value":"3"}]},"expected":[{"value":"9"}]}`,
		`{"type":"action","action":{"type":"get","field":"g"}}`,
	}

	run := func() []string {
		e := New("d")
		var out []string
		for _, r := range records {
			line, ok, err := e.Encode(decode(t, r))
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if ok {
				out = append(out, line)
			}
		}
		return out
	}

	first, second := run(), run()
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %q and %q", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("run differs at %d: %q vs %q", i, first[i], second[i])
		}
	}
}
