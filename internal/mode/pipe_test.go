package mode

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
)

// fakeTerminal records what a Pipe writes to the original stdout.
type fakeTerminal struct {
	original bytes.Buffer
	writeErr error
	restores int
	inside   bool // true while WithOriginalStdout is running
}

func (f *fakeTerminal) WithOriginalStdout(fn func(io.Writer) error) error {
	f.inside = true
	defer func() { f.inside = false }()
	if f.writeErr != nil {
		return fn(failingWriter{f.writeErr})
	}
	return fn(&f.original)
}

func (f *fakeTerminal) Restore() error {
	f.restores++
	return nil
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func newTestPipe(t *testing.T, input string) (*Pipe, *fakeTerminal) {
	t.Helper()
	term := &fakeTerminal{}
	p, err := NewPipe(strings.NewReader(input), WithTerminal(func() (Terminal, error) {
		return term, nil
	}))
	if err != nil {
		t.Fatalf("NewPipe failed: %v", err)
	}
	return p, term
}

func displays(rs []Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Display
	}
	return out
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"trailing newline", "a\nb\nc\n", []string{"a", "b", "c"}},
		{"no trailing newline", "a\nb\nc", []string{"a", "b", "c"}},
		{"empty", "", nil},
		{"interior blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"spaces preserved", "foo bar\n", []string{"foo bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, line := range SplitLines([]byte(tt.input)) {
				got = append(got, string(line))
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewPipe_LoadsEntries(t *testing.T) {
	p, _ := newTestPipe(t, "alpha\nbeta\ngamma\n")

	if p.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", p.Len())
	}
	if p.Entries()[1].Display != "beta" {
		t.Fatalf("expected second entry beta, got %q", p.Entries()[1].Display)
	}
	if p.Name() != "dmenu" {
		t.Fatalf("unexpected name %q", p.Name())
	}
}

func TestPipe_EntriesIsACopy(t *testing.T) {
	p, _ := newTestPipe(t, "alpha\nbeta\n")

	entries := p.Entries()
	entries[0].Display = "mutated"

	got := p.Results("alpha")
	if len(got) != 1 || got[0].Display != "alpha" {
		t.Fatalf("Results after mutating Entries = %v", displays(got))
	}
	if p.Entries()[0].Display != "alpha" {
		t.Fatalf("stored entry changed to %q", p.Entries()[0].Display)
	}
}

func TestNewPipe_ReadsBeforeHandoff(t *testing.T) {
	r := &trackingReader{Reader: strings.NewReader("a\nb\n")}
	_, err := NewPipe(r, WithTerminal(func() (Terminal, error) {
		if !r.eof {
			t.Error("terminal handoff happened before input was drained")
		}
		return &fakeTerminal{}, nil
	}))
	if err != nil {
		t.Fatalf("NewPipe failed: %v", err)
	}
}

type trackingReader struct {
	io.Reader
	eof bool
}

func (r *trackingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err == io.EOF {
		r.eof = true
	}
	return n, err
}

func TestNewPipe_HandoffFailure(t *testing.T) {
	boom := errors.New("no tty")
	_, err := NewPipe(strings.NewReader("a\n"), WithTerminal(func() (Terminal, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected handoff error, got %v", err)
	}
}

func TestNewPipe_Decoder(t *testing.T) {
	dec, err := DecoderFor("latin1")
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPipe(bytes.NewReader([]byte{'c', 'a', 'f', 0xe9, '\n'}),
		WithDecoder(dec),
		WithTerminal(func() (Terminal, error) { return &fakeTerminal{}, nil }),
	)
	if err != nil {
		t.Fatalf("NewPipe failed: %v", err)
	}
	if got := p.Entries()[0].Display; got != "café" {
		t.Fatalf("expected decoded café, got %q", got)
	}
}

func TestPipe_Results(t *testing.T) {
	p, _ := newTestPipe(t, "zeta\nalpha\nbeta\nalphabet\n")

	all := p.Results("")
	if !slices.Equal(displays(all), []string{"alpha", "alphabet", "beta", "zeta"}) {
		t.Fatalf("empty query should list everything alphabetically, got %v", displays(all))
	}

	got := p.Results("alpha")
	if len(got) != 2 || got[0].Display != "alpha" {
		t.Fatalf("exact match should rank first, got %v", displays(got))
	}
	if p.Entries()[got[0].Context].Display != "alpha" {
		t.Fatalf("context should index the backing entry, got %d", got[0].Context)
	}
}

func TestPipe_ResultsUseWholeQuery(t *testing.T) {
	p, _ := newTestPipe(t, "foo bar\nfoo\nbar\n")

	got := p.Results("foo b")
	if !slices.Equal(displays(got), []string{"foo bar"}) {
		t.Fatalf("whitespace should be part of the query, got %v", displays(got))
	}
}

func TestPipe_Execute(t *testing.T) {
	p, term := newTestPipe(t, "foo bar\nplain\n")

	outcome := p.Execute(Result{Display: "foo bar", Context: 0})
	if outcome != CloseSuccess {
		t.Fatalf("expected CloseSuccess, got %s", outcome)
	}
	if got := term.original.String(); got != "foo\\ bar\n" {
		t.Fatalf("expected escaped selection on original stdout, got %q", got)
	}
	if term.inside {
		t.Fatal("original stdout should be released after Execute")
	}
}

func TestPipe_ExecuteWriteFailure(t *testing.T) {
	p, term := newTestPipe(t, "a\n")
	term.writeErr = errors.New("broken pipe")

	if outcome := p.Execute(Result{Display: "a"}); outcome != CloseFailure {
		t.Fatalf("expected CloseFailure on write error, got %s", outcome)
	}
}

func TestPipe_CloseRestoresOnce(t *testing.T) {
	p, term := newTestPipe(t, "a\n")

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if term.restores != 1 {
		t.Fatalf("terminal should be restored exactly once, got %d", term.restores)
	}
}

func TestEscapeSpaces(t *testing.T) {
	cases := map[string]string{
		"foo bar":   `foo\ bar`,
		"a  b":      `a\ \ b`,
		"nospace":   "nospace",
		" leading":  `\ leading`,
		"tab\tkept": "tab\tkept",
	}
	for in, want := range cases {
		if got := EscapeSpaces(in); got != want {
			t.Errorf("EscapeSpaces(%q) = %q, want %q", in, got, want)
		}
	}
}
