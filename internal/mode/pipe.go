package mode

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-logr/logr"
	"github.com/rnwolfe/tofi/internal/fuzzy"
	"github.com/rnwolfe/tofi/internal/handoff"
)

// Terminal is the part of a terminal handoff the Pipe mode needs.
type Terminal interface {
	WithOriginalStdout(fn func(w io.Writer) error) error
	Restore() error
}

// AttachTerminal returns an attach function for WithTerminal that performs a
// real handoff with the given options.
func AttachTerminal(opts ...handoff.Option) func() (Terminal, error) {
	return func() (Terminal, error) {
		h, err := handoff.Attach(opts...)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}

// PipeOption configures NewPipe.
type PipeOption func(*pipeConfig)

type pipeConfig struct {
	decode Decoder
	attach func() (Terminal, error)
	log    logr.Logger
}

// WithDecoder sets how input records are decoded (default DecodeUTF8).
func WithDecoder(d Decoder) PipeOption {
	return func(c *pipeConfig) {
		if d != nil {
			c.decode = d
		}
	}
}

// WithTerminal sets how the terminal is taken over after the input is read
// (default AttachTerminal()).
func WithTerminal(attach func() (Terminal, error)) PipeOption {
	return func(c *pipeConfig) {
		if attach != nil {
			c.attach = attach
		}
	}
}

// WithPipeLogger sets the logger.
func WithPipeLogger(log logr.Logger) PipeOption {
	return func(c *pipeConfig) { c.log = log }
}

// Pipe selects among lines read from a pipe and writes the choice back to
// the pipe's consumer.
type Pipe struct {
	entries []Entry
	values  []string
	term    Terminal
	log     logr.Logger
	closed  bool
}

// NewPipe reads r to the end, one entry per line, then hands the terminal to
// the renderer. Reading finishes before the handoff because the producer's
// pipe has to be drained before stdin can be replaced.
func NewPipe(r io.Reader, opts ...PipeOption) (*Pipe, error) {
	cfg := pipeConfig{
		decode: DecodeUTF8,
		attach: AttachTerminal(),
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	lines := SplitLines(data)
	p := &Pipe{
		entries: make([]Entry, len(lines)),
		values:  make([]string, len(lines)),
		log:     cfg.log,
	}
	for i, line := range lines {
		display := cfg.decode(line)
		p.entries[i] = Entry{Display: display}
		p.values[i] = display
	}
	p.log.V(1).Info("read input", "bytes", len(data), "entries", len(p.entries))

	p.term, err = cfg.attach()
	if err != nil {
		return nil, fmt.Errorf("handing off terminal: %w", err)
	}
	return p, nil
}

// SplitLines splits data on '\n'. A trailing newline does not produce an
// empty final line; empty lines in the middle are kept.
func SplitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	lines := bytes.Split(data, []byte{'\n'})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Name implements Mode.
func (p *Pipe) Name() string { return "dmenu" }

// Len implements Mode.
func (p *Pipe) Len() int { return len(p.entries) }

// Entries returns a copy of the loaded entries.
func (p *Pipe) Entries() []Entry { return slices.Clone(p.entries) }

// Results matches the whole query against every line.
func (p *Pipe) Results(query string) []Result {
	ranked := fuzzy.Rank(p.values, query)
	out := make([]Result, len(ranked))
	for i, r := range ranked {
		out[i] = Result{Display: p.entries[r.Index].Display, Context: r.Index}
	}
	return out
}

// Execute writes the selection, with spaces escaped, to the original
// standard output. A failed write closes the session with a failure.
func (p *Pipe) Execute(selection Result) Outcome {
	line := EscapeSpaces(selection.Display) + "\n"
	err := p.term.WithOriginalStdout(func(w io.Writer) error {
		_, err := io.WriteString(w, line)
		return err
	})
	if err != nil {
		p.log.Error(err, "writing selection")
		return CloseFailure
	}
	return CloseSuccess
}

// Close gives the original standard streams back.
func (p *Pipe) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.term.Restore(); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// EscapeSpaces escapes every space with a backslash so a shell reading the
// output treats the value as one word.
func EscapeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", `\ `)
}
