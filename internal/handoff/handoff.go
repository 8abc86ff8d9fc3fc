// Package handoff moves standard input and output onto the controlling
// terminal while keeping the original descriptors for later use.
//
// A launcher fed by a pipe has to read the pipe to completion first, then
// give the interactive renderer a real terminal for drawing and key input.
// The original output is still needed to emit the selection downstream, so
// it is duplicated aside and restored on teardown:
//
//	Detached --Attach--> Attached --Restore--> Restored
//
// While Attached, WithOriginalStdout temporarily points the output slot
// back at the original descriptor.
package handoff

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultDevice is the controlling terminal on unix systems.
const DefaultDevice = "/dev/tty"

var (
	// ErrNotAttached is returned when an operation needs the Attached state.
	ErrNotAttached = errors.New("terminal handoff is not attached")

	// ErrUnsupported is returned on platforms without descriptor duplication.
	ErrUnsupported = errors.New("terminal handoff is not supported on this platform")
)

// State is the position of a Handoff in its lifecycle.
type State int

const (
	Detached State = iota
	Attached
	Restored
)

func (s State) String() string {
	switch s {
	case Detached:
		return "detached"
	case Attached:
		return "attached"
	case Restored:
		return "restored"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures Attach.
type Option func(*Handoff)

// WithDevice sets the terminal device to open (default /dev/tty).
func WithDevice(path string) Option {
	return func(h *Handoff) {
		if path != "" {
			h.device = path
		}
	}
}

// WithSlots overrides the input and output descriptor slots (default 0 and 1).
func WithSlots(in, out int) Option {
	return func(h *Handoff) {
		h.in = in
		h.out = out
	}
}

// Handoff owns the saved copies of the original descriptors and the open
// terminal device. It is not safe for concurrent use.
type Handoff struct {
	device string
	in     int
	out    int

	savedIn  int
	savedOut int
	tty      *os.File
	state    State
}

// Attach saves the current input and output descriptors and redirects both
// slots to the terminal device. On failure every step already taken is
// undone and the slots are left as they were.
func Attach(opts ...Option) (*Handoff, error) {
	h := &Handoff{
		device:   DefaultDevice,
		in:       0,
		out:      1,
		savedIn:  -1,
		savedOut: -1,
	}
	for _, opt := range opts {
		opt(h)
	}

	var err error
	if h.savedOut, err = dup(h.out); err != nil {
		return nil, fmt.Errorf("saving output descriptor: %w", err)
	}
	if h.savedIn, err = dup(h.in); err != nil {
		h.release()
		return nil, fmt.Errorf("saving input descriptor: %w", err)
	}

	h.tty, err = os.OpenFile(h.device, os.O_RDWR, 0)
	if err != nil {
		h.release()
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	ttyFD := int(h.tty.Fd())

	if err := dup2(ttyFD, h.out); err != nil {
		h.release()
		return nil, fmt.Errorf("redirecting output to %s: %w", h.device, err)
	}
	if err := dup2(ttyFD, h.in); err != nil {
		_ = dup2(h.savedOut, h.out)
		h.release()
		return nil, fmt.Errorf("redirecting input to %s: %w", h.device, err)
	}

	h.state = Attached
	return h, nil
}

// State returns the current lifecycle state.
func (h *Handoff) State() State { return h.state }

// WithOriginalStdout points the output slot at the original output for the
// duration of fn, then points it back at the terminal. The saved copies
// are not modified. The terminal is restored even when fn fails.
func (h *Handoff) WithOriginalStdout(fn func(w io.Writer) error) (err error) {
	if h.state != Attached {
		return ErrNotAttached
	}

	live, err := dup(h.out)
	if err != nil {
		return fmt.Errorf("saving terminal output: %w", err)
	}
	defer closeFD(live)

	if err := dup2(h.savedOut, h.out); err != nil {
		return fmt.Errorf("switching to original output: %w", err)
	}
	defer func() {
		if rerr := dup2(live, h.out); rerr != nil && err == nil {
			err = fmt.Errorf("switching back to terminal output: %w", rerr)
		}
	}()

	return fn(fdWriter(h.out))
}

// Restore puts the original descriptors back in their slots and closes the
// terminal. Only the first call in the Attached state does anything.
func (h *Handoff) Restore() error {
	if h.state != Attached {
		return nil
	}
	h.state = Restored

	var errs []error
	if err := dup2(h.savedOut, h.out); err != nil {
		errs = append(errs, fmt.Errorf("restoring output descriptor: %w", err))
	}
	if err := dup2(h.savedIn, h.in); err != nil {
		errs = append(errs, fmt.Errorf("restoring input descriptor: %w", err))
	}
	h.release()
	return errors.Join(errs...)
}

// release closes the saved copies and the terminal device.
func (h *Handoff) release() {
	if h.savedOut >= 0 {
		closeFD(h.savedOut)
		h.savedOut = -1
	}
	if h.savedIn >= 0 {
		closeFD(h.savedIn)
		h.savedIn = -1
	}
	if h.tty != nil {
		h.tty.Close()
		h.tty = nil
	}
}
