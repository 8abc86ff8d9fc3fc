// Package mode defines the candidate sources a launcher session selects
// from, and what happens when a candidate is chosen.
//
// A Mode is driven by a single renderer goroutine: it is constructed,
// queried with Results as the user types, asked to Execute the chosen
// Result and finally closed. None of its methods are called concurrently.
package mode

import (
	"fmt"
	"strings"
)

// Mode is a candidate source plus the action taken on selection.
type Mode interface {
	// Name identifies the mode in logs and history.
	Name() string
	// Results returns the candidates matching query, best first.
	Results(query string) []Result
	// Execute acts on the chosen result.
	Execute(selection Result) Outcome
	// Len returns the number of candidates loaded so far.
	Len() int
	// Close releases whatever the mode acquired at construction. It must be
	// called once the renderer is done, on every exit path.
	Close() error
}

// Entry is one loaded candidate.
type Entry struct {
	Display string
}

// NoContext marks a Result that does not point back at a candidate.
const NoContext = -1

// Result is one ranked candidate for a query.
type Result struct {
	// Display is the text shown to the user. The renderer may extend it
	// with arguments typed after the match.
	Display string
	// Context indexes the mode's backing candidate list, or is NoContext.
	// It is only meaningful for the mode instance that produced it.
	Context int
}

// WithArguments returns a copy of r whose display is followed by every
// whitespace-separated token of query after the first. The first token is
// the one that was matched against the candidates.
func (r Result) WithArguments(query string) Result {
	fields := strings.Fields(query)
	if len(fields) < 2 {
		return r
	}
	r.Display = r.Display + " " + strings.Join(fields[1:], " ")
	return r
}

// Outcome tells the renderer what to do after Execute.
type Outcome int

const (
	// CloseSuccess ends the session with a zero exit status.
	CloseSuccess Outcome = iota
	// CloseFailure ends the session with a non-zero exit status.
	CloseFailure
	// Continue keeps the session open.
	Continue
)

func (o Outcome) String() string {
	switch o {
	case CloseSuccess:
		return "close-success"
	case CloseFailure:
		return "close-failure"
	case Continue:
		return "continue"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}
