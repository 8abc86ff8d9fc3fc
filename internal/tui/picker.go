// Package tui is the interactive renderer: a query line, the ranked
// results of a mode.Mode and a status bar, driven by Bubbletea.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/rnwolfe/tofi/internal/mode"
	"github.com/rnwolfe/tofi/internal/ui"
)

// ErrCanceled is returned by Run when the user leaves without selecting.
var ErrCanceled = errors.New("selection canceled")

const loadPollInterval = 50 * time.Millisecond

// readier is implemented by modes that load candidates in the background.
type readier interface {
	Ready() bool
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithPrompt sets the text shown before the query.
func WithPrompt(prompt string) PickerOption {
	return func(p *Picker) { p.prompt = prompt }
}

// WithHeight sets the maximum visible results (0 = fill the terminal).
func WithHeight(h int) PickerOption {
	return func(p *Picker) { p.height = h }
}

// WithArguments makes words typed after the matched one part of the
// selection handed to Execute.
func WithArguments() PickerOption {
	return func(p *Picker) { p.arguments = true }
}

// WithRenderer binds styles to r instead of the default renderer.
func WithRenderer(r *lipgloss.Renderer) PickerOption {
	return func(p *Picker) { p.renderer = r }
}

// WithTTY makes the picker read keys from and draw on f instead of the
// process's stdin and stdout.
func WithTTY(f *os.File) PickerOption {
	return func(p *Picker) { p.tty = f }
}

// WithLogger sets the logger for selections and outcomes.
func WithLogger(log logr.Logger) PickerOption {
	return func(p *Picker) { p.log = log }
}

// Session is what a finished Picker reports back.
type Session struct {
	Outcome   mode.Outcome
	Selection string
}

// Picker drives a mode.Mode. All Mode calls happen inside Update, which
// Bubbletea runs on a single goroutine.
type Picker struct {
	mode      mode.Mode
	prompt    string
	height    int
	arguments bool
	renderer  *lipgloss.Renderer
	styles    styles
	log       logr.Logger
	tty       *os.File

	query   string
	results []mode.Result
	cursor  int
	offset  int // viewport scroll offset
	loading bool

	done     bool
	canceled bool
	session  Session

	termWidth  int
	termHeight int
}

type styles struct {
	prompt   lipgloss.Style
	selected lipgloss.Style
	pointer  lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		prompt:   r.NewStyle().Foreground(ui.Teal).Bold(true),
		selected: r.NewStyle().Foreground(ui.Teal).Bold(true),
		pointer:  r.NewStyle().Foreground(ui.Teal).Bold(true),
		muted:    r.NewStyle().Foreground(ui.Dim),
		warning:  r.NewStyle().Foreground(ui.Sand),
	}
}

type loadPollMsg struct{}

// NewPicker creates a Picker over m with the given options.
func NewPicker(m mode.Mode, opts ...PickerOption) *Picker {
	p := &Picker{
		mode:       m,
		prompt:     "> ",
		height:     10,
		log:        logr.Discard(),
		termWidth:  80,
		termHeight: 24,
	}
	for _, opt := range opts {
		opt(p)
	}
	r := p.renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p.styles = newStyles(r)
	p.refresh()
	return p
}

// Run shows a picker over m on the terminal and returns how the session
// ended. Leaving without a selection returns ErrCanceled.
func Run(m mode.Mode, opts ...PickerOption) (Session, error) {
	p := NewPicker(m, opts...)

	in, out := os.Stdin, os.Stdout
	if p.tty != nil {
		in, out = p.tty, p.tty
	}
	if p.renderer == nil {
		p.styles = newStyles(ui.NewRenderer(out))
	}
	if w, h, err := term.GetSize(int(out.Fd())); err == nil {
		p.termWidth, p.termHeight = w, h
	}

	prog := tea.NewProgram(p, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	final, err := prog.Run()
	if err != nil {
		return Session{}, fmt.Errorf("picker: %w", err)
	}
	result := final.(*Picker)
	if result.canceled || !result.done {
		return Session{}, ErrCanceled
	}
	return result.session, nil
}

// --- Bubbletea model implementation ---

func (p *Picker) Init() tea.Cmd {
	if p.loading {
		return pollLoad()
	}
	return nil
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.termWidth = msg.Width
		p.termHeight = msg.Height
		return p, nil

	case loadPollMsg:
		if !p.ready() {
			return p, pollLoad()
		}
		p.refresh()
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			p.canceled = true
			return p, tea.Quit

		case "enter":
			return p.execute()

		case "tab":
			p.complete()
			return p, nil

		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
				if p.cursor < p.offset {
					p.offset = p.cursor
				}
			}
			return p, nil

		case "down", "ctrl+n":
			if p.cursor < len(p.results)-1 {
				p.cursor++
				vis := p.visibleHeight()
				if p.cursor >= p.offset+vis {
					p.offset = p.cursor - vis + 1
				}
			}
			return p, nil

		case "backspace":
			if len(p.query) > 0 {
				runes := []rune(p.query)
				p.query = string(runes[:len(runes)-1])
				p.refresh()
			}
			return p, nil

		case "ctrl+u":
			p.query = ""
			p.refresh()
			return p, nil

		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				p.query += string(msg.Runes)
				if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
					p.query += " "
				}
				p.refresh()
			}
			return p, nil
		}
	}
	return p, nil
}

func (p *Picker) View() string {
	var b strings.Builder

	b.WriteString("  " + p.styles.prompt.Render(p.prompt) + p.query + p.styles.prompt.Render("▎") + "\n\n")

	vis := p.visibleHeight()
	end := p.offset + vis
	if end > len(p.results) {
		end = len(p.results)
	}

	switch {
	case p.loading:
		b.WriteString("  " + p.styles.muted.Render("Loading…") + "\n")
	case len(p.results) == 0:
		b.WriteString("  " + p.styles.muted.Render("No matches") + "\n")
	default:
		for i := p.offset; i < end; i++ {
			b.WriteString(p.renderResult(p.results[i], i == p.cursor) + "\n")
		}
	}

	b.WriteString("\n")
	status := p.styles.muted.Render(fmt.Sprintf("  %d/%d", len(p.results), p.mode.Len()))
	help := p.styles.muted.Render(" · ↑↓ navigate · tab complete · enter select · esc cancel")
	b.WriteString(status + help + "\n")

	return b.String()
}

// --- internal helpers ---

func pollLoad() tea.Cmd {
	return tea.Tick(loadPollInterval, func(time.Time) tea.Msg { return loadPollMsg{} })
}

func (p *Picker) ready() bool {
	if r, ok := p.mode.(readier); ok {
		return r.Ready()
	}
	return true
}

// refresh recomputes results for the current query. While the mode is
// still loading it shows nothing rather than block the event loop.
func (p *Picker) refresh() {
	p.cursor = 0
	p.offset = 0
	if !p.ready() {
		p.loading = true
		p.results = nil
		return
	}
	p.loading = false
	p.results = p.mode.Results(p.query)
}

// complete replaces the matched word of the query with the highlighted
// result. Words typed after it are kept when the picker passes arguments.
func (p *Picker) complete() {
	if len(p.results) == 0 {
		return
	}
	query := p.results[p.cursor].Display
	if p.arguments {
		if fields := strings.Fields(p.query); len(fields) > 1 {
			query += " " + strings.Join(fields[1:], " ")
		}
	}
	p.query = query
	p.refresh()
}

// execute hands the highlighted result to the mode. Enter while loading
// waits for the load.
func (p *Picker) execute() (tea.Model, tea.Cmd) {
	if p.loading {
		p.loading = false
		p.results = p.mode.Results(p.query)
	}
	if len(p.results) == 0 {
		return p, nil
	}

	sel := p.results[p.cursor]
	if p.arguments {
		sel = sel.WithArguments(p.query)
	}

	outcome := p.mode.Execute(sel)
	p.log.V(1).Info("executed selection", "mode", p.mode.Name(), "selection", sel.Display, "outcome", outcome.String())
	if outcome == mode.Continue {
		return p, nil
	}

	p.done = true
	p.session = Session{Outcome: outcome, Selection: sel.Display}
	return p, tea.Quit
}

func (p *Picker) visibleHeight() int {
	h := p.height
	if h <= 0 || h > p.termHeight-4 {
		h = p.termHeight - 4
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (p *Picker) renderResult(r mode.Result, selected bool) string {
	if selected {
		return "  " + p.styles.pointer.Render(ui.IconCursor) + p.styles.selected.Render(r.Display)
	}
	return "    " + r.Display
}
