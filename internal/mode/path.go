package mode

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-logr/logr"
	"github.com/rnwolfe/tofi/internal/fuzzy"
	"github.com/rnwolfe/tofi/internal/loader"
	"github.com/rnwolfe/tofi/internal/spawn"
)

// SearchPathVar is the environment variable listing program directories.
const SearchPathVar = "PATH"

// PathOption configures NewPath.
type PathOption func(*Path)

// WithLookupEnv replaces os.LookupEnv when reading the search path.
func WithLookupEnv(lookup func(string) (string, bool)) PathOption {
	return func(p *Path) {
		if lookup != nil {
			p.lookupEnv = lookup
		}
	}
}

// WithSpawner sets what launches the selected program.
func WithSpawner(s spawn.Spawner) PathOption {
	return func(p *Path) {
		if s != nil {
			p.spawner = s
		}
	}
}

// WithPathLogger sets the logger.
func WithPathLogger(log logr.Logger) PathOption {
	return func(p *Path) { p.log = log }
}

// Path selects among the programs on the search path and launches the
// chosen one.
type Path struct {
	lookupEnv func(string) (string, bool)
	spawner   spawn.Spawner
	log       logr.Logger

	loader   *loader.Loader[[]string]
	programs []string
	loaded   bool
}

// NewPath starts listing the search path in the background and returns
// without waiting for it.
func NewPath(opts ...PathOption) *Path {
	p := &Path{
		lookupEnv: os.LookupEnv,
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.spawner == nil {
		p.spawner = spawn.NewDispatcher(p.log)
	}

	lookup, log := p.lookupEnv, p.log
	p.loader = loader.Start(func() []string {
		value, ok := lookup(SearchPathVar)
		if !ok {
			log.Info("search path is not set", "var", SearchPathVar)
			return nil
		}
		programs := loadPrograms(value, log)
		log.V(1).Info("loaded programs", "count", len(programs))
		return programs
	})
	return p
}

// LoadPrograms lists the launchable names in every directory of a
// search-path value, sorted and without duplicates.
func LoadPrograms(pathValue string) []string {
	return loadPrograms(pathValue, logr.Discard())
}

func loadPrograms(pathValue string, log logr.Logger) []string {
	seen := make(map[string]struct{})
	var names []string

	for _, dir := range filepath.SplitList(pathValue) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.V(1).Info("skipping search path entry", "dir", dir, "reason", err.Error())
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if !launchable(name) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	slices.Sort(names)
	return names
}

// launchable drops hidden files and bracketed names such as "[".
func launchable(name string) bool {
	return name != "" && !strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "[")
}

// Name implements Mode.
func (p *Path) Name() string { return "run" }

// Ready reports whether the background listing has finished.
func (p *Path) Ready() bool { return p.loaded || p.loader.Ready() }

// Len returns the number of programs, or zero while still loading.
func (p *Path) Len() int {
	if !p.Ready() {
		return 0
	}
	return len(p.load())
}

// load waits for the background listing the first time and keeps the
// result for the life of the mode.
func (p *Path) load() []string {
	if !p.loaded {
		p.programs = p.loader.Get()
		p.loaded = true
	}
	return p.programs
}

// Results matches the first word of query against the program names. Words
// after the first are arguments and do not take part in matching.
func (p *Path) Results(query string) []Result {
	programs := p.load()

	key := ""
	if fields := strings.Fields(query); len(fields) > 0 {
		key = fields[0]
	}

	ranked := fuzzy.Rank(programs, key)
	out := make([]Result, len(ranked))
	for i, r := range ranked {
		out[i] = Result{Display: programs[r.Index], Context: r.Index}
	}
	return out
}

// Execute launches the selected program with any arguments that follow it
// in the displayed text. The program comes from the result's context, not
// the display, since the display may have been edited.
func (p *Path) Execute(selection Result) Outcome {
	fields := strings.Fields(selection.Display)
	programs := p.load()

	var program string
	switch {
	case selection.Context >= 0 && selection.Context < len(programs):
		program = programs[selection.Context]
	case len(fields) > 0:
		program = fields[0]
	default:
		return CloseFailure
	}

	parts := []string{program}
	if len(fields) > 1 {
		parts = append(parts, fields[1:]...)
	}

	if !p.spawner.Spawn(strings.Join(parts, " ")) {
		return CloseFailure
	}
	return CloseSuccess
}

// Close implements Mode. Path holds nothing that needs releasing.
func (p *Path) Close() error { return nil }
