package match

// Matcher produces company name suggestions. Implementations are chosen
// once at startup so callers never check for availability themselves.
type Matcher interface {
	Suggest(query string, candidates []string) []Candidate
	// Enabled reports whether suggestions can ever be non-empty.
	Enabled() bool
}

// Fuzzy ranks candidates by similarity ratio.
type Fuzzy struct {
	opt Options
}

// NewFuzzy returns a Fuzzy matcher using opt.
func NewFuzzy(opt Options) *Fuzzy { return &Fuzzy{opt: opt} }

func (f *Fuzzy) Suggest(query string, candidates []string) []Candidate {
	return Suggest(query, candidates, f.opt)
}

func (f *Fuzzy) Enabled() bool { return true }

// Options returns the thresholds the matcher was built with.
func (f *Fuzzy) Options() Options { return f.opt }

// Noop never suggests anything.
type Noop struct{}

func (Noop) Suggest(string, []string) []Candidate { return nil }

func (Noop) Enabled() bool { return false }

// New returns a Fuzzy matcher when enabled, otherwise Noop.
func New(enabled bool, opt Options) Matcher {
	if !enabled {
		return Noop{}
	}
	return NewFuzzy(opt)
}
