// Package analysis drives the pipeline state machine — Raw, Tokenized,
// Parsed, Validated, Simulated, Analyzed — and builds the immutable
// snapshot every downstream metric query reads from.
package analysis

import (
	"github.com/zenithlang/zenith/ast"
	"github.com/zenithlang/zenith/corpus"
	"github.com/zenithlang/zenith/diagnostics"
	"github.com/zenithlang/zenith/parser"
	"github.com/zenithlang/zenith/population"
	"github.com/zenithlang/zenith/simulate"
)

// Snapshot is the immutable result of running the full pipeline once.
// Every metric or report query is a pure read against it.
type Snapshot struct {
	Corpus             *corpus.Corpus
	Diagnostics        diagnostics.List
	PerLawSimulations  map[string][]simulate.Event
	PerPopulationCache map[int][]simulate.Event
}

// Options controls the pipeline's resource limits and strictness.
type Options struct {
	Limits parser.Limits
	Strict bool
}

func DefaultOptions() Options {
	return Options{Limits: parser.DefaultLimits(), Strict: false}
}

// Run executes Tokenized->Parsed->Validated->Simulated on source text. A
// lexical or syntax error aborts immediately (the parser is strict).
// Validation findings are recorded in the returned Snapshot's Diagnostics.
// Any error-severity finding (and, under strict mode, any warning) stops the
// pipeline before simulation, leaving PerLawSimulations empty; warnings
// alone in non-strict mode do not prevent simulation.
func Run(source string, opts Options) (*Snapshot, error) {
	tree, err := parseWithLimits(source, opts.Limits)
	if err != nil {
		return nil, err
	}
	return RunAST(tree, opts)
}

// RunAST runs Validated->Simulated over an already-parsed AST (used by the
// JSON-import and iCalendar-import paths, which never go through the
// lexer/parser).
func RunAST(tree *ast.Corpus, opts Options) (*Snapshot, error) {
	c := corpus.Build(tree)
	diags := corpus.Validate(c, corpus.ValidateOptions{Strict: opts.Strict})

	snap := &Snapshot{
		Corpus:             c,
		Diagnostics:        diags,
		PerLawSimulations:  map[string][]simulate.Event{},
		PerPopulationCache: map[int][]simulate.Event{},
	}

	if diags.HasErrors(opts.Strict) {
		return snap, nil
	}

	for name, law := range c.ByLawName {
		events, err := simulate.Law(c, law)
		if err != nil {
			snap.Diagnostics.Add(diagnostics.New(diagnostics.SemanticError, diagnostics.Span{},
				"law %q: simulation failed: %v", name, err))
			continue
		}
		snap.PerLawSimulations[name] = events
	}

	return snap, nil
}

func parseWithLimits(source string, limits parser.Limits) (*ast.Corpus, error) {
	p, err := parser.NewWithLimits(source, limits)
	if err != nil {
		return nil, err
	}
	return p.ParseCorpus()
}

// Population returns the simulated event sequence for population p,
// computing and caching it on first access.
func (s *Snapshot) Population(p int) []simulate.Event {
	if cached, ok := s.PerPopulationCache[p]; ok {
		return cached
	}
	laws := population.LawsForPopulation(s.Corpus, p)
	var events []simulate.Event
	for _, l := range laws {
		events = append(events, s.PerLawSimulations[l.Name]...)
	}
	s.PerPopulationCache[p] = events
	return events
}

// Target returns the simulated event sequence for every law reachable from
// the named target.
func (s *Snapshot) Target(name string) []simulate.Event {
	laws := population.LawsForTarget(s.Corpus, name)
	var events []simulate.Event
	for _, l := range laws {
		events = append(events, s.PerLawSimulations[l.Name]...)
	}
	return events
}

// Law returns the simulated event sequence for a single named law.
func (s *Snapshot) Law(name string) []simulate.Event {
	return s.PerLawSimulations[name]
}
