package corpus

import (
	"github.com/zenithlang/zenith/ast"
	"github.com/zenithlang/zenith/diagnostics"
	"github.com/zenithlang/zenith/point"
)

// ValidateOptions toggles strict mode, where warnings are promoted to
// errors (the --strict CLI flag).
type ValidateOptions struct {
	Strict bool
}

// Validate checks a Corpus for structural and semantic problems, returning
// every finding rather than aborting at the first one.
func Validate(c *Corpus, opts ValidateOptions) diagnostics.List {
	var diags diagnostics.List

	seenLaw := map[string]bool{}
	seenTarget := map[string]bool{}

	var walk func(node ast.Node)
	walk = func(node ast.Node) {
		switch n := node.(type) {
		case *ast.Law:
			if seenLaw[n.Name] {
				diags.Add(diagnostics.New(diagnostics.StructuralError, spanOf(n.Span),
					"duplicate law name %q", n.Name))
			}
			seenLaw[n.Name] = true
			validateLaw(&diags, c, n, opts)
		case *ast.Target:
			if seenTarget[n.Name] {
				diags.Add(diagnostics.New(diagnostics.StructuralError, spanOf(n.Span),
					"duplicate target name %q", n.Name))
			}
			seenTarget[n.Name] = true
			validateDictionary(&diags, c, n)
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	for _, root := range c.AST.Roots {
		walk(root)
	}

	return diags
}

func spanOf(s ast.Span) diagnostics.Span {
	return diagnostics.Span{Line: s.Line, Column: s.Column}
}

func validateLaw(diags *diagnostics.List, c *Corpus, l *ast.Law, opts ValidateOptions) {
	if l.PeriodMin <= 0 {
		diags.Add(diagnostics.New(diagnostics.StructuralError, spanOf(l.Span),
			"law %q: period must be positive, got %d", l.Name, l.PeriodMin))
	}

	if _, err := point.ParseDate(l.StartDate); err != nil {
		diags.Add(diagnostics.New(diagnostics.StructuralError, spanOf(l.Span),
			"law %q: start date %q is outside the calendar range: %v", l.Name, l.StartDate, err))
	}
	if _, err := point.ParseTime(l.StartTime); err != nil {
		diags.Add(diagnostics.New(diagnostics.StructuralError, spanOf(l.Span),
			"law %q: start time %q is outside the calendar range: %v", l.Name, l.StartTime, err))
	}

	dict := c.Dictionaries[l.Name]
	for _, e := range l.Events {
		if e.Tag == "" {
			continue
		}
		if _, ok := dict[e.Tag]; !ok {
			diags.Add(diagnostics.New(diagnostics.StructuralError, spanOf(e.Span),
				"law %q: event %q references dictionary tag %q which does not resolve in any enclosing target",
				l.Name, e.Name, e.Tag))
		}
	}

	var sum int64
	for _, term := range l.Group {
		if _, ok := l.EventByName(term.EventRef); !ok {
			diags.Add(diagnostics.New(diagnostics.StructuralError, spanOf(term.Span),
				"law %q: GROUP references undeclared event %q", l.Name, term.EventRef))
		}
		sum += term.CoherenceMin + term.DispersalMin
	}

	if sum != l.PeriodMin {
		kind := diagnostics.ValidationWarning
		d := diagnostics.NewWarning(kind, spanOf(l.Span),
			"law %q: sum of group durations (%d) does not equal period (%d)", l.Name, sum, l.PeriodMin)
		if opts.Strict {
			d.Severity = diagnostics.SeverityError
		}
		diags.Add(d)
	}
}

func validateDictionary(diags *diagnostics.List, c *Corpus, t *ast.Target) {
	for _, entry := range t.Dictionary {
		if entry.ParentRef == "" {
			continue
		}
		visited := map[string]bool{}
		if !resolvesParentRef(c, t, entry.ParentRef, visited) {
			diags.Add(diagnostics.New(diagnostics.StructuralError, spanOf(entry.Span),
				"target %q: dictionary entry %q has unresolved or cyclic parent reference %q",
				t.Name, entry.LocalKey, entry.ParentRef))
		}
	}
}

// resolvesParentRef walks ancestor targets looking for parentRef among
// their dictionary local keys, detecting cycles along the way. The grammar
// makes parent_ref point strictly outward, but this walk does not trust
// that and checks explicitly.
func resolvesParentRef(c *Corpus, t *ast.Target, parentRef string, visited map[string]bool) bool {
	if visited[t.Name+"#"+parentRef] {
		return false
	}
	visited[t.Name+"#"+parentRef] = true

	ancestorName := t.Parent
	for ancestorName != "" {
		ancestor, ok := c.ByTargetName[ancestorName]
		if !ok {
			return false
		}
		for _, e := range ancestor.Dictionary {
			if e.LocalKey == parentRef {
				if e.ParentRef == "" {
					return true
				}
				return resolvesParentRef(c, ancestor, e.ParentRef, visited)
			}
		}
		ancestorName = ancestor.Parent
	}
	return false
}
