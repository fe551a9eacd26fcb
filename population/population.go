// Package population resolves the set of laws visible from a target or
// from a generation-bounded population, and aggregates their simulated
// events without re-sorting by start time.
package population

import (
	"github.com/zenithlang/zenith/ast"
	"github.com/zenithlang/zenith/corpus"
	"github.com/zenithlang/zenith/simulate"
)

// LawsForTarget returns every law reachable by descending from the named
// target, depth-first, preserving declaration order.
func LawsForTarget(c *corpus.Corpus, targetName string) []*ast.Law {
	t, ok := c.ByTargetName[targetName]
	if !ok {
		return nil
	}
	var laws []*ast.Law
	collect(t.Children, &laws)
	return laws
}

func collect(nodes []ast.Node, out *[]*ast.Law) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.Law:
			*out = append(*out, v)
		case *ast.Target:
			collect(v.Children, out)
		}
	}
}

// LawsForPopulation returns the union of laws belonging to targets with
// generation <= p, for p >= 1; p == -1 means "maximum observed generation".
// LawsForPopulation(0) returns laws declared at the corpus root, outside
// any target. Traversal is depth-first, pre-order, preserving declaration
// order among siblings.
func LawsForPopulation(c *corpus.Corpus, p int) []*ast.Law {
	if p == -1 {
		p = c.MaxGeneration()
	}
	var laws []*ast.Law
	var walk func(nodes []ast.Node, generation int)
	walk = func(nodes []ast.Node, generation int) {
		for _, n := range nodes {
			switch v := n.(type) {
			case *ast.Law:
				if generation <= p {
					laws = append(laws, v)
				}
			case *ast.Target:
				if v.Generation <= p {
					walk(v.Children, v.Generation)
				}
			}
		}
	}
	walk(c.AST.Roots, 0)
	return laws
}

// Simulate runs simulate.Law over a set of laws and concatenates their
// events in the order given — no re-sorting by start time, per the
// declared contract that the analyst observes the planned sequence rather
// than a merged timeline.
func Simulate(c *corpus.Corpus, laws []*ast.Law) ([]simulate.Event, error) {
	var events []simulate.Event
	for _, l := range laws {
		es, err := simulate.Law(c, l)
		if err != nil {
			return nil, err
		}
		events = append(events, es...)
	}
	return events, nil
}
