// Package corpus indexes a parsed AST by law and target name, assigns each
// target its generation, and resolves dictionary inheritance, following the
// map-based structural-check shape of the token-model schema validator this
// repository is descended from.
package corpus

import (
	"github.com/zenithlang/zenith/ast"
)

// Corpus is the indexed, resolved view of a parsed AST.
type Corpus struct {
	AST          *ast.Corpus
	ByLawName    map[string]*ast.Law
	ByTargetName map[string]*ast.Target

	// Dictionaries holds, per law name, the resolved ancestor-chain view:
	// local_key -> description, flattened root-to-leaf.
	Dictionaries map[string]map[string]string

	// TargetChain holds, per law name, the ordered list of enclosing
	// target names from root to immediate parent.
	TargetChain map[string][]string
}

// Build indexes an AST into a Corpus without validating it. Callers should
// run Validate before simulation.
func Build(tree *ast.Corpus) *Corpus {
	c := &Corpus{
		AST:          tree,
		ByLawName:    map[string]*ast.Law{},
		ByTargetName: map[string]*ast.Target{},
		Dictionaries: map[string]map[string]string{},
		TargetChain:  map[string][]string{},
	}
	for _, node := range tree.Roots {
		c.index(node, 1, nil)
	}
	for lawName := range c.ByLawName {
		c.Dictionaries[lawName] = c.resolveDictionary(c.TargetChain[lawName])
	}
	return c
}

func (c *Corpus) index(node ast.Node, generation int, chain []string) {
	switch n := node.(type) {
	case *ast.Law:
		c.ByLawName[n.Name] = n
		c.TargetChain[n.Name] = append([]string{}, chain...)
	case *ast.Target:
		n.Generation = generation
		c.ByTargetName[n.Name] = n
		childChain := append(append([]string{}, chain...), n.Name)
		for _, child := range n.Children {
			c.index(child, generation+1, childChain)
		}
	}
}

// resolveDictionary flattens the dictionaries of the given target chain
// (root to leaf) into a single local_key -> description map, with a closer
// ancestor's entry overriding a farther one under the same local key.
// ParentRef is not followed here: each entry is stored under its own local
// key. Validate checks separately that parent references resolve.
func (c *Corpus) resolveDictionary(chain []string) map[string]string {
	resolved := map[string]string{}
	for _, targetName := range chain {
		t, ok := c.ByTargetName[targetName]
		if !ok {
			continue
		}
		for _, entry := range t.Dictionary {
			resolved[entry.LocalKey] = entry.Description
		}
	}
	return resolved
}

// Generation returns the generation of a named target, or 0 if the name
// does not resolve to a target at all (used for laws declared outside any
// target, which form population 0).
func (c *Corpus) Generation(targetName string) int {
	if t, ok := c.ByTargetName[targetName]; ok {
		return t.Generation
	}
	return 0
}

// MaxGeneration returns the deepest generation observed across all targets,
// or 0 if the corpus has none.
func (c *Corpus) MaxGeneration() int {
	max := 0
	for _, t := range c.ByTargetName {
		if t.Generation > max {
			max = t.Generation
		}
	}
	return max
}
