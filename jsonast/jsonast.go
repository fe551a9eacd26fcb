// Package jsonast provides a structural, tagged JSON encoding of the
// Zenith AST, following the map-based import/export shape of the petri-net
// JSON parser this repository is descended from, but over typed structs
// with an explicit "kind" discriminator rather than a dynamic attribute
// bag — the AST already is a tagged sum type, so the wire format mirrors
// it directly.
package jsonast

import (
	"encoding/json"
	"fmt"

	"github.com/zenithlang/zenith/ast"
)

type nodeJSON struct {
	Kind       string      `json:"kind"`
	Name       string      `json:"name,omitempty"`
	StartDate  string      `json:"start_date,omitempty"`
	StartTime  string      `json:"start_time,omitempty"`
	PeriodMin  int64       `json:"period_minutes,omitempty"`
	Events     []eventJSON `json:"events,omitempty"`
	Group      []termJSON  `json:"group,omitempty"`
	Key        string      `json:"key,omitempty"`
	Dictionary []dictJSON  `json:"dictionary,omitempty"`
	Children   []nodeJSON  `json:"children,omitempty"`
}

type eventJSON struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Tag         string `json:"tag,omitempty"`
	Description string `json:"description"`
}

type termJSON struct {
	Kind         string `json:"kind"`
	EventRef     string `json:"event_ref"`
	CoherenceMin int64  `json:"coherence_minutes"`
	DispersalMin int64  `json:"dispersal_minutes"`
}

type dictJSON struct {
	Kind        string `json:"kind"`
	LocalKey    string `json:"local_key"`
	ParentRef   string `json:"parent_ref,omitempty"`
	Description string `json:"description"`
}

type corpusJSON struct {
	Kind  string     `json:"kind"`
	Roots []nodeJSON `json:"roots"`
}

// Encode renders a Corpus to its tagged JSON form.
func Encode(c *ast.Corpus) ([]byte, error) {
	out := corpusJSON{Kind: "corpus"}
	for _, root := range c.Roots {
		out.Roots = append(out.Roots, encodeNode(root))
	}
	return json.MarshalIndent(out, "", "  ")
}

func encodeNode(n ast.Node) nodeJSON {
	switch v := n.(type) {
	case *ast.Law:
		nj := nodeJSON{Kind: "law", Name: v.Name, StartDate: v.StartDate, StartTime: v.StartTime, PeriodMin: v.PeriodMin}
		for _, e := range v.Events {
			nj.Events = append(nj.Events, eventJSON{Kind: "event", Name: e.Name, Tag: e.Tag, Description: e.Description})
		}
		for _, t := range v.Group {
			nj.Group = append(nj.Group, termJSON{Kind: "group_term", EventRef: t.EventRef, CoherenceMin: t.CoherenceMin, DispersalMin: t.DispersalMin})
		}
		return nj
	case *ast.Target:
		nj := nodeJSON{Kind: "target", Name: v.Name, Key: v.Key}
		for _, d := range v.Dictionary {
			nj.Dictionary = append(nj.Dictionary, dictJSON{Kind: "dict_entry", LocalKey: d.LocalKey, ParentRef: d.ParentRef, Description: d.Description})
		}
		for _, child := range v.Children {
			nj.Children = append(nj.Children, encodeNode(child))
		}
		return nj
	default:
		return nodeJSON{}
	}
}

// Decode reconstructs a Corpus from its tagged JSON form, producing the
// same typed AST nodes the parser would.
func Decode(data []byte) (*ast.Corpus, error) {
	var cj corpusJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return nil, fmt.Errorf("invalid AST JSON: %w", err)
	}
	if cj.Kind != "corpus" {
		return nil, fmt.Errorf("invalid AST JSON: root kind %q, want %q", cj.Kind, "corpus")
	}
	out := &ast.Corpus{}
	for _, n := range cj.Roots {
		node, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		out.Roots = append(out.Roots, node)
	}
	return out, nil
}

func decodeNode(n nodeJSON) (ast.Node, error) {
	switch n.Kind {
	case "law":
		l := &ast.Law{
			Name:       n.Name,
			StartDate:  n.StartDate,
			StartTime:  n.StartTime,
			PeriodMin:  n.PeriodMin,
			EventIndex: map[string]int{},
		}
		for _, e := range n.Events {
			l.EventIndex[e.Name] = len(l.Events)
			l.Events = append(l.Events, ast.EventDecl{Name: e.Name, Tag: e.Tag, Description: e.Description})
		}
		for _, t := range n.Group {
			l.Group = append(l.Group, ast.GroupTerm{EventRef: t.EventRef, CoherenceMin: t.CoherenceMin, DispersalMin: t.DispersalMin})
		}
		return l, nil
	case "target":
		t := &ast.Target{Name: n.Name, Key: n.Key}
		for _, d := range n.Dictionary {
			t.Dictionary = append(t.Dictionary, ast.DictEntry{LocalKey: d.LocalKey, ParentRef: d.ParentRef, Description: d.Description})
		}
		for _, c := range n.Children {
			child, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			if ct, ok := child.(*ast.Target); ok {
				ct.Parent = t.Name
			}
			t.Children = append(t.Children, child)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("invalid AST JSON: unknown node kind %q", n.Kind)
	}
}
