package unparse

import (
	"testing"

	"github.com/zenithlang/zenith/ast"
	"github.com/zenithlang/zenith/parser"
)

const roundTripSource = `target T1:
key:"k1"
dictionnary:
d1:"root desc"
law L:
start_date:2025-12-25 at 15:45
period:1.5
Event:
A[d1]:"a"
B:"b"
GROUP:(A 30^0 - B 45^15)
end_law
end_target`

func TestRoundTrip(t *testing.T) {
	tree, err := parser.Parse(roundTripSource)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	rendered := Corpus(tree)

	reparsed, err := parser.Parse(rendered)
	if err != nil {
		t.Fatalf("re-parse error on canonical output: %v\n---\n%s", err, rendered)
	}

	if len(reparsed.Roots) != len(tree.Roots) {
		t.Fatalf("root count = %d, want %d", len(reparsed.Roots), len(tree.Roots))
	}

	t1, ok := reparsed.Roots[0].(*ast.Target)
	if !ok {
		t.Fatalf("root is %T, want *ast.Target", reparsed.Roots[0])
	}
	if t1.Name != "T1" || t1.Key != "k1" {
		t.Errorf("t1 = %+v", t1)
	}
	if len(t1.Dictionary) != 1 || t1.Dictionary[0].LocalKey != "d1" {
		t.Errorf("t1.Dictionary = %+v", t1.Dictionary)
	}
	if len(t1.Children) != 1 {
		t.Fatalf("t1 children = %d, want 1", len(t1.Children))
	}
	law, ok := t1.Children[0].(*ast.Law)
	if !ok {
		t.Fatalf("child is %T, want *ast.Law", t1.Children[0])
	}
	if law.Name != "L" || law.PeriodMin != 65 {
		t.Errorf("law = %+v", law)
	}
	if len(law.Group) != 2 {
		t.Fatalf("group terms = %d, want 2", len(law.Group))
	}
	if law.Group[0].EventRef != "A" || law.Group[0].CoherenceMin != 30 {
		t.Errorf("group[0] = %+v", law.Group[0])
	}
	if law.Group[1].EventRef != "B" || law.Group[1].DispersalMin != 15 {
		t.Errorf("group[1] = %+v", law.Group[1])
	}
}

func TestUnparseTwiceIsStable(t *testing.T) {
	tree, err := parser.Parse(roundTripSource)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	first := Corpus(tree)

	reparsed, err := parser.Parse(first)
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	second := Corpus(reparsed)

	if first != second {
		t.Errorf("unparse is not idempotent:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
}
