package parser

import (
	"testing"

	"github.com/zenithlang/zenith/ast"
)

func TestParseMinimalLaw(t *testing.T) {
	src := `law M:
start_date:2025-01-01 at 00:00
period:1.0
Event:
A:"x"
GROUP:(A 1.0^0)
end_law`

	corpus, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corpus.Roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(corpus.Roots))
	}
	law, ok := corpus.Roots[0].(*ast.Law)
	if !ok {
		t.Fatalf("root is %T, want *ast.Law", corpus.Roots[0])
	}
	if law.Name != "M" {
		t.Errorf("name = %q, want M", law.Name)
	}
	if law.PeriodMin != 60 {
		t.Errorf("period = %d, want 60", law.PeriodMin)
	}
	if len(law.Group) != 1 || law.Group[0].EventRef != "A" {
		t.Fatalf("group = %+v", law.Group)
	}
}

func TestParseTargetWithNestedLaw(t *testing.T) {
	src := `target T1:
key:"k1"
dictionnary:
d1:"desc"
target T2:
key:"k2"
dictionnary:
d2[d1]:"desc2"
law L:
start_date:2025-12-25 at 15:45
period:1.0
Event:
A[d2]:"a"
GROUP:(A 30^30)
end_law
end_target
end_target`

	corpus, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corpus.Roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(corpus.Roots))
	}
	t1, ok := corpus.Roots[0].(*ast.Target)
	if !ok {
		t.Fatalf("root is %T, want *ast.Target", corpus.Roots[0])
	}
	if len(t1.Children) != 1 {
		t.Fatalf("t1 children = %d, want 1", len(t1.Children))
	}
	t2, ok := t1.Children[0].(*ast.Target)
	if !ok {
		t.Fatalf("t1 child is %T, want *ast.Target", t1.Children[0])
	}
	if t2.Parent != "T1" {
		t.Errorf("t2.Parent = %q, want T1", t2.Parent)
	}
	if len(t2.Children) != 1 {
		t.Fatalf("t2 children = %d, want 1", len(t2.Children))
	}
}

func TestParseUndeclaredEventIsStillParsed(t *testing.T) {
	// The parser only checks grammar; an undeclared GROUP reference is a
	// validator-level StructuralError, not a parse error.
	src := `law M:
start_date:2025-01-01 at 00:00
period:1.0
Event:
A:"x"
GROUP:(B 1.0^0)
end_law`
	_, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error for an undeclared reference: %v", err)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(`law M: start_date:2025-01-01`)
	if err == nil {
		t.Fatal("expected a syntax error for an incomplete law")
	}
}

func TestResourceLimitMaxDepth(t *testing.T) {
	src := "target A:\nkey:\"k\"\ndictionnary:\ntarget B:\nkey:\"k\"\ndictionnary:\nend_target\nend_target"
	_, err := NewWithLimits(src, Limits{MaxDepth: 0, MaxTokens: DefaultMaxTokens})
	if err != nil {
		t.Fatalf("tokenizing should not fail: %v", err)
	}
	p, err := NewWithLimits(src, Limits{MaxDepth: 0, MaxTokens: DefaultMaxTokens})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.ParseCorpus(); err == nil {
		t.Fatal("expected a ResourceLimit diagnostic for exceeding max depth")
	}
}
