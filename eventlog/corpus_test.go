package eventlog

import (
	"testing"
	"time"

	"github.com/zenithlang/zenith/ast"
)

func TestToCorpusOneLawPerCase(t *testing.T) {
	log := NewEventLog()
	log.AddEvent(Event{CaseID: "Intake", Activity: "Register", Timestamp: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)})
	log.AddEvent(Event{CaseID: "Intake", Activity: "Examine", Timestamp: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)})

	c := ToCorpus(log)
	if len(c.Roots) != 1 {
		t.Fatalf("len(c.Roots) = %d, want 1", len(c.Roots))
	}
	target, ok := c.Roots[0].(*ast.Target)
	if !ok {
		t.Fatalf("root is %T, want *ast.Target", c.Roots[0])
	}
	if len(target.Children) != 1 {
		t.Fatalf("len(target.Children) = %d, want 1", len(target.Children))
	}
	law, ok := target.Children[0].(*ast.Law)
	if !ok {
		t.Fatalf("child is %T, want *ast.Law", target.Children[0])
	}
	if law.Name != "Intake" {
		t.Errorf("law.Name = %q, want Intake", law.Name)
	}
	if len(law.Group) != 2 {
		t.Fatalf("len(law.Group) = %d, want 2", len(law.Group))
	}
	if law.Group[0].DispersalMin != 30 {
		t.Errorf("law.Group[0].DispersalMin = %d, want 30", law.Group[0].DispersalMin)
	}
}

func TestToCorpusSanitizesDuplicateCaseNames(t *testing.T) {
	log := NewEventLog()
	log.AddEvent(Event{CaseID: "case 1", Activity: "A", Timestamp: time.Unix(0, 0)})
	log.AddEvent(Event{CaseID: "case/1", Activity: "A", Timestamp: time.Unix(100, 0)})

	c := ToCorpus(log)
	target := c.Roots[0].(*ast.Target)
	if len(target.Children) != 2 {
		t.Fatalf("len(target.Children) = %d, want 2", len(target.Children))
	}
	first := target.Children[0].(*ast.Law)
	second := target.Children[1].(*ast.Law)
	if first.Name == second.Name {
		t.Errorf("sanitized case names collided: %q", first.Name)
	}
}

func TestToCorpusSkipsEmptyTraces(t *testing.T) {
	log := NewEventLog()
	log.Cases["empty"] = &Trace{CaseID: "empty"}

	c := ToCorpus(log)
	target := c.Roots[0].(*ast.Target)
	if len(target.Children) != 0 {
		t.Errorf("len(target.Children) = %d, want 0", len(target.Children))
	}
}
