package corpus

import (
	"testing"

	"github.com/zenithlang/zenith/parser"
)

const nestedSource = `target T1:
key:"k1"
dictionnary:
d1:"root desc"
target T2:
key:"k2"
dictionnary:
d2[d1]:"override"
law L:
start_date:2025-12-25 at 15:45
period:1.0
Event:
A[d2]:"a"
GROUP:(A 30^30)
end_law
end_target
end_target
law Root:
start_date:2025-01-01 at 00:00
period:1.0
Event:
A:"x"
GROUP:(A 30^30)
end_law`

func TestBuildGenerationsAndPopulation(t *testing.T) {
	tree, err := parser.Parse(nestedSource)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := Build(tree)

	if c.Generation("T1") != 1 {
		t.Errorf("T1 generation = %d, want 1", c.Generation("T1"))
	}
	if c.Generation("T2") != 2 {
		t.Errorf("T2 generation = %d, want 2", c.Generation("T2"))
	}
	if c.Generation("Root") != 0 {
		t.Errorf("Root generation = %d, want 0 (not a target)", c.Generation("Root"))
	}
	if c.MaxGeneration() != 2 {
		t.Errorf("MaxGeneration = %d, want 2", c.MaxGeneration())
	}

	if len(c.ByLawName) != 2 {
		t.Errorf("ByLawName has %d entries, want 2", len(c.ByLawName))
	}
}

func TestResolvedDictionary(t *testing.T) {
	tree, err := parser.Parse(nestedSource)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := Build(tree)

	dict := c.Dictionaries["L"]
	if dict["d1"] != "root desc" {
		t.Errorf("d1 = %q, want %q", dict["d1"], "root desc")
	}
	if dict["d2"] != "override" {
		t.Errorf("d2 = %q, want %q", dict["d2"], "override")
	}
}

func TestValidateDetectsUndeclaredEventReference(t *testing.T) {
	src := `law M:
start_date:2025-01-01 at 00:00
period:1.0
Event:
A:"x"
GROUP:(B 1.0^0)
end_law`
	tree, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := Build(tree)
	diags := Validate(c, ValidateOptions{})
	if !diags.HasErrors(false) {
		t.Fatal("expected a StructuralError for the undeclared GROUP reference")
	}
}

func TestValidateDetectsOutOfRangeStartDate(t *testing.T) {
	src := `law M:
start_date:2025-13-45 at 00:00
period:1.0
Event:
A:"x"
GROUP:(A 1.0^0)
end_law`
	tree, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := Build(tree)
	diags := Validate(c, ValidateOptions{})
	if !diags.HasErrors(false) {
		t.Fatal("expected a StructuralError for a start date outside the calendar range")
	}
}

func TestValidateDetectsOutOfRangeStartTime(t *testing.T) {
	src := `law M:
start_date:2025-01-01 at 25:99
period:1.0
Event:
A:"x"
GROUP:(A 1.0^0)
end_law`
	tree, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := Build(tree)
	diags := Validate(c, ValidateOptions{})
	if !diags.HasErrors(false) {
		t.Fatal("expected a StructuralError for a start time outside the calendar range")
	}
}

func TestValidatePeriodMismatchIsWarningNotError(t *testing.T) {
	src := `law M:
start_date:2025-01-01 at 00:00
period:2.0
Event:
A:"x"
GROUP:(A 30^30)
end_law`
	tree, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	c := Build(tree)
	diags := Validate(c, ValidateOptions{})
	if diags.HasErrors(false) {
		t.Fatal("expected only a warning for a period/group duration mismatch in non-strict mode")
	}
	if len(diags.Warnings()) == 0 {
		t.Fatal("expected at least one warning")
	}
	strictDiags := Validate(c, ValidateOptions{Strict: true})
	if !strictDiags.HasErrors(true) {
		t.Fatal("expected the mismatch to count as an error under strict mode")
	}
}
