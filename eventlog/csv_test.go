package eventlog

import (
	"strings"
	"testing"
	"time"
)

func TestParseCSVReaderBasic(t *testing.T) {
	data := "case_id,activity,resource,timestamp\n" +
		"C1,A,Alice,2024-01-01T10:00:00Z\n" +
		"C1,B,Bob,2024-01-01T10:30:00Z\n" +
		"C2,A,Alice,2024-01-01T11:00:00Z\n"

	log, err := ParseCSVReader(strings.NewReader(data), DefaultCSVConfig())
	if err != nil {
		t.Fatalf("ParseCSVReader failed: %v", err)
	}

	if len(log.Cases) != 2 {
		t.Errorf("len(log.Cases) = %d, want 2", len(log.Cases))
	}

	trace, ok := log.Cases["C1"]
	if !ok {
		t.Fatal("case C1 not found")
	}
	if len(trace.Events) != 2 {
		t.Fatalf("len(trace.Events) = %d, want 2", len(trace.Events))
	}
	if trace.Events[0].Activity != "A" || trace.Events[0].Resource != "Alice" {
		t.Errorf("unexpected first event: %+v", trace.Events[0])
	}
}

func TestParseCSVReaderSortsByTimestamp(t *testing.T) {
	data := "case_id,activity,resource,timestamp\n" +
		"C1,B,,2024-01-01T11:00:00Z\n" +
		"C1,A,,2024-01-01T10:00:00Z\n"

	log, err := ParseCSVReader(strings.NewReader(data), DefaultCSVConfig())
	if err != nil {
		t.Fatalf("ParseCSVReader failed: %v", err)
	}
	events := log.Cases["C1"].Events
	if events[0].Activity != "A" || events[1].Activity != "B" {
		t.Errorf("events not sorted by timestamp: %v, %v", events[0].Activity, events[1].Activity)
	}
}

func TestParseCSVReaderExtraColumnsBecomeAttributes(t *testing.T) {
	data := "case_id,activity,resource,timestamp,cost\n" +
		"C1,A,Alice,2024-01-01T10:00:00Z,50\n"

	log, err := ParseCSVReader(strings.NewReader(data), DefaultCSVConfig())
	if err != nil {
		t.Fatalf("ParseCSVReader failed: %v", err)
	}
	cost, ok := log.Cases["C1"].Events[0].Attributes["cost"].(float64)
	if !ok || cost != 50 {
		t.Errorf("Attributes[cost] = %v, want 50", log.Cases["C1"].Events[0].Attributes["cost"])
	}
}

func TestParseCSVReaderMissingColumn(t *testing.T) {
	data := "case_id,activity,timestamp\nC1,A,2024-01-01T10:00:00Z\n"
	config := DefaultCSVConfig()
	config.CaseIDColumn = "missing"
	if _, err := ParseCSVReader(strings.NewReader(data), config); err == nil {
		t.Error("expected error for missing configured column")
	}
}

func TestParseCSVReaderEmptyRequiredField(t *testing.T) {
	data := "case_id,activity,timestamp\n,A,2024-01-01T10:00:00Z\n"
	if _, err := ParseCSVReader(strings.NewReader(data), DefaultCSVConfig()); err == nil {
		t.Error("expected error for empty case ID")
	}
}

func TestParseCSVReaderInvalidTimestamp(t *testing.T) {
	data := "case_id,activity,timestamp\nC1,A,not-a-date\n"
	if _, err := ParseCSVReader(strings.NewReader(data), DefaultCSVConfig()); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}

func TestCSVRoundTripThroughCorpus(t *testing.T) {
	data := "case_id,activity,resource,timestamp\n" +
		"Intake,Register,Nurse,2024-01-01T09:00:00Z\n" +
		"Intake,Examine,Doctor,2024-01-01T09:30:00Z\n"

	log, err := ParseCSVReader(strings.NewReader(data), DefaultCSVConfig())
	if err != nil {
		t.Fatalf("ParseCSVReader failed: %v", err)
	}

	c := ToCorpus(log)
	if len(c.Roots) != 1 {
		t.Fatalf("len(c.Roots) = %d, want 1", len(c.Roots))
	}

	var buf strings.Builder
	events := []SimulatedEvent{
		{CaseID: "Intake", Activity: "Register", Resource: "Nurse", Timestamp: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC).Unix()},
		{CaseID: "Intake", Activity: "Examine", Resource: "Doctor", Timestamp: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC).Unix()},
	}
	if err := WriteCSV(&buf, FromSimulatedEvents(events)); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Register") || !strings.Contains(buf.String(), "Examine") {
		t.Errorf("round-tripped CSV missing events: %s", buf.String())
	}
}
