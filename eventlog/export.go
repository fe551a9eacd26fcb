package eventlog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// SimulatedEvent is the minimal shape this package needs from a simulated
// occurrence, kept independent of the simulator's own Event type so this
// package never imports back up the dependency graph.
type SimulatedEvent struct {
	CaseID    string // the owning law's name
	Activity  string // the event name
	Resource  string // resolved dictionary description, if any
	Timestamp int64  // unix seconds, UTC
}

// FromSimulatedEvents builds an EventLog where each law becomes a case and
// each occurrence becomes one activity event, in simulated order.
func FromSimulatedEvents(events []SimulatedEvent) *EventLog {
	log := NewEventLog()
	for _, e := range events {
		log.AddEvent(Event{
			CaseID:     e.CaseID,
			Activity:   e.Activity,
			Resource:   e.Resource,
			Timestamp:  time.Unix(e.Timestamp, 0).UTC(),
			Attributes: make(map[string]interface{}),
		})
	}
	return log
}

// WriteJSONL writes one JSON object per event, ordered by case then by
// occurrence within the case, mirroring the record shape ParseJSONLReader
// expects to read back.
func WriteJSONL(w io.Writer, log *EventLog) error {
	enc := json.NewEncoder(w)
	for _, trace := range log.GetTraces() {
		for _, ev := range trace.Events {
			record := map[string]interface{}{
				"case_id":   ev.CaseID,
				"activity":  ev.Activity,
				"timestamp": ev.Timestamp.Format("2006-01-02T15:04:05Z"),
			}
			if ev.Resource != "" {
				record["resource"] = ev.Resource
			}
			if err := enc.Encode(record); err != nil {
				return fmt.Errorf("writing jsonl record: %w", err)
			}
		}
	}
	return nil
}

// WriteJSONLFile writes a log to a file at path in JSONL form.
func WriteJSONLFile(path string, log *EventLog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating jsonl file: %w", err)
	}
	defer f.Close()
	return WriteJSONL(f, log)
}

// WriteCSV writes one row per event with header case_id,activity,resource,timestamp.
func WriteCSV(w io.Writer, log *EventLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"case_id", "activity", "resource", "timestamp"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, trace := range log.GetTraces() {
		for _, ev := range trace.Events {
			row := []string{ev.CaseID, ev.Activity, ev.Resource, ev.Timestamp.Format("2006-01-02T15:04:05Z")}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes a log to a file at path in CSV form.
func WriteCSVFile(path string, log *EventLog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, log)
}
