package main

import (
	"log/slog"
	"time"

	"github.com/zenithlang/zenith/diagnostics"
	"github.com/zenithlang/zenith/simulate"
)

// boundedEventNames extracts event names for pattern mining, truncating to
// the configured maximum sequence length rather than letting the miner run
// unbounded over an arbitrarily large population.
func boundedEventNames(events []simulate.Event) []string {
	limit := appConfig.MaxSequenceLength
	if limit > 0 && len(events) > limit {
		slog.Warn("truncating event sequence for pattern mining", "length", len(events), "limit", limit)
		events = events[:limit]
	}
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName
	}
	return names
}

type diagnosticJSON struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

func toDiagnosticJSON(diags diagnostics.List) []diagnosticJSON {
	out := make([]diagnosticJSON, 0, len(diags))
	for _, d := range diags {
		out = append(out, diagnosticJSON{
			Kind:     string(d.Kind),
			Severity: string(d.Severity),
			Message:  d.Message,
			Line:     d.Span.Line,
			Column:   d.Span.Column,
		})
	}
	return out
}

type simulatedEventJSON struct {
	EventName       string    `json:"event_name"`
	Tag             string    `json:"tag,omitempty"`
	Description     string    `json:"description"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int64     `json:"duration_minutes"`
	CoherenceMin    int64     `json:"coherence_minutes"`
	DispersalMin    int64     `json:"dispersal_minutes"`
	LawName         string    `json:"law_name"`
	TargetChain     []string  `json:"target_chain,omitempty"`
}

func toEventJSON(events []simulate.Event) []simulatedEventJSON {
	out := make([]simulatedEventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, simulatedEventJSON{
			EventName:       e.EventName,
			Tag:             e.Tag,
			Description:     e.Description,
			Start:           e.Start,
			End:             e.End,
			DurationMinutes: e.DurationMinutes,
			CoherenceMin:    e.CoherenceMin,
			DispersalMin:    e.DispersalMin,
			LawName:         e.LawName,
			TargetChain:     e.TargetChain,
		})
	}
	return out
}
