// Package simulate expands a law's GROUP expression into an ordered list of
// time-stamped event instances.
package simulate

import (
	"time"

	"github.com/zenithlang/zenith/ast"
	"github.com/zenithlang/zenith/corpus"
	"github.com/zenithlang/zenith/point"
)

// Event is one simulated occurrence of a law's group term.
type Event struct {
	EventName       string
	Tag             string
	Description     string
	Start           time.Time
	End             time.Time
	DurationMinutes int64
	CoherenceMin    int64
	DispersalMin    int64
	LawName         string
	TargetChain     []string
}

// Law expands a single law's GROUP expression into an ordered []Event.
// The cursor advances by coherence+dispersal after every term, including
// the last; no I/O, no clock access, purely a function of the law and its
// resolved context.
func Law(c *corpus.Corpus, l *ast.Law) ([]Event, error) {
	date, err := point.ParseDate(l.StartDate)
	if err != nil {
		return nil, err
	}
	clock, err := point.ParseTime(l.StartTime)
	if err != nil {
		return nil, err
	}
	cursor := point.Combine(date, clock)

	dict := c.Dictionaries[l.Name]
	chain := c.TargetChain[l.Name]

	events := make([]Event, 0, len(l.Group))
	for _, term := range l.Group {
		decl, _ := l.EventByName(term.EventRef)
		d := term.CoherenceMin + term.DispersalMin
		end := point.AddMinutes(cursor, d)

		description := decl.Description
		if decl.Tag != "" {
			if resolved, ok := dict[decl.Tag]; ok {
				description = resolved
			}
		}

		events = append(events, Event{
			EventName:       term.EventRef,
			Tag:             decl.Tag,
			Description:     description,
			Start:           cursor,
			End:             end,
			DurationMinutes: d,
			CoherenceMin:    term.CoherenceMin,
			DispersalMin:    term.DispersalMin,
			LawName:         l.Name,
			TargetChain:     chain,
		})

		cursor = end
	}
	return events, nil
}

// Names extracts the event-name sequence from a simulated event list, the
// input the pattern miner and several metrics consume.
func Names(events []Event) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName
	}
	return names
}
