package eventlog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zenithlang/zenith/ast"
)

var eventlogIdentSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]+`)

func sanitizeIdent(s string, fallback string) string {
	out := eventlogIdentSanitizer.ReplaceAllString(strings.TrimSpace(s), "_")
	out = strings.Trim(out, "_")
	if out == "" {
		out = fallback
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "e_" + out
	}
	return out
}

// ToCorpus converts a parsed event log into a synthetic Zenith AST: one
// target holding one law per case, and one GROUP term per event in the
// case's chronological trace. A term's dispersal is the gap in minutes to
// the next event in the same trace, reconstructing the trace's timeline
// under the cursor-advances-by-coherence-plus-dispersal convention the
// simulator uses everywhere else.
func ToCorpus(log *EventLog) *ast.Corpus {
	target := &ast.Target{Name: "Cases", Key: "imported event log"}

	usedNames := map[string]int{}
	for _, trace := range log.GetTraces() {
		if len(trace.Events) == 0 {
			continue
		}
		base := sanitizeIdent(trace.CaseID, "case")
		usedNames[base]++
		name := base
		if n := usedNames[base]; n > 1 {
			name = base + "_" + strconv.Itoa(n)
		}

		first := trace.Events[0]
		law := &ast.Law{
			Name:       name,
			StartDate:  first.Timestamp.Format("2006-01-02"),
			StartTime:  first.Timestamp.Format("15:04:05"),
			EventIndex: map[string]int{},
		}

		declared := map[string]bool{}
		for i, ev := range trace.Events {
			eventName := sanitizeIdent(ev.Activity, "event")
			if !declared[eventName] {
				declared[eventName] = true
				law.EventIndex[eventName] = len(law.Events)
				law.Events = append(law.Events, ast.EventDecl{Name: eventName, Description: ev.Activity})
			}

			var dispersal int64
			if i+1 < len(trace.Events) {
				gap := trace.Events[i+1].Timestamp.Sub(ev.Timestamp)
				dispersal = int64(gap.Minutes())
				if dispersal < 0 {
					dispersal = 0
				}
			}
			law.Group = append(law.Group, ast.GroupTerm{EventRef: eventName, DispersalMin: dispersal})
			law.PeriodMin += dispersal
		}
		if law.PeriodMin == 0 {
			law.PeriodMin = 1
		}

		target.Children = append(target.Children, law)
	}

	return &ast.Corpus{Roots: []ast.Node{target}}
}
