// Package ical converts RFC 5545 VCALENDAR/VEVENT streams into a synthetic
// Zenith AST: one root target per calendar and one law per VEVENT, with all
// datetimes normalized to naive UTC before anything downstream runs.
package ical

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/zenithlang/zenith/ast"
)

var identSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// sanitizeIdent turns an arbitrary VEVENT SUMMARY into a valid identifier:
// non-identifier characters become underscores, and a leading digit is
// prefixed with "e_".
func sanitizeIdent(s string) string {
	out := identSanitizer.ReplaceAllString(strings.TrimSpace(s), "_")
	out = strings.Trim(out, "_")
	if out == "" {
		out = "event"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "e_" + out
	}
	return out
}

type rawEvent struct {
	summary    string
	categories []string
	dtStart    time.Time
	dtEnd      time.Time
}

// Import parses an .ics byte stream into a synthetic *ast.Corpus. Events
// with a TZID-qualified DTSTART are shifted into UTC via the IANA
// database; floating (no TZID, no trailing Z) values are assumed already
// UTC.
func Import(data []byte) (*ast.Corpus, error) {
	lines := unfoldLines(data)

	calName := "calendar"
	var events []rawEvent
	var cur *rawEvent
	categorySet := map[string]bool{}
	var categoryOrder []string

	for _, line := range lines {
		name, params, value := splitLine(line)
		switch name {
		case "X-WR-CALNAME":
			calName = value
		case "BEGIN":
			if value == "VEVENT" {
				cur = &rawEvent{}
			}
		case "END":
			if value == "VEVENT" && cur != nil {
				events = append(events, *cur)
				cur = nil
			}
		case "SUMMARY":
			if cur != nil {
				cur.summary = value
			}
		case "CATEGORIES":
			if cur != nil {
				for _, c := range strings.Split(value, ",") {
					c = strings.TrimSpace(c)
					if c != "" {
						cur.categories = append(cur.categories, c)
						if !categorySet[c] {
							categorySet[c] = true
							categoryOrder = append(categoryOrder, c)
						}
					}
				}
			}
		case "DTSTART":
			if cur != nil {
				t, err := parseICalTime(value, params)
				if err != nil {
					return nil, err
				}
				cur.dtStart = t
			}
		case "DTEND":
			if cur != nil {
				t, err := parseICalTime(value, params)
				if err != nil {
					return nil, err
				}
				cur.dtEnd = t
			}
		}
	}

	target := &ast.Target{Name: sanitizeIdent(calName), Key: calName}
	for _, cat := range categoryOrder {
		target.Dictionary = append(target.Dictionary, ast.DictEntry{
			LocalKey:    sanitizeIdent(cat),
			Description: cat,
		})
	}

	usedNames := map[string]int{}
	for _, ev := range events {
		name := sanitizeIdent(ev.summary)
		if usedNames[name] > 0 {
			usedNames[name]++
			name = fmt.Sprintf("%s_%d", name, usedNames[name])
		} else {
			usedNames[name] = 1
		}

		span := ev.dtEnd.Sub(ev.dtStart)
		spanMinutes := int64(span / time.Minute)
		if spanMinutes < 0 {
			spanMinutes = 0
		}

		eventName := "E"
		law := &ast.Law{
			Name:       name,
			StartDate:  ev.dtStart.Format("2006-01-02"),
			StartTime:  ev.dtStart.Format("15:04:05"),
			PeriodMin:  spanMinutes,
			EventIndex: map[string]int{eventName: 0},
			Events: []ast.EventDecl{{
				Name:        eventName,
				Description: ev.summary,
			}},
			Group: []ast.GroupTerm{{
				EventRef:     eventName,
				CoherenceMin: spanMinutes,
				DispersalMin: 0,
			}},
		}
		target.Children = append(target.Children, law)
	}

	return &ast.Corpus{Roots: []ast.Node{target}}, nil
}

// unfoldLines joins RFC 5545 folded continuation lines (a line beginning
// with a single space or tab continues the previous one) and splits on
// CRLF/LF.
func unfoldLines(data []byte) []string {
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	var logical []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(logical) > 0 {
			logical[len(logical)-1] += line[1:]
			continue
		}
		logical = append(logical, line)
	}
	return logical
}

// splitLine splits a single unfolded iCalendar content line into its
// property name, parameter map, and value.
func splitLine(line string) (name string, params map[string]string, value string) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "", nil, ""
	}
	head := line[:colon]
	value = line[colon+1:]
	parts := strings.Split(head, ";")
	name = parts[0]
	params = map[string]string{}
	for _, p := range parts[1:] {
		if eq := strings.IndexByte(p, '='); eq >= 0 {
			params[p[:eq]] = p[eq+1:]
		}
	}
	return name, params, value
}

func parseICalTime(value string, params map[string]string) (time.Time, error) {
	value = strings.TrimSpace(value)
	layout := "20060102T150405"
	floating := true
	if strings.HasSuffix(value, "Z") {
		floating = false
		value = strings.TrimSuffix(value, "Z")
	}

	t, err := time.Parse(layout, value)
	if err != nil {
		// all-day DATE value with no time component
		t, err = time.Parse("20060102", value)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid iCalendar datetime %q: %w", value, err)
		}
	}

	if tzid, ok := params["TZID"]; ok && tzid != "" {
		loc, err := time.LoadLocation(tzid)
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown TZID %q: %w", tzid, err)
		}
		local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
		return local.UTC(), nil
	}

	if floating {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}
	return t.UTC(), nil
}
