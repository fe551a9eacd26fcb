// Package point implements the dot-separated duration notation used
// throughout the grammar: a signed integer count of minutes, rendered as up
// to five dot-joined fields read right-to-left as minutes, hours, days,
// months, and years.
package point

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPoint is returned when a point literal cannot be parsed.
var ErrMalformedPoint = errors.New("malformed point literal")

// multipliers, indexed from the rightmost field: minutes, hours, days,
// months (30 days), years (360 days).
var multipliers = [5]int64{1, 60, 1440, 43200, 518400}

// ToMinutes converts a dotted point literal into a signed integer count of
// minutes. Fields are read right-to-left against multipliers; a leading '-'
// negates the whole value.
func ToMinutes(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty literal", ErrMalformedPoint)
	}

	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
		if s == "" {
			return 0, fmt.Errorf("%w: bare sign", ErrMalformedPoint)
		}
	}

	fields := strings.Split(s, ".")
	if len(fields) > len(multipliers) {
		return 0, fmt.Errorf("%w: too many fields (%d, max %d)", ErrMalformedPoint, len(fields), len(multipliers))
	}

	var total int64
	n := len(fields)
	for i, field := range fields {
		if field == "" {
			return 0, fmt.Errorf("%w: empty field", ErrMalformedPoint)
		}
		for _, c := range field {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("%w: non-digit field %q", ErrMalformedPoint, field)
			}
		}
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMalformedPoint, err)
		}
		// i counts from the left; the multiplier is chosen by distance from
		// the right-hand end of the field list.
		fromRight := n - 1 - i
		total += v * multipliers[fromRight]
	}

	if negative {
		total = -total
	}
	return total, nil
}

// FromMinutes renders the canonical dotted point literal for n minutes:
// |n| is split greedily into years, months, days, hours, and minutes, and
// rendered with at least the days.hours.minutes fields, adding the month
// and year fields only when they are non-zero. Zero renders as "0".
func FromMinutes(n int64) string {
	if n == 0 {
		return "0"
	}
	negative := n < 0
	abs := n
	if negative {
		abs = -abs
	}

	var fields [5]int64
	rem := abs
	for i := len(multipliers) - 1; i >= 0; i-- {
		fields[i] = rem / multipliers[i]
		rem %= multipliers[i]
	}

	// Determine the highest non-zero field (index into multipliers, 0=minutes).
	// The canonical rendering always carries at least a minute/hour/day
	// triple (index 2) so that a bare hour-and-minute value like 90 renders
	// as "0.1.30" rather than the ambiguous-looking "1.30".
	top := 2
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i] != 0 {
			if i > top {
				top = i
			}
			break
		}
	}

	parts := make([]string, top+1)
	for i := 0; i <= top; i++ {
		parts[top-i] = strconv.FormatInt(fields[i], 10)
	}

	out := strings.Join(parts, ".")
	if negative {
		out = "-" + out
	}
	return out
}
