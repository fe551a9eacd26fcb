// Package pattern builds a suffix array and LCP array over an event-name
// sequence to extract repeated contiguous motifs in O(n log n), the same
// doubling-algorithm-plus-Kasai shape used for recurring-pattern detection
// in this language's analytic core.
package pattern

import (
	"sort"
)

// DefaultMinLength and DefaultTopK are the miner's documented defaults.
const (
	DefaultMinLength = 2
	DefaultTopK      = 10
)

// Motif is a contiguous repeated sub-sequence of event names.
type Motif struct {
	Names     []string
	Length    int
	Frequency int
}

// Options configures the miner.
type Options struct {
	MinLength int
	TopK      int
}

func DefaultOptions() Options {
	return Options{MinLength: DefaultMinLength, TopK: DefaultTopK}
}

// Mine extracts the top-k repeated motifs of length >= min_len from names,
// sorted by (length desc, frequency desc). Motifs are contiguous; no gap
// patterns; single-event motifs are excluded by the minimum length default.
func Mine(names []string, opts Options) []Motif {
	if opts.MinLength < 1 {
		opts.MinLength = DefaultMinLength
	}
	if opts.TopK < 1 {
		opts.TopK = DefaultTopK
	}
	n := len(names)
	if n < opts.MinLength*2 {
		return nil
	}

	rank := encode(names)
	sa := buildSuffixArray(rank)
	lcp := buildLCP(rank, sa)

	// For each lcp[i] >= min_len, the substring starting at SA[i] of length
	// lcp[i] is a repeated motif. Its occurrence count is the size of the
	// maximal run of sa indices around i whose lcp is also >= lcp[i],
	// extended in both directions: the LCP of a contiguous range of
	// (sorted) suffixes is the minimum of the adjacent LCPs inside it. A
	// motif whose occurrences all overlap each other (e.g. "AB" inside
	// "ABAB") is a side effect of a shorter motif repeating and is dropped:
	// it needs at least two occurrences that don't overlap to count as
	// genuinely repeating.
	counts := map[string]int{}
	firstOccurrence := map[string][]string{}

	for i := 1; i < len(sa); i++ {
		length := lcp[i]
		if length < opts.MinLength {
			continue
		}

		lo, hi := i, i
		for lo > 1 && lcp[lo-1] >= length {
			lo--
		}
		for hi < len(sa)-1 && lcp[hi+1] >= length {
			hi++
		}
		group := sa[lo-1 : hi+1]

		if nonOverlapping(group, length) < 2 {
			continue
		}

		motifNames := names[sa[i] : sa[i]+length]
		motifKey := stringsJoin(motifNames)
		if counts[motifKey] < len(group) {
			counts[motifKey] = len(group)
			firstOccurrence[motifKey] = motifNames
		}
	}

	motifs := make([]Motif, 0, len(counts))
	for k, freq := range counts {
		names := firstOccurrence[k]
		motifs = append(motifs, Motif{Names: names, Length: len(names), Frequency: freq})
	}

	sort.Slice(motifs, func(i, j int) bool {
		if motifs[i].Length != motifs[j].Length {
			return motifs[i].Length > motifs[j].Length
		}
		return motifs[i].Frequency > motifs[j].Frequency
	})

	if len(motifs) > opts.TopK {
		motifs = motifs[:opts.TopK]
	}
	return motifs
}

// nonOverlapping returns how many of the starting positions in starts can be
// greedily selected, left to right, such that no two selected occurrences of
// a motif of the given length overlap.
func nonOverlapping(starts []int, length int) int {
	sorted := append([]int(nil), starts...)
	sort.Ints(sorted)

	count := 0
	nextStart := -1
	for _, s := range sorted {
		if s >= nextStart {
			count++
			nextStart = s + length
		}
	}
	return count
}

func stringsJoin(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "\x1f"
		}
		out += n
	}
	return out
}

// encode maps distinct names to small integers in sorted order, the rank
// sequence the suffix array is built over.
func encode(names []string) []int {
	unique := map[string]bool{}
	for _, n := range names {
		unique[n] = true
	}
	sorted := make([]string, 0, len(unique))
	for n := range unique {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)
	idOf := make(map[string]int, len(sorted))
	for i, n := range sorted {
		idOf[n] = i
	}
	ids := make([]int, len(names))
	for i, n := range names {
		ids[i] = idOf[n]
	}
	return ids
}

// buildSuffixArray constructs the suffix array of rank via prefix doubling.
// Each of the O(log n) rounds sorts with sort.Slice, so the total cost is
// O(n log² n).
func buildSuffixArray(s []int) []int {
	n := len(s)
	sa := make([]int, n)
	rank := make([]int, n)
	copy(rank, s)
	for i := range sa {
		sa[i] = i
	}

	tmp := make([]int, n)
	for k := 1; k < n; k *= 2 {
		keyOf := func(i int) (int, int) {
			second := -1
			if i+k < n {
				second = rank[i+k]
			}
			return rank[i], second
		}
		sort.Slice(sa, func(a, b int) bool {
			ra, sa2 := keyOf(sa[a])
			rb, sb2 := keyOf(sa[b])
			if ra != rb {
				return ra < rb
			}
			return sa2 < sb2
		})
		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			pa, qa := keyOf(sa[i-1])
			pb, qb := keyOf(sa[i])
			if pa != pb || qa != qb {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)
		if rank[sa[n-1]] == n-1 {
			break
		}
	}
	return sa
}

// buildLCP constructs the LCP array from s and sa in O(n) via Kasai's
// algorithm.
func buildLCP(s []int, sa []int) []int {
	n := len(s)
	rankOf := make([]int, n)
	for i, pos := range sa {
		rankOf[pos] = i
	}
	lcp := make([]int, n)
	h := 0
	for i := 0; i < n; i++ {
		if rankOf[i] > 0 {
			j := sa[rankOf[i]-1]
			for i+h < n && j+h < n && s[i+h] == s[j+h] {
				h++
			}
			lcp[rankOf[i]] = h
			if h > 0 {
				h--
			}
		} else {
			h = 0
		}
	}
	return lcp
}
