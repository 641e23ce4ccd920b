package strparse

import "sort"

// charSet is a normalized (sorted, deduplicated), construction-time-frozen
// set of runes together with a search predicate chosen by set size, per
// spec.md §4.1:
//
//	size    technique
//	0       always false
//	1-10    unrolled straight-line disjunction
//	11-80   linear scan
//	>=81    binary search
//
// Parsers normalize their character sets once, at construction, and cache
// both the sorted slice and the chosen predicate.
type charSet struct {
	runes []rune
	search func(r rune) bool
	// display is the original, human-presented form of the set (e.g. for
	// "expected one of `<chars>`" messages); kept separate from runes
	// because message text should reflect what the caller wrote, not the
	// sorted/deduped internal order.
	display string
}

// newCharSet builds a charSet from a literal character list. No range
// syntax is recognized: "0-9" is the three runes '0', '-' and '9'. This
// constructor just normalizes and picks a search strategy.
func newCharSet(chars string) *charSet {
	runes := []rune(chars)
	sorted := append([]rune(nil), runes...)
	sorted = sortUnique(sorted)
	return &charSet{runes: sorted, search: buildSearch(sorted), display: chars}
}

// newCharSetFold is like newCharSet but includes both the upper and lower
// case variants of every letter, for the case-insensitive primitive
// variants (iskip, iread, ichars, ...).
func newCharSetFold(chars string) *charSet {
	runes := []rune(chars)
	expanded := make([]rune, 0, len(runes)*2)
	for _, r := range runes {
		expanded = append(expanded, r)
		if lo := toLower(r); lo != r {
			expanded = append(expanded, lo)
		}
		if up := toUpper(r); up != r {
			expanded = append(expanded, up)
		}
	}
	expanded = sortUnique(expanded)
	return &charSet{runes: expanded, search: buildSearch(expanded), display: chars}
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// buildSearch selects the search technique described in spec.md §4.1.
func buildSearch(sorted []rune) func(rune) bool {
	switch n := len(sorted); {
	case n == 0:
		return func(rune) bool { return false }
	case n == 1:
		r0 := sorted[0]
		return func(r rune) bool { return r == r0 }
	case n <= 10:
		// Pad to ten entries with the first rune so the check is one fixed
		// disjunction whatever the set size.
		var s [10]rune
		for i := range s {
			s[i] = sorted[0]
		}
		copy(s[:], sorted)
		return func(r rune) bool {
			return r == s[0] || r == s[1] || r == s[2] || r == s[3] || r == s[4] ||
				r == s[5] || r == s[6] || r == s[7] || r == s[8] || r == s[9]
		}
	case n <= 80:
		return func(r rune) bool {
			for _, s := range sorted {
				if r == s {
					return true
				}
			}
			return false
		}
	default:
		return func(r rune) bool {
			i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= r })
			return i < len(sorted) && sorted[i] == r
		}
	}
}

// contains reports whether r is in the set.
func (cs *charSet) contains(r rune) bool {
	if cs == nil {
		return false
	}
	return cs.search(r)
}

// seekWhile advances from `from` while the current rune is in set,
// returning the final byte position. It never mutates input.
func seekWhile(input string, from int, set *charSet) int {
	pos := from
	for pos < len(input) {
		r, size := decodeRune(input, pos)
		if !set.contains(r) {
			break
		}
		pos += size
	}
	return pos
}

// seekUntil advances from `from` while the current rune is NOT in set,
// returning the final byte position (== len(input) if set is never found).
func seekUntil(input string, from int, set *charSet) int {
	pos := from
	for pos < len(input) {
		r, size := decodeRune(input, pos)
		if set.contains(r) {
			break
		}
		pos += size
	}
	return pos
}
