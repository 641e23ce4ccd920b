package strparse

import "iter"

// Find returns the first match of parser within input starting at or
// after `from`, along with the byte ranges skipped before and remaining
// after the match. Ported from the teacher's easy.go `Find`, which does
// the same scan over a token slice instead of a string tape.
func Find[T any](ctx *Context, parser Parser[T], input string, from int) (skippedEnd, matchStart, matchEnd int, found bool) {
	for p := from; p <= len(input); {
		if _, end, ok := parser(ctx, input, p, nil); ok {
			return p, p, end, true
		}
		if p == len(input) {
			break
		}
		_, size := decodeRune(input, p)
		p += size
	}
	return from, 0, 0, false
}

// Pair is one segment produced by Split/SplitN: the skipped span before a
// separator match, and the separator's own span.
type Pair struct {
	SkippedStart, SkippedEnd int
	HasSep                   bool
	SepStart, SepEnd         int
}

// Split splits input by sep, returning the spans between separators
// (ported from the teacher's easy.go `Split`).
func Split[T any](ctx *Context, sep Parser[T], input string) []Pair {
	return SplitN(ctx, sep, input, 0)
}

// SplitN is Split bounded to at most n pieces (n <= 0 means unlimited),
// ported from the teacher's easy.go `SplitN`.
func SplitN[T any](ctx *Context, sep Parser[T], input string, n int) []Pair {
	var result []Pair
	rest := 0
	count := 1
	for (n <= 0 || count < n) && rest <= len(input) {
		skippedEnd, matchStart, matchEnd, found := Find(ctx, sep, input, rest)
		if !found {
			break
		}
		result = append(result, Pair{SkippedStart: rest, SkippedEnd: skippedEnd, HasSep: true, SepStart: matchStart, SepEnd: matchEnd})
		rest = matchEnd
		count++
	}
	result = append(result, Pair{SkippedStart: rest, SkippedEnd: len(input)})
	return result
}

// FindIter yields each non-overlapping match of sep within input, in the
// same (skipped, match) shape as the teacher's easy.go `FindIter`, but
// over byte ranges of a string instead of token slices. A match of
// [2]int{-1,-1} marks the final, separator-less tail.
func FindIter[T any](ctx *Context, sep Parser[T], input string) iter.Seq2[[2]int, [2]int] {
	return func(yield func(skipped, match [2]int) bool) {
		rest := 0
		for rest <= len(input) {
			skippedEnd, matchStart, matchEnd, found := Find(ctx, sep, input, rest)
			if !found {
				yield([2]int{rest, len(input)}, [2]int{-1, -1})
				return
			}
			if !yield([2]int{rest, skippedEnd}, [2]int{matchStart, matchEnd}) {
				return
			}
			rest = matchEnd
		}
	}
}
