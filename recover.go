package strparse

// Recover runs body; if body fails, it records the failure as a non-fatal
// cause and skips forward until skipTo matches, resuming the parse from
// there with a zero value rather than propagating the failure. This is
// the supplemental error-recovery combinator noted in SPEC_FULL.md §4,
// generalized from the teacher's tools.go `Recover` (which does the same
// thing over token slices) to the string tape.
//
// Recover always succeeds: on a body failure it returns the zero value of
// T and the end position of skipTo's match (or end-of-input if skipTo
// never matches).
func Recover[T any](body Parser[T], skipTo Parser[struct{}]) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		val, end, ok := body(ctx, input, pos, node)
		if ok {
			return val, end, true
		}
		recovered := ctx.GetCauseCopy()
		for p := pos; p <= len(input); {
			if _, skipEnd, skipOK := skipTo(ctx, input, p, nil); skipOK {
				ctx.Failure = recovered
				return zero[T](), skipEnd, true
			}
			if p == len(input) {
				break
			}
			_, size := decodeRune(input, p)
			p += size
		}
		ctx.Failure = recovered
		return zero[T](), len(input), true
	}
}
