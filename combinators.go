package strparse

// Alt tries each parser in order and returns the first success (spec.md
// §4.3 `alt`). On failure, when the causes detail bit is on, it collects
// a snapshot of each child's cause and merges them with GetLatestCause so
// the furthest concrete failure surfaces even though Alt itself reports
// "expected <name>" at its own starting position.
//
// name-propagation: if, on overall failure, the context's current failure
// record sits at this Alt's own starting position and carries no name,
// Alt's name overrides it — matching spec.md §4.3's closing paragraph.
func Alt[T any](name string, parsers ...Parser[T]) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		var siblings []*Cause
		for _, p := range parsers {
			if node != nil {
				before := len(node.Children)
				val, end, ok := p(ctx, input, pos, node)
				if ok {
					return val, end, true
				}
				node.Children = node.Children[:before]
			} else {
				val, end, ok := p(ctx, input, pos, node)
				if ok {
					return val, end, true
				}
			}
			if ctx.Causes {
				siblings = append(siblings, ctx.GetCauseCopy())
			}
		}
		outer := &Cause{Pos: pos, Name: name}
		if ctx.Messages {
			outer.Message = "expected " + name
		}
		if ctx.Causes {
			return zero[T](), pos, ctx.failCause(GetLatestCause(siblings, outer))
		}
		if ctx.Failure != nil && ctx.Failure.Pos == pos && ctx.Failure.Name == "" {
			ctx.Failure.Name = name
		}
		return zero[T](), pos, ctx.fail(pos, outer.Message, name)
	}
}

// Seq runs every parser in order, starting each at the position the
// previous one reached, and returns the slice of child values (spec.md
// §4.4 `seq`; the spec.md §9 Open Question about a mistyped arity-9 tuple
// declaration doesn't arise in Go, since Seq is naturally variadic and
// homogeneous). In tree mode, seq opens its own node at its starting
// position and drops it whole on failure, so a partially-matched seq
// nested under rep/alt never leaves orphan children behind.
func Seq[T any](parsers ...Parser[T]) Parser[[]T] {
	return func(ctx *Context, input string, pos int, node *Node) ([]T, int, bool) {
		child := openChild(node, pos)
		values := make([]T, 0, len(parsers))
		cur := pos
		for _, p := range parsers {
			val, end, ok := p(ctx, input, cur, child)
			if !ok {
				dropLastChild(node)
				return nil, pos, false
			}
			values = append(values, val)
			cur = end
		}
		closeAs(child, cur, values, "")
		return values, cur, true
	}
}

// Check is Seq but discards the child values, returning only whether the
// whole sequence matched (spec.md §4.4 `check`).
func Check[T any](parsers ...Parser[T]) Parser[struct{}] {
	seq := Seq(parsers...)
	return func(ctx *Context, input string, pos int, node *Node) (struct{}, int, bool) {
		_, end, ok := seq(ctx, input, pos, node)
		return struct{}{}, end, ok
	}
}

// Bracket is seq(left, content, right) with the middle value projected
// out (spec.md §4.4 `bracket`, three-parser overload).
func Bracket[L, T, R any](left Parser[L], content Parser[T], right Parser[R]) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		_, p1, ok := left(ctx, input, pos, node)
		if !ok {
			return zero[T](), pos, false
		}
		val, p2, ok := content(ctx, input, p1, node)
		if !ok {
			return zero[T](), pos, false
		}
		_, p3, ok := right(ctx, input, p2, node)
		if !ok {
			return zero[T](), pos, false
		}
		return val, p3, true
	}
}

// BracketAny is the two-arity bracket overload of spec.md §4.4: it tries
// each of ends in turn as the opening delimiter, remembers which matched,
// and requires that exact same delimiter to close the content (e.g. a
// string literal that may open with either `'` or `"` but must close with
// the one it opened with).
func BracketAny[T any](ends []string, content Parser[T]) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		var opened string
		p1 := pos
		matched := false
		for _, e := range ends {
			if len(input)-pos >= len(e) && input[pos:pos+len(e)] == e {
				opened = e
				p1 = pos + len(e)
				matched = true
				break
			}
		}
		if !matched {
			return zero[T](), pos, ctx.fail(pos, expectedMessage(ends), "")
		}
		val, p2, ok := content(ctx, input, p1, node)
		if !ok {
			return zero[T](), pos, false
		}
		if len(input)-p2 < len(opened) || input[p2:p2+len(opened)] != opened {
			return zero[T](), pos, ctx.fail(p2, "expected `"+opened+"`", "")
		}
		return val, p2 + len(opened), true
	}
}

// Rep applies p until it fails, accumulating values, and never fails
// itself (spec.md §4.5 `rep`).
func Rep[T any](p Parser[T]) Parser[[]T] {
	return func(ctx *Context, input string, pos int, node *Node) ([]T, int, bool) {
		var values []T
		cur := pos
		for {
			val, end, ok := p(ctx, input, cur, node)
			if !ok {
				break
			}
			values = append(values, val)
			if end == cur {
				// zero-width success: stop here rather than loop forever,
				// per spec.md §8's "idempotent under zero-width failures"
				// property.
				break
			}
			cur = end
		}
		return values, cur, true
	}
}

// Rep1 is Rep requiring at least one success (spec.md §4.5 `rep1`).
func Rep1[T any](p Parser[T]) Parser[[]T] {
	rep := Rep(p)
	return func(ctx *Context, input string, pos int, node *Node) ([]T, int, bool) {
		values, end, _ := rep(ctx, input, pos, node)
		if len(values) == 0 {
			return nil, pos, ctx.fail(pos, "expected at least one match", "")
		}
		return values, end, true
	}
}

// TrailPolicy controls how RepSep/Rep1Sep treat a trailing separator
// (spec.md §4.5).
type TrailPolicy int

const (
	// TrailAllow permits (but doesn't require) a trailing separator.
	TrailAllow TrailPolicy = iota
	// TrailDisallow forbids a trailing separator: if sep matches after
	// the last element but the element parser then fails, the trailing
	// separator must not be consumed.
	TrailDisallow
	// TrailRequire makes a trailing separator mandatory.
	TrailRequire
)

// RepSep interleaves elem with sep, honoring trail (spec.md §4.5
// `repsep`). Zero elements is a success (empty slice).
func RepSep[T, S any](elem Parser[T], sep Parser[S], trail TrailPolicy) Parser[[]T] {
	return repSepImpl(elem, sep, trail, 0)
}

// Rep1Sep is RepSep requiring at least one element (spec.md §4.5
// `rep1sep`).
func Rep1Sep[T, S any](elem Parser[T], sep Parser[S], trail TrailPolicy) Parser[[]T] {
	return repSepImpl(elem, sep, trail, 1)
}

func repSepImpl[T, S any](elem Parser[T], sep Parser[S], trail TrailPolicy, min int) Parser[[]T] {
	return func(ctx *Context, input string, pos int, node *Node) ([]T, int, bool) {
		var values []T
		cur := pos
		lastElemEnd := pos

		first, end, ok := elem(ctx, input, cur, node)
		if !ok {
			if min > 0 {
				return nil, pos, false
			}
			return values, pos, true
		}
		values = append(values, first)
		cur = end
		lastElemEnd = end

		for {
			prevCur := cur
			_, sepEnd, sepOK := sep(ctx, input, cur, node)
			if !sepOK {
				break
			}
			val, elemEnd, elemOK := elem(ctx, input, sepEnd, node)
			if !elemOK {
				// The separator we just matched has nothing valid after
				// it: it is necessarily a *trailing* separator, since
				// any interior separator is followed by an element.
				switch trail {
				case TrailDisallow:
					// Reproduce the documented historical-bug fix of
					// spec.md §4.5: the returned position is the
					// position *before* the trailing separator attempt,
					// not after it.
					cur = lastElemEnd
					return values, cur, true
				default: // TrailAllow, TrailRequire: consume the trailing separator.
					cur = sepEnd
					return values, cur, true
				}
			}
			values = append(values, val)
			cur = elemEnd
			lastElemEnd = elemEnd
			if cur == prevCur {
				// zero-width sep+elem: stop here rather than loop
				// forever, mirroring rep's own zero-width guard.
				break
			}
		}

		if trail == TrailRequire {
			// The loop above exited because no separator followed the
			// last element at all — a mandatory trailing separator is
			// missing.
			return nil, pos, ctx.fail(cur, "expected trailing separator", "")
		}

		return values, cur, true
	}
}

// Opt returns p's success as a non-nil pointer, or a nil-valued success
// at the unchanged position if p fails (spec.md §4.6 `opt`). Opt never
// itself fails.
func Opt[T any](p Parser[T]) Parser[*T] {
	return func(ctx *Context, input string, pos int, node *Node) (*T, int, bool) {
		val, end, ok := p(ctx, input, pos, node)
		if !ok {
			return nil, pos, true
		}
		v := val
		return &v, end, true
	}
}

// Not succeeds with an empty value at the unchanged position iff p fails;
// otherwise it fails with "unexpected `<consumed substring>`" (spec.md
// §4.6 `not`).
func Not[T any](p Parser[T]) Parser[struct{}] {
	return func(ctx *Context, input string, pos int, node *Node) (struct{}, int, bool) {
		_, end, ok := p(ctx, input, pos, node)
		if ok {
			return struct{}{}, pos, ctx.fail(pos, "unexpected `"+input[pos:end]+"`", "")
		}
		return struct{}{}, pos, true
	}
}

// AndNot runs p; if it succeeds, it runs q at the same starting position;
// if q also succeeds, AndNot fails; otherwise it returns p's result
// (spec.md §4.6 `andNot`).
func AndNot[T, U any](p Parser[T], q Parser[U]) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		val, end, ok := p(ctx, input, pos, node)
		if !ok {
			return zero[T](), pos, false
		}
		if _, _, qok := q(ctx, input, pos, node); qok {
			return zero[T](), pos, ctx.fail(pos, "unexpected `"+input[pos:end]+"`", "")
		}
		return val, end, true
	}
}

// MapFail is a failure-reporting callback type that takes failure text; a
// non-nil return aborts. Map does not use it: Map's callback reports a
// failure by returning a non-nil error.
type MapFail func(message string) error

// Map runs p and, on success, calls f(value, start, end) to produce a
// transformed value. If f returns a non-nil error, Map fails at the
// **end** position of p's match (spec.md §4.7 `map`; spec.md §9's Open
// Question about start-vs-end position is resolved in favor of end,
// since alternatives that fail deeper tend to be further along the input
// and using the match-end position makes such failures bubble up as the
// latest cause more reliably).
func Map[T, U any](p Parser[T], f func(value T, start, end int) (U, error)) Parser[U] {
	return func(ctx *Context, input string, pos int, node *Node) (U, int, bool) {
		val, end, ok := p(ctx, input, pos, node)
		if !ok {
			return zero[U](), pos, false
		}
		out, err := f(val, pos, end)
		if err != nil {
			return zero[U](), pos, ctx.fail(end, err.Error(), "")
		}
		return out, end, true
	}
}

// Verify runs p and then pred(value); a nil error passes the match
// through unchanged, a non-nil error fails at the match-end position with
// that error's text (spec.md §4.7 `verify`).
func Verify[T any](p Parser[T], pred func(T) error) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		val, end, ok := p(ctx, input, pos, node)
		if !ok {
			return zero[T](), pos, false
		}
		if err := pred(val); err != nil {
			return zero[T](), pos, ctx.fail(end, err.Error(), "")
		}
		return val, end, true
	}
}

// Chain runs p, then immediately runs sel(p's value) starting where p
// left off (spec.md §4.7 `chain`). A nil selector is a structural error
// ("chain selection failed").
func Chain[T, U any](p Parser[T], sel func(T) Parser[U]) Parser[U] {
	return func(ctx *Context, input string, pos int, node *Node) (U, int, bool) {
		val, end, ok := p(ctx, input, pos, node)
		if !ok {
			return zero[U](), pos, false
		}
		next := sel(val)
		if next == nil {
			return zero[U](), pos, ctx.fail(end, "chain selection failed", "")
		}
		out, end2, ok := next(ctx, input, end, node)
		if !ok {
			return zero[U](), pos, false
		}
		return out, end2, true
	}
}

// Outer runs p but returns, as its value, the raw substring p matched,
// discarding p's own value (spec.md §4.8 `outer`).
func Outer[T any](p Parser[T]) Parser[string] {
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		_, end, ok := p(ctx, input, pos, node)
		if !ok {
			return "", pos, false
		}
		return input[pos:end], end, true
	}
}

// ReadToParser advances, skipping forward to each occurrence of a rune in
// sigils in turn; at each sigil it attempts q, and on the first q-success
// returns the substring from the entry position up to (not including)
// that match's start (spec.md §4.8 `readToParser`).
func ReadToParser[T any](sigils string, q Parser[T]) Parser[string] {
	cs := newCharSet(sigils)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		p := pos
		for p <= len(input) {
			if p == len(input) || cs.contains(runeAt(input, p)) {
				if _, _, ok := q(ctx, input, p, node); ok {
					return input[pos:p], p, true
				}
			}
			if p == len(input) {
				break
			}
			_, size := decodeRune(input, p)
			p += size
		}
		return "", pos, ctx.fail(pos, "expected a terminator", "")
	}
}

// Read1ToParser is ReadToParser requiring at least one rune consumed
// (spec.md §4.8 `read1ToParser`).
func Read1ToParser[T any](sigils string, q Parser[T]) Parser[string] {
	base := ReadToParser(sigils, q)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		val, end, ok := base(ctx, input, pos, node)
		if !ok {
			return val, end, ok
		}
		if end == pos {
			return "", pos, ctx.fail(pos, "expected at least one char before terminator", "")
		}
		return val, end, true
	}
}

func runeAt(input string, pos int) rune {
	if pos >= len(input) {
		return 0
	}
	r, _ := decodeRune(input, pos)
	return r
}

// Name wraps p so that, on failure, if no name is yet set in the current
// failure record, name is recorded; and, in tree mode, opens a child node
// under the given parent labeled name, closing it with p's matched span
// and value on success (spec.md §4.9 `name`).
func Name[T any](p Parser[T], name string) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		child := openChild(node, pos)
		val, end, ok := p(ctx, input, pos, child)
		if !ok {
			dropLastChild(node)
			if ctx.Failure != nil && ctx.Failure.Name == "" {
				ctx.Failure.Name = name
			}
			return zero[T](), pos, false
		}
		closeAs(child, end, val, name)
		return val, end, true
	}
}
