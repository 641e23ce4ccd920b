package strparse

import "strings"

// Skip advances over any runes in chars, never failing (spec.md §4.2
// `skip`). It returns the skipped span, mostly useful when wrapped in
// Name or composed where the value is discarded via Check.
func Skip(chars string) Parser[string] {
	cs := newCharSet(chars)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end := seekWhile(input, pos, cs)
		return input[pos:end], end, true
	}
}

// Skip1 is Skip but fails (consuming nothing) if no rune was skipped.
func Skip1(chars string) Parser[string] {
	cs := newCharSet(chars)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end := seekWhile(input, pos, cs)
		if end == pos {
			return "", pos, ctx.fail(pos, "expected at least one of `"+chars+"`", "")
		}
		return input[pos:end], end, true
	}
}

// Read is an alias of Skip kept distinct per spec.md's naming so call
// sites can document intent ("I want the matched text") even though the
// behavior is identical.
func Read(chars string) Parser[string] {
	cs := newCharSet(chars)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end := seekWhile(input, pos, cs)
		return input[pos:end], end, true
	}
}

// Read1 requires at least one matching rune.
func Read1(chars string) Parser[string] {
	cs := newCharSet(chars)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end := seekWhile(input, pos, cs)
		if end == pos {
			return "", pos, ctx.fail(pos, "expected at least one of `"+chars+"`", "")
		}
		return input[pos:end], end, true
	}
}

// Chars reads exactly n runes, each of which must be in allowed when
// allowed is non-empty (spec.md §4.2 `chars`).
func Chars(n int, allowed string) Parser[string] {
	var cs *charSet
	if allowed != "" {
		cs = newCharSet(allowed)
	}
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		p := pos
		for i := 0; i < n; i++ {
			if p >= len(input) {
				return "", pos, ctx.fail(p, "unexpected end of input", "")
			}
			r, size := decodeRune(input, p)
			if cs != nil && !cs.contains(r) {
				return "", pos, ctx.fail(p, "unexpected char", "")
			}
			p += size
		}
		return input[pos:p], p, true
	}
}

// NotChars reads exactly n runes, none of which may be in disallowed
// (spec.md §4.2 `notchars`).
func NotChars(n int, disallowed string) Parser[string] {
	cs := newCharSet(disallowed)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		p := pos
		for i := 0; i < n; i++ {
			if p >= len(input) {
				return "", pos, ctx.fail(p, "unexpected end of input", "")
			}
			r, size := decodeRune(input, p)
			if cs.contains(r) {
				return "", pos, ctx.fail(p, "unexpected char", "")
			}
			p += size
		}
		return input[pos:p], p, true
	}
}

// ReadTo consumes until a rune in stop is found; if atEOF is true, running
// off the end of input also stops the scan successfully (spec.md §4.2
// `readTo`).
func ReadTo(stop string, atEOF bool) Parser[string] {
	cs := newCharSet(stop)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end := seekUntil(input, pos, cs)
		if end >= len(input) && !atEOF {
			failPos := len(input)
			if failPos > 0 {
				failPos--
			}
			return "", pos, ctx.fail(failPos, "expected one of `"+stop+"` before end of input", "")
		}
		return input[pos:end], end, true
	}
}

// Read1To is ReadTo requiring at least one consumed rune.
func Read1To(stop string, atEOF bool) Parser[string] {
	base := ReadTo(stop, atEOF)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		val, end, ok := base(ctx, input, pos, node)
		if !ok {
			return val, end, ok
		}
		if end == pos {
			return "", pos, ctx.fail(pos, "expected at least one of `"+stop+"` before end of input", "")
		}
		return val, end, true
	}
}

// StopState supplies a dynamically-computed stop set to ReadToDyn on
// every invocation — e.g. a CSV grammar whose field/record separators are
// configured at runtime rather than fixed at parser-construction time.
type StopState struct {
	Stop func() string
}

// ReadToDyn is ReadTo, but the stop set is recomputed from state.Stop() on
// every call rather than fixed at construction (spec.md §4.2 `readToDyn`).
func ReadToDyn(state *StopState, atEOF bool) Parser[string] {
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		cs := newCharSet(state.Stop())
		end := seekUntil(input, pos, cs)
		if end >= len(input) && !atEOF {
			failPos := len(input)
			if failPos > 0 {
				failPos--
			}
			return "", pos, ctx.fail(failPos, "expected one of `"+state.Stop()+"` before end of input", "")
		}
		return input[pos:end], end, true
	}
}

// Peek returns the next n runes without advancing the cursor (spec.md
// §4.2 `peek`).
func Peek(n int) Parser[string] {
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end, ok := advanceRunes(input, pos, n)
		if !ok {
			return "", pos, ctx.fail(pos, "unexpected end of input", "")
		}
		return input[pos:end], pos, true
	}
}

// Str matches any one of the listed literal strings, longest-first so a
// shorter literal that is a prefix of a longer one never shadows it, and
// returns the matched text (spec.md §4.2 `str`).
func Str(literals ...string) Parser[string] {
	ordered := longestFirst(literals)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		for _, s := range ordered {
			if strings.HasPrefix(input[pos:], s) {
				return s, pos + len(s), true
			}
		}
		return "", pos, ctx.fail(pos, expectedMessage(literals), "")
	}
}

// IStr is the case-insensitive variant of Str: it matches any of literals
// ignoring case, and normalizes the matched text to the casing of the
// literal that was listed (spec.md §4.2 `istr`).
func IStr(literals ...string) Parser[string] {
	ordered := longestFirst(literals)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		for _, s := range ordered {
			if len(input)-pos < len(s) {
				continue
			}
			if strings.EqualFold(input[pos:pos+len(s)], s) {
				return s, pos + len(s), true
			}
		}
		return "", pos, ctx.fail(pos, expectedMessage(literals), "")
	}
}

func expectedMessage(literals []string) string {
	if len(literals) == 1 {
		return "expected `" + literals[0] + "`"
	}
	return "expected one of " + strings.Join(quoteEach(literals), ",")
}

func quoteEach(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = "`" + s + "`"
	}
	return out
}

// longestFirst returns literals sorted so the longest strings are tried
// first, without mutating the caller's slice.
func longestFirst(literals []string) []string {
	out := append([]string(nil), literals...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// --- case-insensitive character-class variants (spec.md §4.2) ---

// ISkip is Skip over a fold-expanded character set (matches both cases of
// any letters in chars).
func ISkip(chars string) Parser[string] {
	cs := newCharSetFold(chars)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end := seekWhile(input, pos, cs)
		return input[pos:end], end, true
	}
}

// ISkip1 is Skip1 over a fold-expanded character set.
func ISkip1(chars string) Parser[string] {
	cs := newCharSetFold(chars)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end := seekWhile(input, pos, cs)
		if end == pos {
			return "", pos, ctx.fail(pos, "expected at least one of `"+chars+"`", "")
		}
		return input[pos:end], end, true
	}
}

// IRead is Read over a fold-expanded character set.
func IRead(chars string) Parser[string] { return ISkip(chars) }

// IRead1 is Read1 over a fold-expanded character set.
func IRead1(chars string) Parser[string] { return ISkip1(chars) }

// IChars is Chars whose allowed set is fold-expanded.
func IChars(n int, allowed string) Parser[string] {
	var cs *charSet
	if allowed != "" {
		cs = newCharSetFold(allowed)
	}
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		p := pos
		for i := 0; i < n; i++ {
			if p >= len(input) {
				return "", pos, ctx.fail(p, "unexpected end of input", "")
			}
			r, size := decodeRune(input, p)
			if cs != nil && !cs.contains(r) {
				return "", pos, ctx.fail(p, "unexpected char", "")
			}
			p += size
		}
		return input[pos:p], p, true
	}
}

// NotIChars is NotChars whose disallowed set is fold-expanded.
func NotIChars(n int, disallowed string) Parser[string] {
	cs := newCharSetFold(disallowed)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		p := pos
		for i := 0; i < n; i++ {
			if p >= len(input) {
				return "", pos, ctx.fail(p, "unexpected end of input", "")
			}
			r, size := decodeRune(input, p)
			if cs.contains(r) {
				return "", pos, ctx.fail(p, "unexpected char", "")
			}
			p += size
		}
		return input[pos:p], p, true
	}
}

// IReadTo is ReadTo whose stop set is fold-expanded.
func IReadTo(stop string, atEOF bool) Parser[string] {
	cs := newCharSetFold(stop)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		end := seekUntil(input, pos, cs)
		if end >= len(input) && !atEOF {
			failPos := len(input)
			if failPos > 0 {
				failPos--
			}
			return "", pos, ctx.fail(failPos, "expected one of `"+stop+"` before end of input", "")
		}
		return input[pos:end], end, true
	}
}

// IRead1To is Read1To whose stop set is fold-expanded.
func IRead1To(stop string, atEOF bool) Parser[string] {
	base := IReadTo(stop, atEOF)
	return func(ctx *Context, input string, pos int, node *Node) (string, int, bool) {
		val, end, ok := base(ctx, input, pos, node)
		if !ok {
			return val, end, ok
		}
		if end == pos {
			return "", pos, ctx.fail(pos, "expected at least one of `"+stop+"` before end of input", "")
		}
		return val, end, true
	}
}
