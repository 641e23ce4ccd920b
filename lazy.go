package strparse

// Lazy returns a parser whose target is resolved by calling init exactly
// once, on first use, then cached for every subsequent call (spec.md §3
// `LazyParser`, §9 "Cyclic grammar references"). This is how strparse
// expresses self- and mutually-recursive grammars: a grammar package
// declares a Lazy handle up front, builds the recursive rule bodies that
// reference it, and has init return the fully-built rule.
//
// A handle that somehow gets invoked before its init is assigned (should
// never happen through normal use of Lazy, but guards against a zero
// value handle) evaluates to an always-failing parser with message
// "uninitialized lazy parser", per spec.md §3.
func Lazy[T any](init func() Parser[T]) Parser[T] {
	var resolved Parser[T]
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		if resolved == nil {
			if init == nil {
				return zero[T](), pos, ctx.fail(pos, "uninitialized lazy parser", "")
			}
			resolved = init()
			if resolved == nil {
				return zero[T](), pos, ctx.fail(pos, "uninitialized lazy parser", "")
			}
		}
		return resolved(ctx, input, pos, node)
	}
}

// Ref is a forward-declared parser handle for mutually recursive
// grammars: construct it with NewRef, use *Ref.P as a Parser[T] in other
// rules, and call Bind once the real rule is built. This mirrors the
// teacher's Alias/NewAlias pattern (tools.go) — a mutable pointer that is
// bound later. P reads the bound target on every call and does not cache
// it, so a later Bind takes effect on the next parse.
type Ref[T any] struct {
	target Parser[T]
}

// NewRef creates an unbound Ref. Calling its P parser before Bind behaves
// like an uninitialized LazyParser.
func NewRef[T any]() *Ref[T] {
	return &Ref[T]{}
}

// Bind attaches the real parser body to the Ref.
func (r *Ref[T]) Bind(p Parser[T]) {
	r.target = p
}

// P is the parser value other rules compose with; it forwards to the
// bound target.
func (r *Ref[T]) P(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
	if r.target == nil {
		return zero[T](), pos, ctx.fail(pos, "uninitialized lazy parser", "")
	}
	return r.target(ctx, input, pos, node)
}

// Unwrap resolves r to its currently bound target (spec.md §6 `unwrap`);
// the result is not cached on r. An unbound Ref unwraps to r.P itself, which fails the same way calling
// the Ref directly would.
func (r *Ref[T]) Unwrap() Parser[T] {
	if r.target == nil {
		return r.P
	}
	return r.target
}
