package strparse

// Parser is the single parsing abstraction of spec.md §3: given an input
// tape, a starting byte position, and (when tree mode is active) the tree
// node it should attach itself under, it produces either a success
// (value, new position) or the canonical failure signal `ok == false`.
// The *content* of a failure — position, message, cause chain, name — is
// never carried in the return value; it lives in ctx (see context.go),
// matching spec.md §3's "Failure: a singleton signal" invariant.
//
// new_position is, by convention, always >= position for every built-in
// in this package (spec.md invariant 1). A user-supplied Map callback
// could in principle violate this; the driver does not guard against it,
// matching spec.md's own caveat.
type Parser[T any] func(ctx *Context, input string, pos int, node *Node) (value T, newPos int, ok bool)

// Unwrap returns p itself: an ordinary parser is already its own resolved
// target, the fixed point Unwrappable describes. Lazy handles (*Ref)
// override this with their own Unwrap that resolves one level of
// indirection, so `Unwrap(Unwrap(p)) == Unwrap(p)` holds either way — the
// second call always lands on a plain Parser[T], which just returns
// itself.
func (p Parser[T]) Unwrap() Parser[T] { return p }

// Unwrappable is implemented by anything Unwrap can resolve: every
// Parser[T] (trivially, to itself) and every lazy reference handle
// (*Ref, to its currently bound target).
type Unwrappable[T any] interface {
	Unwrap() Parser[T]
}

// Unwrap resolves p to its current target parser (spec.md §6 `unwrap`).
// For a plain parser this is a no-op; for a *Ref this forces the same
// one-level resolution the handle's own P method performs, without
// running a parse.
func Unwrap[T any](p Unwrappable[T]) Parser[T] {
	return p.Unwrap()
}

// zero returns the zero value of T, used on failure paths where a value
// must still be returned to satisfy Go's multi-value return shape.
func zero[T any]() T {
	var z T
	return z
}
