// Package keypath implements the dotted/bracketed key-path grammar named
// as a bundled, illustrative external collaborator of the core combinator
// API: paths like `foo.bar[0]["baz-qux"].qux` made of dot-separated
// identifiers, bracketed numeric indices, and bracketed quoted keys.
package keypath

import (
	"strconv"

	sp "github.com/shibukawa/strparse"
)

// SegmentKind discriminates a Segment's meaning.
type SegmentKind int

const (
	// SegmentName is a `.name` or bare leading identifier.
	SegmentName SegmentKind = iota
	// SegmentIndex is a `[123]` numeric array index.
	SegmentIndex
	// SegmentKey is a `["quoted key"]` map key.
	SegmentKey
)

// Segment is one step of a parsed key path.
type Segment struct {
	Kind  SegmentKind
	Name  string
	Index int
}

const (
	identStart = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	digits     = "0123456789"
	identCont  = identStart + digits
)

func identifier() sp.Parser[string] {
	return sp.Outer(sp.Seq(sp.Chars(1, identStart), sp.Read(identCont)))
}

func dotSegment() sp.Parser[Segment] {
	return sp.Chain(sp.Str("."), func(string) sp.Parser[Segment] {
		return sp.Map(identifier(), func(s string, start, end int) (Segment, error) {
			return Segment{Kind: SegmentName, Name: s}, nil
		})
	})
}

func quotedKey() sp.Parser[string] {
	body := sp.Outer(sp.Rep(sp.NotChars(1, "\"")))
	return sp.Bracket(sp.Str("\""), body, sp.Str("\""))
}

func bracketSegment() sp.Parser[Segment] {
	index := sp.Map(sp.Read1(digits), func(s string, start, end int) (Segment, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: SegmentIndex, Index: n}, nil
	})
	key := sp.Map(quotedKey(), func(s string, start, end int) (Segment, error) {
		return Segment{Kind: SegmentKey, Name: s}, nil
	})
	inner := sp.Alt("bracket segment", index, key)
	return sp.Bracket(sp.Str("["), inner, sp.Str("]"))
}

// New builds the entry-point parser for a key path: a leading identifier
// followed by any number of `.name`, `[N]`, or `["key"]` segments.
func New() sp.Parser[[]Segment] {
	first := sp.Map(identifier(), func(s string, start, end int) (Segment, error) {
		return Segment{Kind: SegmentName, Name: s}, nil
	})
	rest := sp.Rep(sp.Alt("segment", dotSegment(), bracketSegment()))

	return func(ctx *sp.Context, input string, pos int, node *sp.Node) ([]Segment, int, bool) {
		head, p1, ok := first(ctx, input, pos, node)
		if !ok {
			return nil, pos, false
		}
		tail, p2, _ := rest(ctx, input, p1, node)
		return append([]Segment{head}, tail...), p2, true
	}
}
