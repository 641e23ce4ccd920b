package strparse

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func digitParser() Parser[string] { return Read1("0123456789") }

func TestAltReturnsFirstSuccess(t *testing.T) {
	ctx := NewContext()
	p := Alt("a-or-b", Str("a"), Str("b"))
	val, end, ok := p(ctx, "b", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, "b", val)
	assert.Equal(t, 1, end)

	_, _, ok = p(ctx, "c", 0, nil)
	assert.False(t, ok)
	assert.Equal(t, "a-or-b", ctx.Failure.Name)
}

func TestAltCausesMergeFurthestSibling(t *testing.T) {
	ctx := NewContext()
	ctx.Causes = true
	p := Alt("value", Str("true"), Outer(Seq(Str("fa"), Str("lsex"))))
	_, _, ok := p(ctx, "false", 0, nil)
	assert.False(t, ok)
	assert.True(t, len(ctx.Failure.Siblings) > 0 || ctx.Failure.Inner != nil)
}

func TestSeqProducesTuplePosition(t *testing.T) {
	ctx := NewContext()
	p := Seq(Str("foo"), Str("bar"))
	val, end, ok := p(ctx, "foobar", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, []string{"foo", "bar"}, val)
	assert.Equal(t, 6, end)
}

func TestBracketProjectsMiddleValue(t *testing.T) {
	ctx := NewContext()
	p := Bracket(Str("("), digitParser(), Str(")"))
	val, end, ok := p(ctx, "(42)", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, "42", val)
	assert.Equal(t, 4, end)
}

func TestBracketAnySameDelimiterBothEnds(t *testing.T) {
	ctx := NewContext()
	p := BracketAny([]string{"'", "\""}, ReadTo("'\"", false))
	val, end, ok := p(ctx, `'hello'`, 0, nil)
	assert.True(t, ok)
	assert.Equal(t, "hello", val)
	assert.Equal(t, 7, end)

	_, _, ok = p(ctx, `'hello"`, 0, nil)
	assert.False(t, ok)
}

func TestRepNeverFails(t *testing.T) {
	ctx := NewContext()
	p := Rep(Str("a"))
	val, end, ok := p(ctx, "aaab", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "a", "a"}, val)
	assert.Equal(t, 3, end)

	val, end, ok = p(ctx, "b", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, 0, len(val))
	assert.Equal(t, 0, end)
}

func TestRep1RequiresOne(t *testing.T) {
	ctx := NewContext()
	_, _, ok := Rep1(Str("a"))(ctx, "b", 0, nil)
	assert.False(t, ok)
}

func TestRepSepTrailAllow(t *testing.T) {
	ctx := NewContext()
	p := RepSep(Read1("abcdefghijklmnopqrstuvwxyz"), Str(","), TrailAllow)
	val, end, ok := p(ctx, "foo,bar,baz,", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, []string{"foo", "bar", "baz"}, val)
	assert.Equal(t, 12, end)
}

func TestRepSepTrailDisallowRewindsBeforeSeparator(t *testing.T) {
	ctx := NewContext()
	word := Read1("abcdefghijklmnopqrstuvwxyz")
	p := Rep1Sep(word, Str(" "), TrailDisallow)
	val, end, ok := p(ctx, "foo foo foo ", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, 3, len(val))
	assert.Equal(t, 11, end) // rewound to just after the last element, not past the trailing space
}

func TestRepSepTrailDisallowThroughDriverFailsOnConsumeAll(t *testing.T) {
	ctx := NewContext()
	word := Read1("abcdefghijklmnopqrstuvwxyz")
	p := Rep1Sep(word, Str(" "), TrailDisallow)
	d := New(p, WithConsumeAll(true))
	_, err := d.Parse(ctx, "foo foo foo ")
	assert.Error(t, err) // scenario 6: trailing separator present -> consume_all fails

	_, err = d.Parse(NewContext(), "foo foo foo")
	assert.NoError(t, err) // scenario 6: no trailing separator -> success
}

func TestRepSepTrailRequire(t *testing.T) {
	ctx := NewContext()
	p := RepSep(Str("a"), Str(","), TrailRequire)
	_, _, ok := p(ctx, "a,a,a", 0, nil)
	assert.False(t, ok) // missing mandatory trailing separator

	val, end, ok := p(ctx, "a,a,a,", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, 3, len(val))
	assert.Equal(t, 6, end)
}

func TestRepSepZeroWidthSepAndElemDoesNotLoopForever(t *testing.T) {
	ctx := NewContext()
	zeroWidthSep := Opt(Str(";")) // always succeeds, width 0 when ";" absent
	zeroWidthElem := Opt(Str("x"))
	p := RepSep(zeroWidthElem, zeroWidthSep, TrailAllow)
	val, end, ok := p(ctx, "ab", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, 0, end)
	assert.True(t, len(val) <= 2) // terminates instead of looping forever
}

func TestSeqTruncatesPartialChildrenOnFailure(t *testing.T) {
	ctx := NewContext()
	root := &Node{Start: 0}
	p := Seq(Str("foo"), Str("bar"))
	_, _, ok := p(ctx, "foobaz", 0, root)
	assert.False(t, ok)
	assert.Equal(t, 0, len(root.Children)) // the seq's own speculative node was dropped whole
}

func TestSeqOpensOwnNodeOnSuccess(t *testing.T) {
	ctx := NewContext()
	root := &Node{Start: 0}
	p := Seq(Str("foo"), Str("bar"))
	_, end, ok := p(ctx, "foobar", 0, root)
	assert.True(t, ok)
	assert.Equal(t, 1, len(root.Children))
	assert.Equal(t, 0, root.Children[0].Start)
	assert.Equal(t, end, root.Children[0].End)
}

func TestOptAlwaysSucceeds(t *testing.T) {
	ctx := NewContext()
	p := Opt(Str("a"))
	val, end, ok := p(ctx, "b", 0, nil)
	assert.True(t, ok)
	assert.Zero(t, val)
	assert.Equal(t, 0, end)

	val, end, ok = p(ctx, "a", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, "a", *val)
	assert.Equal(t, 1, end)
}

func TestNotSucceedsOnlyWhenInnerFails(t *testing.T) {
	ctx := NewContext()
	p := Not(Str("a"))
	_, end, ok := p(ctx, "b", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, 0, end)

	_, _, ok = p(ctx, "a", 0, nil)
	assert.False(t, ok)
}

func TestAndNot(t *testing.T) {
	ctx := NewContext()
	p := AndNot(Read1("abcdefghijklmnopqrstuvwxyz"), Str("if"))
	_, _, ok := p(ctx, "if", 0, nil)
	assert.False(t, ok)

	val, end, ok := p(ctx, "identifier", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, "identifier", val)
	assert.Equal(t, 10, end)
}

func TestMapFailureAtEndPosition(t *testing.T) {
	ctx := NewContext()
	p := Map(Chars(3, "0123456789"), func(s string, start, end int) (int, error) {
		if s[0] == '0' {
			return 0, fmt.Errorf("cannot start with 0")
		}
		return 0, nil
	})
	_, _, ok := p(ctx, "012", 0, nil)
	assert.False(t, ok)
	assert.Equal(t, 3, ctx.Failure.Pos) // end of match, not start
	assert.Contains(t, ctx.Failure.Message, "cannot start with 0")
}

func TestVerify(t *testing.T) {
	ctx := NewContext()
	p := Verify(digitParser(), func(s string) error {
		if len(s) > 2 {
			return fmt.Errorf("too many digits")
		}
		return nil
	})
	_, _, ok := p(ctx, "12345", 0, nil)
	assert.False(t, ok)
}

func TestChainRunsSelectorImmediately(t *testing.T) {
	ctx := NewContext()
	p := Chain(digitParser(), func(n string) Parser[string] {
		if n == "2" {
			return Str("two")
		}
		return Str("???")
	})
	val, end, ok := p(ctx, "2two", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, "two", val)
	assert.Equal(t, 4, end)
}

func TestOuterReturnsMatchedSubstring(t *testing.T) {
	ctx := NewContext()
	p := Outer(Seq(Str("foo"), Str("bar")))
	val, end, ok := p(ctx, "foobar", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, "foobar", val)
	assert.Equal(t, 6, end)
}

func TestReadToParserStopsAtStructuredTerminator(t *testing.T) {
	ctx := NewContext()
	p := ReadToParser(":", Str(":"))
	val, end, ok := p(ctx, "key:value", 0, nil)
	assert.True(t, ok)
	assert.Equal(t, "key", val)
	assert.Equal(t, 3, end)
}

func TestNameAttachesFailureName(t *testing.T) {
	ctx := NewContext()
	p := Name(Str("true"), "boolean")
	_, _, ok := p(ctx, "false", 0, nil)
	assert.False(t, ok)
	assert.Equal(t, "boolean", ctx.Failure.Name)
}
