package strparse

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFindLocatesFirstMatch(t *testing.T) {
	ctx := NewContext()
	skippedEnd, matchStart, matchEnd, found := Find(ctx, Str(","), "abc,def", 0)
	assert.True(t, found)
	assert.Equal(t, 3, skippedEnd)
	assert.Equal(t, 3, matchStart)
	assert.Equal(t, 4, matchEnd)
}

func TestFindNoMatch(t *testing.T) {
	ctx := NewContext()
	_, _, _, found := Find(ctx, Str(","), "abcdef", 0)
	assert.False(t, found)
}

func TestSplitProducesSegmentsBetweenSeparators(t *testing.T) {
	ctx := NewContext()
	pairs := Split(ctx, Str(","), "a,bb,ccc")
	assert.Equal(t, 3, len(pairs))
	assert.Equal(t, "a", "a,bb,ccc"[pairs[0].SkippedStart:pairs[0].SkippedEnd])
	assert.Equal(t, "bb", "a,bb,ccc"[pairs[1].SkippedStart:pairs[1].SkippedEnd])
	assert.Equal(t, "ccc", "a,bb,ccc"[pairs[2].SkippedStart:pairs[2].SkippedEnd])
}

func TestSplitNBoundsPieceCount(t *testing.T) {
	ctx := NewContext()
	pairs := SplitN(ctx, Str(","), "a,b,c,d", 2)
	assert.Equal(t, 2, len(pairs))
	assert.Equal(t, "a", "a,b,c,d"[pairs[0].SkippedStart:pairs[0].SkippedEnd])
	assert.Equal(t, "b,c,d", "a,b,c,d"[pairs[1].SkippedStart:pairs[1].SkippedEnd])
}

func TestFindIterYieldsTrailingTail(t *testing.T) {
	ctx := NewContext()
	input := "a,b,c"
	var segments []string
	var lastMatch [2]int
	for skipped, match := range FindIter(ctx, Str(","), input) {
		segments = append(segments, input[skipped[0]:skipped[1]])
		lastMatch = match
	}
	assert.Equal(t, []string{"a", "b", "c"}, segments)
	assert.Equal(t, [2]int{-1, -1}, lastMatch)
}
