package strparse

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCharSetSizesPickTechnique(t *testing.T) {
	cases := []struct {
		name  string
		chars string
	}{
		{"empty", ""},
		{"single", "a"},
		{"small", "abcdefghij"},
		{"medium", "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789+-"},
		{"large", "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+-=[]{}|;:,.<>?/~`"},
	}
	for _, c := range cases {
		cs := newCharSet(c.chars)
		for _, r := range c.chars {
			assert.True(t, cs.contains(r), "%s: expected %q in set", c.name, r)
		}
		assert.False(t, cs.contains('\x00'))
	}
}

func TestCharSetNormalizedSortedUnique(t *testing.T) {
	cs := newCharSet("ccbaab")
	assert.Equal(t, []rune{'a', 'b', 'c'}, cs.runes)
}

func TestSeekWhileUntil(t *testing.T) {
	digits := newCharSet("0123456789")
	end := seekWhile("123abc", 0, digits)
	assert.Equal(t, 3, end)
	end = seekUntil("abc123", 0, digits)
	assert.Equal(t, 3, end)
}

func TestCharSetFold(t *testing.T) {
	cs := newCharSetFold("abc")
	assert.True(t, cs.contains('A'))
	assert.True(t, cs.contains('a'))
	assert.False(t, cs.contains('d'))
}
