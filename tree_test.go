package strparse

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestOpenCloseChildLifecycle(t *testing.T) {
	root := &Node{Start: 0}
	child := openChild(root, 0)
	assert.Equal(t, 1, len(root.Children))
	closeAs(child, 3, "abc", "word")
	assert.Equal(t, 3, child.End)
	assert.Equal(t, "word", child.Name)
	assert.Equal(t, "abc", child.Result)
}

func TestOpenChildNilParentIsNoop(t *testing.T) {
	assert.Equal(t, (*Node)(nil), openChild(nil, 0))
}

func TestDropLastChildRemovesSpeculativeAttempt(t *testing.T) {
	root := &Node{Start: 0}
	openChild(root, 0)
	openChild(root, 1)
	dropLastChild(root)
	assert.Equal(t, 1, len(root.Children))
}

func TestNodeForPositionReturnsAncestorChain(t *testing.T) {
	root := &Node{Start: 0, End: 10, Name: "document"}
	stmt := &Node{Start: 2, End: 8, Name: "statement"}
	expr := &Node{Start: 4, End: 6, Name: "expr"}
	stmt.Children = []*Node{expr}
	root.Children = []*Node{stmt}

	chain := NodeForPosition(root, 5, true)
	assert.Equal(t, 3, len(chain))
	assert.Equal(t, "document", chain[0].Name)
	assert.Equal(t, "statement", chain[1].Name)
	assert.Equal(t, "expr", chain[2].Name)
}

func TestNodeForPositionOutOfRange(t *testing.T) {
	root := &Node{Start: 0, End: 10}
	assert.Equal(t, 0, len(NodeForPosition(root, 20, false)))
}

func TestNodeForPositionSkipsUnnamedWhenRequested(t *testing.T) {
	root := &Node{Start: 0, End: 10, Name: "document"}
	anon := &Node{Start: 0, End: 10}
	named := &Node{Start: 2, End: 4, Name: "token"}
	anon.Children = []*Node{named}
	root.Children = []*Node{anon}

	chain := NodeForPosition(root, 3, true)
	assert.Equal(t, 2, len(chain))
	assert.Equal(t, "document", chain[0].Name)
	assert.Equal(t, "token", chain[1].Name)
}
