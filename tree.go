package strparse

// Node is a ParseNode of spec.md §3: the optional side-channel record of a
// named match built while a parse proceeds. Nodes are opened at parser
// entry, which appends them to their parent right away, and closed (End
// and Result filled in) on success; a combinator whose attempt fails
// removes the nodes that attempt opened.
//
// Invariant (spec.md invariant 4): Start <= End, and every child's Start
// >= its parent's Start and End <= its parent's End. open/close below
// enforce this by construction.
type Node struct {
	Name     string
	Primary  bool
	Result   any
	Start    int
	End      int
	Children []*Node
}

// openChild appends and returns a fresh child node under parent, started
// at `at`. If parent is nil (tree mode disabled), openChild returns nil
// and callers must treat a nil *Node as "don't build a tree" throughout —
// every combinator in this package already does, since node is threaded
// as an ordinary (possibly-nil) parameter rather than a global.
func openChild(parent *Node, at int) *Node {
	if parent == nil {
		return nil
	}
	child := &Node{Start: at}
	parent.Children = append(parent.Children, child)
	return child
}

// closeAs finalizes a node with its end position, result, and name. A nil
// node is a no-op so call sites don't need to guard on tree mode.
func closeAs(n *Node, end int, result any, name string) {
	if n == nil {
		return
	}
	n.End = end
	n.Result = result
	if name != "" {
		n.Name = name
	}
}

// dropLastChild removes the most recently opened child of parent. Used by
// Seq, Name and the driver's trim wrapper, which open a child node for an
// attempt that ultimately fails or is discarded, so failed attempts never
// pollute the final tree.
func dropLastChild(parent *Node) {
	if parent == nil || len(parent.Children) == 0 {
		return
	}
	parent.Children = parent.Children[:len(parent.Children)-1]
}

// NodeForPosition walks root looking for the most specific node whose
// [Start, End) span contains pos, per spec.md §6's
// node_for_position(root, pos, named_only). It returns the full ancestor
// chain from outermost to innermost (the supplemental addition noted in
// SPEC_FULL.md §4, needed by spec.md's own scenario 5 which inspects a
// 3-node path, not just the innermost node).
//
// When namedOnly is true, unnamed nodes are skipped from the returned
// chain (but still searched through for their named descendants).
func NodeForPosition(root *Node, pos int, namedOnly bool) []*Node {
	if root == nil || pos < root.Start || pos >= root.End {
		if root != nil && pos == root.Start && root.Start == root.End {
			// zero-width node exactly at pos is still a valid match
		} else {
			return nil
		}
	}
	var chain []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		include := !namedOnly || n.Name != ""
		if include {
			chain = append(chain, n)
		}
		for _, c := range n.Children {
			if pos >= c.Start && (pos < c.End || (pos == c.Start && c.Start == c.End)) {
				walk(c)
				return
			}
		}
	}
	walk(root)
	return chain
}
