package strparse

import "sort"

// Cause describes why a parser failed at a specific position. Causes form
// a tree: Inner is a one-level-down "this failed because..." chain,
// Siblings are peer failures (e.g. every alternative of an Alt that
// failed).
type Cause struct {
	Pos      int
	Message  string
	Name     string
	Inner    *Cause
	Siblings []*Cause
}

// Copy returns a deep copy of c, safe to retain past the next failure.
func (c *Cause) Copy() *Cause {
	if c == nil {
		return nil
	}
	cp := &Cause{Pos: c.Pos, Message: c.Message, Name: c.Name, Inner: c.Inner.Copy()}
	if c.Siblings != nil {
		cp.Siblings = make([]*Cause, len(c.Siblings))
		for i, s := range c.Siblings {
			cp.Siblings[i] = s.Copy()
		}
	}
	return cp
}

// Context carries the process-wide state of spec.md §5 threaded explicitly
// through every parse call, per spec.md §9's design note for systems
// languages: the failure record, the latest-cause record, and the two
// independent detail bits. It is not safe for concurrent use by more than
// one in-flight parse; give each goroutine its own Context.
type Context struct {
	// Messages enables human-readable failure message construction.
	Messages bool
	// Causes enables causal-chain (Cause tree) capture.
	Causes bool

	// Failure is the current failure record, overwritten on every
	// failure.
	Failure *Cause
	// Latest is the furthest-position failure observed since the last
	// ResetLatest call.
	Latest *Cause

	// MaxDepth is the nesting limit checkDepth enforces; 0 means
	// unbounded. No parser in this package calls checkDepth, so MaxDepth
	// does not limit a parse.
	MaxDepth int
	depth    int

	// Tracer receives structured trace events when non-nil. See trace.go.
	Tracer Tracer
}

// NewContext returns a Context with the messages detail bit on (matching
// the teacher's NewParseContext default of an always-on diagnostic mode)
// and MaxDepth set to 10000.
func NewContext() *Context {
	return &Context{Messages: true, MaxDepth: 10000}
}

// Detail returns the two independent detail bits.
func (c *Context) Detail() (messages, causes bool) {
	return c.Messages, c.Causes
}

// SetDetail sets the two independent detail bits, returning the previous
// values so callers can restore them (the driver uses this to swap detail
// flags around a single parse and restore them afterwards, per spec.md
// §4.10 step 3).
func (c *Context) SetDetail(messages, causes bool) (prevMessages, prevCauses bool) {
	prevMessages, prevCauses = c.Messages, c.Causes
	c.Messages, c.Causes = messages, causes
	return
}

// Fail records a failure at pos with the given message and optional name,
// returning the canonical `false` outcome sentinel so call sites can
// write `return zero, pos, ctx.fail(pos, "...", "")`.
//
// When the messages detail bit is off, the message and name are not
// stored. Callers in this package (see primitives.go) still build their
// message strings before calling fail whether or not the bit is on; only
// the storing is skipped.
func (c *Context) fail(pos int, message, name string) bool {
	cause := &Cause{Pos: pos}
	if c.Messages {
		cause.Message = message
		cause.Name = name
	}
	c.Failure = cause
	c.touchLatest(cause)
	return false
}

// failCause records a pre-built Cause (used by combinators that construct
// richer causes themselves, e.g. alt's sibling-merging).
func (c *Context) failCause(cause *Cause) bool {
	c.Failure = cause
	c.touchLatest(cause)
	return false
}

func (c *Context) touchLatest(cause *Cause) {
	if cause == nil {
		return
	}
	if c.Latest == nil || cause.Pos >= c.Latest.Pos {
		c.Latest = cause
	}
}

// ResetLatest clears the latest-cause record. The driver calls this at the
// start of every parse when the messages bit is on (spec.md §4.10 step 5).
func (c *Context) ResetLatest() {
	c.Latest = nil
}

// GetCause returns the current failure record (not a copy — it is
// overwritten on the next failure).
func (c *Context) GetCause() *Cause {
	return c.Failure
}

// IsFailure reports whether c currently holds a failure record, i.e.
// whether the most recent primitive or combinator call against it failed
// (spec.md §6 `is_failure`).
func (c *Context) IsFailure() bool {
	return c.Failure != nil
}

// GetCauseCopy returns a deep copy of the current failure record, safe to
// retain across subsequent parser calls.
func (c *Context) GetCauseCopy() *Cause {
	return c.Failure.Copy()
}

// checkDepth bounds recursion the way the teacher's
// CheckDepthAndIncrement/DecrementDepth pair does.
func (c *Context) checkDepth(pos int) bool {
	if c.MaxDepth > 0 && c.depth >= c.MaxDepth {
		c.fail(pos, "maximum recursion depth exceeded", "")
		return false
	}
	c.depth++
	return true
}

func (c *Context) leaveDepth() {
	if c.depth > 0 {
		c.depth--
	}
}

// GetLatestCause implements spec.md §4.3: it attaches siblings to outer,
// then, if some sibling is further into the input than outer, returns a
// new Cause wrapping that sibling with outer as its Inner — so the
// reported failure surfaces both the furthest concrete reason and the
// enclosing context.
func GetLatestCause(siblings []*Cause, outer *Cause) *Cause {
	if outer == nil {
		outer = &Cause{}
	}
	// outer is left out of its own sibling list: the driver can pass the
	// reported cause both as outer and among siblings (as ctx.Latest), and
	// a self-reference would make the cause tree cyclic.
	var attached []*Cause
	for _, s := range siblings {
		if s != outer {
			attached = append(attached, s)
		}
	}
	outer.Siblings = attached
	merged := outer

	var furthest *Cause
	for _, s := range attached {
		if s == nil {
			continue
		}
		if furthest == nil || s.Pos > furthest.Pos {
			furthest = s
		}
	}
	if furthest != nil && furthest.Pos > outer.Pos {
		return &Cause{Pos: furthest.Pos, Message: furthest.Message, Name: furthest.Name, Inner: merged, Siblings: furthest.Siblings}
	}
	return merged
}

// FindLatestCause performs a deep traversal of a Cause tree (Inner chain
// and all Siblings, recursively) and returns whichever node has the
// greatest Pos. Used by the driver (spec.md §4.10 step 8) to detect when
// the reported cause differs from the truly deepest one.
func FindLatestCause(root *Cause) *Cause {
	if root == nil {
		return nil
	}
	best := root
	var walk func(c *Cause)
	walk = func(c *Cause) {
		if c == nil {
			return
		}
		if c.Pos > best.Pos {
			best = c
		}
		walk(c.Inner)
		for _, s := range c.Siblings {
			walk(s)
		}
	}
	walk(root)
	return best
}

// sortUnique sorts rs in place and drops duplicates, reusing rs's backing
// array; charset.go uses it to normalize character sets.
func sortUnique(rs []rune) []rune {
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	out := rs[:0]
	var prev rune
	has := false
	for _, r := range rs {
		if has && r == prev {
			continue
		}
		out = append(out, r)
		prev = r
		has = true
	}
	return out
}
