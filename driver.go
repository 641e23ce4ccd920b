package strparse

import "fmt"

// Options are the driver-configurable behaviors of spec.md §6.
type Options struct {
	Trim             bool
	ConsumeAll       bool
	Detailed         bool
	Causes           bool
	ContextLines     int
	Throw            bool
	Tree             bool
	UndefinedOnError bool
}

// Option mutates Options; functional-option constructors below match the
// teacher's preference (NewAlias, NewErr*) for small composable
// constructors over a config struct with only public fields.
type Option func(*Options)

func WithTrim(v bool) Option             { return func(o *Options) { o.Trim = v } }
func WithConsumeAll(v bool) Option       { return func(o *Options) { o.ConsumeAll = v } }
func WithDetailed(v bool) Option         { return func(o *Options) { o.Detailed = v } }
func WithCauses(v bool) Option           { return func(o *Options) { o.Causes = v } }
func WithContextLines(n int) Option      { return func(o *Options) { o.ContextLines = n } }
func WithThrow(v bool) Option            { return func(o *Options) { o.Throw = v } }
func WithTree(v bool) Option             { return func(o *Options) { o.Tree = v } }
func WithUndefinedOnError(v bool) Option { return func(o *Options) { o.UndefinedOnError = v } }

func buildOptions(opts []Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// Driver is the public entry point of spec.md §4.10: a parser plus
// default options, turned into a callable that accepts an input (and
// per-call option overrides) and yields either a value, a node, or a
// ParseError, ported from the teacher's Evaluate/EvaluateWithRawTokens
// (parser.go) generalized to the full options table.
type Driver[T any] struct {
	parser   Parser[T]
	defaults Options
}

// New builds a Driver around parser with the given default options.
func New[T any](parser Parser[T], defaults ...Option) *Driver[T] {
	return &Driver[T]{parser: parser, defaults: buildOptions(defaults)}
}

// Result is what a successful Driver.Parse call produces: the parsed
// value and, when tree mode was requested, the parse tree root. Matched
// is false only when UndefinedOnError was requested and the parse
// failed — the "empty sentinel" of spec.md §6.
type Result[T any] struct {
	Value   T
	Node    *Node
	Matched bool
}

// Parse runs the driver's parser against input, applying overrides on top
// of the driver's defaults, following the ten-step algorithm of spec.md
// §4.10.
func (d *Driver[T]) Parse(ctx *Context, input string, overrides ...Option) (Result[T], error) {
	opts := d.defaults
	for _, apply := range overrides {
		apply(&opts)
	}

	root := d.parser
	trimmedRootNode := false
	if opts.Trim {
		ws := Skip(" \t\n\r")
		inner := root
		root = func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
			child := openChild(node, pos)
			_, p1, _ := ws(ctx, input, pos, nil)
			val, p2, ok := inner(ctx, input, p1, child)
			if !ok {
				dropLastChild(node)
				return zero[T](), pos, false
			}
			_, p3, _ := ws(ctx, input, p2, nil)
			closeAs(child, p3, val, "")
			return val, p3, true
		}
		trimmedRootNode = true
	}

	prevMessages, prevCauses := ctx.SetDetail(opts.Detailed, opts.Causes)
	defer ctx.SetDetail(prevMessages, prevCauses)

	var rootNode *Node
	if opts.Tree {
		rootNode = &Node{Start: 0}
	}

	if ctx.Messages {
		ctx.ResetLatest()
	}

	val, end, ok := root(ctx, input, 0, rootNode)

	if ok && opts.ConsumeAll && end < len(input) {
		ctx.Failure = &Cause{Pos: end, Message: fmt.Sprintf("expected to consume all input, but only %d chars consumed", end)}
		ok = false
	}

	if !ok {
		if opts.UndefinedOnError {
			return Result[T]{}, nil
		}
		reported := ctx.Failure
		var siblings []*Cause
		if reported != nil {
			siblings = reported.Siblings
		}
		// ctx.Latest tracks the furthest-position failure seen anywhere
		// during this parse, independent of whether it ever became one
		// of reported's own Siblings (e.g. a failure nested inside a seq
		// branch, or recorded while the causes detail bit was off). Fold
		// it in alongside reported's siblings so GetLatestCause can
		// promote it over a shallower "expected X" the same way it
		// already promotes a deeper Alt sibling.
		if ctx.Latest != nil {
			siblings = append(append([]*Cause{}, siblings...), ctx.Latest)
		}
		merged := GetLatestCause(siblings, reported)
		parseErr := GetParseError(merged, input, opts.ContextLines)
		if opts.Throw {
			panic(parseErr)
		}
		return Result[T]{}, parseErr
	}

	if opts.Tree {
		closeAs(rootNode, end, val, "")
		if trimmedRootNode && len(rootNode.Children) > 0 {
			inner := rootNode.Children[0]
			if len(inner.Children) > 0 {
				return Result[T]{Value: val, Node: inner.Children[0], Matched: true}, nil
			}
			return Result[T]{Value: val, Node: inner, Matched: true}, nil
		}
		return Result[T]{Value: val, Node: rootNode, Matched: true}, nil
	}

	return Result[T]{Value: val, Matched: true}, nil
}
