package strparse

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/rs/zerolog"
)

// Tracer receives structured parser entry/exit events, the re-expression
// of the teacher's tools.go `Trace`/`TraceInfo`/`DumpTraceTo` as events
// rather than an accumulated slice dumped after the fact.
type Tracer interface {
	Enter(name string, pos int)
	Match(name string, pos, end int)
	NotMatch(name string, pos int, cause *Cause)
}

// ZerologTracer adapts a zerolog.Logger into a Tracer, logging each event
// at debug level with structured fields (name/pos/end), grounded on
// deepnoodle-ai-risor's use of zerolog for structured CLI/library logging.
type ZerologTracer struct {
	Log zerolog.Logger
}

func (t ZerologTracer) Enter(name string, pos int) {
	t.Log.Debug().Str("parser", name).Int("pos", pos).Msg("enter")
}

func (t ZerologTracer) Match(name string, pos, end int) {
	t.Log.Debug().Str("parser", name).Int("pos", pos).Int("end", end).Msg("match")
}

func (t ZerologTracer) NotMatch(name string, pos int, cause *Cause) {
	ev := t.Log.Debug().Str("parser", name).Int("pos", pos)
	if cause != nil {
		ev = ev.Str("message", cause.Message)
	}
	ev.Msg("no match")
}

// Trace wraps p so that, when ctx.Tracer is set, every attempt is
// reported through it (spec.md doesn't mandate tracing, but the teacher's
// `Trace` wrapper is load-bearing enough in its own codebase that
// SPEC_FULL.md's ambient-stack section keeps the idiom, re-expressed with
// a structured logger rather than a replayed text buffer).
func Trace[T any](name string, p Parser[T]) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		if ctx.Tracer != nil {
			ctx.Tracer.Enter(name, pos)
		}
		val, end, ok := p(ctx, input, pos, node)
		if ctx.Tracer != nil {
			if ok {
				ctx.Tracer.Match(name, pos, end)
			} else {
				ctx.Tracer.NotMatch(name, pos, ctx.Failure)
			}
		}
		return val, end, ok
	}
}

// Debug "hits a breakpoint then runs p" (spec.md §4.9 `debug`): it prints
// a repr-formatted snapshot of the current context state (position,
// current failure, latest cause) through ctx.Tracer if set, or to stderr
// otherwise, giving a human something to read at the point a grammar
// author dropped a Debug() call in — the nearest string-tape equivalent
// of actually hitting a debugger breakpoint.
func Debug[T any](p Parser[T]) Parser[T] {
	return func(ctx *Context, input string, pos int, node *Node) (T, int, bool) {
		snapshot := struct {
			Pos     int
			Failure *Cause
			Latest  *Cause
		}{Pos: pos, Failure: ctx.Failure, Latest: ctx.Latest}
		dump := repr.String(snapshot, repr.Indent("  "))
		if ctx.Tracer != nil {
			ctx.Tracer.Enter("debug:"+dump, pos)
		} else {
			fmt.Fprintln(os.Stderr, dump)
		}
		return p(ctx, input, pos, node)
	}
}

// TraceLog is a minimal Tracer that accumulates plain-text lines in the
// teacher's original DumpTraceTo shape, for tests and callers that want a
// readable trace without setting up a zerolog logger.
type TraceLog struct {
	depth int
	lines []string
}

func (t *TraceLog) Enter(name string, pos int) {
	t.lines = append(t.lines, fmt.Sprintf("%s> %s at %d", strings.Repeat("  ", t.depth), name, pos))
	t.depth++
}

func (t *TraceLog) Match(name string, pos, end int) {
	t.depth--
	t.lines = append(t.lines, fmt.Sprintf("%s< %s => [%d,%d)", strings.Repeat("  ", t.depth), name, pos, end))
}

func (t *TraceLog) NotMatch(name string, pos int, cause *Cause) {
	t.depth--
	msg := ""
	if cause != nil {
		msg = cause.Message
	}
	t.lines = append(t.lines, fmt.Sprintf("%s! %s => %s", strings.Repeat("  ", t.depth), name, msg))
}

// String renders the accumulated trace as text.
func (t *TraceLog) String() string {
	return strings.Join(t.lines, "\n")
}
