package strparse

import (
	"errors"
	"fmt"
	"strings"
)

// Structural error taxonomy (spec.md §7's "structural" category),
// expressed as sentinel errors in the teacher's errors.go style
// (ErrNotMatch/ErrCritical/ErrStackOverflow). Their texts match the
// messages recorded for these failures, but no code path returns or wraps
// them: a driver failure is a *ParseError whose Unwrap builds a new error
// from the cause message, so errors.Is against these sentinels does not
// match it.
var (
	ErrUninitializedLazy = fmt.Errorf("uninitialized lazy parser")
	ErrChainSelection     = fmt.Errorf("chain selection failed")
	ErrConsumeAll         = fmt.Errorf("expected to consume all input")
)

// ParseError is the rendered, user-facing failure of spec.md §3: derived
// from a Cause plus the original input by the driver (driver.go), never
// constructed directly by parsers themselves (spec.md §7's propagation
// policy: "the driver is the only place where a failure is transformed
// into a user-visible ParseError").
type ParseError struct {
	Message string
	Pos     int
	Line    int // 1-based
	Column  int // 0-based, offset from the start of the line
	Source  string
	Context []string
	Marked  string
	Cause   *Cause
	Causes  []*Cause
	// Latest is set only when the deepest Cause in the tree differs from
	// the one actually reported (spec.md §4.10 step 8).
	Latest *Cause
	Parser string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return fmt.Errorf("%s", e.Cause.Message)
}

// IsError reports whether err is, or wraps, a *ParseError (spec.md §6
// `is_error`) — distinguishing a genuine parse failure from some other
// error a caller-supplied Map/Verify callback might have returned.
func IsError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// GetLineNum returns the 1-based line number and 0-based column of pos
// within input, per spec.md §6 `get_line_num`.
func GetLineNum(input string, pos int) (line, col int) {
	line = 1
	lineStart := 0
	for i := 0; i < pos && i < len(input); i++ {
		if input[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, pos - lineStart
}

// splitLines splits input into lines without its trailing line
// terminators, the way errors.go's context-snippet builder needs.
func splitLines(input string) []string {
	return strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
}

// GetParseError renders cause against input into a full ParseError,
// including contextLines of surrounding source above and below the
// failing line and a `marked` indicator snippet, per spec.md §6's
// `get_parse_error(cause, input, context_lines)` and its description of
// the `marked` field's exact layout (context lines, then the source
// line, then a line of spaces-with-tabs-preserved followed by `^--`,
// then the lines below).
func GetParseError(cause *Cause, input string, contextLines int) *ParseError {
	if cause == nil {
		cause = &Cause{}
	}
	line, col := GetLineNum(input, cause.Pos)
	lines := splitLines(input)
	idx := line - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	if idx < 0 {
		idx = 0
	}

	from := idx - contextLines
	if from < 0 {
		from = 0
	}
	to := idx + contextLines
	if to >= len(lines) {
		to = len(lines) - 1
	}

	var ctx []string
	for i := from; i <= to; i++ {
		if i < len(lines) {
			ctx = append(ctx, lines[i])
		}
	}

	var b strings.Builder
	for i := from; i < idx; i++ {
		b.WriteString(lines[i])
		b.WriteByte('\n')
	}
	var sourceLine string
	if idx < len(lines) {
		sourceLine = lines[idx]
	}
	b.WriteString(sourceLine)
	b.WriteByte('\n')
	for i, r := range sourceLine {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^--")
	for i := idx + 1; i <= to; i++ {
		b.WriteByte('\n')
		b.WriteString(lines[i])
	}

	message := cause.Message
	if message == "" {
		message = "parse failed"
	}

	pe := &ParseError{
		Message: message,
		Pos:     cause.Pos,
		Line:    line,
		Column:  col,
		Source:  input,
		Context: ctx,
		Marked:  b.String(),
		Cause:   cause,
		Causes:  cause.Siblings,
		Parser:  cause.Name,
	}

	latest := FindLatestCause(cause)
	if latest != nil && latest != cause && latest.Pos != cause.Pos {
		pe.Latest = latest
	}
	return pe
}
