// Package json implements the JSON-ish grammar named as a bundled,
// illustrative external collaborator of the core combinator API
// (object/array/string/number/bool/null, with a few ergonomic relaxations
// over strict JSON): numeric literals may use 0x/0b/0o prefixes and
// underscore digit separators, strings may be single- or double-quoted,
// and object keys may be bare identifiers instead of quoted strings.
package json

import (
	"fmt"
	"strconv"
	"strings"

	sp "github.com/shibukawa/strparse"
)

// Value is the parsed AST. Exactly one of the typed fields is meaningful,
// selected by Kind.
type Value struct {
	Kind   Kind
	Str    string
	Num    float64
	Bool   bool
	Arr    []Value
	Fields []Field
}

// Field is one key/value pair of an Object value, kept as a slice (not a
// map) so source order survives round-tripping.
type Field struct {
	Key   string
	Value Value
}

// Kind discriminates the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

const (
	digits     = "0123456789"
	hexDigits  = "0123456789abcdefABCDEF"
	binDigits  = "01"
	octDigits  = "01234567"
	identStart = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	identCont  = identStart + digits
)

var ws = sp.Skip(" \t\r\n")

func lexeme[T any](p sp.Parser[T]) sp.Parser[T] {
	return func(ctx *sp.Context, input string, pos int, node *sp.Node) (T, int, bool) {
		_, p1, _ := ws(ctx, input, pos, nil)
		val, p2, ok := p(ctx, input, p1, node)
		if !ok {
			var zero T
			return zero, pos, false
		}
		_, p3, _ := ws(ctx, input, p2, nil)
		return val, p3, true
	}
}

func numberLiteral() sp.Parser[Value] {
	sign := sp.Opt(sp.Str("-", "+"))
	hex := sp.Seq(sp.Str("0x", "0X"), sp.Read1(hexDigits+"_"))
	bin := sp.Seq(sp.Str("0b", "0B"), sp.Read1(binDigits+"_"))
	oct := sp.Seq(sp.Str("0o", "0O"), sp.Read1(octDigits+"_"))
	decimal := sp.Seq(
		sp.Read1(digits+"_"),
		sp.Outer(sp.Opt(sp.Seq(sp.Str("."), sp.Read1(digits+"_")))),
		sp.Outer(sp.Opt(sp.Seq(sp.Str("e", "E"), sp.Outer(sp.Opt(sp.Str("-", "+"))), sp.Read1(digits)))),
	)

	return lexeme(sp.Map(
		sp.Seq(
			sp.Outer(sign),
			sp.Alt("number",
				sp.Outer(hex),
				sp.Outer(bin),
				sp.Outer(oct),
				sp.Outer(decimal),
			),
		),
		func(parts []string, start, end int) (Value, error) {
			signText, body := parts[0], parts[1]
			clean := strings.ReplaceAll(body, "_", "")
			var n float64
			switch {
			case strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X"):
				i, err := strconv.ParseInt(clean[2:], 16, 64)
				if err != nil {
					return Value{}, fmt.Errorf("invalid hex literal %q: %w", body, err)
				}
				n = float64(i)
			case strings.HasPrefix(clean, "0b") || strings.HasPrefix(clean, "0B"):
				i, err := strconv.ParseInt(clean[2:], 2, 64)
				if err != nil {
					return Value{}, fmt.Errorf("invalid binary literal %q: %w", body, err)
				}
				n = float64(i)
			case strings.HasPrefix(clean, "0o") || strings.HasPrefix(clean, "0O"):
				i, err := strconv.ParseInt(clean[2:], 8, 64)
				if err != nil {
					return Value{}, fmt.Errorf("invalid octal literal %q: %w", body, err)
				}
				n = float64(i)
			default:
				f, err := strconv.ParseFloat(clean, 64)
				if err != nil {
					return Value{}, fmt.Errorf("invalid number literal %q: %w", body, err)
				}
				n = f
			}
			if signText == "-" {
				n = -n
			}
			return Value{Kind: KindNumber, Num: n}, nil
		},
	))
}

func escapeSequence() sp.Parser[string] {
	unicodeEscape := sp.Map(sp.Seq(sp.Str("u"), sp.Chars(4, hexDigits)), func(parts []string, start, end int) (string, error) {
		code, err := strconv.ParseUint(parts[1], 16, 32)
		if err != nil {
			return "", fmt.Errorf("invalid unicode escape \\u%s: %w", parts[1], err)
		}
		return string(rune(code)), nil
	})
	hexEscape := sp.Map(sp.Seq(sp.Str("x"), sp.Chars(2, hexDigits)), func(parts []string, start, end int) (string, error) {
		code, err := strconv.ParseUint(parts[1], 16, 8)
		if err != nil {
			return "", fmt.Errorf("invalid hex escape \\x%s: %w", parts[1], err)
		}
		return string(rune(code)), nil
	})
	simple := sp.Map(sp.Chars(1, ""), func(s string, start, end int) (string, error) {
		switch s {
		case "n":
			return "\n", nil
		case "t":
			return "\t", nil
		case "r":
			return "\r", nil
		case "\\", "\"", "'", "/":
			return s, nil
		default:
			return "", fmt.Errorf("unknown escape sequence \\%s", s)
		}
	})
	return sp.Chain(sp.Str("\\"), func(string) sp.Parser[string] {
		return sp.Alt("escape", unicodeEscape, hexEscape, simple)
	})
}

func quotedString(quote string) sp.Parser[string] {
	escapeOrChar := sp.Alt("string char", escapeSequence(), sp.NotChars(1, quote+"\\"))
	return sp.Bracket(sp.Str(quote), sp.Outer(sp.Rep(escapeOrChar)), sp.Str(quote))
}

func stringLiteral() sp.Parser[Value] {
	quoted := sp.Alt("string", quotedString("\""), quotedString("'"))
	return lexeme(sp.Map(quoted, func(body string, start, end int) (Value, error) {
		// quotedString's Outer(Rep(...)) yields the raw bracketed span, not
		// the unescaped text, so expand escapes here.
		return Value{Kind: KindString, Str: unescape(body)}, nil
	}))
}

// unescape expands the escape sequences understood by escapeSequence over
// an already-bracket-stripped string body.
func unescape(body string) string {
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			b.WriteByte(body[i])
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+4 < len(body) {
				code, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
				if err == nil {
					b.WriteRune(rune(code))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		case 'x':
			if i+2 < len(body) {
				code, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
				if err == nil {
					b.WriteRune(rune(code))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func boolLiteral() sp.Parser[Value] {
	return lexeme(sp.Map(sp.Str("true", "false"), func(s string, start, end int) (Value, error) {
		return Value{Kind: KindBool, Bool: s == "true"}, nil
	}))
}

func nullLiteral() sp.Parser[Value] {
	return lexeme(sp.Map(sp.Str("null"), func(s string, start, end int) (Value, error) {
		return Value{Kind: KindNull}, nil
	}))
}

func identifierKey() sp.Parser[string] {
	return lexeme(sp.Outer(sp.Seq(sp.Chars(1, identStart), sp.Read(identCont))))
}

func key() sp.Parser[string] {
	return sp.Alt("key", quotedString("\""), quotedString("'"), identifierKey())
}

// New builds the entry-point Value parser for the grammar, recursively
// bound so objects and arrays may nest.
func New() sp.Parser[Value] {
	ref := sp.NewRef[Value]()

	array := sp.Map(
		sp.Bracket(
			lexeme(sp.Str("[")),
			sp.RepSep(ref.P, lexeme(sp.Str(",")), sp.TrailAllow),
			lexeme(sp.Str("]")),
		),
		func(items []Value, start, end int) (Value, error) {
			return Value{Kind: KindArray, Arr: items}, nil
		},
	)

	field := func(ctx *sp.Context, input string, pos int, node *sp.Node) (Field, int, bool) {
		k, p1, ok := key()(ctx, input, pos, node)
		if !ok {
			return Field{}, pos, false
		}
		_, p2, ok := lexeme(sp.Str(":"))(ctx, input, p1, node)
		if !ok {
			return Field{}, pos, false
		}
		v, p3, ok := ref.P(ctx, input, p2, node)
		if !ok {
			return Field{}, pos, false
		}
		return Field{Key: k, Value: v}, p3, true
	}

	object := sp.Map(
		sp.Bracket(
			lexeme(sp.Str("{")),
			sp.RepSep(field, lexeme(sp.Str(",")), sp.TrailAllow),
			lexeme(sp.Str("}")),
		),
		func(fields []Field, start, end int) (Value, error) {
			return Value{Kind: KindObject, Fields: fields}, nil
		},
	)

	value := sp.Alt("value", object, array, stringLiteral(), numberLiteral(), boolLiteral(), nullLiteral())
	ref.Bind(value)
	return value
}
