// Package csv implements the CSV grammar named as a bundled, illustrative
// external collaborator of the core combinator API: configurable
// field/record separators and quote character, RFC 4180-style quoted
// fields (embedded separators, embedded newlines, doubled-quote escaping),
// and optional header-row flattening into named records.
package csv

import (
	"fmt"

	sp "github.com/shibukawa/strparse"
)

// Options configures the separators and quoting character; the zero value
// is not valid, use DefaultOptions as a starting point.
type Options struct {
	FieldSep string
	Quote    string
	// Header, when true, treats the first record as column names and
	// Parse returns Row.Named populated from them.
	Header bool
}

// DefaultOptions is comma-separated, double-quoted, no header row.
func DefaultOptions() Options {
	return Options{FieldSep: ",", Quote: "\""}
}

// Row is one parsed record: Fields in source order, and Named populated
// only when Options.Header is set and this isn't the header row itself.
type Row struct {
	Fields []string
	Named  map[string]string
}

// Document is every data row of a parse (the header row, if any, is
// consumed to populate Named and is not itself included here).
type Document struct {
	Header []string
	Rows   []Row
}

func recordSep() sp.Parser[string] {
	return sp.Str("\r\n", "\n")
}

func quotedField(quote string) sp.Parser[string] {
	doubledQuote := sp.Map(sp.Str(quote+quote), func(string, int, int) (string, error) { return quote, nil })
	bodyChar := sp.Alt("quoted field char", doubledQuote, sp.NotChars(1, quote))
	body := sp.Rep(bodyChar)
	return sp.Bracket(sp.Str(quote), sp.Map(body, func(parts []string, start, end int) (string, error) {
		out := ""
		for _, p := range parts {
			out += p
		}
		return out, nil
	}), sp.Str(quote))
}

func unquotedField(fieldSep, quote string) sp.Parser[string] {
	// The stop set is recomputed from opts on every call rather than
	// fixed at construction: the configurable field separator is exactly
	// the "stop set known only at runtime" case ReadToDyn exists for.
	state := &sp.StopState{Stop: func() string { return fieldSep + "\r\n" }}
	return sp.ReadToDyn(state, true)
}

func fieldParser(opts Options) sp.Parser[string] {
	return sp.Alt("field", quotedField(opts.Quote), unquotedField(opts.FieldSep, opts.Quote))
}

func recordParser(opts Options) sp.Parser[[]string] {
	field := fieldParser(opts)
	sep := sp.Str(opts.FieldSep)
	return sp.RepSep(field, sep, sp.TrailDisallow)
}

// New builds a parser for a full CSV document under opts: records
// separated by CRLF or LF, with an optional trailing record separator
// at end of input.
func New(opts Options) sp.Parser[Document] {
	rec := recordParser(opts)
	// A record starts only where input remains, so a record separator at
	// end of input is a trailing separator, not the start of an empty row.
	record := sp.Chain(sp.Peek(1), func(string) sp.Parser[[]string] { return rec })
	sep := recordSep()
	records := sp.RepSep(record, sep, sp.TrailAllow)

	return sp.Map(records, func(recs [][]string, start, end int) (Document, error) {
		doc := Document{}
		rowsStart := 0
		if opts.Header {
			if len(recs) == 0 {
				return Document{}, fmt.Errorf("header requested but document has no records")
			}
			doc.Header = recs[0]
			rowsStart = 1
		}
		for _, rec := range recs[rowsStart:] {
			row := Row{Fields: rec}
			if opts.Header {
				row.Named = make(map[string]string, len(doc.Header))
				for i, name := range doc.Header {
					if i < len(rec) {
						row.Named[name] = rec[i]
					}
				}
			}
			doc.Rows = append(doc.Rows, row)
		}
		return doc, nil
	})
}
