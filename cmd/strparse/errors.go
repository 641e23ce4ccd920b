package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	sp "github.com/shibukawa/strparse"
)

func fileDescriptor() uintptr { return os.Stdout.Fd() }

// printParseError prints a *sp.ParseError's marked source snippet,
// colorizing the `^--` indicator line when stdout is a terminal: the
// source line in default color, the indicator in red, context lines
// dimmed.
func printParseError(cmd *cobra.Command, err error) {
	pe, ok := err.(*sp.ParseError)
	if !ok {
		cmd.PrintErrln(err)
		return
	}
	cmd.PrintErrf("parse error at %d:%d: %s\n", pe.Line, pe.Column, pe.Message)

	colorize := isatty.IsTerminal(fileDescriptor())
	lines := strings.Split(pe.Marked, "\n")
	dim := color.New(color.Faint)
	indicator := color.New(color.FgRed, color.Bold)

	for i, line := range lines {
		switch {
		case strings.Contains(line, "^--"):
			if colorize {
				cmd.PrintErrln(indicator.Sprint(line))
			} else {
				cmd.PrintErrln(line)
			}
		case i == lineOfSource(lines):
			cmd.PrintErrln(line)
		default:
			if colorize {
				cmd.PrintErrln(dim.Sprint(line))
			} else {
				cmd.PrintErrln(line)
			}
		}
	}
}

// lineOfSource returns the index of the failing source line: the line
// immediately before the `^--` indicator line.
func lineOfSource(lines []string) int {
	for i, line := range lines {
		if strings.Contains(line, "^--") {
			return i - 1
		}
	}
	return -1
}
