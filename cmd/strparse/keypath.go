package main

import (
	"github.com/spf13/cobra"

	sp "github.com/shibukawa/strparse"
	keypathgrammar "github.com/shibukawa/strparse/grammar/keypath"
)

var keypathCmd = &cobra.Command{
	Use:   "keypath [file]",
	Short: "Parse input with the bundled dotted/bracketed key-path grammar",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		d := sp.New(keypathgrammar.New(), sp.WithConsumeAll(true), sp.WithDetailed(true))
		res, err := d.Parse(sp.NewContext(), input)
		if err != nil {
			printParseError(cmd, err)
			return err
		}

		for i, seg := range res.Value {
			switch seg.Kind {
			case keypathgrammar.SegmentName:
				cmd.Printf("%d: name %q\n", i, seg.Name)
			case keypathgrammar.SegmentIndex:
				cmd.Printf("%d: index %d\n", i, seg.Index)
			case keypathgrammar.SegmentKey:
				cmd.Printf("%d: key %q\n", i, seg.Name)
			}
		}
		return nil
	},
}
