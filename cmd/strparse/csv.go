package main

import (
	"github.com/spf13/cobra"

	sp "github.com/shibukawa/strparse"
	csvgrammar "github.com/shibukawa/strparse/grammar/csv"
)

var (
	csvFieldSep string
	csvHeader   bool
)

var csvCmd = &cobra.Command{
	Use:   "csv [file]",
	Short: "Parse input with the bundled CSV grammar",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		opts := csvgrammar.DefaultOptions()
		if csvFieldSep != "" {
			opts.FieldSep = csvFieldSep
		}
		opts.Header = csvHeader

		d := sp.New(csvgrammar.New(opts), sp.WithConsumeAll(true), sp.WithDetailed(true))
		res, err := d.Parse(sp.NewContext(), input)
		if err != nil {
			printParseError(cmd, err)
			return err
		}

		if opts.Header {
			cmd.Printf("header: %v\n", res.Value.Header)
		}
		for i, row := range res.Value.Rows {
			cmd.Printf("row %d: %v\n", i, row.Fields)
		}
		return nil
	},
}

func init() {
	csvCmd.Flags().StringVar(&csvFieldSep, "field-sep", ",", "field separator")
	csvCmd.Flags().BoolVar(&csvHeader, "header", false, "treat the first row as column names")
}
