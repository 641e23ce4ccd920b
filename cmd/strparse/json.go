package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	sp "github.com/shibukawa/strparse"
	jsongrammar "github.com/shibukawa/strparse/grammar/json"
)

var jsonCmd = &cobra.Command{
	Use:   "json [file]",
	Short: "Parse input with the bundled JSON-ish grammar",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		logger.Debug().Int("bytes", len(input)).Msg("parsing json")

		d := sp.New(jsongrammar.New(), sp.WithTrim(true), sp.WithConsumeAll(true), sp.WithDetailed(true), sp.WithCauses(true))
		res, err := d.Parse(sp.NewContext(), input)
		if err != nil {
			printParseError(cmd, err)
			return err
		}

		out, err := json.MarshalIndent(toAny(res.Value), "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	},
}

func toAny(v jsongrammar.Value) any {
	switch v.Kind {
	case jsongrammar.KindNull:
		return nil
	case jsongrammar.KindBool:
		return v.Bool
	case jsongrammar.KindNumber:
		return v.Num
	case jsongrammar.KindString:
		return v.Str
	case jsongrammar.KindArray:
		out := make([]any, len(v.Arr))
		for i, item := range v.Arr {
			out[i] = toAny(item)
		}
		return out
	case jsongrammar.KindObject:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Key] = toAny(f.Value)
		}
		return out
	default:
		return fmt.Sprintf("<unknown kind %d>", v.Kind)
	}
}
