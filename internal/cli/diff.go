package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/ui"
)

var diffDecimal bool

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b> [unit]",
	Short: "Print a minus b in a unit (default: day)",
	Long: `Print a minus b in a unit (default: day).

The result is positive when a is later. Without --decimal it is truncated
toward zero. Months and years are calendar aware.`,
	Example: `  dk diff 2012-06-12 2012-06-09
  dk diff "next friday" today hours
  dk diff 2012-06-09 2011-01-01 years --decimal`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := "day"
		if len(args) > 2 {
			unit = args[2]
		}
		unit, err := normalizeUnit(unit)
		if err != nil {
			return handleError(ErrInvalidUnit, err, unitSuggestion())
		}

		k := getKit()
		a, ok, err := parseArg(k, args[0])
		if !ok {
			return err
		}
		b, ok, err := parseArg(k, args[1])
		if !ok {
			return err
		}

		v := a.Date.Diff(b.Date, unit, diffDecimal)

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"a":     a.Date.String(),
				"b":     b.Date.String(),
				"unit":  unit,
				"value": v,
			}, nil)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatNumber(v))
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <a> <b> [unit]",
	Short: "Report whether a is before, after or equal to b",
	Long: `Report whether a is before, after or equal to b.

Comparison happens at the granularity of unit (default: millisecond), so
"2013-09-13" equals "2013-09-13 11am" by day.`,
	Example: `  dk compare 2013-09-13 "2013-09-13 11am" day
  dk compare 12-16-2006 2006-12-17`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := "millisecond"
		if len(args) > 2 {
			var err error
			if unit, err = normalizeUnit(args[2]); err != nil {
				return handleError(ErrInvalidUnit, err, unitSuggestion())
			}
		}

		k := getKit()
		a, ok, err := parseArg(k, args[0])
		if !ok {
			return err
		}
		b, ok, err := parseArg(k, args[1])
		if !ok {
			return err
		}

		relation := "equal"
		switch {
		case a.Date.IsBefore(b.Date, unit):
			relation = "before"
		case a.Date.IsAfter(b.Date, unit):
			relation = "after"
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"a":        a.Date.String(),
				"b":        b.Date.String(),
				"unit":     unit,
				"relation": relation,
				"before":   relation == "before",
				"after":    relation == "after",
				"equal":    relation == "equal",
			}, nil)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), relation)
		return nil
	},
}

var agoCmd = &cobra.Command{
	Use:   "ago <date> [reference]",
	Short: "Describe a date relative to now in words",
	Example: `  dk ago "2010-07-16"
  dk ago "next month" 2010-07-19`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		k := getKit()
		d, ok, err := parseArg(k, args[0])
		if !ok {
			return err
		}
		ref := k.Now()
		if len(args) > 1 {
			r, ok, err := parseArg(k, args[1])
			if !ok {
				return err
			}
			ref = r.Date
		}

		text := d.Date.DiffText(ref)
		if isJSONOutput() {
			outputSuccess(map[string]any{
				"date":      d.Date.String(),
				"reference": ref.String(),
				"text":      text,
			}, nil)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Date(text))
		return nil
	},
}

func init() {
	diffCmd.Flags().BoolVar(&diffDecimal, "decimal", false, "Keep the fractional part")
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(agoCmd)
}
