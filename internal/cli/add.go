package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/ui"
)

var addFormat string

var addCmd = &cobra.Command{
	Use:   "add <date> <amount> <unit>",
	Short: "Move a date by an amount of calendar units",
	Long: `Move a date by an amount of calendar units.

Months and years are calendar aware: adding a month to Jan 31 lands on the
last day of February. Fractional amounts are allowed. Negative amounts move
backwards; pass them after -- so they are not read as flags.`,
	Example: `  dk add 2007-10-31 1 month
  dk add now 1.5 days
  dk add 2012-02-29 -- -1 year`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return handleError(ErrInvalidInput, fmt.Errorf("invalid amount %q", args[1]), "Amounts are numbers such as 3, -2 or 1.5")
		}
		return runShift(cmd, args[0], amount, args[2])
	},
}

var succCmd = &cobra.Command{
	Use:   "succ <date> [unit]",
	Short: "Print the date one unit later (default: a day)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := "day"
		if len(args) > 1 {
			unit = args[1]
		}
		return runShift(cmd, args[0], 1, unit)
	},
}

func runShift(cmd *cobra.Command, text string, amount float64, rawUnit string) error {
	unit, err := normalizeUnit(rawUnit)
	if err != nil {
		return handleError(ErrInvalidUnit, err, unitSuggestion())
	}

	k := getKit()
	r, ok, err := parseArg(k, text)
	if !ok {
		return err
	}

	moved := r.Date.Add(amount, unit)
	if !moved.Valid() {
		return handleError(ErrInvalidDate, fmt.Errorf("%s %s from %s is out of range", formatNumber(amount), unit, r.Date), "")
	}

	if isJSONOutput() {
		data := dateData(moved)
		data["from"] = r.Date.String()
		data["amount"] = amount
		data["unit"] = unit
		if addFormat != "" {
			data["formatted"] = k.Format(moved, addFormat)
		}
		outputSuccess(data, nil)
		return nil
	}

	if addFormat != "" {
		fmt.Fprintln(cmd.OutOrStdout(), k.Format(moved, addFormat))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Date(moved.String()))
	return nil
}

func init() {
	addCmd.Flags().StringVarP(&addFormat, "format", "f", "", "Render the result with a template")
	succCmd.Flags().StringVarP(&addFormat, "format", "f", "", "Render the result with a template")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(succCmd)
}
