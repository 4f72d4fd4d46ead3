package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/ui"
)

var (
	parseFormat  string
	parseWithout []string
)

var parseCmd = &cobra.Command{
	Use:   "parse <text...>",
	Short: "Recognize a date in free-form text",
	Long: `Recognize a date in free-form text.

Patterns are tried in registry order and the first one that resolves wins.
Run 'dk patterns' to see the order.`,
	Example: `  dk parse 2010-03-15
  dk parse "3 months ago"
  dk parse next tuesday --format "l, F jS"
  dk parse 1/3/2006 --without us`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	k := getKit()
	if err := removePatterns(k, parseWithout); err != nil {
		return handleError(ErrUnknownPattern, err, "Run 'dk patterns' to list pattern names")
	}

	text := strings.Join(args, " ")
	r, ok, err := parseArg(k, text)
	if !ok {
		return err
	}

	formatted := ""
	if parseFormat != "" {
		formatted = k.Format(r.Date, parseFormat)
	}

	if isJSONOutput() {
		data := dateData(r.Date)
		data["input"] = text
		data["pattern"] = r.Pattern
		if formatted != "" {
			data["formatted"] = formatted
		}
		outputSuccess(data, nil)
		return nil
	}

	w := cmd.OutOrStdout()
	if formatted != "" {
		fmt.Fprintln(w, formatted)
		return nil
	}
	fmt.Fprintln(w, ui.Date(r.Date.String()))
	if ui.NewDisplayContextFor(w).IsTTY && r.Pattern != "" {
		fmt.Fprintln(w, ui.Field("pattern", r.Pattern))
	}
	return nil
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Render the date with a template instead of ISO 8601")
	parseCmd.Flags().StringSliceVar(&parseWithout, "without", nil, "Patterns to skip (comma separated)")
	rootCmd.AddCommand(parseCmd)
}
