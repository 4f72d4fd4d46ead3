package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/ui"
)

var (
	autoformatTemplate string
	autoformatStrict   bool
)

var autoformatCmd = &cobra.Command{
	Use:   "autoformat [text...]",
	Short: "Rewrite date-like input in a canonical format",
	Long: `Rewrite date-like input in a canonical format.

Each argument, or each line of stdin when no arguments are given, is parsed
and re-rendered with the template. Input that is not recognized is passed
through unchanged, the way a form field keeps what the user typed.`,
	Example: `  dk autoformat "next friday" "3 days ago" -t "F jS, Y"
  cut -d, -f2 events.csv | dk autoformat -t "%Y-%m-%d"`,
	RunE: runAutoformat,
}

type autoformatResult struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	Recognized bool   `json:"recognized"`
}

func runAutoformat(cmd *cobra.Command, args []string) error {
	inputs := args
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			inputs = append(inputs, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return handleError(ErrFileReadError, err, "")
		}
	}

	k := getKit()
	results := make([]autoformatResult, 0, len(inputs))
	var warnings []Warning
	for _, input := range inputs {
		out, ok := k.AutoFormat(input, autoformatTemplate)
		results = append(results, autoformatResult{Input: input, Output: out, Recognized: ok})
		if !ok {
			warnings = append(warnings, Warning{
				Code:    ErrParseFailed,
				Message: "left unchanged",
				Input:   input,
			})
		}
	}

	if autoformatStrict && len(warnings) > 0 {
		return handleErrorWithDetails(ErrParseFailed,
			fmt.Sprintf("%d of %d inputs not recognized", len(warnings), len(inputs)),
			"Run 'dk parse <text>' on a failing input to see which patterns declined it",
			warnings)
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(results, warnings, &Meta{Count: len(results)})
		return nil
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintln(w, r.Output)
	}
	for _, warn := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("%q %s", warn.Input, warn.Message)))
	}
	return nil
}

func init() {
	autoformatCmd.Flags().StringVarP(&autoformatTemplate, "template", "t", "", "Output template (default: config default_template)")
	autoformatCmd.Flags().BoolVar(&autoformatStrict, "strict", false, "Fail when any input is not recognized")
	rootCmd.AddCommand(autoformatCmd)
}
