package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/pattern"
	"github.com/aidanlsb/datekit/internal/slugs"
	"github.com/aidanlsb/datekit/internal/ui"
)

var patternsWithout []string

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List parse patterns in the order they are tried",
	Long: `List parse patterns in the order they are tried.

The order includes config adjustments (day_first) and patterns added by the
extensions file. Use --without to preview the order with patterns removed.`,
	Args: cobra.NoArgs,
	RunE: runPatternsList,
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	k := getKit()
	if err := removePatterns(k, patternsWithout); err != nil {
		return handleError(ErrUnknownPattern, err, "Run 'dk patterns' to list pattern names")
	}
	entries := k.Patterns().Entries()

	if isJSONOutput() {
		items := make([]map[string]any, len(entries))
		for i, e := range entries {
			items[i] = patternData(i, e)
		}
		outputSuccess(items, &Meta{Count: len(items)})
		return nil
	}

	w := cmd.OutOrStdout()
	tbl := ui.NewTable("#", "NAME", "PATTERN")
	for i, e := range entries {
		tbl.AddRow(strconv.Itoa(i+1), ui.Accent.Render(e.Name), e.Source)
	}
	fmt.Fprint(w, tbl.String())
	fmt.Fprintln(w, ui.Hint(ui.Count(len(entries), "pattern", "patterns")))
	return nil
}

var patternsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a pattern's source and expanded regex",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k := getKit()
		name := slugs.Name(args[0])
		e, ok := k.Patterns().Lookup(name)
		if !ok {
			return handleError(ErrUnknownPattern, fmt.Errorf("%w: %s", pattern.ErrNotFound, name), "Run 'dk patterns' to list pattern names")
		}
		position := 0
		for i, n := range k.Patterns().Names() {
			if n == name {
				position = i
			}
		}

		if isJSONOutput() {
			outputSuccess(patternData(position, e), nil)
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, ui.Header(e.Name))
		fmt.Fprintln(w, ui.Field("position", strconv.Itoa(position+1)))
		fmt.Fprintln(w, ui.Field("source", e.Source))
		fmt.Fprintln(w, ui.Field("regex", e.Expanded()))
		return nil
	},
}

var patternsFragmentsCmd = &cobra.Command{
	Use:   "fragments",
	Short: "List the built-in _NAME_ fragments available to patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		frags := pattern.DefaultFragments()
		names := frags.Names()

		if isJSONOutput() {
			outputSuccess(frags, &Meta{Count: len(names)})
			return nil
		}

		tbl := ui.NewTable("FRAGMENT", "REGEX")
		for _, name := range names {
			tbl.AddRow("_"+name+"_", frags[name])
		}
		fmt.Fprint(cmd.OutOrStdout(), tbl.String())
		return nil
	},
}

func patternData(position int, e *pattern.Entry) map[string]any {
	return map[string]any{
		"position": position + 1,
		"name":     e.Name,
		"source":   e.Source,
		"regex":    e.Expanded(),
	}
}

func init() {
	patternsCmd.Flags().StringSliceVar(&patternsWithout, "without", nil, "Patterns to leave out (comma separated)")
	patternsCmd.AddCommand(patternsShowCmd)
	patternsCmd.AddCommand(patternsFragmentsCmd)
	rootCmd.AddCommand(patternsCmd)
}
