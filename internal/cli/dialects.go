package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/slugs"
	"github.com/aidanlsb/datekit/internal/template"
	"github.com/aidanlsb/datekit/internal/ui"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List format dialects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		k := getKit()
		names := k.Dialects().List()

		items := make([]map[string]any, 0, len(names))
		tbl := ui.NewTable("NAME", "DEFAULT", "CODES", "SHORTCUTS")
		for _, name := range names {
			d, err := k.Dialects().Get(name)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			items = append(items, map[string]any{
				"name":             d.Name,
				"default_template": d.DefaultTemplate,
				"codes":            len(d.Codes),
				"shortcuts":        len(d.Shortcuts),
			})
			tbl.AddRow(ui.Accent.Render(d.Name), d.DefaultTemplate,
				strconv.Itoa(len(d.Codes)), strconv.Itoa(len(d.Shortcuts)))
		}

		if isJSONOutput() {
			outputSuccess(items, &Meta{Count: len(items)})
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), tbl.String())
		return nil
	},
}

var dialectsCodesCmd = &cobra.Command{
	Use:   "codes <name>",
	Short: "Show a dialect's code table",
	Example: `  dk dialects codes strftime
  dk dialects codes php --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k := getKit()
		d, err := k.Dialects().Get(slugs.Name(args[0]))
		if err != nil {
			return handleError(ErrUnknownDialect, err, errors.FlattenHints(err))
		}
		rows := d.Table()

		if isJSONOutput() {
			items := make([]map[string]any, len(rows))
			for i, row := range rows {
				kind := "code"
				if row.Shortcut {
					kind = "shortcut"
				}
				items[i] = map[string]any{"token": row.Token, "value": row.Accessor, "kind": kind}
			}
			outputSuccess(items, &Meta{Count: len(items)})
			return nil
		}

		w := cmd.OutOrStdout()
		display := ui.NewDisplayContextFor(w)
		if display.IsTTY {
			rendered, err := ui.RenderMarkdown(codesMarkdown(d, rows), display.AvailableWidth(ui.MarkdownRenderMargin))
			if err == nil {
				fmt.Fprint(w, rendered)
				return nil
			}
			logger.Debug("markdown render failed, falling back to plain table")
		}

		tbl := ui.NewTable("TOKEN", "VALUE", "KIND")
		for _, row := range rows {
			kind := "code"
			if row.Shortcut {
				kind = "shortcut"
			}
			tbl.AddRow(displayToken(d, row.Token), printable(row.Accessor), kind)
		}
		fmt.Fprint(w, tbl.String())
		return nil
	},
}

// codesMarkdown renders the code table of d for glamour.
func codesMarkdown(d *template.Dialect, rows []template.CodeRow) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.Name)
	if d.DefaultTemplate != "" {
		fmt.Fprintf(&sb, "Default template: `%s`\n\n", d.DefaultTemplate)
	}

	var codes, shortcuts [][]string
	for _, row := range rows {
		cells := []string{"`" + displayToken(d, row.Token) + "`", printable(row.Accessor)}
		if row.Shortcut {
			shortcuts = append(shortcuts, cells)
		} else {
			codes = append(codes, cells)
		}
	}
	sb.WriteString("## Codes\n\n")
	sb.WriteString(ui.MarkdownTable([]string{"Token", "Accessor"}, codes))
	if len(shortcuts) > 0 {
		sb.WriteString("\n## Shortcuts\n\n")
		sb.WriteString(ui.MarkdownTable([]string{"Token", "Expands to"}, shortcuts))
	}
	return sb.String()
}

// displayToken shows strftime tokens with their % so the table reads like a
// template.
func displayToken(d *template.Dialect, token string) string {
	if d.Name == template.StrftimeName {
		return "%" + token
	}
	return token
}

// printable quotes values holding control characters such as tab.
func printable(s string) string {
	for _, r := range s {
		if unicode.IsControl(r) {
			return strconv.Quote(s)
		}
	}
	return s
}

func init() {
	dialectsCmd.AddCommand(dialectsCodesCmd)
	rootCmd.AddCommand(dialectsCmd)
}
