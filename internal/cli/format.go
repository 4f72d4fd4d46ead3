package cli

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/template"
)

var (
	formatDialect string
	formatPreset  string
)

var formatPresets = map[string]string{
	"iso":    template.ISOTemplate,
	"sql":    template.SQLTemplate,
	"rfc822": template.RFC822Template,
}

var formatCmd = &cobra.Command{
	Use:   "format <date> [template]",
	Short: "Render a date through a template",
	Long: `Render a date through a template.

Templates containing % use strftime codes (%Y-%m-%d), anything else uses php
letters (Y-m-d). Use --dialect to pick a dialect explicitly, for example sql
(yyyy-mm-dd hh24:mi). Unknown tokens are copied through unchanged.`,
	Example: `  dk format 2006-09-09 "%B %e, %Y"
  dk format "next friday" "l jS F"
  dk format now "yyyy-mm-dd hh24:mi" --dialect sql
  dk format now --preset rfc822`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFormat,
}

func runFormat(cmd *cobra.Command, args []string) error {
	k := getKit()
	r, ok, err := parseArg(k, args[0])
	if !ok {
		return err
	}

	tmpl := ""
	if len(args) > 1 {
		tmpl = args[1]
	}
	if formatPreset != "" {
		preset, found := formatPresets[strings.ToLower(formatPreset)]
		if !found {
			return handleError(ErrInvalidInput, fmt.Errorf("unknown preset %q", formatPreset), "Presets: iso, sql, rfc822")
		}
		tmpl = preset
	}

	dialect := strings.TrimSpace(formatDialect)
	if dialect == "" && cfg != nil {
		dialect = strings.TrimSpace(cfg.Dialect)
	}

	var out string
	if dialect != "" {
		out, err = k.FormatWith(dialect, r.Date, tmpl)
		if err != nil {
			return handleError(ErrUnknownDialect, err, errors.FlattenHints(err))
		}
	} else {
		out = k.Format(r.Date, tmpl)
		effective := tmpl
		if effective == "" && cfg != nil {
			effective = cfg.DefaultTemplate
		}
		dialect = template.DetectDialect(effective)
	}

	if isJSONOutput() {
		outputSuccess(map[string]any{
			"input":     args[0],
			"date":      r.Date.String(),
			"template":  tmpl,
			"dialect":   dialect,
			"formatted": out,
		}, nil)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func init() {
	formatCmd.Flags().StringVarP(&formatDialect, "dialect", "d", "", "Dialect to use (strftime, php, sql, or one from extensions)")
	formatCmd.Flags().StringVar(&formatPreset, "preset", "", "Canonical template: iso, sql or rfc822")
	rootCmd.AddCommand(formatCmd)
}
