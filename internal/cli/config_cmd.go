package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/config"
	"github.com/aidanlsb/datekit/internal/ui"
)

type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	configExists bool
}

var (
	configSetTemplate   string
	configSetDialect    string
	configSetTimezone   string
	configSetNow        string
	configSetDayFirst   bool
	configSetExtensions string
	configSetUIAccent   string
)

func loadGlobalConfigContextAllowMissing() (*globalConfigContext, error) {
	path := config.ResolveConfigPath(configPath)
	ctx := &globalConfigContext{cfg: &config.Config{}, configPath: path}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ctx, nil
		}
		return nil, err
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	ctx.cfg = loaded
	ctx.configExists = true
	return ctx, nil
}

func configData(ctx *globalConfigContext) map[string]any {
	return map[string]any{
		"config_path":      ctx.configPath,
		"exists":           ctx.configExists,
		"default_template": ctx.cfg.DefaultTemplate,
		"dialect":          strings.TrimSpace(ctx.cfg.Dialect),
		"timezone":         strings.TrimSpace(ctx.cfg.Timezone),
		"now":              strings.TrimSpace(ctx.cfg.Now),
		"day_first":        ctx.cfg.DayFirst,
		"extensions":       ctx.cfg.ExtensionsPath(ctx.configPath),
		"ui": map[string]any{
			"accent": strings.TrimSpace(ctx.cfg.UI.Accent),
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadGlobalConfigContextAllowMissing()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	w := cmd.OutOrStdout()
	if !ctx.configExists {
		fmt.Fprintf(w, "Config file does not exist: %s\n", ctx.configPath)
		fmt.Fprintln(w, "Run 'dk config init' to create it.")
		return nil
	}

	fmt.Fprintf(w, "config: %s\n", ctx.configPath)
	printSetting := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(w, "%s: %s\n", key, value)
		}
	}
	printSetting("default_template", ctx.cfg.DefaultTemplate)
	printSetting("dialect", ctx.cfg.Dialect)
	printSetting("timezone", ctx.cfg.Timezone)
	printSetting("now", ctx.cfg.Now)
	if ctx.cfg.DayFirst {
		fmt.Fprintln(w, "day_first: true")
	}
	printSetting("extensions", ctx.cfg.ExtensionsPath(ctx.configPath))
	printSetting("ui.accent", ctx.cfg.UI.Accent)
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global datekit config.toml settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default global config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		createdPath, created, err := config.CreateDefault(config.ResolveConfigPath(configPath))
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"config_path": createdPath,
				"created":     created,
			}, nil)
			return nil
		}

		w := cmd.OutOrStdout()
		if created {
			fmt.Fprintln(w, ui.Successf("Created config: %s", createdPath))
		} else {
			fmt.Fprintf(w, "Config already exists: %s\n", createdPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update global config.toml values",
	Example: `  dk config set --timezone America/Chicago --template "F jS, Y"
  dk config set --day-first`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		flags := cmd.Flags()
		var changed []string
		if flags.Changed("template") {
			ctx.cfg.DefaultTemplate = configSetTemplate
			changed = append(changed, "default_template")
		}
		if flags.Changed("dialect") {
			ctx.cfg.Dialect = configSetDialect
			changed = append(changed, "dialect")
		}
		if flags.Changed("timezone") {
			if _, err := config.ResolveLocation(configSetTimezone); err != nil {
				return handleError(ErrInvalidInput, err, "Use an IANA name such as Europe/Paris or an offset such as +05:30")
			}
			ctx.cfg.Timezone = configSetTimezone
			changed = append(changed, "timezone")
		}
		if flags.Changed("now") {
			ctx.cfg.Now = configSetNow
			changed = append(changed, "now")
		}
		if flags.Changed("day-first") {
			ctx.cfg.DayFirst = configSetDayFirst
			changed = append(changed, "day_first")
		}
		if flags.Changed("extensions") {
			ctx.cfg.Extensions = configSetExtensions
			changed = append(changed, "extensions")
		}
		if flags.Changed("ui-accent") {
			ctx.cfg.UI.Accent = configSetUIAccent
			changed = append(changed, "ui.accent")
		}
		if len(changed) == 0 {
			return handleError(ErrInvalidInput, fmt.Errorf("no settings given"), "Run 'dk config set --help' for the available flags")
		}

		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		ctx.configExists = true

		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, ui.Successf("Updated config: %s", ctx.configPath))
		fmt.Fprintf(w, "changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current global config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	configSetCmd.Flags().StringVar(&configSetTemplate, "template", "", "Set default_template")
	configSetCmd.Flags().StringVar(&configSetDialect, "dialect", "", "Set dialect (empty to detect)")
	configSetCmd.Flags().StringVar(&configSetTimezone, "timezone", "", "Set timezone (IANA name or ±HH:MM)")
	configSetCmd.Flags().StringVar(&configSetNow, "now", "", "Set the pinned reference instant (empty to unpin)")
	configSetCmd.Flags().BoolVar(&configSetDayFirst, "day-first", false, "Read 1/3/2006 as 1 March")
	configSetCmd.Flags().StringVar(&configSetExtensions, "extensions", "", "Set the extensions file path")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Set UI accent color (ANSI 0-255 or #RRGGBB)")

	rootCmd.AddCommand(configCmd)
}
