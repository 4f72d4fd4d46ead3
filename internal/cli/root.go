// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/datekit/internal/config"
	"github.com/aidanlsb/datekit/internal/datekit"
	"github.com/aidanlsb/datekit/internal/logging"
	"github.com/aidanlsb/datekit/internal/ui"
)

var (
	// Global flags
	configPath   string
	timezoneFlag string
	nowFlag      string
	debugFlag    bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	kit                *datekit.Kit
	logger             = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dk",
	Short: "datekit - parse, format and compute dates",
	Long: `datekit turns free-form text such as "3 months ago", "next tuesday" or
"Sat Apr 14 2012 09:45:25 GMT-0600" into dates, renders them through strftime,
php or sql style templates and does calendar arithmetic on them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version", "config", "docs":
			return nil
		}
		if p := cmd.Parent(); p != nil && (p.Name() == "config" || p.Name() == "docs") {
			return nil
		}
		if err := setup(); err != nil {
			return err
		}
		if kit == nil {
			// already written as a JSON error
			return errReported
		}
		return nil
	},
}

var errReported = errors.New("error reported")

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	reportError(rootCmd.ErrOrStderr(), err)
	return err
}

// reportError prints err as a status line unless it was already written.
func reportError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errReported) {
		return
	}
	fmt.Fprintln(w, ui.Error(err.Error()))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&timezoneFlag, "tz", "", "Timezone: IANA name or ±HH:MM (overrides config)")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "Reference instant for relative dates (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log pattern matching to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// setup loads config and builds the shared Kit.
func setup() error {
	kit = nil
	logger = logging.New(debugFlag)

	var err error
	cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
	if err != nil {
		return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err),
			"Run 'dk config show' to inspect the file")
	}
	ui.ConfigureTheme(cfg.UI.Accent)

	kit, err = buildKit(cfg, resolvedConfigPath, timezoneFlag, nowFlag, logger)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	return nil
}

// getKit returns the Kit built by setup.
func getKit() *datekit.Kit {
	return kit
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

// buildKit wires config, extensions and flag overrides into a Kit.
func buildKit(c *config.Config, cfgPath, tz, now string, log *zap.Logger) (*datekit.Kit, error) {
	if strings.TrimSpace(tz) == "" {
		tz = c.Timezone
	}
	loc, err := config.ResolveLocation(tz)
	if err != nil {
		return nil, err
	}

	opts := []datekit.Option{
		datekit.WithLocation(loc),
		datekit.WithLogger(log),
		datekit.WithDefaultTemplate(c.DefaultTemplate),
	}

	if strings.TrimSpace(now) == "" {
		now = c.Now
	}
	if strings.TrimSpace(now) != "" {
		// Resolve the pinned instant against the real clock first.
		pinned, err := datekit.New(datekit.WithLocation(loc)).Parse(now)
		if err != nil {
			return nil, fmt.Errorf("invalid reference instant %q: %w", now, err)
		}
		t := pinned.Time()
		opts = append(opts, datekit.WithClock(func() time.Time { return t }))
	}

	k := datekit.New(opts...)

	if c.DayFirst {
		if err := k.Patterns().Move("us", "world"); err != nil {
			return nil, fmt.Errorf("day_first: %w", err)
		}
	}

	if extPath := c.ExtensionsPath(cfgPath); extPath != "" {
		ext, err := config.LoadExtensions(extPath)
		if err != nil {
			return nil, err
		}
		if err := ext.Apply(k.Patterns(), k.Dialects()); err != nil {
			return nil, fmt.Errorf("extensions %s: %w", extPath, err)
		}
		log.Debug("extensions applied",
			zap.String("path", extPath),
			zap.Int("patterns", len(ext.Patterns)),
			zap.Int("dialects", len(ext.Dialects)),
		)
	}

	return k, nil
}
