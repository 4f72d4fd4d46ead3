package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func walkCommands(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, child := range cmd.Commands() {
		walkCommands(child, fn)
	}
}

// resetChangedFlags clears Changed on cmd's local flags so flag-sensitive
// commands behave as if freshly parsed.
func resetChangedFlags(cmd *cobra.Command) {
	cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
}

func TestCommandFlagsHaveUsage(t *testing.T) {
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
			if flag.Name == "help" {
				return
			}
			if flag.Usage == "" {
				t.Errorf("%s: flag --%s has no usage text", cmd.CommandPath(), flag.Name)
			}
		})
	})
}

func TestCommandShorthandsDoNotShadowGlobals(t *testing.T) {
	global := make(map[string]string)
	rootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Shorthand != "" {
			global[flag.Shorthand] = flag.Name
		}
	})

	walkCommands(rootCmd, func(cmd *cobra.Command) {
		if cmd == rootCmd {
			return
		}
		cmd.LocalNonPersistentFlags().VisitAll(func(flag *pflag.Flag) {
			if name, ok := global[flag.Shorthand]; ok && flag.Shorthand != "" {
				t.Errorf("%s: -%s shadows global --%s", cmd.CommandPath(), flag.Shorthand, name)
			}
		})
	})
}

func TestCommandsHaveShortHelp(t *testing.T) {
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		if cmd.Short == "" {
			t.Errorf("%s has no short description", cmd.CommandPath())
		}
	})
}
