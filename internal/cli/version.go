package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/datekit/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/datekit"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show datekit version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "dk %s\n", info.Version)
		fmt.Fprintf(w, "module: %s\n", info.ModulePath)
		if info.Commit != "" {
			fmt.Fprintf(w, "commit: %s\n", info.Commit)
		}
		if info.CommitTime != "" {
			fmt.Fprintf(w, "commit_time: %s\n", info.CommitTime)
		}
		fmt.Fprintf(w, "go: %s\n", info.GoVersion)
		fmt.Fprintf(w, "platform: %s\n", info.Platform)
		fmt.Fprintf(w, "modified: %t\n", info.Modified)
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    buildinfo.Resolve(""),
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok || bi == nil {
		info.Commit, info.CommitTime = buildinfo.Commit, buildinfo.Date
		return info
	}

	if bi.Main.Path != "" {
		info.ModulePath = bi.Main.Path
	}
	info.Version = buildinfo.Resolve(bi.Main.Version)
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	if goos, goarch := settings["GOOS"], settings["GOARCH"]; goos != "" && goarch != "" {
		info.Platform = goos + "/" + goarch
	}
	info.Commit = firstNonEmpty(settings["vcs.revision"], buildinfo.Commit)
	info.CommitTime = firstNonEmpty(settings["vcs.time"], buildinfo.Date)
	info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	return info
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
