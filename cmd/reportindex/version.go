package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildVersion describes the running binary.
type buildVersion struct {
	Version string
	Commit  string
	Date    string
	Go      string
}

// readBuildVersion collects version information.
// Priority per field: ldflags > debug.ReadBuildInfo > placeholder.
func readBuildVersion() buildVersion {
	v := buildVersion{
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}

	info, ok := debug.ReadBuildInfo()
	if ok {
		if v.Version == "" && info.Main.Version != "" {
			v.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if v.Commit == "" {
					v.Commit = shortRevision(setting.Value)
				}
			case "vcs.time":
				if v.Date == "" {
					v.Date = setting.Value
				}
			}
		}
	}

	if v.Version == "" {
		v.Version = "(devel)"
	}
	if v.Commit == "" {
		v.Commit = "unknown"
	}
	if v.Date == "" {
		v.Date = "unknown"
	}
	return v
}

// shortRevision abbreviates a commit hash to seven characters.
func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version string.
func getVersion() string {
	return readBuildVersion().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go version of reportindex.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}

			v := readBuildVersion()
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, v.Version)
				return nil
			}
			fmt.Fprintf(out, "reportindex version %s\n", v.Version)
			fmt.Fprintf(out, "  commit: %s\n", v.Commit)
			fmt.Fprintf(out, "  built:  %s\n", v.Date)
			fmt.Fprintf(out, "  go:     %s\n", v.Go)
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print only the version number")

	return cmd
}
