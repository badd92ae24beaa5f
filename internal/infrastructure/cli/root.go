package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	projectPath string
	configPath  string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "studiorate",
	Version: Version,
	Short:   "Five-question rating widget for the studio",
	Long: `Studiorate collects a five-question star rating from studio visitors
and forwards it to the studio's form endpoint.

Run it as a terminal page (dialog), as a small web page (serve), or send a
rating straight from the command line (submit).`,
	SilenceUsage: true,
}

// Execute runs the command tree and maps domain errors to CLI errors.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return MapError(RootCmd.Execute())
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "project root (defaults to the current directory)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "widget config file (defaults to .studiorate/widget.yaml)")
}
