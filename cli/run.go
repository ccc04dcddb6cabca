package cli

import (
	"github.com/spf13/cobra"
)

// A runCommand is an executable's main functionality, applied to the
// files given on the command line.
type runCommand struct {
	appName string
	use     string
	runFunc func(cmd *cobra.Command, args []string)
}

var _ cobraCommand = (*runCommand)(nil)

// NewRunCommand returns the main command of appName with the given
// use line, implemented by runFunc. It takes at least one argument.
func NewRunCommand(appName, use string, runFunc func(cmd *cobra.Command, args []string)) *cobra.Command {
	return (&runCommand{appName: appName, use: use, runFunc: runFunc}).Build()
}

// Build implements cobraCommand.
func (c *runCommand) Build() *cobra.Command {
	return &cobra.Command{
		Use:   c.use,
		Short: "Run " + c.appName + " on the given files.",
		Long: `Run ` + c.appName + ` on the given files.

This will look for config files with default names
in the current directory if not specified differently.`,
		Args: cobra.MinimumNArgs(1),
		Run:  c.runFunc,
	}
}
