package cli

import (
	"github.com/spf13/cobra"
)

// An initCommand writes an executable's default configuration.
type initCommand struct {
	appName string
	runFunc func(cmd *cobra.Command, args []string)
}

var _ cobraCommand = (*initCommand)(nil)

// NewInitCommand returns the "init" command of appName, implemented
// by runFunc.
func NewInitCommand(appName string, runFunc func(cmd *cobra.Command, args []string)) *cobra.Command {
	return (&initCommand{appName: appName, runFunc: runFunc}).Build()
}

// Build implements cobraCommand.
func (c *initCommand) Build() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file for " + c.appName + ".",
		Long: `Create a configuration file for ` + c.appName + `.

An existing configuration file is never overwritten.`,
		Args: cobra.NoArgs,
		Run:  c.runFunc,
	}
}
