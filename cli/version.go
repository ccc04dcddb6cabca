package cli

import (
	"fmt"
	"runtime"

	"github.com/fedi-e2ee/pkd-go/internal"
	"github.com/spf13/cobra"
)

// A versionCommand prints an executable's version.
type versionCommand struct {
	appName string
}

var _ cobraCommand = (*versionCommand)(nil)

// NewVersionCommand returns the "version" command of appName.
func NewVersionCommand(appName string) *cobra.Command {
	return (&versionCommand{appName: appName}).Build()
}

// Build implements cobraCommand.
func (c *versionCommand) Build() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + c.appName + ".",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s (%s)\n",
				c.appName, internal.Version, runtime.Version())
		},
	}
}
