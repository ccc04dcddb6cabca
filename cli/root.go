package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// A rootCommand is the executable itself; every other command is
// added to it.
type rootCommand struct {
	use   string
	short string
	long  string
}

var _ cobraCommand = (*rootCommand)(nil)

// NewRootCommand returns the root command of the executable use.
func NewRootCommand(use, short, long string) *cobra.Command {
	return (&rootCommand{use: use, short: short, long: long}).Build()
}

// Build implements cobraCommand.
func (c *rootCommand) Build() *cobra.Command {
	return &cobra.Command{
		Use:          c.use,
		Short:        c.short,
		Long:         c.long,
		SilenceUsage: true,
	}
}

// ExecuteRoot runs rootCmd and exits with status 2 if the command line
// can't be parsed.
func ExecuteRoot(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
