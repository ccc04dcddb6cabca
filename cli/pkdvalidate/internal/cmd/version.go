package cmd

import (
	"github.com/fedi-e2ee/pkd-go/cli"
)

var versionCmd = cli.NewVersionCommand("pkdvalidate")

func init() {
	RootCmd.AddCommand(versionCmd)
}
