package cmd

import (
	"github.com/fedi-e2ee/pkd-go/cli"
)

// RootCmd represents the base "pkdvalidate" command when called without any
// subcommands (init, validate, keyfmt, version).
var RootCmd = cli.NewRootCommand("pkdvalidate",
	"PKD action validator",
	`pkdvalidate checks PKD action messages: each file must hold a single
action or a batch of actions in canonical form, carrying only the
actions the configuration allows.`)
