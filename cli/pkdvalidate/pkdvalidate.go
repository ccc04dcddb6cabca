// Executable PKD action validator. It checks that files of encoded
// PKD actions decode strictly and pass the configured policy.
package main

import (
	"github.com/fedi-e2ee/pkd-go/cli"
	"github.com/fedi-e2ee/pkd-go/cli/pkdvalidate/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
