// Package cli builds the cobra commands shared by the PKD executables.
package cli

import (
	"github.com/spf13/cobra"
)

// cobraCommand is implemented by each kind of command a PKD
// executable is made of.
type cobraCommand interface {
	Build() *cobra.Command
}
