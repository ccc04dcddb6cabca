package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fedi-e2ee/pkd-go/application/validator"
	"github.com/fedi-e2ee/pkd-go/cli"
	"github.com/spf13/cobra"
)

var validateCmd = cli.NewRunCommand("pkdvalidate", "validate [files...]", validate)

func init() {
	RootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("config", "c", "config.toml",
		"Path to validator configuration file")
}

func validate(cmd *cobra.Command, args []string) {
	confPath := cmd.Flag("config").Value.String()
	var conf validator.Config
	if err := conf.Load(confPath, "toml"); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	v, err := validator.New(&conf)
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	if failed := validateFiles(v, args, cmd.OutOrStdout()); failed > 0 {
		os.Exit(1)
	}
}

// validateFiles checks each file, reports the outcome to w
// and returns the number of files which failed.
func validateFiles(v *validator.Validator, files []string, w io.Writer) int {
	failed := 0
	for _, file := range files {
		actions, err := v.ValidateFile(file)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", file, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "OK   %s: %d action(s)\n", file, len(actions))
		for _, a := range actions {
			fmt.Fprintf(w, "     %s\n", a.Name())
		}
	}
	return failed
}
