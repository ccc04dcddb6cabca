package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/fedi-e2ee/pkd-go/application"
	"github.com/fedi-e2ee/pkd-go/application/validator"
	"github.com/fedi-e2ee/pkd-go/cli"
	"github.com/fedi-e2ee/pkd-go/protocol"
	"github.com/spf13/cobra"
)

var initCmd = cli.NewInitCommand("pkdvalidate", mkConfigOrExit)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("dir", "d", ".",
		"Location of directory for storing generated files")
	initCmd.Flags().StringSliceP("allow", "a", nil,
		"Names of the allowed actions (default all)")
}

func mkConfigOrExit(cmd *cobra.Command, args []string) {
	dir := cmd.Flag("dir").Value.String()
	allowed, err := cmd.Flags().GetStringSlice("allow")
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	for _, name := range allowed {
		if _, err := protocol.ParseActionName(name); err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
	}
	file := path.Join(dir, "config.toml")

	logger := &application.LoggerConfig{
		Environment: "production",
		Path:        "pkdvalidate.log",
		Rotation:    &application.RotationConfig{},
	}
	conf := validator.NewConfig(file, "toml", logger,
		validator.DefaultMaxMessageSize, allowed)

	if err := conf.Save(); err != nil {
		fmt.Println("Couldn't save config. Error message: [" +
			err.Error() + "]")
		os.Exit(-1)
	}
}
