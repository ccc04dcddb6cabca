package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fedi-e2ee/pkd-go/internal"
	"github.com/spf13/cobra"
)

func TestRootDispatch(t *testing.T) {
	root := NewRootCommand("pkdtest", "short", "long")
	var ran []string
	root.AddCommand(
		NewInitCommand("pkdtest", func(cmd *cobra.Command, args []string) {
			ran = append(ran, "init")
		}),
		NewRunCommand("pkdtest", "check [files...]", func(cmd *cobra.Command, args []string) {
			ran = append(ran, "check:"+strings.Join(args, ","))
		}),
	)

	root.SetArgs([]string{"init"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	root.SetArgs([]string{"check", "a.json", "b.json"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.Join(ran, " ") != "init check:a.json,b.json" {
		t.Error("Unexpected runs", ran)
	}

	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"check"})
	if err := root.Execute(); err == nil {
		t.Error("Expect an error without files")
	}
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand("pkdtest", "short", "long")
	root.AddCommand(NewVersionCommand("pkdtest"))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "pkdtest v"+internal.Version+" ") {
		t.Error("Unexpected output", out.String())
	}
}

func TestInitCommandTakesNoArgs(t *testing.T) {
	root := NewRootCommand("pkdtest", "short", "long")
	ran := false
	root.AddCommand(NewInitCommand("pkdtest", func(cmd *cobra.Command, args []string) {
		ran = true
	}))
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"init", "extra"})
	if err := root.Execute(); err == nil || ran {
		t.Error("Expect init to reject arguments")
	}
}
