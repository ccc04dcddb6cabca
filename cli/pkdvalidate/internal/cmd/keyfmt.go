package cmd

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/fedi-e2ee/pkd-go/protocol"
	"github.com/fedi-e2ee/pkd-go/utils"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

const (
	secretKeyFile = "ed25519.secret"
	publicKeyFile = "ed25519.pub"
)

var keyfmtCmd = &cobra.Command{
	Use:   "keyfmt [file]",
	Short: "Print the canonical text form of a raw key or Merkle root.",
	Long: `Print the canonical text form of a raw key or Merkle root.

The file holds the raw 32 bytes of an Ed25519 public key, or of a
Merkle root with --merkle-root. With --generate, a new Ed25519 key pair
is written to the given directory instead.`,
	Args: cobra.MaximumNArgs(1),
	Run:  keyfmt,
}

func init() {
	RootCmd.AddCommand(keyfmtCmd)
	keyfmtCmd.Flags().Bool("merkle-root", false, "Format a Merkle root")
	keyfmtCmd.Flags().Bool("generate", false, "Generate an Ed25519 key pair")
	keyfmtCmd.Flags().StringP("dir", "d", ".",
		"Location of directory for storing generated keys")
}

func keyfmt(cmd *cobra.Command, args []string) {
	generate, _ := cmd.Flags().GetBool("generate")
	root, _ := cmd.Flags().GetBool("merkle-root")

	var text string
	var err error
	switch {
	case generate:
		text, err = mkSigningKey(cmd.Flag("dir").Value.String(), rand.Reader)
	case len(args) != 1:
		err = fmt.Errorf("Missing key file")
	default:
		text, err = formatFile(args[0], root)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
}

// formatFile returns the canonical text of the raw value in file.
func formatFile(file string, merkleRoot bool) (string, error) {
	raw, err := utils.ReadFileLimit(file, 64)
	if err != nil {
		return "", err
	}
	if merkleRoot {
		if len(raw) != protocol.MerkleRootSize {
			return "", fmt.Errorf("Merkle root must be %d bytes (got %d)", protocol.MerkleRootSize, len(raw))
		}
		var digest [protocol.MerkleRootSize]byte
		copy(digest[:], raw)
		return protocol.NewMerkleRoot(digest).String(), nil
	}
	pk, err := protocol.PublicKeyFromEd25519(raw)
	if err != nil {
		return "", err
	}
	return pk.String(), nil
}

// mkSigningKey writes a new Ed25519 key pair to dir and returns the
// canonical text of its public key.
func mkSigningKey(dir string, r io.Reader) (string, error) {
	pub, sec, err := ed25519.GenerateKey(r)
	if err != nil {
		return "", err
	}
	if err := utils.WriteFile(path.Join(dir, secretKeyFile), sec, 0600); err != nil {
		return "", err
	}
	if err := utils.WriteFile(path.Join(dir, publicKeyFile), pub, 0644); err != nil {
		return "", err
	}
	pk, err := protocol.PublicKeyFromEd25519(pub)
	if err != nil {
		return "", err
	}
	return pk.String(), nil
}
