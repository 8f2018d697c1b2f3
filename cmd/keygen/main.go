// cmd/keygen/main.go
//
// Generates a Solana signer keypair for the launcher.
// - prints the address (base58 public key)
// - prints the base58 secret (SOLANA_PRIVATE_KEY format)
// - writes a solana-keygen compatible JSON file, suitable for
//   `gcloud secrets versions add <secret> --data-file=<file>`
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"

	solanainfra "github.com/metadataee/metadata/internal/infra/solana"
)

const defaultOutFile = "mint-authority.json"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	out := fs.String("out", defaultOutFile, "keypair JSON file to write")
	force := fs.Bool("force", false, "overwrite an existing file")
	noSecret := fs.Bool("no-secret", false, "do not print the base58 secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	acc := types.NewAccount()

	data, err := solanainfra.EncodeKeypairJSON(acc)
	if err != nil {
		return fmt.Errorf("encode keypair: %w", err)
	}
	if err := writeKeypairFile(*out, data, *force); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "============================================")
	fmt.Fprintln(stdout, "Signer keypair generated")
	fmt.Fprintln(stdout, "============================================")
	fmt.Fprintf(stdout, "Address:\n  %s\n\n", acc.PublicKey.ToBase58())
	if !*noSecret {
		fmt.Fprintf(stdout, "Secret (SOLANA_PRIVATE_KEY):\n  %s\n\n", base58.Encode(acc.PrivateKey))
	}
	fmt.Fprintf(stdout, "Keypair file (solana-keygen JSON):\n  %s\n\n", *out)
	fmt.Fprintln(stdout, "IMPORTANT:")
	fmt.Fprintln(stdout, "  - never commit the keypair file")
	fmt.Fprintln(stdout, "  - store it in Secret Manager and point SOLANA_MINT_KEY_SECRET at the version")
	return nil
}

func writeKeypairFile(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
