// Package main implements the sfdotenv command-line tool: load, encrypt,
// and decrypt dotenv files from the shell.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set by the release build via -ldflags; "dev" otherwise.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "sfdotenv",
	Short: "Load and envelope-encrypt dotenv configuration files",
	Long: `sfdotenv loads dotenv-formatted configuration files, expands shell-style
variable references, opportunistically decodes JSON-shaped values, and can
seal or unseal a file inside an authenticated-encryption envelope using:
  - Argon2id for passphrase-based key derivation
  - XSalsa20-Poly1305 (NaCl secretbox) for authenticated encryption`,
	Version: version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
