package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalforge/dotenv-go/internal/envelope"
)

func init() {
	encryptCmd.SilenceErrors = true
	encryptCmd.SilenceUsage = true
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().StringVarP(&encInput, "input", "i", "", "Plaintext dotenv file to encrypt")
	encryptCmd.Flags().StringVarP(&encOutput, "output", "o", "", "Output path (defaults to <input>.enc)")
	encryptCmd.Flags().StringVarP(&encPassword, "passphrase", "p", "", "Passphrase (visible in shell history; prefer -P or interactive prompt)")
	encryptCmd.Flags().BoolVarP(&encPasswordStdin, "passphrase-stdin", "P", false, "Read passphrase from stdin")
	encryptCmd.Flags().BoolVarP(&encYes, "yes", "y", false, "Overwrite an existing output file without prompting")
	_ = encryptCmd.MarkFlagRequired("input")
}

var (
	encInput         string
	encOutput        string
	encPassword      string
	encPasswordStdin bool
	encYes           bool
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Seal a plaintext dotenv file inside an authenticated-encryption envelope",
	Long: `Encrypt wraps a plaintext dotenv file's bytes in a versioned envelope
authenticated with XSalsa20-Poly1305, keyed by a passphrase stretched with
Argon2id. The resulting file still begins with a recognizable magic prefix
so "sfdotenv load" can auto-detect it without being told it's encrypted.

Examples:
  # Encrypt interactively (prompts for a passphrase, with confirmation)
  sfdotenv encrypt -i .env -o .env.enc

  # Read the passphrase from stdin
  echo "my passphrase" | sfdotenv encrypt -i .env -o .env.enc -P`,
	RunE: runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	plaintext, err := os.ReadFile(encInput)
	if err != nil {
		return fmt.Errorf("reading %s: %w", encInput, err)
	}

	output := encOutput
	if output == "" {
		output = encInput + ".enc"
	}
	if _, err := os.Stat(output); err == nil && !encYes {
		fmt.Fprintf(os.Stderr, "%s already exists. Overwrite? [y/N]: ", output)
		var response string
		fmt.Fscanln(os.Stdin, &response)
		if response != "y" && response != "yes" {
			return fmt.Errorf("operation cancelled")
		}
	}

	passphrase, err := resolvePassphrase(encPassword, encPasswordStdin, "", true, true)
	if err != nil {
		return fmt.Errorf("passphrase: %w", err)
	}

	wrapped, err := envelope.Wrap(plaintext, passphrase)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, wrapped, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(os.Stderr, "Encrypted %s -> %s\n", encInput, output)
	return nil
}
