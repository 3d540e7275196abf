package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalforge/dotenv-go/internal/envelope"
)

func init() {
	decryptCmd.SilenceErrors = true
	decryptCmd.SilenceUsage = true
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVarP(&decInput, "input", "i", "", "Enveloped dotenv file to decrypt")
	decryptCmd.Flags().StringVarP(&decOutput, "output", "o", "", "Output path (defaults to stdout)")
	decryptCmd.Flags().StringVarP(&decPassword, "passphrase", "p", "", "Passphrase (visible in shell history; prefer -P or interactive prompt)")
	decryptCmd.Flags().BoolVarP(&decPasswordStdin, "passphrase-stdin", "P", false, "Read passphrase from stdin")
	decryptCmd.Flags().StringVar(&decKeyEnv, "key-env", "", "Environment variable to read the passphrase from")
	_ = decryptCmd.MarkFlagRequired("input")
}

var (
	decInput         string
	decOutput        string
	decPassword      string
	decPasswordStdin bool
	decKeyEnv        string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Unwrap an envelope-encrypted dotenv file back to plaintext",
	Long: `Decrypt authenticates and decrypts a file produced by "sfdotenv encrypt",
writing the original plaintext bytes to stdout or to --output.

Examples:
  # Decrypt to stdout
  sfdotenv decrypt -i .env.enc

  # Decrypt to a file, reading the passphrase from an environment variable
  sfdotenv decrypt -i .env.enc -o .env --key-env MYAPP_DOTENV_KEY`,
	RunE: runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(decInput)
	if err != nil {
		return fmt.Errorf("reading %s: %w", decInput, err)
	}
	if !envelope.IsEnveloped(data) {
		return fmt.Errorf("%s does not look like an sfdotenv envelope", decInput)
	}

	passphrase, err := resolvePassphrase(decPassword, decPasswordStdin, decKeyEnv, true, false)
	if err != nil {
		return fmt.Errorf("passphrase: %w", err)
	}

	plaintext, err := envelope.Unwrap(data, passphrase)
	if err != nil {
		return err
	}

	if decOutput == "" || decOutput == "-" {
		_, err = os.Stdout.Write(plaintext)
		return err
	}
	return os.WriteFile(decOutput, plaintext, 0o600)
}
