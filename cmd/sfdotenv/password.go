package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/signalforge/dotenv-go/internal/dotenverr"
)

// resolvePassphrase implements the CLI-layer passphrase resolution order
// from spec.md §6: an explicit flag value wins, then -P/stdin, then the
// named --key-env variable, then SIGNALFORGE_DOTENV_KEY, then
// DOTENV_PRIVATE_KEY, and only then — when interactive is true — a hidden
// terminal prompt. Unlike the teacher's CLI, which reports a private
// ErrPasswordMismatch/ErrPasswordEmpty pair, every failure here is a
// *dotenverr.Error carrying the same Kind the core loader itself raises
// for a bad or missing passphrase, so a caller handling CLI and library
// errors together never has to special-case the command-line path.
func resolvePassphrase(flagValue string, stdin bool, keyEnv string, interactive, confirm bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if stdin {
		return readLine(os.Stdin)
	}
	for _, name := range passphraseEnvNames(keyEnv) {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	if !interactive {
		return "", dotenverr.New(dotenverr.KindKeyRequired, "no passphrase supplied via flag, stdin, or environment")
	}
	return promptPassphrase(confirm)
}

// passphraseEnvNames returns the environment variables to consult, in
// resolution order, given an optional caller-specified --key-env name.
func passphraseEnvNames(keyEnv string) []string {
	names := make([]string, 0, 3)
	if keyEnv != "" {
		names = append(names, keyEnv)
	}
	return append(names, "SIGNALFORGE_DOTENV_KEY", "DOTENV_PRIVATE_KEY")
}

// promptPassphrase reads a passphrase from the terminal, hidden, asking
// for confirmation when confirm is true (sfdotenv encrypt, not decrypt).
func promptPassphrase(confirm bool) (string, error) {
	pw, err := readHidden("Passphrase: ")
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", dotenverr.New(dotenverr.KindKeyInvalid, "passphrase cannot be empty")
	}
	if confirm {
		again, err := readHidden("Confirm passphrase: ")
		if err != nil {
			return "", err
		}
		if pw != again {
			return "", dotenverr.New(dotenverr.KindKeyInvalid, "passphrases do not match")
		}
	}
	return pw, nil
}

// readHidden prints prompt to stderr, then reads one line from stdin,
// disabling terminal echo when stdin is an interactive terminal (falling
// back to a plain read when it's piped, e.g. under a test harness).
func readHidden(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return readLine(os.Stdin)
	}
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pw), nil
}

// readLine reads one newline-terminated line from r, trimming the
// trailing CR/LF.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
