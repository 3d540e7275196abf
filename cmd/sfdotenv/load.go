package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalforge/dotenv-go"
)

func init() {
	loadCmd.SilenceErrors = true
	loadCmd.SilenceUsage = true
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadKey, "key", "k", "", "Passphrase for an enveloped file")
	loadCmd.Flags().StringVar(&loadKeyEnv, "key-env", "", "Environment variable to read the passphrase from")
	loadCmd.Flags().BoolVar(&loadExport, "export", false, "Print a sourceable 'export KEY=value' script instead of KEY=value lines")
	loadCmd.Flags().BoolVar(&loadNoArrays, "no-arrays", false, "Disable opportunistic JSON decoding")
}

var (
	loadKey      string
	loadKeyEnv   string
	loadExport   bool
	loadNoArrays bool
)

var loadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Load a dotenv file and print its resulting key/value pairs",
	Long: `Load reads path, auto-detecting (or decrypting, given a passphrase) an
authenticated-encryption envelope, expands shell-style variable references,
and prints the resulting KEY=value pairs in file order.

Examples:
  # Print the resolved values
  sfdotenv load .env

  # Decrypt an enveloped file
  sfdotenv load .env.enc --key-env MYAPP_DOTENV_KEY

  # Emit a script you can 'source' into your shell
  sfdotenv load .env --export > .env.sh && source .env.sh`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts := dotenv.DefaultOptions()
	opts.Key = loadKey
	opts.KeyEnv = loadKeyEnv
	opts.Arrays = !loadNoArrays
	// The CLI only prints results; it never mutates the invoking shell's
	// own environment (that's what --export's printed script is for).
	opts.Export = false
	opts.ExportServer = false

	result, err := dotenv.Load(path, opts)
	if err != nil {
		return err
	}

	for _, key := range result.Keys() {
		fv, _ := result.Get(key)
		value := fv.String
		if fv.IsJSON {
			if s, err := dotenv.StringifyJSON(fv.JSON); err == nil {
				value = s
			}
		}
		if loadExport {
			fmt.Fprintf(os.Stdout, "export %s=%s\n", key, shellQuote(value))
		} else {
			fmt.Fprintf(os.Stdout, "%s=%s\n", key, value)
		}
	}
	return nil
}

// shellQuote wraps value in single quotes for a sourceable export line,
// escaping any embedded single quote the POSIX-shell way.
func shellQuote(value string) string {
	out := make([]byte, 0, len(value)+2)
	out = append(out, '\'')
	for i := 0; i < len(value); i++ {
		if value[i] == '\'' {
			out = append(out, '\'', '\\', '\'', '\'')
			continue
		}
		out = append(out, value[i])
	}
	out = append(out, '\'')
	return string(out)
}
