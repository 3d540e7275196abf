// Package dotenv loads dotenv-formatted configuration, optionally sealed
// inside an authenticated-encryption envelope, expands shell-style
// variable references, opportunistically decodes JSON-shaped values, and
// publishes the result to the host process's environment surfaces.
package dotenv

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/signalforge/dotenv-go/internal/dotenverr"
	"github.com/signalforge/dotenv-go/internal/dotenvlog"
	"github.com/signalforge/dotenv-go/internal/envelope"
	"github.com/signalforge/dotenv-go/internal/envhost"
	"github.com/signalforge/dotenv-go/internal/ordered"
	"github.com/signalforge/dotenv-go/internal/parser"
	"github.com/signalforge/dotenv-go/internal/postprocess"
)

// Host is re-exported so callers building a custom Environment Adapter
// only need to import this package.
type Host = envhost.Host

// ServerHost is re-exported alongside Host for the same reason.
type ServerHost = envhost.ServerHost

// FinalValue is re-exported from internal/postprocess: either a plain
// string or, when opportunistic JSON decoding succeeded, a structured
// container.
type FinalValue = postprocess.FinalValue

const (
	envKeyPrimary = "SIGNALFORGE_DOTENV_KEY"
	envKeyLegacy  = "DOTENV_PRIVATE_KEY"
)

// Load reads path, then behaves exactly as Parse does on its contents.
func Load(path string, opts Options) (*ordered.Map[FinalValue], error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dotenverr.Wrap(dotenverr.KindFileNotFound, "dotenv file not found: "+path, err)
		}
		return nil, dotenverr.Wrap(dotenverr.KindFileRead, "failed to read dotenv file: "+path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, dotenverr.New(dotenverr.KindFileNotFound, "dotenv path is not a regular file: "+path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dotenverr.Wrap(dotenverr.KindFileRead, "failed to read dotenv file: "+path, err)
	}
	return Parse(data, opts)
}

// Parse runs data through envelope detection/unwrapping (if applicable),
// the Parser, the Expander, and the Post-Processor, then publishes the
// result to opts.Host (if opts.Export is set) and opts.ServerHost (if
// opts.ExportServer is set) before returning the ordered result.
func Parse(data []byte, opts Options) (*ordered.Map[FinalValue], error) {
	host := opts.Host
	if host == nil {
		host = envhost.OSHost{}
	}

	plaintext, err := resolvePlaintext(data, opts, host)
	if err != nil {
		logError("failed to resolve dotenv plaintext", err)
		return nil, err
	}

	entries, err := parser.Parse(plaintext)
	if err != nil {
		logError("failed to parse dotenv entries", err)
		return nil, err
	}
	dotenvlog.Debug("parsed dotenv entries", dotenvlog.Int("count", len(entries)))

	baseEnv := host.Snapshot()
	result := postprocess.Run(entries, baseEnv, postprocess.Options{Arrays: opts.Arrays}, nil)

	publish(result, opts, host)

	return result, nil
}

// resolvePlaintext decides whether data is enveloped (by forced option or
// magic-byte auto-detection) and, if so, resolves a passphrase and
// unwraps it.
func resolvePlaintext(data []byte, opts Options, host envhost.Host) ([]byte, error) {
	enveloped := envelope.IsEnveloped(data)
	if opts.Encrypted != nil {
		enveloped = *opts.Encrypted
	}
	if !enveloped {
		return data, nil
	}

	passphrase, found := resolvePassphrase(opts, host)
	if !found {
		return nil, dotenverr.New(dotenverr.KindKeyRequired, "enveloped input requires a passphrase (key, key_env, SIGNALFORGE_DOTENV_KEY, or DOTENV_PRIVATE_KEY)")
	}
	return envelope.Unwrap(data, passphrase)
}

// resolvePassphrase implements spec.md §6's resolution order: opts.Key,
// then the environment variable named by opts.KeyEnv, then
// SIGNALFORGE_DOTENV_KEY, then DOTENV_PRIVATE_KEY. The first non-empty
// hit wins.
func resolvePassphrase(opts Options, host envhost.Host) (string, bool) {
	if opts.Key != "" {
		return opts.Key, true
	}

	env := host.Snapshot()
	if opts.KeyEnv != "" {
		if v, ok := env[opts.KeyEnv]; ok && v != "" {
			return v, true
		}
	}
	if v, ok := env[envKeyPrimary]; ok && v != "" {
		return v, true
	}
	if v, ok := env[envKeyLegacy]; ok && v != "" {
		return v, true
	}
	return "", false
}

// logError logs err at Error level, spreading a *dotenverr.Error's Kind,
// Code, and (for a parse failure) source position as structured fields
// rather than folding them into the message string.
func logError(msg string, err error) {
	var dErr *dotenverr.Error
	if dotenverr.As(err, &dErr) {
		dotenvlog.Error(msg, dErr.Fields()...)
		return
	}
	dotenvlog.Error(msg, dotenvlog.Err(err))
}

// publish writes result to host (if opts.Export) and opts.ServerHost (if
// opts.ExportServer), skipping any key that fails envhost.ValidKey.
func publish(result *ordered.Map[FinalValue], opts Options, host envhost.Host) {
	if !opts.Export && !opts.ExportServer {
		return
	}

	result.Range(func(key string, fv FinalValue) bool {
		if !envhost.ValidKey(key) {
			dotenvlog.Warn("skipping publish of invalid key", dotenvlog.String("key", key))
			return true
		}

		if opts.Export {
			value := fv.String
			if fv.IsJSON {
				if s, err := StringifyJSON(fv.JSON); err == nil {
					value = s
				} else {
					dotenvlog.Warn("failed to re-serialize structured value, publishing raw text", dotenvlog.String("key", key))
				}
			}
			host.Publish(key, value, opts.Override)
		}

		if opts.ExportServer && opts.ServerHost != nil {
			if fv.IsJSON {
				opts.ServerHost.PublishServer(key, fv.JSON, opts.Override)
			} else {
				opts.ServerHost.PublishServer(key, fv.String, opts.Override)
			}
		}

		return true
	})
}

// StringifyJSON re-serializes a structured FinalValue for a process
// environment surface, per spec.md §6's "JSON re-serialization with
// unescaped slashes and Unicode" requirement. encoding/json never escapes
// '/' and writes non-ASCII text unescaped (apart from U+2028 and U+2029,
// which it always escapes), but its default Marshal escapes
// '<', '>', and '&' under HTML escaping rules not wanted here, so this
// uses an Encoder with SetEscapeHTML(false).
func StringifyJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", dotenverr.Wrap(dotenverr.KindJSONParse, "failed to re-serialize structured value", err)
	}
	// Encoder.Encode appends a trailing newline; callers publishing to an
	// environment variable don't want it.
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
