package dotenv

import "github.com/signalforge/dotenv-go/internal/envhost"

// Options controls how Load and Parse treat their input and publish the
// result, matching spec.md §6's recognized-keys table. The zero value is
// not the production default for every field: callers should start from
// DefaultOptions() rather than an empty Options{} literal.
type Options struct {
	// Encrypted forces treating the input as enveloped (true) or plain
	// (false) when non-nil. Left nil, the input is auto-detected via its
	// magic bytes.
	Encrypted *bool

	// Key is a direct passphrase. Takes priority over KeyEnv and the
	// well-known environment variables when resolving the envelope key.
	Key string

	// KeyEnv names an environment variable to read the passphrase from.
	KeyEnv string

	// Override, when true, lets publishing overwrite existing entries on
	// the host's surfaces. Defaults to false.
	Override bool

	// Export, when true, publishes results to the host process
	// environment. Defaults to true.
	Export bool

	// ExportServer, when true, also publishes to the per-request scratch
	// map surface held in ServerHost, if one is set. Defaults to false.
	ExportServer bool

	// Arrays enables opportunistic JSON decoding of array/object-shaped
	// values in the Post-Processor. Defaults to true.
	Arrays bool

	// Host is the Environment Adapter used for reading the process
	// environment snapshot and publishing results. Defaults to
	// envhost.OSHost{} when nil.
	Host envhost.Host

	// ServerHost is the optional per-request scratch surface consulted
	// when ExportServer is true. Nil means ExportServer has nowhere to
	// publish and is silently ignored.
	ServerHost envhost.ServerHost
}

// DefaultOptions returns the Options a bare call to Load or Parse should
// behave as if it received: auto-detect envelope, no forced key source,
// no override, exporting to the process environment, JSON decoding
// enabled, and the default OS-backed Host.
func DefaultOptions() Options {
	return Options{
		Export: true,
		Arrays: true,
		Host:   envhost.OSHost{},
	}
}

// Bool returns a pointer to b, for setting Options.Encrypted without an
// intermediate variable.
func Bool(b bool) *bool { return &b }
