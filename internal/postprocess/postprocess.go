// Package postprocess drives Parser output through the Expander in file
// order, then optionally decodes JSON-shaped values, producing the
// loader's final ordered result.
package postprocess

import (
	"encoding/json"

	"github.com/signalforge/dotenv-go/internal/dotenvlog"
	"github.com/signalforge/dotenv-go/internal/expander"
	"github.com/signalforge/dotenv-go/internal/ordered"
	"github.com/signalforge/dotenv-go/internal/parser"
)

// FinalValue is either a plain string or, when opportunistic JSON decoding
// succeeds, a structured container (array or object).
type FinalValue struct {
	String string
	JSON   any
	IsJSON bool
}

// JSONDecoder is the injected capability for opportunistic JSON decoding,
// kept as an interface (per spec.md §9) so the post-processor stays
// testable without a hard JSON dependency. Decode must return ok=false for
// anything that is not a JSON array or object — scalars never qualify as a
// structured FinalValue.
type JSONDecoder interface {
	Decode(s string) (value any, ok bool)
}

// stdlibJSONDecoder is the default JSONDecoder, backed by encoding/json.
type stdlibJSONDecoder struct{}

// Default is the production JSONDecoder used unless a caller substitutes
// their own.
var Default JSONDecoder = stdlibJSONDecoder{}

func (stdlibJSONDecoder) Decode(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case []any, map[string]any:
		return v, true
	default:
		return nil, false
	}
}

// EnvView is the read-only-from-the-outside lookup the Expander consults:
// the union of already-expanded entries (checked first) layered over a
// snapshot of the process environment.
type EnvView struct {
	overlay map[string]string
	base    map[string]string
}

// NewEnvView creates an EnvView over base (typically a process environment
// snapshot). base is never mutated.
func NewEnvView(base map[string]string) *EnvView {
	return &EnvView{overlay: make(map[string]string), base: base}
}

// Lookup implements expander.Lookup.
func (v *EnvView) Lookup(name string) (string, bool) {
	if val, ok := v.overlay[name]; ok {
		return val, true
	}
	if val, ok := v.base[name]; ok {
		return val, true
	}
	return "", false
}

// Set records an entry's expanded value so later entries can see it.
func (v *EnvView) Set(name, value string) {
	v.overlay[name] = value
}

// Options controls opportunistic JSON decoding.
type Options struct {
	// Arrays enables opportunistic JSON decoding of values that look like
	// a JSON array or object. Defaults to true at the public API layer;
	// the zero value here is "disabled" since Go zero values are false.
	Arrays bool
}

// Run drives entries through the Expander in file order against an
// EnvView seeded with baseEnv, then optionally decodes JSON-shaped values
// using decoder. The returned map has last-writer-wins semantics on
// duplicate keys, matching the source order entries were produced in.
func Run(entries []parser.ParsedEntry, baseEnv map[string]string, opts Options, decoder JSONDecoder) *ordered.Map[FinalValue] {
	if decoder == nil {
		decoder = Default
	}

	view := NewEnvView(baseEnv)
	out := ordered.New[FinalValue]()

	for _, e := range entries {
		expanded := expander.Expand(string(e.Value), view.Lookup)
		view.Set(e.Key, expanded)

		fv := FinalValue{String: expanded}
		if opts.Arrays {
			if c, ok := firstNonWhitespace(expanded); ok && (c == '[' || c == '{') {
				if val, decoded := decoder.Decode(expanded); decoded {
					fv.JSON = val
					fv.IsJSON = true
				}
			}
		}

		fields := append([]dotenvlog.Field{dotenvlog.Key(e.Key)}, dotenvlog.Position(e.Line, e.Column)...)
		if fv.IsJSON {
			fields = append(fields, dotenvlog.String("type", "json"))
		}
		dotenvlog.Debug("expanded dotenv entry", fields...)

		out.Set(e.Key, fv)
	}

	return out
}

func firstNonWhitespace(s string) (byte, bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return s[i], true
		}
	}
	return 0, false
}
