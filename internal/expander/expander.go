// Package expander resolves shell-style variable references inside a
// string against a lookup view. It supports the five forms from spec.md
// §4.3: $NAME, ${NAME}, ${NAME:-DEFAULT}, ${NAME:+ALTERNATE}, and
// ${NAME-DEFAULT}. Expansion is a single, non-recursive pass: substituted
// text is never re-scanned for further references within the same call.
package expander

import "strings"

// Lookup resolves a variable name to its value. ok is false when the name
// is unset.
type Lookup func(name string) (value string, ok bool)

type opKind int

const (
	opNone opKind = iota
	opColonDash
	opColonPlus
	opBareDash
)

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isNameCont(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}

// Expand substitutes every recognized reference in input using lookup.
func Expand(input string, lookup Lookup) string {
	var out []byte
	i := 0
	n := len(input)

	for i < n {
		c := input[i]
		if c != '$' {
			out = append(out, c)
			i++
			continue
		}

		// Lone '$' at end of input is literal.
		if i+1 >= n {
			out = append(out, '$')
			i++
			continue
		}

		if input[i+1] == '{' {
			closeRel := strings.IndexByte(input[i+2:], '}')
			if closeRel == -1 {
				// Unmatched '${' — emit '$' literally and keep scanning
				// from the next byte (the '{' will be copied verbatim on
				// the next iteration).
				out = append(out, '$')
				i++
				continue
			}
			body := input[i+2 : i+2+closeRel]
			name, op, payload := parseBraced(body)
			val, ok := lookup(name)

			switch op {
			case opNone:
				if ok {
					out = append(out, val...)
				}
			case opColonDash: // ${NAME:-DEFAULT}
				if !ok || val == "" {
					out = append(out, payload...)
				} else {
					out = append(out, val...)
				}
			case opColonPlus: // ${NAME:+ALTERNATE}
				if ok && val != "" {
					out = append(out, payload...)
				}
			case opBareDash: // ${NAME-DEFAULT}
				if !ok {
					out = append(out, payload...)
				} else {
					out = append(out, val...)
				}
			}

			i = i + 2 + closeRel + 1
			continue
		}

		// Unbraced $NAME.
		j := i + 1
		for j < n && isNameCont(input[j]) {
			j++
		}
		if j == i+1 {
			// No name characters follow: '$' is literal.
			out = append(out, '$')
			i++
			continue
		}
		name := input[i+1 : j]
		if val, ok := lookup(name); ok {
			out = append(out, val...)
		}
		i = j
	}

	return string(out)
}

// parseBraced splits the text inside "${...}" into a name and an optional
// operator with its literal payload. The first of ":-", ":+", or a bare
// "-" found scanning left to right is the operator; everything before it
// is the name and everything after it (up to the already-located closing
// brace) is the default/alternate literal, taken flat with no further
// expansion or nested-brace awareness — spec.md §9 leaves nested braces in
// defaults unspecified, and this implementation treats the braced region
// as flat text terminated by the first '}'.
func parseBraced(body string) (name string, op opKind, payload string) {
	for k := 0; k < len(body); k++ {
		if body[k] == ':' && k+1 < len(body) {
			switch body[k+1] {
			case '-':
				return body[:k], opColonDash, body[k+2:]
			case '+':
				return body[:k], opColonPlus, body[k+2:]
			}
		}
		if body[k] == '-' {
			return body[:k], opBareDash, body[k+1:]
		}
	}
	return body, opNone, ""
}
