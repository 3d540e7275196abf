// Package dotenvcrypto holds small cryptographic support utilities shared by
// the envelope codec: best-effort key zeroing. The Primitives capability the
// codec calls through is defined in package envelope.
package dotenvcrypto

import "crypto/subtle"

// SecureZero overwrites b with zeros to reduce the window during which
// derived key material is recoverable from a memory dump.
//
// Go's garbage collector may still retain earlier copies made during string
// conversions or slice growth, so this is a best-effort mitigation, not a
// guarantee — the same limitation the implementation this design follows
// documents for its own key material. Callers should avoid ever converting
// derived keys to Go strings, since strings are immutable and cannot be
// zeroed.
func SecureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}
