package envelope

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

// Primitives is the small capability interface the envelope codec calls
// through for password hashing and authenticated encryption. Modeling these
// as an interface — rather than hard-wiring golang.org/x/crypto calls
// directly into Wrap/Unwrap — lets tests substitute a deterministic
// stand-in (fixed salt, identity cipher) to validate the envelope's framing
// independently of cryptographic strength.
type Primitives interface {
	// KDF derives outLen bytes from pw and salt using Argon2id at the given
	// cost parameters.
	KDF(outLen int, pw, salt []byte, ops, mem uint32) []byte
	// SecretboxSeal authenticated-encrypts pt under key with nonce,
	// returning ciphertext with the 16-byte Poly1305 tag appended.
	SecretboxSeal(pt, nonce, key []byte) []byte
	// SecretboxOpen authenticated-decrypts ct (tag included) under key with
	// nonce. ok is false on any authentication failure.
	SecretboxOpen(ct, nonce, key []byte) (pt []byte, ok bool)
	// RandomBytes returns n cryptographically secure random bytes.
	RandomBytes(n int) ([]byte, error)
}

// defaultPrimitives implements Primitives with Argon2id and
// XSalsa20-Poly1305 (nacl/secretbox), matching spec.md's wire format
// exactly.
type defaultPrimitives struct{}

// Default is the production Primitives implementation used by Wrap/Unwrap.
var Default Primitives = defaultPrimitives{}

func (defaultPrimitives) KDF(outLen int, pw, salt []byte, ops, mem uint32) []byte {
	const threads = 4
	return argon2.IDKey(pw, salt, ops, mem, threads, uint32(outLen))
}

func (defaultPrimitives) SecretboxSeal(pt, nonce, key []byte) []byte {
	var nonceArr [24]byte
	var keyArr [32]byte
	copy(nonceArr[:], nonce)
	copy(keyArr[:], key)
	return secretbox.Seal(nil, pt, &nonceArr, &keyArr)
}

func (defaultPrimitives) SecretboxOpen(ct, nonce, key []byte) ([]byte, bool) {
	var nonceArr [24]byte
	var keyArr [32]byte
	copy(nonceArr[:], nonce)
	copy(keyArr[:], key)
	return secretbox.Open(nil, ct, &nonceArr, &keyArr)
}

func (defaultPrimitives) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("crypto/rand: %w", err)
	}
	return b, nil
}
