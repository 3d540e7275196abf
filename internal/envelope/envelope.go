// Package envelope implements the versioned authenticated-encryption
// envelope around a dotenv file's bytes: detect, wrap, and unwrap.
//
// This is the contract-critical half of the loader — the wire layout below
// must match bit-for-bit across every implementation that claims
// interoperability, exactly as a fixed binary header format must in any
// cryptographic container.
package envelope

import (
	"bytes"

	"github.com/signalforge/dotenv-go/internal/dotenvcrypto"
	"github.com/signalforge/dotenv-go/internal/dotenverr"
)

// Magic identifies an enveloped buffer.
var Magic = []byte("SFDOTENV")

// CurrentVersion is the only version this codec writes or accepts.
const CurrentVersion byte = 0x01

// Field sizes, per spec.md §3.
const (
	MagicSize    = 8
	VersionSize  = 1
	ReservedSize = 3
	SaltSize     = 16
	NonceSize    = 24
	headerSize   = MagicSize + VersionSize + ReservedSize + SaltSize + NonceSize // 52
	tagSize      = 16
	// MinEnvelopeSize is the smallest buffer that could possibly be a valid
	// envelope: header plus an empty plaintext's authentication tag.
	MinEnvelopeSize = headerSize + tagSize
)

// Argon2id cost parameters. These MUST NOT change: existing envelopes use
// these exact parameters and could no longer be decrypted if they did.
const (
	argonOpsModerate = 3
	argonMemModerate = 64 * 1024 // 64 MiB, KiB units per argon2.IDKey
	keySize          = 32
)

// IsEnveloped reports whether data begins with the envelope magic and is at
// least the minimum possible envelope length. It never inspects version or
// attempts decryption, so callers can safely probe any byte buffer before
// committing to a decryption attempt.
func IsEnveloped(data []byte) bool {
	if len(data) < MinEnvelopeSize {
		return false
	}
	return bytes.Equal(data[:MagicSize], Magic)
}

// Wrap encrypts plaintext under passphrase, producing a self-describing
// envelope: magic ‖ version ‖ reserved ‖ salt ‖ nonce ‖ ciphertext.
func Wrap(plaintext []byte, passphrase string) ([]byte, error) {
	return wrapWith(Default, plaintext, passphrase)
}

func wrapWith(p Primitives, plaintext []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, dotenverr.New(dotenverr.KindKeyInvalid, "passphrase must not be empty")
	}

	salt, err := p.RandomBytes(SaltSize)
	if err != nil {
		return nil, dotenverr.Wrap(dotenverr.KindCryptoInit, "failed to generate salt", err)
	}
	nonce, err := p.RandomBytes(NonceSize)
	if err != nil {
		return nil, dotenverr.Wrap(dotenverr.KindCryptoInit, "failed to generate nonce", err)
	}

	key := p.KDF(keySize, []byte(passphrase), salt, argonOpsModerate, argonMemModerate)
	defer dotenvcrypto.SecureZero(key)

	ciphertext := p.SecretboxSeal(plaintext, nonce, key)

	buf := make([]byte, 0, headerSize+len(ciphertext))
	buf = append(buf, Magic...)
	buf = append(buf, CurrentVersion)
	buf = append(buf, 0, 0, 0) // reserved, zero on write
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, ciphertext...)

	return buf, nil
}

// Unwrap decrypts and authenticates data, returning the original plaintext.
// Decryption errors deliberately do not distinguish "wrong key" from
// "tampered data" in the returned message, to avoid giving an attacker a
// confirmation oracle; both use dotenverr.KindDecrypt internally.
func Unwrap(data []byte, passphrase string) ([]byte, error) {
	return unwrapWith(Default, data, passphrase)
}

func unwrapWith(p Primitives, data []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, dotenverr.New(dotenverr.KindKeyInvalid, "passphrase must not be empty")
	}
	if len(data) < MinEnvelopeSize {
		return nil, dotenverr.New(dotenverr.KindDecrypt, "data is not encrypted")
	}
	if !bytes.Equal(data[:MagicSize], Magic) {
		return nil, dotenverr.New(dotenverr.KindDecrypt, "data is not encrypted")
	}

	off := MagicSize
	version := data[off]
	off += VersionSize
	off += ReservedSize // reserved bytes are ignored on read
	if version != CurrentVersion {
		return nil, dotenverr.New(dotenverr.KindDecrypt, "unsupported encryption format version")
	}

	salt := data[off : off+SaltSize]
	off += SaltSize
	nonce := data[off : off+NonceSize]
	off += NonceSize
	ciphertext := data[off:]

	key := p.KDF(keySize, []byte(passphrase), salt, argonOpsModerate, argonMemModerate)
	defer dotenvcrypto.SecureZero(key)

	plaintext, ok := p.SecretboxOpen(ciphertext, nonce, key)
	if !ok {
		return nil, dotenverr.New(dotenverr.KindDecrypt, "wrong key or tampered data")
	}

	return plaintext, nil
}
