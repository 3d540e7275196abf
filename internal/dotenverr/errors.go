// Package dotenverr provides the classified, numbered error model shared by
// every component of the dotenv loader. Every failure the loader can raise
// carries one of the Kind values below and a stable numeric Code, so callers
// can switch on the kind without string-matching messages.
package dotenverr

import (
	stderrors "errors"
	"fmt"

	"github.com/signalforge/dotenv-go/internal/dotenvlog"
)

// Kind classifies a dotenv error. The numeric Code is part of the public
// contract and must never be renumbered.
type Kind int

const (
	// KindFileNotFound indicates the input path does not exist or is not a
	// regular file. Raised by the boundary layer, not the core.
	KindFileNotFound Kind = 1
	// KindFileRead indicates an I/O failure while reading the input.
	// Raised by the boundary layer, not the core.
	KindFileRead Kind = 2
	// KindParse indicates a Parser rule violation. The Error's Line/Column
	// fields are populated for this kind.
	KindParse Kind = 3
	// KindDecrypt indicates an envelope framing or authentication failure.
	KindDecrypt Kind = 4
	// KindKeyRequired indicates an enveloped input but no passphrase was
	// found via any resolution source.
	KindKeyRequired Kind = 5
	// KindKeyInvalid indicates an empty passphrase was supplied explicitly.
	KindKeyInvalid Kind = 6
	// KindJSONParse is reserved; opportunistic JSON decoding never raises,
	// it silently falls back to the string value.
	KindJSONParse Kind = 8
	// KindCryptoInit indicates the underlying crypto primitive failed to
	// initialize (e.g. the system CSPRNG is unavailable).
	KindCryptoInit Kind = 9
)

func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "FileNotFound"
	case KindFileRead:
		return "FileRead"
	case KindParse:
		return "Parse"
	case KindDecrypt:
		return "Decrypt"
	case KindKeyRequired:
		return "KeyRequired"
	case KindKeyInvalid:
		return "KeyInvalid"
	case KindJSONParse:
		return "JsonParse"
	case KindCryptoInit:
		return "CryptoInit"
	default:
		return "Unknown"
	}
}

// Error is the single error type raised across the loader's public surface.
// Line and Column are only meaningful when Kind is KindParse; both are zero
// otherwise.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
	Err     error // wrapped underlying cause, if any
}

func (e *Error) Error() string {
	if e.Kind == KindParse && (e.Line != 0 || e.Column != 0) {
		return fmt.Sprintf("%s (line %d, column %d): %s", e.Kind, e.Line, e.Column, e.Message)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the stable numeric code for this error's Kind.
func (e *Error) Code() int {
	return int(e.Kind)
}

// New creates an Error of the given kind with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// AtPosition creates a KindParse Error carrying line/column information.
func AtPosition(line, column int, message string) *Error {
	return &Error{Kind: KindParse, Message: message, Line: line, Column: column}
}

// Is reports whether err is a dotenv Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// As finds the first dotenv Error in err's chain, mirroring errors.As.
func As(err error, target **Error) bool {
	return stderrors.As(err, target)
}

// Fields renders e as structured dotenvlog fields: its Kind, numeric Code,
// source Line/Column when this is a KindParse error, and the wrapped cause
// if one was attached by Wrap. Callers spread this directly into a log
// call, e.g. dotenvlog.Error("dotenv load failed", dErr.Fields()...), so a
// parse failure's exact position reaches the log the same way it reaches
// the returned error.
func (e *Error) Fields() []dotenvlog.Field {
	fields := []dotenvlog.Field{dotenvlog.Kind(e.Kind), dotenvlog.Code(e.Code())}
	if e.Kind == KindParse {
		fields = append(fields, dotenvlog.Position(e.Line, e.Column)...)
	}
	if e.Err != nil {
		fields = append(fields, dotenvlog.Err(e.Err))
	}
	return fields
}
