package pk2

import (
	"io"

	"golang.org/x/xerrors"
)

// Kind classifies the error conditions this package can report.
type Kind int

const (
	// KindIO wraps a failure of the underlying stream.
	KindIO Kind = iota
	// KindCorruptedFile indicates a malformed header, entry tag, or a zero
	// position field in a non-empty entry.
	KindCorruptedFile
	// KindUnsupportedVersion indicates a header version other than
	// pk2Version.
	KindUnsupportedVersion
	// KindInvalidKey indicates a key-checksum mismatch or a cipher key
	// length the cipher rejected.
	KindInvalidKey
	// KindInvalidPath indicates an empty path, an empty component, or a
	// public-API path missing its leading '/'.
	KindInvalidPath
	// KindExpectedFile indicates an operation that requires a file found a
	// directory instead.
	KindExpectedFile
	// KindExpectedDirectory indicates an operation that requires a
	// directory found a file instead.
	KindExpectedDirectory
	// KindNotFound indicates the requested name is absent from its parent
	// chain.
	KindNotFound
	// KindAlreadyExists indicates a create target that already exists.
	KindAlreadyExists
	// KindInvalidChainOffset indicates a chain pointer in the archive that
	// doesn't map to a parsed chain.
	KindInvalidChainOffset
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindCorruptedFile:
		return "corrupted file"
	case KindUnsupportedVersion:
		return "unsupported version"
	case KindInvalidKey:
		return "invalid key"
	case KindInvalidPath:
		return "invalid path"
	case KindExpectedFile:
		return "expected file"
	case KindExpectedDirectory:
		return "expected directory"
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindInvalidChainOffset:
		return "invalid chain offset"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every fallible operation in this
// package. Use errors.As to recover it and inspect its Kind, or one of the
// IsXxx helpers below.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func newErr(kind Kind, format string, args ...interface{}) *Error {
	wrapped := xerrors.Errorf(format, args...)
	return &Error{kind: kind, msg: wrapped.Error(), err: xerrors.Unwrap(wrapped)}
}

func wrapIO(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: KindIO, msg: err.Error(), err: err}
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return e.kind.String()
}

func (e *Error) Unwrap() error { return e.err }

// Is allows errors.Is(err, io.EOF) style checks to see through a Kind-tagged
// IO error to the wrapped stream error.
func (e *Error) Is(target error) bool {
	if target == io.EOF && e.kind == KindIO {
		return xerrors.Is(e.err, io.EOF)
	}
	return false
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if xerrors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool { k, ok := kindOf(err); return ok && k == KindNotFound }

// IsAlreadyExists reports whether err is a KindAlreadyExists error.
func IsAlreadyExists(err error) bool { k, ok := kindOf(err); return ok && k == KindAlreadyExists }

// IsInvalidPath reports whether err is a KindInvalidPath error.
func IsInvalidPath(err error) bool { k, ok := kindOf(err); return ok && k == KindInvalidPath }

// IsExpectedFile reports whether err is a KindExpectedFile error.
func IsExpectedFile(err error) bool { k, ok := kindOf(err); return ok && k == KindExpectedFile }

// IsExpectedDirectory reports whether err is a KindExpectedDirectory error.
func IsExpectedDirectory(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindExpectedDirectory
}

// IsInvalidKey reports whether err is a KindInvalidKey error.
func IsInvalidKey(err error) bool { k, ok := kindOf(err); return ok && k == KindInvalidKey }

// IsCorruptedFile reports whether err is a KindCorruptedFile error.
func IsCorruptedFile(err error) bool { k, ok := kindOf(err); return ok && k == KindCorruptedFile }
