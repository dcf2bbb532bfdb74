package snapshot

import "errors"

var (
	// ErrCorruptSnapshot is returned when a capture cannot be parsed or
	// its framing is inconsistent.
	ErrCorruptSnapshot = errors.New("snapshot data is corrupt")

	// ErrChecksumMismatch is returned when a compressed capture fails its
	// integrity check.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

	// ErrUnsupportedFormat is returned when compressed decoding is asked
	// for data without the expected magic prefix.
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")

	// ErrNilSnapshot is returned when Build is called with nothing.
	ErrNilSnapshot = errors.New("nil snapshot")
)
