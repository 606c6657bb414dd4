// SPDX-License-Identifier: MIT

package snapshot

import "errors"

var (
	// ErrBadMagic is returned when the stream does not start with the snapshot magic.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrUnsupportedVersion is returned for a format version this package cannot read.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrChecksum is returned when the payload CRC32 does not match the trailer.
	ErrChecksum = errors.New("snapshot: checksum mismatch")

	// ErrUnknownCompression is returned for a compression id outside None/LZ4/ZSTD.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")

	// ErrPayloadTooLarge is returned when a payload exceeds the configured limit
	// or the 32-bit length field.
	ErrPayloadTooLarge = errors.New("snapshot: payload too large")
)
