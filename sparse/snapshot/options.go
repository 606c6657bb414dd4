// SPDX-License-Identifier: MIT

package snapshot

import (
	"io"
	"log/slog"
)

const (
	// DefaultCompression is the payload compression used by Encode.
	DefaultCompression = None

	// DefaultMaxPayload bounds the raw and stored payload sizes accepted by
	// Encode and Decode (1 GiB).
	DefaultMaxPayload = 1 << 30
)

const (
	panicCompressionInvalid = "snapshot: WithCompression: unknown compression"
	panicMaxPayloadInvalid  = "snapshot: WithMaxPayload: limit must be positive"
)

// Option mutates codec options.
type Option func(*Options)

// Options holds the effective codec configuration.
type Options struct {
	compression Compression
	maxPayload  int
	logger      *slog.Logger
}

// WithCompression selects the payload compression for Encode.
// Panics on an unknown Compression value.
func WithCompression(c Compression) Option {
	if !c.valid() {
		panic(panicCompressionInvalid)
	}

	return func(o *Options) { o.compression = c }
}

// WithMaxPayload bounds payload sizes. Panics when n <= 0.
func WithMaxPayload(n int) Option {
	if n <= 0 {
		panic(panicMaxPayloadInvalid)
	}

	return func(o *Options) { o.maxPayload = n }
}

// WithLogger routes debug records about encode/decode to l.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(user ...Option) Options {
	o := Options{
		compression: DefaultCompression,
		maxPayload:  DefaultMaxPayload,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
