// SPDX-License-Identifier: MIT

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the payload compression algorithm.
type Compression uint8

const (
	// None stores the raw payload.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast).
	LZ4 Compression = 1
	// ZSTD uses Zstandard (better ratio).
	ZSTD Compression = 2
)

// minRatio is the largest compressed/raw ratio still worth storing compressed.
const minRatio = 0.9

func (c Compression) valid() bool { return c <= ZSTD }

// String implements fmt.Stringer.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}

	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}

	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(DefaultMaxPayload)))
}

// compress returns the stored payload and the compression actually used.
// Falls back to None when c is None, raw is empty, or the result is not
// below minRatio of the raw size.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if c == None || len(raw) == 0 {
		return raw, None, nil
	}

	var (
		out []byte
		err error
	)
	switch c {
	case LZ4:
		out, err = compressLZ4(raw)
	case ZSTD:
		out, err = compressZSTD(raw)
	default:
		return nil, None, fmt.Errorf("compress %s: %w", c, ErrUnknownCompression)
	}
	if err != nil {
		return nil, None, fmt.Errorf("compress %s: %w", c, err)
	}
	if len(out) == 0 || float64(len(out)) > float64(len(raw))*minRatio {
		return raw, None, nil
	}

	return out, c, nil
}

func compressLZ4(raw []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, dst, nil)
	if err != nil {
		return nil, err
	}

	// n == 0 means incompressible.
	return dst[:n], nil
}

func compressZSTD(raw []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(raw, nil), nil
}

// decompress expands a stored payload into exactly rawLen bytes.
func decompress(stored []byte, c Compression, rawLen int) ([]byte, error) {
	switch c {
	case None:
		if len(stored) != rawLen {
			return nil, fmt.Errorf("stored %d bytes, want %d", len(stored), rawLen)
		}
		return stored, nil

	case LZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(stored, out)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("lz4: decompressed %d bytes, want %d", n, rawLen)
		}
		return out, nil

	case ZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zstdDecoderPool.Put(dec)

		// Stream into exactly rawLen bytes; a frame that inflates further is
		// rejected without materializing the excess.
		if err = dec.Reset(bytes.NewReader(stored)); err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		out := make([]byte, rawLen)
		if _, err = io.ReadFull(dec, out); err != nil {
			return nil, fmt.Errorf("zstd: want %d bytes: %w", rawLen, err)
		}
		var extra [1]byte
		n, err := dec.Read(extra[:])
		if n > 0 {
			return nil, fmt.Errorf("zstd: decompressed more than %d bytes", rawLen)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("decompress %s: %w", c, ErrUnknownCompression)
	}
}
