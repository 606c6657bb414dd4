// SPDX-License-Identifier: MIT

package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/katalvlaran/lvsparse/sparse"
)

// Version is the current snapshot format version.
const Version uint16 = 1

// Magic opens every snapshot stream.
var Magic = [4]byte{'L', 'V', 'S', 'P'}

const (
	flagHasCSC         uint8 = 1 << 0
	flagValidateNaNInf uint8 = 1 << 1
)

const wordSize = 8

var byteOrder = binary.LittleEndian

// header is the fixed-size prefix of a snapshot.
type header struct {
	Magic       [4]byte
	Version     uint16
	Compression uint8
	Flags       uint8
	Rows        uint64
	Cols        uint64
	Tolerance   float64
	NNZ         uint64
	RawLen      uint32
	PayloadLen  uint32
}

// HeaderSize is the encoded size of the snapshot header in bytes.
var HeaderSize = binary.Size(header{})

// Encode writes m to w.
// Implementation:
//   - Stage 1: flatten rowExtent, colIndices and values into the raw payload.
//   - Stage 2: compress with the configured algorithm (falls back to None).
//   - Stage 3: write header, payload and the CRC32 trailer.
//
// Errors:
//   - sparse.ErrTypeMismatch for nil m; ErrPayloadTooLarge; write errors from w.
//
// Complexity:
//   - Time O(nnz + r) plus compression, Space O(nnz + r).
func Encode(w io.Writer, m *sparse.CSR, opts ...Option) error {
	if err := sparse.ValidateNotNil(m); err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	o := gatherOptions(opts...)

	raw := appendRaw(make([]byte, 0, rawSize(m.Rows(), m.NonZeroCount())), m)
	if len(raw) > o.maxPayload || uint64(len(raw)) > math.MaxUint32 {
		return fmt.Errorf("snapshot encode: raw payload %d bytes: %w", len(raw), ErrPayloadTooLarge)
	}
	payload, used, err := compress(raw, o.compression)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}

	h := header{
		Magic:       Magic,
		Version:     Version,
		Compression: uint8(used),
		Rows:        uint64(m.Rows()),
		Cols:        uint64(m.Cols()),
		Tolerance:   m.Tolerance(),
		NNZ:         uint64(m.NonZeroCount()),
		RawLen:      uint32(len(raw)),
		PayloadLen:  uint32(len(payload)),
	}
	if m.HasCSC() {
		h.Flags |= flagHasCSC
	}
	if m.ValidatesNaNInf() {
		h.Flags |= flagValidateNaNInf
	}

	if err = binary.Write(w, byteOrder, &h); err != nil {
		return fmt.Errorf("snapshot encode: header: %w", err)
	}
	if _, err = w.Write(payload); err != nil {
		return fmt.Errorf("snapshot encode: payload: %w", err)
	}
	if err = binary.Write(w, byteOrder, crc32.ChecksumIEEE(payload)); err != nil {
		return fmt.Errorf("snapshot encode: checksum: %w", err)
	}

	o.logger.Debug("snapshot encoded",
		"rows", m.Rows(), "cols", m.Cols(), "nnz", m.NonZeroCount(),
		"raw_bytes", len(raw), "payload_bytes", len(payload),
		"requested", o.compression.String(), "compression", used.String())

	return nil
}

// Decode reads one snapshot from r.
// Implementation:
//   - Stage 1: read and check the header (magic, version, compression, sizes).
//   - Stage 2: read payload and trailer; verify CRC32.
//   - Stage 3: decompress, split into arrays and rebuild via sparse.FromParts,
//     which validates every CSR invariant.
//   - Stage 4: rebuild the CSC snapshot when the source had one.
//
// Errors:
//   - ErrBadMagic, ErrUnsupportedVersion, ErrUnknownCompression,
//     ErrPayloadTooLarge, ErrChecksum, sparse.ErrCorrupt, read errors from r.
//
// Complexity:
//   - Time O(nnz + r) plus decompression, Space O(nnz + r).
func Decode(r io.Reader, opts ...Option) (*sparse.CSR, error) {
	o := gatherOptions(opts...)

	var h header
	if err := binary.Read(r, byteOrder, &h); err != nil {
		return nil, fmt.Errorf("snapshot decode: header: %w", err)
	}
	if h.Magic != Magic {
		return nil, fmt.Errorf("snapshot decode: %w", ErrBadMagic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("snapshot decode: version %d: %w", h.Version, ErrUnsupportedVersion)
	}
	comp := Compression(h.Compression)
	if !comp.valid() {
		return nil, fmt.Errorf("snapshot decode: id %d: %w", h.Compression, ErrUnknownCompression)
	}
	if int64(h.RawLen) > int64(o.maxPayload) || int64(h.PayloadLen) > int64(o.maxPayload) {
		return nil, fmt.Errorf("snapshot decode: %d/%d bytes: %w", h.RawLen, h.PayloadLen, ErrPayloadTooLarge)
	}
	if err := checkSizes(h); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}

	payload := make([]byte, h.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("snapshot decode: payload: %w", err)
	}
	var sum uint32
	if err := binary.Read(r, byteOrder, &sum); err != nil {
		return nil, fmt.Errorf("snapshot decode: checksum: %w", err)
	}
	if got := crc32.ChecksumIEEE(payload); got != sum {
		return nil, fmt.Errorf("snapshot decode: crc %08x, trailer %08x: %w", got, sum, ErrChecksum)
	}

	raw, err := decompress(payload, comp, int(h.RawLen))
	if err != nil {
		return nil, fmt.Errorf("snapshot decode: %v: %w", err, sparse.ErrCorrupt)
	}

	rows, nnz := int(h.Rows), int(h.NNZ)
	rowExtent := readInts(raw, rows+1)
	raw = raw[(rows+1)*wordSize:]
	colIndices := readInts(raw, nnz)
	raw = raw[nnz*wordSize:]
	values := readFloats(raw, nnz)

	policy := sparse.WithNoValidateNaNInf()
	if h.Flags&flagValidateNaNInf != 0 {
		policy = sparse.WithValidateNaNInf()
	}
	m, err := sparse.FromParts(rows, int(h.Cols), values, colIndices, rowExtent,
		sparse.WithTolerance(h.Tolerance), policy)
	if err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	if h.Flags&flagHasCSC != 0 {
		m.ConvertToCSC()
	}

	o.logger.Debug("snapshot decoded",
		"rows", m.Rows(), "cols", m.Cols(), "nnz", m.NonZeroCount(),
		"raw_bytes", h.RawLen, "payload_bytes", h.PayloadLen, "compression", comp.String())

	return m, nil
}

// Marshal encodes m into a new byte slice.
func Marshal(m *sparse.CSR, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, opts...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes a snapshot held entirely in data.
func Unmarshal(data []byte, opts ...Option) (*sparse.CSR, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// rawSize is the raw payload length for rows and nnz.
func rawSize(rows, nnz int) int {
	return (rows + 1 + 2*nnz) * wordSize
}

// checkSizes rejects headers whose extents exceed sparse.MaxExtent, whose
// declared shape does not match RawLen, or whose tolerance could not have
// been produced by sparse.WithTolerance.
func checkSizes(h header) error {
	if h.Rows > sparse.MaxExtent || h.Cols > sparse.MaxExtent || h.NNZ > math.MaxInt32 {
		return fmt.Errorf("extents %dx%d nnz %d: %w", h.Rows, h.Cols, h.NNZ, sparse.ErrCorrupt)
	}
	if want := uint64(rawSize(int(h.Rows), int(h.NNZ))); want != uint64(h.RawLen) {
		return fmt.Errorf("raw length %d, want %d: %w", h.RawLen, want, sparse.ErrCorrupt)
	}
	if math.IsNaN(h.Tolerance) || math.IsInf(h.Tolerance, 0) || h.Tolerance < 0 {
		return fmt.Errorf("tolerance %v: %w", h.Tolerance, sparse.ErrCorrupt)
	}

	return nil
}

func appendRaw(dst []byte, m *sparse.CSR) []byte {
	for _, v := range m.RowExtent() {
		dst = byteOrder.AppendUint64(dst, uint64(v))
	}
	for _, v := range m.ColIndices() {
		dst = byteOrder.AppendUint64(dst, uint64(v))
	}
	for _, v := range m.Values() {
		dst = byteOrder.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

func readInts(src []byte, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = int(int64(byteOrder.Uint64(src[i*wordSize:])))
	}

	return out
}

func readFloats(src []byte, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(byteOrder.Uint64(src[i*wordSize:]))
	}

	return out
}
