package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/nnscan"
)

// ErrCorrupt is returned when binary batch data cannot be decoded.
var ErrCorrupt = errors.New("corrupt batch data")

// Binary batch layout, little-endian:
//
//	[0:4]   magic "NNSB"
//	[4]     version
//	[5]     compression
//	[6:8]   reserved
//	[8:12]  dim
//	[12:16] n
//	[16:]   n*dim float32 values, possibly compressed as one block
const (
	batchMagic      = "NNSB"
	batchVersion    = 1
	batchHeaderSize = 16

	maxPayloadBytes = math.MaxInt32
)

// EncodeBatch serializes b. If compression does not shrink the payload it
// is stored raw and the header records CompressionNone.
func EncodeBatch(b *nnscan.Batch, c Compression) ([]byte, error) {
	if c > CompressionZSTD {
		return nil, fmt.Errorf("unknown compression %d", uint8(c))
	}

	values := b.Data()
	payload := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(payload[4*i:], math.Float32bits(v))
	}

	packed, err := compress(payload, c)
	if err != nil {
		return nil, fmt.Errorf("compress %s: %w", c, err)
	}
	if packed == nil {
		packed, c = payload, CompressionNone
	}

	out := make([]byte, batchHeaderSize+len(packed))
	copy(out[0:4], batchMagic)
	out[4] = batchVersion
	out[5] = byte(c)
	binary.LittleEndian.PutUint32(out[8:], uint32(b.Dim()))
	binary.LittleEndian.PutUint32(out[12:], uint32(b.Len()))
	copy(out[batchHeaderSize:], packed)

	return out, nil
}

// DecodeBatch parses data produced by EncodeBatch.
func DecodeBatch(data []byte) (*nnscan.Batch, error) {
	h, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[batchHeaderSize:]
	size := int(h.payloadBytes)

	var payload []byte
	if h.compression == CompressionNone {
		if len(body) != size {
			return nil, fmt.Errorf("%w: payload has %d bytes, expected %d", ErrCorrupt, len(body), size)
		}
		payload = body
	} else {
		payload, err = decompress(body, h.compression, size)
		if err != nil {
			return nil, err
		}
	}

	values := make([]float32, size/4)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
	}

	return nnscan.NewBatchFlat(values, int(h.dim))
}

// BatchHeader describes an encoded batch without decoding its payload.
type BatchHeader struct {
	Version     uint8
	Compression Compression
	Dim         int
	Len         int
}

// ReadBatchHeader parses and validates the header of an encoded batch.
func ReadBatchHeader(data []byte) (BatchHeader, error) {
	h, err := readHeader(data)
	if err != nil {
		return BatchHeader{}, err
	}
	return BatchHeader{
		Version:     h.version,
		Compression: h.compression,
		Dim:         int(h.dim),
		Len:         int(h.n),
	}, nil
}

type header struct {
	version      uint8
	compression  Compression
	dim, n       uint32
	payloadBytes uint64
}

func readHeader(data []byte) (header, error) {
	if len(data) < batchHeaderSize {
		return header{}, fmt.Errorf("%w: %d bytes is too small for a header", ErrCorrupt, len(data))
	}
	if string(data[0:4]) != batchMagic {
		return header{}, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[0:4])
	}

	h := header{
		version:     data[4],
		compression: Compression(data[5]),
		dim:         binary.LittleEndian.Uint32(data[8:]),
		n:           binary.LittleEndian.Uint32(data[12:]),
	}

	if h.version != batchVersion {
		return header{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.version)
	}
	if h.compression > CompressionZSTD {
		return header{}, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, uint8(h.compression))
	}
	if h.dim == 0 || h.n == 0 {
		return header{}, fmt.Errorf("%w: empty batch (dim=%d, n=%d)", ErrCorrupt, h.dim, h.n)
	}

	h.payloadBytes = uint64(h.dim) * uint64(h.n) * 4
	if h.payloadBytes > maxPayloadBytes {
		return header{}, fmt.Errorf("%w: payload of %d bytes is too large", ErrCorrupt, h.payloadBytes)
	}

	return h, nil
}
