package codec

import (
	"encoding/binary"
	"testing"

	"github.com/hupe1980/nnscan"
	"github.com/hupe1980/nnscan/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBatch(t *testing.T, vectors [][]float32) *nnscan.Batch {
	t.Helper()
	b, err := nnscan.NewBatch(vectors)
	require.NoError(t, err)
	return b
}

// repetitiveBatch compresses well.
func repetitiveBatch(t *testing.T) *nnscan.Batch {
	vectors := make([][]float32, 500)
	for i := range vectors {
		vectors[i] = []float32{5, 1, 0, 6, float32(i % 4)}
	}
	return mustBatch(t, vectors)
}

func TestBatch_RoundTrip(t *testing.T) {
	random := mustBatch(t, testutil.NewRNG(3).ScaledVectors(200, 4, 10))
	repetitive := repetitiveBatch(t)

	for _, tc := range []struct {
		name  string
		batch *nnscan.Batch
		c     Compression
		want  Compression
	}{
		{"RawNone", random, CompressionNone, CompressionNone},
		{"RepetitiveLZ4", repetitive, CompressionLZ4, CompressionLZ4},
		{"RepetitiveZSTD", repetitive, CompressionZSTD, CompressionZSTD},
		{"RepetitiveNone", repetitive, CompressionNone, CompressionNone},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data, err := EncodeBatch(tc.batch, tc.c)
			require.NoError(t, err)

			h, err := ReadBatchHeader(data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, h.Compression)
			assert.Equal(t, tc.batch.Dim(), h.Dim)
			assert.Equal(t, tc.batch.Len(), h.Len)
			assert.Equal(t, uint8(1), h.Version)

			got, err := DecodeBatch(data)
			require.NoError(t, err)
			assert.Equal(t, tc.batch.Dim(), got.Dim())
			assert.Equal(t, tc.batch.Data(), got.Data())
		})
	}
}

func TestBatch_CompressionShrinks(t *testing.T) {
	b := repetitiveBatch(t)
	raw, err := EncodeBatch(b, CompressionNone)
	require.NoError(t, err)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		packed, err := EncodeBatch(b, c)
		require.NoError(t, err)
		assert.Less(t, len(packed), len(raw)/2, c.String())
	}
}

func TestBatch_IncompressibleStoredRaw(t *testing.T) {
	b := mustBatch(t, [][]float32{{1.5, -2.25}, {3.125, 7}})

	data, err := EncodeBatch(b, CompressionZSTD)
	require.NoError(t, err)
	assert.Equal(t, byte(CompressionNone), data[5])
	assert.Len(t, data, batchHeaderSize+16)
}

func TestBatch_Layout(t *testing.T) {
	b := mustBatch(t, [][]float32{{1, 2, 3}})

	data, err := EncodeBatch(b, CompressionNone)
	require.NoError(t, err)

	assert.Equal(t, "NNSB", string(data[0:4]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[8:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[12:]))
	assert.Equal(t, uint32(0x3f800000), binary.LittleEndian.Uint32(data[16:]))
}

func TestDecodeBatch_Corrupt(t *testing.T) {
	valid, err := EncodeBatch(repetitiveBatch(t), CompressionLZ4)
	require.NoError(t, err)

	mutate := func(fn func([]byte) []byte) []byte {
		return fn(append([]byte(nil), valid...))
	}

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"Short", valid[:10]},
		{"Magic", mutate(func(b []byte) []byte { b[0] = 'X'; return b })},
		{"Version", mutate(func(b []byte) []byte { b[4] = 9; return b })},
		{"Compression", mutate(func(b []byte) []byte { b[5] = 7; return b })},
		{"ZeroDim", mutate(func(b []byte) []byte { binary.LittleEndian.PutUint32(b[8:], 0); return b })},
		{"ZeroLen", mutate(func(b []byte) []byte { binary.LittleEndian.PutUint32(b[12:], 0); return b })},
		{"Huge", mutate(func(b []byte) []byte { binary.LittleEndian.PutUint32(b[12:], 1<<31); return b })},
		{"LenMismatch", mutate(func(b []byte) []byte { binary.LittleEndian.PutUint32(b[12:], 499); return b })},
		{"TruncatedPayload", valid[:len(valid)-3]},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBatch(tc.data)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}

	t.Run("RawTruncated", func(t *testing.T) {
		raw, err := EncodeBatch(mustBatch(t, [][]float32{{1, 2}}), CompressionNone)
		require.NoError(t, err)
		_, err = DecodeBatch(raw[:len(raw)-1])
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestDecodeBatch_OversizedHeaderRejected(t *testing.T) {
	// A tiny body whose header claims a 1 GiB payload.
	crafted := func(c Compression) []byte {
		data := make([]byte, batchHeaderSize+4)
		copy(data, batchMagic)
		data[4] = batchVersion
		data[5] = byte(c)
		binary.LittleEndian.PutUint32(data[8:], 1<<14)
		binary.LittleEndian.PutUint32(data[12:], 1<<14)
		copy(data[batchHeaderSize:], []byte{0xff, 0xff, 0xff, 0xff})
		return data
	}

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			_, err := DecodeBatch(crafted(c))
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}

	t.Run("LZ4ExpansionBound", func(t *testing.T) {
		_, err := decompress(make([]byte, 4), CompressionLZ4, lz4MaxExpansion*4+17)
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.Contains(t, err.Error(), "cannot expand")
	})
}

func TestEncodeBatch_UnknownCompression(t *testing.T) {
	_, err := EncodeBatch(mustBatch(t, [][]float32{{1}}), Compression(9))
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, got)

	_, err = ParseCompression("gzip")
	assert.Error(t, err)
	assert.Equal(t, "compression(9)", Compression(9).String())
}
