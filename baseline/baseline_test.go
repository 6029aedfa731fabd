package baseline

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/arloliu/squeeze/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInputs() map[string][]byte {
	rng := rand.New(rand.NewSource(7))
	random := make([]byte, 8192)
	rng.Read(random)

	return map[string][]byte{
		"single byte": {0x42},
		"text":        []byte("the quick brown fox jumps over the lazy dog, the quick brown fox"),
		"repetitive":  bytes.Repeat([]byte("ABAB"), 4096),
		"zeros":       make([]byte, 10000),
		"random":      random,
	}
}

func TestRegistry(t *testing.T) {
	require.Equal(t, []string{NameStore, NameS2, NameLZ4, NameZstd, NameXZ}, Names())

	for _, name := range Names() {
		codec, err := Get(name)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	codec, err := Get(" ZSTD ")
	require.NoError(t, err)
	require.IsType(t, ZstdCodec{}, codec)

	_, err = Get("brotli")
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}

func TestRoundTrip(t *testing.T) {
	for _, name := range Names() {
		codec, err := Get(name)
		require.NoError(t, err)

		for inputName, input := range testInputs() {
			t.Run(name+"/"+inputName, func(t *testing.T) {
				compressed, err := codec.Compress(input)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, input, decompressed)
			})
		}
	}
}

func TestEmptyInput(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			codec, err := Get(name)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestCompressionShrinksRepetitiveInput(t *testing.T) {
	input := bytes.Repeat([]byte("squeeze "), 2048)

	for _, name := range []string{NameS2, NameLZ4, NameZstd, NameXZ} {
		t.Run(name, func(t *testing.T) {
			codec, err := Get(name)
			require.NoError(t, err)

			compressed, err := codec.Compress(input)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(input)/4)
		})
	}
}

func TestStoreCodec_Copies(t *testing.T) {
	input := []byte("abc")
	out, err := NewStoreCodec().Compress(input)
	require.NoError(t, err)

	out[0] = 'z'
	require.Equal(t, []byte("abc"), input)
}

func TestLZ4Codec_StoredFallback(t *testing.T) {
	input := []byte{0x01, 0x02, 0x03}

	compressed, err := NewLZ4Codec().Compress(input)
	require.NoError(t, err)
	require.Equal(t, lz4Stored, compressed[0])
	require.Equal(t, input, compressed[1:])
}

func TestDecompressCorruptInput(t *testing.T) {
	tests := []struct {
		name  string
		codec string
		data  []byte
	}{
		{"lz4 unknown marker", NameLZ4, []byte{0x07, 0x00}},
		{"lz4 empty block", NameLZ4, []byte{lz4Block}},
		{"zstd garbage", NameZstd, []byte("not a zstd frame")},
		{"xz garbage", NameXZ, []byte("not an xz stream")},
		{"s2 garbage", NameS2, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := Get(tt.codec)
			require.NoError(t, err)

			_, err = codec.Decompress(tt.data)
			require.Error(t, err)
		})
	}
}

func TestZstdCodec_Concurrent(t *testing.T) {
	codec := NewZstdCodec()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			data := bytes.Repeat([]byte{byte(i), 'z'}, 1000+i)

			encoded, err := codec.Compress(data)
			if !assert.NoError(t, err) {
				return
			}
			decoded, err := codec.Decompress(encoded)
			assert.NoError(t, err)
			assert.Equal(t, data, decoded)
		}()
	}
	wg.Wait()
}

func BenchmarkCompress(b *testing.B) {
	input := bytes.Repeat([]byte("time,value\n1700000000,42\n"), 1024)

	for _, name := range Names() {
		codec, err := Get(name)
		require.NoError(b, err)

		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = codec.Compress(input)
			}
		})
	}
}
