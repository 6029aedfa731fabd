package squeeze

import (
	"bytes"
	"testing"

	"github.com/arloliu/squeeze/errs"
	"github.com/arloliu/squeeze/format"
	"github.com/stretchr/testify/require"
)

func TestRLE(t *testing.T) {
	encoded, err := RLEEncode([]byte("AAAABBBCCDAA"))
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 'A', 0x03, 'B', 0x02, 'C', 0x01, 'D', 0x02, 'A'}, encoded)

	decoded, err := RLEDecode(encoded)
	require.NoError(t, err)
	require.Equal(t, []byte("AAAABBBCCDAA"), decoded)

	_, err = RLEDecode([]byte{0x04, 'A', 0x03})
	require.ErrorIs(t, err, errs.ErrMalformedStream)
}

func TestWindow(t *testing.T) {
	encoded, err := WindowEncode([]byte("ABABABAB"))
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 'A', 0x00, 'B', 0x01, 0x02, 0x06}, encoded)

	decoded, err := WindowDecode(encoded)
	require.NoError(t, err)
	require.Equal(t, []byte("ABABABAB"), decoded)

	_, err = WindowDecode([]byte{0x00, 'A', 0x01, 0x01})
	require.ErrorIs(t, err, errs.ErrMalformedStream)
}

func TestDecode_EmptyStream(t *testing.T) {
	for _, decode := range []func([]byte) ([]byte, error){RLEDecode, WindowDecode} {
		out, err := decode(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}

	encoded, err := RLEEncode(nil)
	require.NoError(t, err)
	require.Empty(t, encoded)
}

func TestSuggest(t *testing.T) {
	require.Equal(t, RLE, SuggestFromLabel("text/plain"))
	require.Equal(t, LZ77, SuggestFromLabel("image/png"))
	require.Equal(t, RLE, SuggestFromBytes([]byte("plain ascii text\n")))
	require.Equal(t, LZ77, SuggestFromBytes([]byte{'a', 0x00, 'b'}))
}

func TestCompressDecompress(t *testing.T) {
	tests := []struct {
		name  string
		codec format.CodecType
		data  []byte
	}{
		{"rle empty", RLE, []byte{}},
		{"rle runs", RLE, bytes.Repeat([]byte{'x'}, 600)},
		{"lz77 empty", LZ77, []byte{}},
		{"lz77 repeated phrase", LZ77, bytes.Repeat([]byte("squeeze it "), 50)},
		{"lz77 binary", LZ77, []byte{0x00, 0xFF, 0x10, 0x00, 0xFF, 0x10, 0x00, 0xFF, 0x10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compress(tt.codec, tt.data)
			require.NoError(t, err)
			require.Equal(t, tt.codec, res.Codec)
			require.Equal(t, len(tt.data), res.OriginalSize)
			require.Equal(t, len(res.Data), res.CompressedSize)

			back, err := Decompress(tt.codec, res.Data)
			require.NoError(t, err)
			require.Equal(t, tt.codec, back.Codec)
			require.Equal(t, len(tt.data), back.OriginalSize)
			require.Equal(t, res.CompressedSize, back.CompressedSize)
			require.Equal(t, tt.data, back.Data)
		})
	}
}

func TestCompress_UnknownCodec(t *testing.T) {
	_, err := Compress(format.CodecType(0x7F), []byte("x"))
	require.ErrorIs(t, err, errs.ErrUnknownCodec)

	_, err = Decompress(format.CodecType(0), []byte("x"))
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}

func TestCompressAuto(t *testing.T) {
	res, err := CompressAuto("notes.txt", []byte("aaaaaaaa"))
	require.NoError(t, err)
	require.Equal(t, RLE, res.Codec)
	require.Equal(t, []byte{0x08, 'a'}, res.Data)

	res, err = CompressAuto("", []byte{0x89, 'P', 'N', 'G', 0x00})
	require.NoError(t, err)
	require.Equal(t, LZ77, res.Codec)
}

func TestResult_Ratio(t *testing.T) {
	require.Equal(t, 0.0, Result{}.Ratio())
	require.InDelta(t, 0.25, Result{OriginalSize: 8, CompressedSize: 2}.Ratio(), 1e-9)
	require.InDelta(t, 2.0, Result{OriginalSize: 1, CompressedSize: 2}.Ratio(), 1e-9)
}

func TestContentID(t *testing.T) {
	require.Equal(t, uint64(0x4fdcca5ddb678139), ContentID([]byte("test")))
	require.Equal(t, ContentID([]byte("abc")), ContentID([]byte("abc")))
}
