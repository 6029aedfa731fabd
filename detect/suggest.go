package detect

import (
	"strings"

	"github.com/arloliu/squeeze/format"
	"github.com/boljen/go-bitmap"
)

// structuredTextLabels are non-"text/" labels that still select RLE.
var structuredTextLabels = map[string]struct{}{
	LabelJSON: {},
	LabelXML:  {},
}

// textBytes marks the bytes accepted by SuggestFromBytes: ASCII letters,
// digits and punctuation, space, tab, line feed, form feed and carriage
// return.
var textBytes = newTextClass()

func newTextClass() bitmap.Bitmap {
	class := bitmap.New(256)
	for b := 0x21; b <= 0x7E; b++ {
		class.Set(b, true)
	}
	for _, b := range []byte{' ', '\t', '\n', '\f', '\r'} {
		class.Set(int(b), true)
	}

	return class
}

// IsTextByte reports whether b counts as text for SuggestFromBytes.
func IsTextByte(b byte) bool {
	return textBytes.Get(int(b))
}

// IsTextLabel reports whether label names a plain or structured text type.
// Media type parameters such as "; charset=utf-8" are ignored.
func IsTextLabel(label string) bool {
	mediaType, _, _ := strings.Cut(label, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	_, ok := structuredTextLabels[mediaType]

	return ok
}

// SuggestFromLabel picks RLE for text-like labels and LZ77 for everything
// else.
func SuggestFromLabel(label string) format.CodecType {
	if IsTextLabel(label) {
		return format.CodecRLE
	}

	return format.CodecLZ77
}

// SuggestFromBytes picks RLE when every byte of data is printable ASCII or
// ASCII whitespace, and LZ77 as soon as a control or non-ASCII byte appears.
// An empty buffer selects RLE.
//
// The choice only affects compression efficiency; both codecs round-trip
// any input.
func SuggestFromBytes(data []byte) format.CodecType {
	for _, b := range data {
		if !textBytes.Get(int(b)) {
			return format.CodecLZ77
		}
	}

	return format.CodecRLE
}
