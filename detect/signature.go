package detect

import "bytes"

// Signature maps a magic-number prefix to a MIME label.
type Signature struct {
	Prefix []byte
	Label  string
}

// SignatureLength is the number of leading bytes needed to test every
// known signature.
const SignatureLength = 4

// signatures is checked in order and the first matching prefix wins, so
// entries sharing leading bytes must keep their relative order.
var signatures = []Signature{
	{Prefix: []byte{0xEF, 0xBB, 0xBF}, Label: LabelText},
	{Prefix: []byte{0xFF, 0xFE}, Label: LabelText},
	{Prefix: []byte{0xFE, 0xFF}, Label: LabelText},
	{Prefix: []byte{0x89, 0x50, 0x4E, 0x47}, Label: LabelPNG},
	{Prefix: []byte{0xFF, 0xD8, 0xFF}, Label: LabelJPEG},
	{Prefix: []byte{0x47, 0x49, 0x46, 0x38}, Label: LabelGIF},
	{Prefix: []byte{0x50, 0x4B, 0x03, 0x04}, Label: LabelZIP},
	{Prefix: []byte{0x1F, 0x8B}, Label: LabelGzip},
	{Prefix: []byte{0x42, 0x5A, 0x68}, Label: LabelBzip2},
}

// Signatures returns a copy of the signature table in match order.
func Signatures() []Signature {
	out := make([]Signature, len(signatures))
	for i, sig := range signatures {
		out[i] = Signature{Prefix: bytes.Clone(sig.Prefix), Label: sig.Label}
	}

	return out
}

// DetectSignature returns the label of the first signature that prefixes
// data. The second return value is false when no signature matches.
func DetectSignature(data []byte) (string, bool) {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.Prefix) {
			return sig.Label, true
		}
	}

	return "", false
}
