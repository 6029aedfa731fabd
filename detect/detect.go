// Package detect chooses a codec for an input.
//
// Labels come from a magic-number table checked against the first bytes of
// the input, falling back to the file extension. A label is then mapped to a
// codec with SuggestFromLabel. When neither a name nor a recognizable
// signature is available, SuggestFromBytes classifies the raw content.
//
// Every function in this package is pure and safe for concurrent use.
package detect

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/squeeze/format"
)

// Detect returns the label for an input named name whose content starts
// with prefix. Signatures take precedence over the extension.
func Detect(name string, prefix []byte) string {
	if label, ok := DetectSignature(prefix); ok {
		return label
	}

	return DetectByExtension(name)
}

// DetectReader reads up to SignatureLength bytes from r, restores the
// original read position and returns the label for the input named name.
func DetectReader(r io.ReadSeeker, name string) (string, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", fmt.Errorf("detect %s: %w", name, err)
	}

	prefix := make([]byte, SignatureLength)
	n, err := io.ReadFull(r, prefix)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("detect %s: %w", name, err)
	}

	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return "", fmt.Errorf("detect %s: %w", name, err)
	}

	return Detect(name, prefix[:n]), nil
}

// DetectFile opens path and returns its label.
func DetectFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return DetectReader(f, path)
}

// Suggest returns the codec for an input with a known name and content.
//
// A recognized signature or extension decides through SuggestFromLabel.
// When the name is empty and no signature matches, the content heuristic
// SuggestFromBytes decides instead.
func Suggest(name string, data []byte) format.CodecType {
	if label, ok := DetectSignature(data); ok {
		return SuggestFromLabel(label)
	}
	if name == "" {
		return SuggestFromBytes(data)
	}

	return SuggestFromLabel(DetectByExtension(name))
}
