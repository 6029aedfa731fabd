package format

import "strings"

type CodecType uint8

const (
	CodecRLE  CodecType = 0x1 // CodecRLE represents run-length encoding.
	CodecLZ77 CodecType = 0x2 // CodecLZ77 represents the sliding-window dictionary encoding.
)

func (c CodecType) String() string {
	switch c {
	case CodecRLE:
		return "rle"
	case CodecLZ77:
		return "lz77"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the known codec identifiers.
func (c CodecType) Valid() bool {
	return c == CodecRLE || c == CodecLZ77
}

// ParseCodecType maps a codec name ("rle", "lz77") to its CodecType.
// Matching is case-insensitive. The second return value is false for any
// other name.
func ParseCodecType(name string) (CodecType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rle":
		return CodecRLE, true
	case "lz77":
		return CodecLZ77, true
	default:
		return 0, false
	}
}
