package format

// Window codec token tags.
const (
	TagLiteral   byte = 0x00 // TagLiteral is followed by one raw byte.
	TagReference byte = 0x01 // TagReference is followed by a distance byte and a length byte.
)

// Token sizes in bytes, tag included.
const (
	LiteralTokenSize   = 2
	ReferenceTokenSize = 3
	RLEPairSize        = 2
)

// MaxFieldValue is the largest value a one-byte count, distance or length
// field can carry.
const MaxFieldValue = 0xFF

// Window codec defaults.
const (
	// DefaultWindowSize is the default look-back window. It equals
	// MaxFieldValue so that every chosen distance fits the distance field.
	DefaultWindowSize = MaxFieldValue

	// MaxStrictWindowSize is the largest window accepted when the encoder
	// runs without clamping. Matches farther than MaxFieldValue are then
	// reported instead of emitted.
	MaxStrictWindowSize = 1024

	// DefaultMinMatch is the shortest match emitted as a reference.
	DefaultMinMatch = 3
)
