// Package baseline wraps general-purpose compressors behind compress.Codec
// so their ratios can be compared with the RLE and window codecs.
//
// These codecs never appear in a squeeze stream; they exist for the
// compare command and benchmarks only.
package baseline

import (
	"fmt"
	"strings"

	"github.com/arloliu/squeeze/compress"
	"github.com/arloliu/squeeze/errs"
)

// Names of the registered baseline codecs.
const (
	NameStore = "store"
	NameS2    = "s2"
	NameLZ4   = "lz4"
	NameZstd  = "zstd"
	NameXZ    = "xz"
)

// maxDecodedSize bounds the memory a baseline decoder may use for one
// stream.
const maxDecodedSize = 128 * 1024 * 1024

type entry struct {
	name  string
	codec compress.Codec
}

// registry is ordered from fastest to strongest.
var registry = []entry{
	{NameStore, NewStoreCodec()},
	{NameS2, NewS2Codec()},
	{NameLZ4, NewLZ4Codec()},
	{NameZstd, NewZstdCodec()},
	{NameXZ, NewXZCodec()},
}

// Names returns the registered codec names in comparison order.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}

	return names
}

// Get returns the codec registered under name, ignoring case.
func Get(name string) (compress.Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range registry {
		if e.name == name {
			return e.codec, nil
		}
	}

	return nil, fmt.Errorf("%w: baseline %q", errs.ErrUnknownCodec, name)
}
