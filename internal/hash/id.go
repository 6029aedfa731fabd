// Package hash computes content identities for inputs.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of data.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// IDReader computes the xxHash64 of everything read from r.
func IDReader(r io.Reader) (uint64, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return 0, err
	}

	return d.Sum64(), nil
}
