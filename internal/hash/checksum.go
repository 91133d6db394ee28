// Package hash computes the content checksums stored in frame headers.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum returns the xxHash64 digest of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
