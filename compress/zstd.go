package compress

import "github.com/arloliu/zmh/format"

// ZstdCodec uses Zstandard. It gives the best ratio of the built-in codecs at
// a moderate speed cost and is the usual choice for archival.
//
// The default build uses the pure Go encoder from klauspost/compress. Building
// with cgo and the gozstd tag switches to the libzstd binding from
// valyala/gozstd; both produce standard zstd frames and can read each other's
// output.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstandard codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
