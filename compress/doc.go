// Package compress provides the block codecs zmh can place inside a frame.
//
// Every codec compresses a whole in-memory buffer and reports its
// format.CompressionType, which frame headers record so that Unpack can pick
// the matching decoder.
//
// # Supported Algorithms
//
//   - None: stores the bytes unchanged
//   - Huffman: static Huffman code with the code table stored in the output
//   - Zstd: best ratio, moderate speed
//   - S2: fast LZ77 variant with a good ratio
//   - LZ4: fastest decompression, modest ratio
//
// Huffman is the native codec. The others are general-purpose LZ-family
// codecs kept as baselines and as alternatives for data with long repeats,
// which a per-byte code cannot exploit.
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionHuffman)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(data)
//
// Measure runs a verified round trip and reports sizes and timings:
//
//	stats, err := compress.Measure(compress.NewHuffmanCodec(), data)
//	fmt.Printf("%s: %.1f%% saved\n", stats.Algorithm, stats.SpaceSavings())
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Zstd and LZ4
// draw their encoder state from sync.Pool instances.
//
// # Build Tags
//
// With cgo enabled, building with -tags gozstd switches ZstdCodec to the
// libzstd binding in valyala/gozstd. Output stays compatible either way.
package compress
