// Package huffman builds static Huffman prefix codes for byte streams.
//
// The pipeline is:
//
//	freq := huffman.CountFrequencies(data)   // symbol -> count
//	root, err := huffman.BuildTree(freq)     // min-heap merge of lowest counts
//	table, err := huffman.AssignCodes(root)  // root-to-leaf paths, 0=left 1=right
//	bits := bitstream.New(0)
//	err = huffman.Encode(data, table, bits)  // concatenate codes in input order
//	out, err := huffman.Decode(bits, table)  // greedy prefix match
//
// BuildCodeTable runs the first three steps in one call.
//
// # Tie-breaking
//
// Nodes with equal frequency leave the heap in the order they entered it.
// Leaves enter in ascending symbol order and every merged node enters after
// all nodes created before it, so the same input always produces the same
// table. When two nodes are merged, the first one popped becomes the left (0)
// child.
//
// # Degenerate inputs
//
// An empty frequency table has no tree; BuildTree returns errs.ErrEmptyInput.
// A single distinct symbol yields a one-leaf tree whose root-to-leaf path is
// empty, so AssignCodes gives that symbol the 1-bit code "0".
//
// All functions are free of shared state and safe to call concurrently on
// distinct inputs.
package huffman
