package huffman

import (
	"container/heap"

	"github.com/arloliu/zmh/errs"
)

// Node is a Huffman tree node.
//
// A leaf has no children and carries a Symbol. An internal node has exactly
// two children and its Freq is the sum of theirs. Each internal node owns its
// children; subtrees are never shared.
type Node struct {
	Left   *Node
	Right  *Node
	Freq   uint64
	Symbol byte
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Depth returns the length of the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n == nil || n.IsLeaf() {
		return 0
	}

	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// Leaves returns the number of leaves in the subtree.
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}

	return n.Left.Leaves() + n.Right.Leaves()
}

// BuildTree builds a Huffman tree from freq and returns its root.
//
// It returns errs.ErrEmptyInput when freq has no symbols. A table with one
// symbol produces a single leaf.
func BuildTree(freq FrequencyTable) (*Node, error) {
	if freq.Len() == 0 {
		return nil, errs.ErrEmptyInput
	}

	h := make(nodeHeap, 0, freq.Len())
	var seq uint64
	for sym, count := range freq.All() {
		h = append(h, heapItem{node: &Node{Symbol: sym, Freq: count}, seq: seq})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		left, _ := heap.Pop(&h).(heapItem)
		right, _ := heap.Pop(&h).(heapItem)

		parent := &Node{
			Left:  left.node,
			Right: right.node,
			Freq:  left.node.Freq + right.node.Freq,
		}
		heap.Push(&h, heapItem{node: parent, seq: seq})
		seq++
	}

	return h[0].node, nil
}

// heapItem pairs a node with its insertion sequence for FIFO tie-breaking.
type heapItem struct {
	node *Node
	seq  uint64
}

// nodeHeap is a min-heap ordered by (Freq, seq).
type nodeHeap []heapItem

var _ heap.Interface = (*nodeHeap)(nil)

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.Freq != h[j].node.Freq {
		return h[i].node.Freq < h[j].node.Freq
	}

	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	item, _ := x.(heapItem)
	*h = append(*h, item)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = heapItem{}
	*h = old[:n-1]

	return item
}
