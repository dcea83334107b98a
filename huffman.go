package rszip

import (
	"bytes"
	"container/heap"
	"errors"

	"github.com/icza/bitio"
)

// ErrTruncatedBitstream indicates the Huffman payload ran out of bits
// before the declared symbol count was reached.
var ErrTruncatedBitstream = errors.New("rszip: truncated bitstream")

// ErrInvalidTreeEncoding indicates a serialized tree that does not describe
// a well-formed prefix tree.
var ErrInvalidTreeEncoding = errors.New("rszip: invalid tree encoding")

// Serialized tree markers, one per node in pre-order.
const (
	nodeInternal = 0x00
	nodeLeaf     = 0x01
)

// huffNode is a leaf (no children) carrying a symbol, or an internal node
// whose weight is the sum of its children. seq is the creation order and
// breaks weight ties during the merge. Decode walks the exact tree shipped
// in the container, so any tie-break rule works as long as it is fixed.
type huffNode struct {
	sym         byte
	weight      uint64
	seq         int
	left, right *huffNode
}

func (n *huffNode) leaf() bool { return n.left == nil && n.right == nil }

type huffHeap []*huffNode

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].seq < h[j].seq
}
func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *huffHeap) Push(x any)   { *h = append(*h, x.(*huffNode)) }
func (h *huffHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

// buildTree constructs the prefix tree for data by greedy merging, lowest
// weight first, first-created-first-extracted on equal weights. Leaves are
// seeded in ascending symbol order. Empty input yields a nil tree; a single
// distinct symbol yields an internal root with the leaf on both branches so
// the symbol still gets a one-bit code instead of a zero-length one.
func buildTree(data []byte) *huffNode {
	var freqs [256]uint64
	for _, b := range data {
		freqs[b]++
	}
	h := make(huffHeap, 0, 256)
	seq := 0
	for v, f := range freqs {
		if f == 0 {
			continue
		}
		h = append(h, &huffNode{sym: byte(v), weight: f, seq: seq})
		seq++
	}
	switch len(h) {
	case 0:
		return nil
	case 1:
		leaf := h[0]
		return &huffNode{weight: leaf.weight, seq: seq, left: leaf, right: leaf}
	}
	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffNode)
		b := heap.Pop(&h).(*huffNode)
		heap.Push(&h, &huffNode{weight: a.weight + b.weight, seq: seq, left: a, right: b})
		seq++
	}
	return heap.Pop(&h).(*huffNode)
}

// bitCode is a symbol's code: the pattern in the low bits, MSB written
// first. A depth past 64 bits would need an input with Fibonacci-growth
// symbol frequencies far beyond addressable memory, so uint64 is enough.
type bitCode struct {
	bits   uint64
	length uint8
}

// buildCodes derives the code table by a root-to-leaf walk. Left is 0,
// right is 1. The resulting table is prefix-free because every symbol sits
// on a distinct leaf.
func buildCodes(root *huffNode) *[256]bitCode {
	var codes [256]bitCode
	if root == nil {
		return &codes
	}
	var walk func(n *huffNode, bits uint64, depth uint8)
	walk = func(n *huffNode, bits uint64, depth uint8) {
		if n.leaf() {
			codes[n.sym] = bitCode{bits: bits, length: depth}
			return
		}
		walk(n.left, bits<<1, depth+1)
		walk(n.right, bits<<1|1, depth+1)
	}
	walk(root, 0, 0)
	return &codes
}

// serializeTree appends the pre-order form of the tree: 0x00 for an
// internal node followed by both subtrees, 0x01 plus the symbol for a leaf.
// The exact shape travels in the container, tying decode bit for bit to
// the tree encode used.
func serializeTree(dst []byte, n *huffNode) []byte {
	if n == nil {
		return dst
	}
	if n.leaf() {
		return append(dst, nodeLeaf, n.sym)
	}
	dst = append(dst, nodeInternal)
	dst = serializeTree(dst, n.left)
	return serializeTree(dst, n.right)
}

// deserializeTree rebuilds a tree from its pre-order form. Empty input is
// the nil tree of an empty alphabet. A truncated node, trailing bytes, or
// a bare leaf at the root (which would mean zero-length codes) all fail
// with ErrInvalidTreeEncoding.
func deserializeTree(data []byte) (*huffNode, error) {
	if len(data) == 0 {
		return nil, nil
	}
	root, rest, err := readNode(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 || root.leaf() {
		return nil, ErrInvalidTreeEncoding
	}
	return root, nil
}

func readNode(data []byte) (*huffNode, []byte, error) {
	if len(data) == 0 {
		return nil, nil, ErrInvalidTreeEncoding
	}
	switch data[0] {
	case nodeLeaf:
		if len(data) < 2 {
			return nil, nil, ErrInvalidTreeEncoding
		}
		return &huffNode{sym: data[1]}, data[2:], nil
	case nodeInternal:
		left, rest, err := readNode(data[1:])
		if err != nil {
			return nil, nil, err
		}
		right, rest, err := readNode(rest)
		if err != nil {
			return nil, nil, err
		}
		return &huffNode{left: left, right: right}, rest, nil
	default:
		return nil, nil, ErrInvalidTreeEncoding
	}
}

// encodeSymbols writes each byte of data as its code, MSB first, and
// returns the byte-aligned payload with the exact bit count. The final
// byte is zero padded; readers trust the bit count, not the padding.
func encodeSymbols(data []byte, codes *[256]bitCode) ([]byte, uint64) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	var bitLen uint64
	for _, b := range data {
		c := codes[b]
		w.WriteBits(c.bits, c.length)
		bitLen += uint64(c.length)
	}
	w.Close()
	return buf.Bytes(), bitLen
}

// decodeSymbols walks the tree from the root, one bit per step, emitting a
// symbol and resetting at each leaf, until count symbols are out. bitLen
// bounds consumption so the padding in the final byte can never mint extra
// symbols.
func decodeSymbols(payload []byte, root *huffNode, count int, bitLen uint64) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	if root == nil {
		return nil, ErrInvalidTreeEncoding
	}
	out := make([]byte, 0, count)
	r := bitio.NewReader(bytes.NewReader(payload))
	var used uint64
	n := root
	for len(out) < count {
		if used == bitLen {
			return nil, ErrTruncatedBitstream
		}
		bit, err := r.ReadBool()
		if err != nil {
			return nil, ErrTruncatedBitstream
		}
		used++
		if bit {
			n = n.right
		} else {
			n = n.left
		}
		if n.leaf() {
			out = append(out, n.sym)
			n = root
		}
	}
	return out, nil
}
