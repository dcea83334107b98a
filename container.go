package rszip

import (
	"encoding/binary"
	"errors"
)

// formatCompressed tags compressed containers. A future layout must bump
// the tag; parsing rejects anything it does not know.
const formatCompressed = 0xC1

// ErrMalformedContainer indicates framing damage: short buffer, unknown
// format tag, or field values that contradict the buffer length.
var ErrMalformedContainer = errors.New("rszip: malformed container")

// compressedParts are the fields of a parsed compressed container.
type compressedParts struct {
	tree        []byte
	tokenCount  int
	symbolCount int
	bitLen      uint64
	payload     []byte
}

// frame lays out a compressed container:
//
//	tag(1) | treeLen(u32) | tree | tokenCount(u32) | symbolCount(u32) | bitLen(u64) | payload
//
// All integers little-endian. The payload is byte-aligned; its trailing
// pad bits are dead weight covered by bitLen.
func frame(tree []byte, tokenCount, symbolCount int, bitLen uint64, payload []byte) []byte {
	out := make([]byte, 0, 1+4+len(tree)+4+4+8+len(payload))
	out = append(out, formatCompressed)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(tree)))
	out = append(out, tree...)
	out = binary.LittleEndian.AppendUint32(out, uint32(tokenCount))
	out = binary.LittleEndian.AppendUint32(out, uint32(symbolCount))
	out = binary.LittleEndian.AppendUint64(out, bitLen)
	return append(out, payload...)
}

// parseFrame splits a container into its fields. Framing damage surfaces
// here as ErrMalformedContainer; damage inside the tree bytes or the
// payload is left for the Huffman and token stages to report as their own
// error kinds.
func parseFrame(c []byte) (compressedParts, error) {
	var p compressedParts
	if len(c) < 5 || c[0] != formatCompressed {
		return p, ErrMalformedContainer
	}
	treeLen := int(binary.LittleEndian.Uint32(c[1:5]))
	rest := c[5:]
	if treeLen < 0 || len(rest) < treeLen+16 {
		return p, ErrMalformedContainer
	}
	p.tree = rest[:treeLen]
	rest = rest[treeLen:]
	p.tokenCount = int(binary.LittleEndian.Uint32(rest[0:4]))
	p.symbolCount = int(binary.LittleEndian.Uint32(rest[4:8]))
	p.bitLen = binary.LittleEndian.Uint64(rest[8:16])
	p.payload = rest[16:]
	if uint64(len(p.payload)) != (p.bitLen+7)/8 {
		return p, ErrMalformedContainer
	}
	// Every symbol costs at least one bit and every token at least two flat
	// bytes, so counts exceeding those bounds cannot be honest. Rejecting
	// them here also keeps decode allocations proportional to the buffer.
	if uint64(p.symbolCount) > p.bitLen || 2*uint64(p.tokenCount) > uint64(p.symbolCount) {
		return p, ErrMalformedContainer
	}
	return p, nil
}
