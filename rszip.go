package rszip

// Compress runs the full pipeline: LZ77 tokens, flat token bytes, Huffman
// tree and bitstream, container. It always succeeds; incompressible input
// just comes out bigger than it went in, which the format permits.
func Compress(src []byte) []byte {
	toks := tokenize(src)
	flat := appendTokens(make([]byte, 0, len(src)), toks)
	root := buildTree(flat)
	codes := buildCodes(root)
	payload, bitLen := encodeSymbols(flat, codes)
	return frame(serializeTree(nil, root), len(toks), len(flat), bitLen, payload)
}

// Decompress reverses every stage of Compress in the opposite order.
// Framing damage reports ErrMalformedContainer; damage further in reports
// the error of the stage that caught it. A failing transform returns no
// bytes at all.
func Decompress(container []byte) ([]byte, error) {
	p, err := parseFrame(container)
	if err != nil {
		return nil, err
	}
	root, err := deserializeTree(p.tree)
	if err != nil {
		return nil, err
	}
	flat, err := decodeSymbols(p.payload, root, p.symbolCount, p.bitLen)
	if err != nil {
		return nil, err
	}
	toks, err := parseTokens(flat, p.tokenCount)
	if err != nil {
		return nil, err
	}
	return detokenize(toks)
}
