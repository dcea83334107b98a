package rszip

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("A"),
		[]byte("AAAAAAAAAA"),
		allByteValues(),
		bytes.Repeat([]byte{0}, 5000),
		bytes.Repeat([]byte("to be or not to be, that is the question. "), 400),
		noisyBytes(20000),
	}
	for i, in := range inputs {
		out, err := Decompress(Compress(in))
		if err != nil {
			t.Fatalf("input %d: decompress: %v", i, err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("input %d: roundtrip mismatch (%d bytes in, %d out)", i, len(in), len(out))
		}
	}
}

func TestCompressDeterministic(t *testing.T) {
	in := bytes.Repeat([]byte("determinism matters for this format "), 200)
	if !bytes.Equal(Compress(in), Compress(in)) {
		t.Fatalf("compressing identical input twice produced different containers")
	}
}

func TestCompressRepeatedRunShape(t *testing.T) {
	c := Compress([]byte("AAAAAAAAAA"))
	p, err := parseFrame(c)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.tokenCount != 2 {
		t.Fatalf("expected 2 tokens (one literal, one match), got %d", p.tokenCount)
	}
	out, err := Decompress(c)
	if err != nil || !bytes.Equal(out, []byte("AAAAAAAAAA")) {
		t.Fatalf("roundtrip: %q, %v", out, err)
	}
}

func TestCompressEmptyInput(t *testing.T) {
	c := Compress(nil)
	p, err := parseFrame(c)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.tokenCount != 0 || p.symbolCount != 0 || p.bitLen != 0 || len(p.tree) != 0 {
		t.Fatalf("empty input container not minimal: %+v", p)
	}
	out, err := Decompress(c)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("decompressing the empty container gave %d bytes", len(out))
	}
}

func TestDecompressMalformed(t *testing.T) {
	valid := Compress([]byte("some valid content to damage"))

	badTag := bytes.Clone(valid)
	badTag[0] = 0x7f

	hugeTreeLen := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(hugeTreeLen[1:5], 1<<30)

	cases := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"single byte", []byte{formatCompressed}},
		{"unknown tag", badTag},
		{"tree length beyond buffer", hugeTreeLen},
		{"truncated header", valid[:7]},
		{"truncated payload", valid[:len(valid)-1]},
	}
	for _, c := range cases {
		if _, err := Decompress(c.data); !errors.Is(err, ErrMalformedContainer) {
			t.Fatalf("%s: expected ErrMalformedContainer, got %v", c.name, err)
		}
	}
}

func TestDecompressGarbledTree(t *testing.T) {
	c := Compress([]byte("tree damage ahead, tree damage ahead"))
	treeLen := int(binary.LittleEndian.Uint32(c[1:5]))
	if treeLen == 0 {
		t.Fatalf("expected a nonempty tree")
	}
	c[5] = 0x42 // first tree marker byte
	if _, err := Decompress(c); !errors.Is(err, ErrInvalidTreeEncoding) {
		t.Fatalf("expected ErrInvalidTreeEncoding, got %v", err)
	}
}

func TestDecompressTamperedPayload(t *testing.T) {
	in := bytes.Repeat([]byte("tamper sensitivity check "), 40)
	c := Compress(in)
	treeLen := int(binary.LittleEndian.Uint32(c[1:5]))
	payloadStart := 1 + 4 + treeLen + 4 + 4 + 8
	if payloadStart >= len(c) {
		t.Fatalf("no payload bytes to tamper with")
	}
	c[payloadStart] ^= 0x80 // first payload bit, always inside bitLen
	out, err := Decompress(c)
	if err == nil && bytes.Equal(out, in) {
		t.Fatalf("flipped payload bit went unnoticed")
	}
}

func TestFrameParseRoundTrip(t *testing.T) {
	tree := []byte{nodeInternal, nodeLeaf, 'a', nodeLeaf, 'b'}
	payload := []byte{0xa5, 0x80}
	c := frame(tree, 4, 9, 9, payload)
	p, err := parseFrame(c)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(p.tree, tree) || p.tokenCount != 4 || p.symbolCount != 9 ||
		p.bitLen != 9 || !bytes.Equal(p.payload, payload) {
		t.Fatalf("parsed fields mismatch: %+v", p)
	}
}

func TestFrameBitLengthConsistency(t *testing.T) {
	// Declared bit length must match the payload byte count exactly.
	c := frame(nil, 0, 0, 9, []byte{0xff, 0xff, 0xff})
	if _, err := parseFrame(c); !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("expected ErrMalformedContainer, got %v", err)
	}
}
