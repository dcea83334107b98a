package rszip

import (
	"bytes"
	"errors"
	"testing"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	toks := []token{
		literalToken('h'),
		literalToken(0x00), // literal equal to a discriminator value
		{dist: 3, length: 5},
		literalToken(0x01),
		{dist: windowSize, length: maxMatch},
		{dist: 1, length: minMatch},
	}
	flat := appendTokens(nil, toks)
	back, err := parseTokens(flat, len(toks))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(back) != len(toks) {
		t.Fatalf("token count mismatch: %d != %d", len(back), len(toks))
	}
	for i := range toks {
		if back[i] != toks[i] {
			t.Fatalf("token %d mismatch: %v != %v", i, back[i], toks[i])
		}
	}
}

func TestParseTokensErrors(t *testing.T) {
	good := appendTokens(nil, []token{literalToken('x'), {dist: 2, length: 4}})

	cases := []struct {
		name  string
		data  []byte
		count int
	}{
		{"truncated match", good[:len(good)-1], 2},
		{"count beyond data", good, 3},
		{"count below data", good, 1},
		{"bad discriminator", []byte{0x42, 'x'}, 1},
		{"zero distance", appendLE16(append([]byte{tokenMatch}, 0, 0), 5), 1},
		{"distance beyond window", flatMatch(windowSize+1, 5), 1},
		{"length below minimum", flatMatch(4, minMatch-1), 1},
		{"length beyond maximum", flatMatch(4, maxMatch+1), 1},
	}
	for _, c := range cases {
		if _, err := parseTokens(c.data, c.count); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", c.name, err)
		}
	}
}

func TestAppendTokensFlatForm(t *testing.T) {
	flat := appendTokens(nil, []token{literalToken('Z'), {dist: 0x0102, length: 0x0010}})
	want := []byte{tokenLiteral, 'Z', tokenMatch, 0x02, 0x01, 0x10, 0x00}
	if !bytes.Equal(flat, want) {
		t.Fatalf("flat form %x, want %x", flat, want)
	}
}

func flatMatch(dist, length int) []byte {
	out := []byte{tokenMatch}
	out = appendLE16(out, dist)
	return appendLE16(out, length)
}

func appendLE16(dst []byte, v int) []byte {
	return append(dst, byte(v), byte(v>>8))
}
