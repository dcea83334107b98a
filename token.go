package rszip

import (
	"encoding/binary"
	"errors"
)

// Codec parameters. The window and match bounds are part of the container
// format: changing them invalidates previously written containers.
const (
	windowSize = 4096
	minMatch   = 3
	maxMatch   = 258
)

// Token discriminators in the flat byte form.
const (
	tokenLiteral = 0x00
	tokenMatch   = 0x01
)

// ErrInvalidToken indicates a token stream that cannot be applied: unknown
// discriminator, out-of-range distance or length, leftover or missing
// bytes, or a back-reference reaching before the start of the output.
var ErrInvalidToken = errors.New("rszip: invalid token stream")

// token is one LZ77 output unit: a single literal byte, or a back-reference
// to length bytes starting dist bytes behind the current output position.
// dist == 0 marks a literal; real matches always have dist >= 1.
type token struct {
	dist   uint16
	length uint16
	lit    byte
}

func literalToken(b byte) token { return token{lit: b} }

func (t token) isMatch() bool { return t.dist != 0 }

// appendTokens serializes toks to dst in the flat form fed to the Huffman
// stage: one discriminator byte per token, then either the literal byte or
// the little-endian distance and length.
func appendTokens(dst []byte, toks []token) []byte {
	for _, t := range toks {
		if t.isMatch() {
			dst = append(dst, tokenMatch)
			dst = binary.LittleEndian.AppendUint16(dst, t.dist)
			dst = binary.LittleEndian.AppendUint16(dst, t.length)
		} else {
			dst = append(dst, tokenLiteral, t.lit)
		}
	}
	return dst
}

// parseTokens reconstructs exactly count tokens from data. The flat bytes
// must be consumed exactly; anything else is reported as a decode error,
// never patched into a best-effort answer.
func parseTokens(data []byte, count int) ([]token, error) {
	toks := make([]token, 0, count)
	pos := 0
	for n := 0; n < count; n++ {
		if pos >= len(data) {
			return nil, ErrInvalidToken
		}
		disc := data[pos]
		pos++
		switch disc {
		case tokenLiteral:
			if pos >= len(data) {
				return nil, ErrInvalidToken
			}
			toks = append(toks, literalToken(data[pos]))
			pos++
		case tokenMatch:
			if pos+4 > len(data) {
				return nil, ErrInvalidToken
			}
			dist := binary.LittleEndian.Uint16(data[pos:])
			length := binary.LittleEndian.Uint16(data[pos+2:])
			pos += 4
			if dist == 0 || dist > windowSize || length < minMatch || length > maxMatch {
				return nil, ErrInvalidToken
			}
			toks = append(toks, token{dist: dist, length: length})
		default:
			return nil, ErrInvalidToken
		}
	}
	if pos != len(data) {
		return nil, ErrInvalidToken
	}
	return toks, nil
}
