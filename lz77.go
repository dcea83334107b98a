package rszip

// Match search parameters. These are speed knobs, not format: any search
// depth produces a valid token stream, it just has to be the same one for
// the same input.
const (
	hashBits = 15
	hashSize = 1 << hashBits
	maxChain = 64
)

// hash3 mixes the three bytes at src[i..i+2] down to hashBits.
func hash3(src []byte, i int) uint32 {
	h := uint32(src[i])<<16 ^ uint32(src[i+1])<<8 ^ uint32(src[i+2])
	h ^= h >> 7
	h *= 2654435761
	return h >> (32 - hashBits)
}

// tokenize scans src left to right. At each position it looks for the
// longest window match of at least minMatch bytes; on success it emits a
// back-reference and advances by the match length, otherwise it emits a
// literal and advances by one. Candidates are kept in hash chains and
// walked most-recent-first, so among equally long matches the smallest
// distance wins. Matches may run into the bytes being matched (dist <
// length); detokenize reproduces that by copying from its own output.
func tokenize(src []byte) []token {
	if len(src) == 0 {
		return nil
	}
	toks := make([]token, 0, len(src)/2+1)
	head := make([]int32, hashSize)
	for i := range head {
		head[i] = -1
	}
	next := make([]int32, len(src))

	insert := func(i int) {
		if i+minMatch > len(src) {
			return
		}
		h := hash3(src, i)
		next[i] = head[h]
		head[h] = int32(i)
	}

	for i := 0; i < len(src); {
		bestLen, bestDist := 0, 0
		if i+minMatch <= len(src) {
			limit := min(len(src)-i, maxMatch)
			for c, depth := head[hash3(src, i)], 0; c >= 0 && depth < maxChain; c, depth = next[c], depth+1 {
				dist := i - int(c)
				if dist > windowSize {
					break // chain entries only get older
				}
				j := int(c)
				if src[j] != src[i] || src[j+1] != src[i+1] || src[j+2] != src[i+2] {
					continue
				}
				l := minMatch
				for l < limit && src[j+l] == src[i+l] {
					l++
				}
				if l > bestLen {
					bestLen, bestDist = l, dist
					if l == limit {
						break
					}
				}
			}
		}
		if bestLen >= minMatch {
			toks = append(toks, token{dist: uint16(bestDist), length: uint16(bestLen)})
			for n := 0; n < bestLen; n++ {
				insert(i)
				i++
			}
		} else {
			toks = append(toks, literalToken(src[i]))
			insert(i)
			i++
		}
	}
	return toks
}

// detokenize rebuilds the original bytes from a token sequence.
// Back-references copy one byte at a time from the output produced so far,
// which is what makes self-overlapping matches come out right; a bulk copy
// with overlapping source and destination would not.
func detokenize(toks []token) ([]byte, error) {
	var n int
	for _, t := range toks {
		if t.isMatch() {
			n += int(t.length)
		} else {
			n++
		}
	}
	out := make([]byte, 0, n)
	for _, t := range toks {
		if !t.isMatch() {
			out = append(out, t.lit)
			continue
		}
		start := len(out) - int(t.dist)
		if start < 0 {
			return nil, ErrInvalidToken
		}
		for j := 0; j < int(t.length); j++ {
			out = append(out, out[start+j])
		}
	}
	return out, nil
}
