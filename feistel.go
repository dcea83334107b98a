package rszip

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
	"math/bits"
)

// Cipher parameters. 16 rounds over 8-byte blocks; the round function and
// its constants are fixed by the format, not tunable at run time.
const (
	blockSize    = 8
	cipherRounds = 16
)

// ErrPaddingMismatch indicates decrypted padding that is out of range or
// inconsistent with the declared pad count. A wrong passphrase and
// corrupted ciphertext are indistinguishable here: both surface as this
// error when the padding check trips. There is no further integrity or
// authentication guarantee.
var ErrPaddingMismatch = errors.New("rszip: padding mismatch")

// deriveKeySchedule expands a passphrase into one 32-bit subkey per round.
// The schedule is a pure function of (passphrase, rounds): an FNV-64a seed
// pushed through a splitmix-style mixer once per round index.
func deriveKeySchedule(passphrase string, rounds int) []uint32 {
	h := fnv.New64a()
	h.Write([]byte(passphrase))
	state := h.Sum64()
	keys := make([]uint32, rounds)
	for i := range keys {
		state += 0x9e3779b97f4a7c15
		z := state
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		keys[i] = uint32(z ^ (z >> 31))
	}
	return keys
}

// roundFunction is the keyed non-linear mix: add, rotate, shifted xor.
// It is never inverted; only the subkey order differs between encryption
// and decryption.
func roundFunction(x, k uint32) uint32 {
	t := x + k
	return bits.RotateLeft32(t, 5) ^ (t >> 3)
}

// feistelBlock runs the rounds over one 8-byte block in place. The halves
// are little-endian uint32s. The final swap is skipped, per the standard
// Feistel construction, so running the identical loop with the schedule
// reversed is the exact inverse.
func feistelBlock(block []byte, keys []uint32, reverse bool) {
	l := binary.LittleEndian.Uint32(block[0:4])
	r := binary.LittleEndian.Uint32(block[4:8])
	for i := range keys {
		k := keys[i]
		if reverse {
			k = keys[len(keys)-1-i]
		}
		l, r = r, l^roundFunction(r, k)
	}
	binary.LittleEndian.PutUint32(block[0:4], r)
	binary.LittleEndian.PutUint32(block[4:8], l)
}

// Encrypt pads src to a whole number of blocks and encrypts each block
// independently under a schedule derived from passphrase. Output layout:
// one pad-count byte, then the ciphertext blocks. Deterministic: no nonce,
// no randomness; equal inputs give byte-equal output. This is a toy cipher
// with no claimed resistance to cryptanalysis; see the package doc.
func Encrypt(src []byte, passphrase string) []byte {
	keys := deriveKeySchedule(passphrase, cipherRounds)
	pad := (blockSize - len(src)%blockSize) % blockSize
	out := make([]byte, 1+len(src)+pad)
	out[0] = byte(pad)
	copy(out[1:], src)
	for i := 0; i < pad; i++ {
		out[1+len(src)+i] = byte(pad)
	}
	for b := out[1:]; len(b) > 0; b = b[blockSize:] {
		feistelBlock(b[:blockSize], keys, false)
	}
	return out
}

// Decrypt reverses Encrypt and verifies the padding before truncating to
// the original length. Fails with ErrMalformedContainer on impossible
// framing and ErrPaddingMismatch on inconsistent padding; a wrong key on
// block-aligned input (pad count zero) has nothing to trip on and goes
// undetected.
func Decrypt(container []byte, passphrase string) ([]byte, error) {
	if len(container) < 1 || (len(container)-1)%blockSize != 0 {
		return nil, ErrMalformedContainer
	}
	pad := int(container[0])
	if pad >= blockSize {
		return nil, ErrPaddingMismatch
	}
	keys := deriveKeySchedule(passphrase, cipherRounds)
	plain := make([]byte, len(container)-1)
	copy(plain, container[1:])
	for b := plain; len(b) > 0; b = b[blockSize:] {
		feistelBlock(b[:blockSize], keys, true)
	}
	if pad > len(plain) {
		return nil, ErrPaddingMismatch
	}
	for _, b := range plain[len(plain)-pad:] {
		if b != byte(pad) {
			return nil, ErrPaddingMismatch
		}
	}
	return plain[:len(plain)-pad], nil
}
