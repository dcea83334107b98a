// Package rszip implements a lossless compression codec (LZ77 + Huffman)
// and an independent symmetric Feistel block cipher, both exposed as pure
// in-memory byte transforms.
//
// # Overview
//
// Compression runs the input through three stages: an LZ77 tokenizer turns
// repeated byte runs into back-references over a 4096-byte sliding window,
// a token codec flattens the token sequence into bytes, and a Huffman coder
// entropy-codes those bytes against a frequency-built prefix tree. The tree
// itself is serialized into the output container, so decompression rebuilds
// the exact tree shape and reverses every stage in the opposite order.
//
// Encryption is a separate, unrelated transform: a 16-round Feistel network
// over 8-byte blocks, keyed by a schedule derived deterministically from a
// passphrase.
//
// # Determinism
//
// Both transforms are pure functions of their inputs. Equal input produces
// byte-identical containers: the Huffman merge order and the LZ77 match
// tie-break are pinned, and the cipher uses no nonce or randomness.
//
// # Container formats
//
// Compressed (integers little-endian):
//
//	tag(0xC1) | treeLen u32 | tree | tokenCount u32 | symbolCount u32 | bitLen u64 | payload
//
// Encrypted:
//
//	padCount byte | ciphertext blocks
//
// # Basic Usage
//
//	container := rszip.Compress(data)
//	original, err := rszip.Decompress(container)
//
//	sealed := rszip.Encrypt(data, "passphrase")
//	opened, err := rszip.Decrypt(sealed, "passphrase")
//
// # Security Limitations
//
// The cipher is a teaching construction, not a secure one. It has no
// authentication tag, no nonce, no resistance to known-plaintext or
// differential attacks, and a wrong passphrase is indistinguishable from
// corrupted ciphertext (both surface as ErrPaddingMismatch, or go entirely
// undetected when the input was block-aligned). Do not protect real
// secrets with it.
package rszip
