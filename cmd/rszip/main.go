// Command rszip compresses, decompresses, encrypts and decrypts single
// files with the rszip codec and cipher. It reads the whole input file,
// transforms it in memory and writes the whole output file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/doesbuzz/rszip"
)

func usage() {
	fmt.Fprint(os.Stderr, `usage:
  rszip compress   <in> <out>
  rszip decompress <in> <out>
  rszip encrypt    -key <passphrase> <in> <out>
  rszip decrypt    -key <passphrase> <in> <out>
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	key := fs.String("key", "", "passphrase for encrypt/decrypt")
	fs.Parse(os.Args[2:])
	if fs.NArg() != 2 {
		usage()
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatal(err)
	}

	var result []byte
	switch cmd {
	case "compress":
		result = rszip.Compress(data)
	case "decompress":
		result, err = rszip.Decompress(data)
	case "encrypt":
		result = rszip.Encrypt(data, *key)
	case "decrypt":
		result, err = rszip.Decrypt(data, *key)
	default:
		usage()
	}
	if err != nil {
		fatal(err)
	}
	if err := os.WriteFile(fs.Arg(1), result, 0644); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "rszip: %v\n", err)
	os.Exit(1)
}
