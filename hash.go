package nbt

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
	"github.com/zoobzio/nbt/cbor"
	"golang.org/x/crypto/blake2b"
)

// HashAlgo names a fingerprint hash algorithm.
type HashAlgo string

// Supported fingerprint algorithms.
const (
	// HashSHA256 produces a 64-character hex digest.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 produces a 128-character hex digest.
	HashSHA512 HashAlgo = "sha512"

	// HashBlake2b produces a 64-character hex BLAKE2b-256 digest.
	HashBlake2b HashAlgo = "blake2b"

	// HashBlake3 produces a 64-character hex BLAKE3 digest.
	HashBlake3 HashAlgo = "blake3"
)

// Hasher performs one-way deterministic hashing.
type Hasher interface {
	// Hash returns the hex-encoded digest of data.
	Hash(data []byte) (string, error)
}

// digestHasher adapts a hash.Hash constructor to Hasher.
type digestHasher struct {
	new func() hash.Hash
}

func (h digestHasher) Hash(data []byte) (string, error) {
	d := h.new()
	if _, err := d.Write(data); err != nil {
		return "", err
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

// SHA256Hasher returns a SHA-256 hasher.
func SHA256Hasher() Hasher { return digestHasher{new: sha256.New} }

// SHA512Hasher returns a SHA-512 hasher.
func SHA512Hasher() Hasher { return digestHasher{new: sha512.New} }

// Blake2bHasher returns a BLAKE2b-256 hasher.
func Blake2bHasher() Hasher {
	return digestHasher{new: func() hash.Hash {
		// New256 only fails for keys longer than 64 bytes.
		d, _ := blake2b.New256(nil)
		return d
	}}
}

// Blake3Hasher returns a BLAKE3 hasher with a 32-byte digest.
func Blake3Hasher() Hasher {
	return digestHasher{new: func() hash.Hash { return blake3.New() }}
}

// builtinHashers returns the hasher for each supported algorithm.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashSHA256:  SHA256Hasher(),
		HashSHA512:  SHA512Hasher(),
		HashBlake2b: Blake2bHasher(),
		HashBlake3:  Blake3Hasher(),
	}
}

// HashAlgos returns the supported fingerprint algorithms.
func HashAlgos() []HashAlgo {
	return []HashAlgo{HashSHA256, HashSHA512, HashBlake2b, HashBlake3}
}

// Fingerprint hashes the binary encoding of tag with algo and returns the
// hex digest.
//
// Serializable payloads are encoded with deterministic CBOR unless opts
// select another codec. Compound children are hashed in insertion order,
// so trees that are Equal but ordered differently fingerprint differently.
func Fingerprint(ctx context.Context, tag Tag, algo HashAlgo, opts ...Option) (string, error) {
	h, ok := builtinHashers()[algo]
	if !ok {
		return "", fmt.Errorf("unknown hash algorithm %q", algo)
	}
	opts = append([]Option{WithCodec(cbor.New())}, opts...)
	data, err := Marshal(ctx, tag, opts...)
	if err != nil {
		return "", err
	}
	return h.Hash(data)
}
