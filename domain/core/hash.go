package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough for log lines.
func (h Hash) Short() string {
	if len(h) < 12 {
		return string(h)
	}
	return string(h[:12])
}

// ComputeTableHash hashes rendered table blocks in order. Blocks are
// separated by a NUL so adjacent blocks cannot collide by concatenation.
func ComputeTableHash(blocks ...string) Hash {
	return NewHash([]byte(strings.Join(blocks, "\x00")))
}
