// Package digest computes the hex SHA-1 digests used to derive a smart
// graph attribute from a --smart-value column when --hash-smart-value is
// set. No third-party hashing library in the reference corpus implements
// SHA-1 (the corpus uses murmur3 and xxhash for non-cryptographic
// hashing); crypto/sha1 is the correct, idiomatic choice here.
package digest

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is the format the downstream database expects, not used for security.
	"encoding/hex"
)

// Hex returns the lowercase hex SHA-1 digest of input.
func Hex(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
