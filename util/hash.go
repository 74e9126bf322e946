package util

import (
	"encoding/hex"

	"github.com/minio/sha256-simd"
)

// DigestLength is the length of the hex encoded digest returned by Digest.
const DigestLength = 2 * sha256.Size

// Sum256 returns SHA-256 digest of the concatenation of the data slices.
func Sum256(data ...[]byte) []byte {
	hasher := sha256.New()
	for _, d := range data {
		hasher.Write(d)
	}
	return hasher.Sum(nil)
}

/*
Digest is the content hasher used for transaction and block identifiers: it
returns lowercase hex encoding of the SHA-256 digest of the concatenation of
the data slices. Identical input always yields identical output, there are no
error conditions.
*/
func Digest(data ...[]byte) string {
	return hex.EncodeToString(Sum256(data...))
}

// IsDigest reports whether s looks like a value returned by Digest.
func IsDigest(s string) bool {
	if len(s) != DigestLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
