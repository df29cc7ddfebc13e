package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the lowercase hex SHA-256 digest of s.
// All identifiers in the engine (receipt hashes, identity hashes) are
// 64-char lowercase hex strings produced this way.
func SHA256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// SHA256HexBytes returns the lowercase hex SHA-256 digest of raw bytes.
func SHA256HexBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
