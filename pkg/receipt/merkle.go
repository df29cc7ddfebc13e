package receipt

import "github.com/covenantos/trustcore/pkg/crypto"

// MerkleRoot builds a binary Merkle tree over the receipt hashes in the
// given order and returns the root. Adjacent hashes are paired as
// sha256(left+right) over the hex strings; an odd node at any level is
// paired with itself. Empty input hashes the empty string; a single receipt
// is its own root. Order is significant.
func MerkleRoot(receipts []Receipt) string {
	hashes := make([]string, len(receipts))
	for i, r := range receipts {
		hashes[i] = r.ReceiptHash
	}
	return MerkleRootFromHashes(hashes)
}

// MerkleRootFromHashes reduces a level of hex hashes to a single root.
func MerkleRootFromHashes(hashes []string) string {
	if len(hashes) == 0 {
		return crypto.SHA256Hex("")
	}
	level := make([]string, len(hashes))
	copy(level, hashes)
	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]string, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, crypto.SHA256Hex(level[i]+level[i+1]))
		}
		level = next
	}
	return level[0]
}
