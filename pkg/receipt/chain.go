package receipt

import "fmt"

// VerifyChain reports whether receipts form an unbroken hash chain in list
// order: the first element has no previous hash, and every later element's
// previous hash equals its predecessor's receipt hash. Empty and singleton
// lists verify when the head link is empty. Reordering, deleting, or
// retargeting any link breaks the chain.
func VerifyChain(receipts []Receipt) bool {
	if len(receipts) == 0 {
		return true
	}
	if receipts[0].PreviousReceiptHash != "" {
		return false
	}
	for i := 1; i < len(receipts); i++ {
		if receipts[i].PreviousReceiptHash != receipts[i-1].ReceiptHash {
			return false
		}
	}
	return true
}

// Chain is an immutable ordered receipt history for one agent. Append returns
// a new Chain; the receiver is never modified.
type Chain struct {
	Receipts []Receipt `json:"receipts"`
}

// Head returns the receipt hash the next appended receipt must link to, or
// the empty string for an empty chain.
func (c Chain) Head() string {
	if len(c.Receipts) == 0 {
		return ""
	}
	return c.Receipts[len(c.Receipts)-1].ReceiptHash
}

// Append validates r's link against the current head and returns the
// extended chain.
func (c Chain) Append(r Receipt) (Chain, error) {
	if r.PreviousReceiptHash != c.Head() {
		return Chain{}, fmt.Errorf("receipt %s does not link to chain head %q", r.ReceiptHash, c.Head())
	}
	extended := make([]Receipt, len(c.Receipts), len(c.Receipts)+1)
	copy(extended, c.Receipts)
	return Chain{Receipts: append(extended, r)}, nil
}

// Verify checks the whole chain's hash links plus every receipt's own
// integrity and agent signature.
func (c Chain) Verify() bool {
	if !VerifyChain(c.Receipts) {
		return false
	}
	for _, r := range c.Receipts {
		if !Verify(r) {
			return false
		}
	}
	return true
}
