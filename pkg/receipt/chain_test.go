package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenantos/trustcore/pkg/crypto"
	"github.com/covenantos/trustcore/pkg/receipt"
)

func issueChain(t *testing.T, agent *crypto.Ed25519Signer, n int) []receipt.Receipt {
	t.Helper()
	receipts := make([]receipt.Receipt, 0, n)
	prev := ""
	for i := 0; i < n; i++ {
		r := issueReceipt(t, agent, receipt.OutcomeFulfilled, "", prev)
		receipts = append(receipts, r)
		prev = r.ReceiptHash
	}
	return receipts
}

func TestVerifyChain_EmptyAndSingleton(t *testing.T) {
	agent := newAgent(t)

	assert.True(t, receipt.VerifyChain(nil))
	assert.True(t, receipt.VerifyChain([]receipt.Receipt{issueReceipt(t, agent, receipt.OutcomeFulfilled, "", "")}))

	linked := issueReceipt(t, agent, receipt.OutcomeFulfilled, "", crypto.SHA256Hex("dangling"))
	assert.False(t, receipt.VerifyChain([]receipt.Receipt{linked}),
		"singleton with a previous hash is not a chain head")
}

func TestVerifyChain_AppendOrderOnly(t *testing.T) {
	agent := newAgent(t)
	receipts := issueChain(t, agent, 4)
	assert.True(t, receipt.VerifyChain(receipts))

	reordered := []receipt.Receipt{receipts[0], receipts[2], receipts[1], receipts[3]}
	assert.False(t, receipt.VerifyChain(reordered), "reordering breaks the chain")

	gapped := []receipt.Receipt{receipts[0], receipts[2], receipts[3]}
	assert.False(t, receipt.VerifyChain(gapped), "removing a middle link breaks the chain")

	retargeted := make([]receipt.Receipt, len(receipts))
	copy(retargeted, receipts)
	retargeted[2].PreviousReceiptHash = crypto.SHA256Hex("elsewhere")
	assert.False(t, receipt.VerifyChain(retargeted), "retargeting a link breaks the chain")
}

func TestChain_AppendAndVerify(t *testing.T) {
	agent := newAgent(t)

	chain := receipt.Chain{}
	assert.Equal(t, "", chain.Head())

	r1 := issueReceipt(t, agent, receipt.OutcomeFulfilled, "", "")
	chain, err := chain.Append(r1)
	require.NoError(t, err)
	assert.Equal(t, r1.ReceiptHash, chain.Head())

	r2 := issueReceipt(t, agent, receipt.OutcomePartial, "", r1.ReceiptHash)
	extended, err := chain.Append(r2)
	require.NoError(t, err)

	assert.Len(t, chain.Receipts, 1, "append must not mutate the receiver")
	assert.Len(t, extended.Receipts, 2)
	assert.True(t, extended.Verify())

	unlinked := issueReceipt(t, agent, receipt.OutcomeFailed, "", crypto.SHA256Hex("elsewhere"))
	_, err = extended.Append(unlinked)
	assert.Error(t, err)
}

func TestChain_VerifyRejectsTamperedReceipt(t *testing.T) {
	agent := newAgent(t)
	receipts := issueChain(t, agent, 3)
	chain := receipt.Chain{Receipts: receipts}
	require.True(t, chain.Verify())

	chain.Receipts[1].DurationMs = 9999
	assert.False(t, chain.Verify())
}
