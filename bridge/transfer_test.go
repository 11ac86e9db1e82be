package bridge

import (
	"math/big"
	"testing"

	"github.com/assistlabs/bridge-assist-go/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDest = "0x00112233445566778899aabbccddeeff00112233"

// fundedSender provisions a user with storage rent and a whitelisted chain.
func fundedSender(t *testing.T, env *simEnv) string {
	t.Helper()
	user := "alice.testnet"
	require.NoError(t, env.depositStorage(user, big.NewInt(5000)))
	require.NoError(t, env.addChain("ETH"))
	return user
}

func TestFtOnTransferSuccess(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()
	user := fundedSender(t, env)

	refund, err := env.bridge.FtOnTransfer(env.tokenCall(user), user, big.NewInt(777), testDest+"ETH")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), refund.Int64())

	// record appended under the sender with nonce 0
	tx, err := env.bridge.GetTransactionByUser(user, 0)
	assert.NoError(t, err)
	assert.Equal(t, user, tx.FromUser)
	assert.Equal(t, testDest, tx.ToUser)
	assert.Equal(t, int64(777), tx.Amount.Int64())
	assert.Equal(t, state.CurrentChain, tx.FromChain)
	assert.Equal(t, "ETH", tx.ToChain)
	assert.Equal(t, int64(0), tx.Nonce.Int64())

	// nonce advanced by exactly one and storage was charged
	nonce, err := env.bridge.Nonce()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), nonce.Int64())

	info, err := env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(4000-100), info.Paid.Int64())
}

func TestFtOnTransferNoncesNeverRepeat(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()
	user := fundedSender(t, env)

	for i := int64(0); i < 3; i++ {
		refund, err := env.bridge.FtOnTransfer(env.tokenCall(user), user, big.NewInt(10+i), testDest+"ETH")
		require.NoError(t, err)
		require.Equal(t, int64(0), refund.Int64())
	}

	seen := map[int64]bool{}
	txs, err := env.bridge.GetTransactionsByUser(user)
	assert.NoError(t, err)
	assert.Len(t, txs, 3)
	for i, tx := range txs {
		assert.Equal(t, int64(i), tx.Nonce.Int64())
		assert.False(t, seen[tx.Nonce.Int64()])
		seen[tx.Nonce.Int64()] = true
	}
}

func TestFtOnTransferGuards(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()
	user := fundedSender(t, env)
	amount := big.NewInt(100)

	cases := []struct {
		name string
		call *Call
		msg  string
		want error
	}{
		{
			name: "wrong token contract",
			call: &Call{Caller: "other-token.testnet", Signer: user},
			msg:  testDest + "ETH",
			want: ErrNotSupportedToken,
		},
		{
			name: "direct call by the token account",
			call: &Call{Caller: env.tokenAcc, Signer: env.tokenAcc},
			msg:  testDest + "ETH",
			want: ErrOnlyCrossContractCall,
		},
		{
			name: "sender is not the signer",
			call: &Call{Caller: env.tokenAcc, Signer: "mallory.testnet"},
			msg:  testDest + "ETH",
			want: ErrSenderNotSigner,
		},
		{
			name: "message too short",
			call: env.tokenCall(user),
			msg:  testDest,
			want: ErrBadTransferMsg,
		},
		{
			name: "message address not hex",
			call: env.tokenCall(user),
			msg:  "0xzz112233445566778899aabbccddeeff00112233ETH",
			want: ErrBadTransferMsg,
		},
		{
			name: "chain not whitelisted",
			call: env.tokenCall(user),
			msg:  testDest + "SOLANA",
			want: ErrChainNotSupported,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			refund, err := env.bridge.FtOnTransfer(tc.call, user, amount, tc.msg)
			assert.ErrorIs(t, err, tc.want)
			// full refund, no consumption
			assert.Equal(t, amount.Int64(), refund.Int64())
		})
	}

	// none of the rejected calls advanced the nonce or recorded anything
	nonce, err := env.bridge.Nonce()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), nonce.Int64())

	n, err := env.bridge.GetTransactionsAmountByUser(user)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), n)
}

func TestFtOnTransferAmountChecks(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()
	user := fundedSender(t, env)

	refund, err := env.bridge.FtOnTransfer(env.tokenCall(user), user, new(big.Int), testDest+"ETH")
	assert.ErrorIs(t, err, ErrZeroAmount)
	assert.Equal(t, int64(0), refund.Int64())

	over := big.NewInt(1_000_001)
	refund, err = env.bridge.FtOnTransfer(env.tokenCall(user), user, over, testDest+"ETH")
	assert.ErrorIs(t, err, ErrOverLimitPerSend)
	assert.Equal(t, over, refund)

	// storage untouched by the rejections
	info, err := env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(4000), info.Paid.Int64())
}

func TestFtOnTransferStorageGate(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()
	require.NoError(t, env.addChain("ETH"))

	refund, err := env.bridge.FtOnTransfer(env.tokenCall("poor.testnet"), "poor.testnet",
		big.NewInt(5), testDest+"ETH")
	assert.ErrorIs(t, err, ErrNotStoragePaid)
	assert.Equal(t, int64(5), refund.Int64())
}

func TestParseTransferMessageAcceptsBareHex(t *testing.T) {
	addr, chain, err := parseTransferMessage("00112233445566778899AABBccddeeff00112233ETH")
	assert.NoError(t, err)
	assert.Equal(t, testDest, addr)
	assert.Equal(t, "ETH", chain)
}
