package bridge

import (
	"crypto/ed25519"
	"math/big"
	"testing"
	"time"

	"github.com/assistlabs/bridge-assist-go/common"
	"github.com/assistlabs/bridge-assist-go/state"
	"github.com/assistlabs/bridge-assist-go/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fundedPayee provisions the payee's rent balance, token-side registration
// and the source chain whitelist entry.
func fundedPayee(t *testing.T, env *simEnv) string {
	t.Helper()
	user := "alice.testnet"
	require.NoError(t, env.depositStorage(user, big.NewInt(5000)))
	require.NoError(t, env.addChain("ETH"))
	env.token.RegisterAccount(user, MinTokenStorageDeposit)
	return user
}

func waitOutcome(t *testing.T, ch <-chan FulfillOutcome) FulfillOutcome {
	t.Helper()
	select {
	case out := <-ch:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("fulfill outcome never resolved")
		return FulfillOutcome{}
	}
}

func TestFulfillSuccessWithFee(t *testing.T) {
	env, err := newSimEnv(800) // 8%
	require.NoError(t, err)
	defer env.close()
	user := fundedPayee(t, env)

	tx, sig := env.inboundTx(user, 10000, 0)
	ch, err := env.bridge.Fulfill(env.fulfillCall(user), tx, sig)
	require.NoError(t, err)

	out := waitOutcome(t, ch)
	assert.True(t, out.Committed)
	assert.NoError(t, out.Err)

	// payee credit A - floor(A*800/10000), fee wallet credit the fee
	assert.Equal(t, int64(9200), env.token.BalanceOf(user).Int64())
	assert.Equal(t, int64(800), env.token.BalanceOf(env.feeWallet).Int64())

	// hash is permanent, record keyed by the foreign counterparty
	fulfilled, err := env.bridge.IsTxFulfilled(state.TxHash(tx).String())
	assert.NoError(t, err)
	assert.True(t, fulfilled)

	got, err := env.bridge.GetTransactionByUser(tx.FromUser, 0)
	assert.NoError(t, err)
	assert.Equal(t, tx, got)

	// the storage debit stands
	info, err := env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(4000-200), info.Paid.Int64())
}

func TestFulfillZeroFeeSkipsFeeLeg(t *testing.T) {
	env, err := newSimEnv(0)
	require.NoError(t, err)
	defer env.close()
	user := fundedPayee(t, env)

	tx, sig := env.inboundTx(user, 500, 0)
	ch, err := env.bridge.Fulfill(env.fulfillCall(user), tx, sig)
	require.NoError(t, err)

	out := waitOutcome(t, ch)
	assert.True(t, out.Committed)

	assert.Equal(t, int64(500), env.token.BalanceOf(user).Int64())
	assert.Equal(t, int64(0), env.token.BalanceOf(env.feeWallet).Int64())
}

func TestFulfillReplayRejected(t *testing.T) {
	env, err := newSimEnv(800)
	require.NoError(t, err)
	defer env.close()
	user := fundedPayee(t, env)

	tx, sig := env.inboundTx(user, 1000, 0)
	ch, err := env.bridge.Fulfill(env.fulfillCall(user), tx, sig)
	require.NoError(t, err)
	require.True(t, waitOutcome(t, ch).Committed)

	// identical signed payload a second time, signature still valid
	_, err = env.bridge.Fulfill(env.fulfillCall(user), tx, sig)
	assert.ErrorIs(t, err, ErrAlreadyFulfilled)

	// paid out exactly once
	assert.Equal(t, int64(920), env.token.BalanceOf(user).Int64())
	n, err := env.bridge.GetTransactionsAmountByUser(tx.FromUser)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestFulfillForgedSignature(t *testing.T) {
	env, err := newSimEnv(800)
	require.NoError(t, err)
	defer env.close()
	user := fundedPayee(t, env)

	tx, sig := env.inboundTx(user, 1000, 0)

	// flip one signature byte: otherwise perfectly valid transaction
	forged := append([]byte{}, sig...)
	forged[0] ^= 0xff
	_, err = env.bridge.Fulfill(env.fulfillCall(user), tx, forged)
	assert.ErrorIs(t, err, ErrWrongSignature)

	// wrong length is its own failure
	_, err = env.bridge.Fulfill(env.fulfillCall(user), tx, sig[:63])
	assert.ErrorIs(t, err, ErrBadSignatureLength)

	// authorization failed before any side effect
	assert.Equal(t, int64(0), env.token.BalanceOf(user).Int64())
	info, err := env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(4000), info.Paid.Int64())
	fulfilled, err := env.bridge.IsTxFulfilled(state.TxHash(tx).String())
	assert.NoError(t, err)
	assert.False(t, fulfilled)
}

func TestFulfillValidationOrder(t *testing.T) {
	env, err := newSimEnv(800)
	require.NoError(t, err)
	defer env.close()
	user := fundedPayee(t, env)
	tx, sig := env.inboundTx(user, 1000, 0)

	// no yocto attached
	call := env.fulfillCall(user)
	call.Deposit = nil
	_, err = env.bridge.Fulfill(call, tx, sig)
	assert.ErrorIs(t, err, ErrOneYoctoMissing)

	// gas below the floor
	call = env.fulfillCall(user)
	call.PrepaidGas = GasForFulfill - 1
	_, err = env.bridge.Fulfill(call, tx, sig)
	assert.ErrorIs(t, err, ErrNotEnoughGas)

	// to_user is not an account id
	bad, badSig := env.inboundTx("NOT-an-account!!", 1000, 1)
	_, err = env.bridge.Fulfill(env.fulfillCall(user), bad, badSig)
	assert.ErrorIs(t, err, ErrToUserNotAccountID)

	// wrong toChain
	bad, _ = env.inboundTx(user, 1000, 2)
	bad.ToChain = "ETH"
	_, err = env.bridge.Fulfill(env.fulfillCall(user), bad, env.signer.Sign(bad))
	assert.ErrorIs(t, err, ErrWrongToChain)

	// fromChain not whitelisted
	bad, _ = env.inboundTx(user, 1000, 3)
	bad.FromChain = "SOLANA"
	_, err = env.bridge.Fulfill(env.fulfillCall(user), bad, env.signer.Sign(bad))
	assert.ErrorIs(t, err, ErrBadFromChain)

	// payee without storage rent
	noRent, noRentSig := env.inboundTx("bob.testnet", 1000, 4)
	_, err = env.bridge.Fulfill(env.fulfillCall(user), noRent, noRentSig)
	assert.ErrorIs(t, err, ErrNotStoragePaid)
}

func TestFulfillPayeeLegFailureRollsBackAndRetries(t *testing.T) {
	env, err := newSimEnv(800)
	require.NoError(t, err)
	defer env.close()

	// payee has rent but never registered on the token contract
	user := "alice.testnet"
	require.NoError(t, env.depositStorage(user, big.NewInt(5000)))
	require.NoError(t, env.addChain("ETH"))

	tx, sig := env.inboundTx(user, 1000, 0)
	ch, err := env.bridge.Fulfill(env.fulfillCall(user), tx, sig)
	require.NoError(t, err)

	out := waitOutcome(t, ch)
	assert.False(t, out.Committed)
	assert.Error(t, out.Err)

	// no partial mutation observable: storage refunded, nothing recorded,
	// hash still unfulfilled
	info, err := env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(4000), info.Paid.Int64())

	n, err := env.bridge.GetTransactionsAmountByUser(tx.FromUser)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	fulfilled, err := env.bridge.IsTxFulfilled(state.TxHash(tx).String())
	assert.NoError(t, err)
	assert.False(t, fulfilled)

	// fix the cause, retry the identical signed payload
	env.token.RegisterAccount(user, MinTokenStorageDeposit)
	ch, err = env.bridge.Fulfill(env.fulfillCall(user), tx, sig)
	require.NoError(t, err)
	assert.True(t, waitOutcome(t, ch).Committed)
	assert.Equal(t, int64(920), env.token.BalanceOf(user).Int64())
}

func TestFulfillFeeWalletWithoutTokenStorage(t *testing.T) {
	env, err := newSimEnv(800)
	require.NoError(t, err)
	defer env.close()
	user := fundedPayee(t, env)

	// drop the fee wallet's token registration below the floor
	env.token.RegisterAccount(env.feeWallet, big.NewInt(1))

	tx, sig := env.inboundTx(user, 1000, 0)
	ch, err := env.bridge.Fulfill(env.fulfillCall(user), tx, sig)
	require.NoError(t, err)

	out := waitOutcome(t, ch)
	assert.False(t, out.Committed)
	assert.ErrorIs(t, out.Err, ErrFeeWalletNotRegistered)

	// rolled back before the payee leg ever ran
	assert.Equal(t, int64(0), env.token.BalanceOf(user).Int64())
	info, err := env.bridge.GetStoragePaidInfo(user)
	assert.NoError(t, err)
	assert.Equal(t, int64(4000), info.Paid.Int64())
}

func TestFulfillRejectsOversizedAmountAndNonce(t *testing.T) {
	env, err := newSimEnv(800)
	require.NoError(t, err)
	defer env.close()

	user := "alice.testnet"
	junk := make([]byte, ed25519.SignatureSize)

	// amount wider than the wire u128 must fail cleanly before hashing,
	// regardless of the signature
	tx := &state.Transaction{
		FromUser:  common.RandEthAddressStr(),
		ToUser:    user,
		Amount:    new(big.Int).Lsh(big.NewInt(1), 130),
		Timestamp: 1700000000,
		FromChain: "ETH",
		ToChain:   state.CurrentChain,
		Nonce:     big.NewInt(0),
	}
	_, err = env.bridge.Fulfill(env.fulfillCall(user), tx, junk)
	assert.ErrorIs(t, err, state.ErrorAmountInvalid)

	tx.Amount = big.NewInt(1000)
	tx.Nonce = new(big.Int).Lsh(big.NewInt(1), 129)
	_, err = env.bridge.Fulfill(env.fulfillCall(user), tx, junk)
	assert.ErrorIs(t, err, state.ErrorNonceInvalid)

	// the widest representable values pass validation
	tx.Amount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	tx.Nonce = big.NewInt(0)
	_, err = env.bridge.Fulfill(env.fulfillCall(user), tx, junk)
	assert.NotErrorIs(t, err, state.ErrorAmountInvalid)
}

// gatedToken parks every transfer until the gate is closed, holding a
// fulfillment in its disbursement window.
type gatedToken struct {
	*token.SimulatedToken
	gate chan struct{}
}

func (g *gatedToken) FtTransfer(receiver string, amount *big.Int, memo string) <-chan error {
	ch := make(chan error, 1)
	go func() {
		<-g.gate
		ch <- <-g.SimulatedToken.FtTransfer(receiver, amount, memo)
	}()
	return ch
}

func TestFulfillDuplicateWhileInFlight(t *testing.T) {
	env, err := newSimEnv(800)
	require.NoError(t, err)
	defer env.close()
	user := fundedPayee(t, env)

	gated := &gatedToken{SimulatedToken: env.token, gate: make(chan struct{})}
	b, err := New(env.statedb, gated, env.cfg)
	require.NoError(t, err)

	tx, sig := env.inboundTx(user, 1000, 0)
	ch, err := b.Fulfill(env.fulfillCall(user), tx, sig)
	require.NoError(t, err)

	// the disbursement is parked behind the gate; the same signed payload
	// is rejected while the first attempt is still in flight
	_, err = b.Fulfill(env.fulfillCall(user), tx, sig)
	assert.ErrorIs(t, err, ErrFulfillInProgress)

	close(gated.gate)
	out := waitOutcome(t, ch)
	assert.True(t, out.Committed)

	// once committed the duplicate is a replay, not an in-flight clash
	_, err = b.Fulfill(env.fulfillCall(user), tx, sig)
	assert.ErrorIs(t, err, ErrAlreadyFulfilled)
}

func TestFulfillFeeLegFailureIsForfeited(t *testing.T) {
	env, err := newSimEnv(800)
	require.NoError(t, err)
	defer env.close()
	user := fundedPayee(t, env)

	// the fee wallet passes the storage preflight but its transfer fails
	env.token.FailTransfersTo(env.feeWallet)

	tx, sig := env.inboundTx(user, 1000, 0)
	ch, err := env.bridge.Fulfill(env.fulfillCall(user), tx, sig)
	require.NoError(t, err)

	out := waitOutcome(t, ch)
	assert.True(t, out.Committed)

	// payee leg stands, fee forfeited
	assert.Equal(t, int64(920), env.token.BalanceOf(user).Int64())
	fulfilled, err := env.bridge.IsTxFulfilled(state.TxHash(tx).String())
	assert.NoError(t, err)
	assert.True(t, fulfilled)
}
