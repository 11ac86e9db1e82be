package bridge

import (
	"crypto/ed25519"
	"errors"
	"math/big"

	"github.com/assistlabs/bridge-assist-go/common"
	"github.com/assistlabs/bridge-assist-go/state"
	ethcommon "github.com/ethereum/go-ethereum/common"
	logger "github.com/sirupsen/logrus"
)

const feeWalletStorageMsg = "fee wallet didn't storage deposit to token " +
	"(you can call storage_deposit function on token contract for fee_wallet)"

// ErrFeeWalletNotRegistered aborts a fulfillment whose fee leg would hit an
// unregistered fee wallet; the same wording is logged for the operator.
var ErrFeeWalletNotRegistered = errors.New(feeWalletStorageMsg)

// FulfillOutcome resolves one fulfillment's reconcile phase. Committed is
// true once the payee transfer settled and the ledger recorded the
// transaction; otherwise every provisional mutation has been rolled back
// and the same signed payload can be retried.
type FulfillOutcome struct {
	Committed bool
	Err       error
}

// Fulfill pays out an inbound transfer attested by the relayer. Validation
// and the storage reserve happen synchronously; the token disbursement is
// asynchronous and the returned channel resolves exactly once when the
// reconcile continuation has committed or compensated.
func (b *Bridge) Fulfill(call *Call, tx *state.Transaction, signature []byte) (<-chan FulfillOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := requireOneYocto(call); err != nil {
		return nil, err
	}
	// the handler suspends across a cross-contract call downstream and
	// cannot fail mid-flight for lack of gas
	if call.PrepaidGas < GasForFulfill {
		return nil, ErrNotEnoughGas
	}
	// the record is hashed below; amount and nonce wider than the wire
	// u128 must be rejected here, before any encoding
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if !common.IsValidAccountID(tx.ToUser) {
		return nil, ErrToUserNotAccountID
	}
	if tx.ToChain != state.CurrentChain {
		return nil, ErrWrongToChain
	}
	supported, err := b.statedb.HasChain(tx.FromChain)
	if err != nil {
		return nil, err
	}
	if !supported {
		return nil, ErrBadFromChain
	}

	// storage gate is charged against the payee, not the caller
	acc, err := b.checkCharge(tx.ToUser, b.costFulfill)
	if err != nil {
		return nil, err
	}

	txHash := state.TxHash(tx)
	fulfilled, err := b.statedb.HasFulfilled(txHash)
	if err != nil {
		return nil, err
	}
	if fulfilled {
		return nil, ErrAlreadyFulfilled
	}
	if b.inflight[txHash] {
		return nil, ErrFulfillInProgress
	}

	if len(signature) != ed25519.SignatureSize {
		return nil, ErrBadSignatureLength
	}
	relayerStr, err := b.getString(keyRelayerRole)
	if err != nil {
		return nil, err
	}
	relayer, err := common.ParsePublicKey(relayerStr)
	if err != nil {
		return nil, ErrRelayerRoleNotConvertible
	}
	if !ed25519.Verify(relayer.Ed25519(), txHash.Bytes(), signature) {
		return nil, ErrWrongSignature
	}
	logger.Debug("Signature has been verified")

	// reserve phase: provisional storage debit, hash marked in flight.
	// Nothing is externally committed until the reconcile continuation
	// runs; a concurrent fulfill of the same hash is rejected above.
	if err := b.applyCharge(acc, b.costFulfill); err != nil {
		return nil, err
	}
	b.inflight[txHash] = true

	feeNumerator, err := b.feeNumerator()
	if err != nil {
		b.rollback(txHash, tx.ToUser)
		return nil, err
	}
	fee := ComputeFee(tx.Amount, feeNumerator)

	outcomeCh := make(chan FulfillOutcome, 1)
	go b.resolveFulfill(tx, txHash, fee, outcomeCh)

	return outcomeCh, nil
}

// resolveFulfill is the reconcile continuation: fee wallet preflight,
// payee leg, then commit plus fee leg, compensating on failure.
func (b *Bridge) resolveFulfill(tx *state.Transaction, txHash ethcommon.Hash, fee *big.Int, outcomeCh chan<- FulfillOutcome) {
	feeWallet, err := b.feeWalletSafe()
	if err != nil {
		b.rollbackLocked(txHash, tx.ToUser)
		outcomeCh <- FulfillOutcome{Err: err}
		return
	}

	// the fee leg only works if the fee wallet registered storage on the
	// token contract; check upfront so a doomed fee leg never follows a
	// committed payee leg
	if fee.Sign() != 0 {
		res := <-b.token.StorageBalanceOf(feeWallet)
		if res.Err != nil || res.Balance == nil || res.Balance.Total.Cmp(MinTokenStorageDeposit) < 0 {
			logger.Warn(feeWalletStorageMsg)
			b.rollbackLocked(txHash, tx.ToUser)
			outcomeCh <- FulfillOutcome{Err: ErrFeeWalletNotRegistered}
			return
		}
	}

	dispense := new(big.Int).Sub(tx.Amount, fee)
	logger.Infof("Dispense %s tokens from %s to %s in direction %s->%s",
		dispense, tx.FromUser, tx.ToUser, tx.FromChain, state.CurrentChain)

	if err := <-b.token.FtTransfer(tx.ToUser, dispense, "Dispensing from bridge"); err != nil {
		logger.Warnf("ft_transfer promise failed (maybe you should call storage_deposit "+
			"function on token contract for to_user in tx struct): %v", err)
		b.rollbackLocked(txHash, tx.ToUser)
		outcomeCh <- FulfillOutcome{Err: err}
		return
	}

	if err := b.commit(tx, txHash); err != nil {
		// ledger write failed after the payee leg settled; the hash stays
		// in flight so the operator can intervene
		logger.Errorf("commit of fulfilled tx %s failed, hash stays in flight: %v", txHash, err)
		outcomeCh <- FulfillOutcome{Err: err}
		return
	}

	// fee leg failure after a settled payee leg is forfeited, not rolled
	// back; the payout itself already stands
	if fee.Sign() != 0 {
		if err := <-b.token.FtTransfer(feeWallet, fee, "Transferring fee"); err != nil {
			logger.Warnf("fee transfer to %s failed, fee of %s forfeited: %v", feeWallet, fee, err)
		}
	}

	outcomeCh <- FulfillOutcome{Committed: true}
}

// commit finalizes a fulfilled transaction: the hash becomes permanent,
// the record is appended under the foreign counterparty, the provisional
// storage debit stands.
func (b *Bridge) commit(tx *state.Transaction, txHash ethcommon.Hash) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.statedb.InsertFulfilled(txHash); err != nil {
		return err
	}
	if err := b.statedb.AppendTransaction(tx.FromUser, tx); err != nil {
		return err
	}
	delete(b.inflight, txHash)
	return nil
}

func (b *Bridge) rollbackLocked(txHash ethcommon.Hash, toUser string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollback(txHash, toUser)
}

// rollback compensates the reserve phase: storage refunded, hash released.
// Must run with b.mu held.
func (b *Bridge) rollback(txHash ethcommon.Hash, toUser string) {
	delete(b.inflight, txHash)

	acc, ok, err := b.statedb.GetStorageAccount(toUser)
	if err != nil || !ok {
		logger.Errorf("failed to refund storage charge for %s: err=%v", toUser, err)
		return
	}
	acc.Paid = new(big.Int).Add(acc.Paid, b.costFulfill)
	if err := b.statedb.PutStorageAccount(acc); err != nil {
		logger.Errorf("failed to refund storage charge for %s: err=%v", toUser, err)
	}
}

func (b *Bridge) feeNumerator() (uint16, error) {
	v, err := b.getBigInt(keyFeeNumerator)
	if err != nil {
		return 0, err
	}
	return uint16(v.Uint64()), nil
}

func (b *Bridge) feeWalletSafe() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getString(keyFeeWallet)
}
