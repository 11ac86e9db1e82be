package bridge

import (
	"math/big"

	"github.com/assistlabs/bridge-assist-go/common"
	logger "github.com/sirupsen/logrus"
)

// TransferOwnership hands administration to a new account.
func (b *Bridge) TransferOwnership(call *Call, newOwner string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.onlyOwner(call); err != nil {
		return err
	}
	owner, err := b.getString(keyOwner)
	if err != nil {
		return err
	}
	if newOwner == owner {
		return ErrSameOwner
	}
	return b.statedb.SetValue(keyOwner, newOwner)
}

// SetFeeNumerator updates the fee rate in basis points.
func (b *Bridge) SetFeeNumerator(call *Call, feeNumerator uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.onlyOwner(call); err != nil {
		return err
	}
	current, err := b.feeNumerator()
	if err != nil {
		return err
	}
	if feeNumerator == current {
		return ErrSameFee
	}
	if feeNumerator >= FeeDenominator {
		return ErrFeeTooHigh
	}
	return b.statedb.SetValue(keyFeeNumerator,
		new(big.Int).SetUint64(uint64(feeNumerator)).Text(10))
}

// SetFeeWallet redirects the fee leg of future fulfillments.
func (b *Bridge) SetFeeWallet(call *Call, feeWallet string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.onlyOwner(call); err != nil {
		return err
	}
	current, err := b.getString(keyFeeWallet)
	if err != nil {
		return err
	}
	if feeWallet == current {
		return ErrSameFeeWallet
	}
	return b.statedb.SetValue(keyFeeWallet, feeWallet)
}

// SetLimitPerSend caps the amount of a single outbound transfer.
func (b *Bridge) SetLimitPerSend(call *Call, limit *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.onlyOwner(call); err != nil {
		return err
	}
	current, err := b.getBigInt(keyLimitPerSend)
	if err != nil {
		return err
	}
	if limit.Cmp(current) == 0 {
		return ErrSameLimit
	}
	return b.setBigInt(keyLimitPerSend, limit)
}

// SetRelayerRole replaces the attestation key. Only ed25519 keys in the
// "<curve>:<base58>" text encoding are accepted.
func (b *Bridge) SetRelayerRole(call *Call, relayer string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.onlyOwner(call); err != nil {
		return err
	}
	key, err := common.ParsePublicKey(relayer)
	if err != nil {
		return ErrRelayerNotConvertible
	}
	if key.Curve != common.CurveEd25519 {
		return ErrRelayerWrongCurve
	}
	current, err := b.getString(keyRelayerRole)
	if err != nil {
		return err
	}
	if key.String() == current {
		return ErrSameRelayer
	}
	return b.statedb.SetValue(keyRelayerRole, key.String())
}

// AddChain whitelists a destination/source chain. The attached deposit
// covers the registry's storage growth and is refunded on removal.
func (b *Bridge) AddChain(call *Call, chain string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.onlyOwner(call); err != nil {
		return err
	}
	ok, err := b.statedb.HasChain(chain)
	if err != nil {
		return err
	}
	if ok {
		return ErrChainAlreadyInList
	}
	if call.deposit().Cmp(b.costAddChain) < 0 {
		return ErrNotEnoughNearAttached
	}
	if err := b.statedb.AddChain(chain); err != nil {
		return err
	}
	return b.creditContractBalance(call.deposit())
}

// RemoveChain delists a chain and refunds the add-time deposit.
func (b *Bridge) RemoveChain(call *Call, chain string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.onlyOwner(call); err != nil {
		return err
	}
	ok, err := b.statedb.HasChain(chain)
	if err != nil {
		return err
	}
	if !ok {
		return ErrChainNotInList
	}
	if err := b.statedb.RemoveChain(chain); err != nil {
		return err
	}
	return b.debitContractBalance(b.costAddChain)
}

// Withdraw moves bridge-held tokens to the owner. The transfer itself is
// asynchronous; the returned channel resolves with its outcome.
func (b *Bridge) Withdraw(call *Call, amount *big.Int) (<-chan error, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := requireOneYocto(call); err != nil {
		return nil, err
	}
	if err := b.onlyOwner(call); err != nil {
		return nil, err
	}
	owner, err := b.getString(keyOwner)
	if err != nil {
		return nil, err
	}

	logger.Infof("Withdraw %s tokens from bridge to owner %s", amount, owner)
	return b.token.FtTransfer(owner, amount, "Withdraw from bridge"), nil
}

// WithdrawNativeFee withdraws native currency accrued as storage-rent
// profit. The balance left behind must still cover every user's
// outstanding paid balance.
func (b *Bridge) WithdrawNativeFee(call *Call, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := requireOneYocto(call); err != nil {
		return err
	}
	if err := b.onlyOwner(call); err != nil {
		return err
	}

	balance, err := b.getBigInt(keyContractBalance)
	if err != nil {
		return err
	}
	if amount.Cmp(balance) > 0 {
		return ErrOverContractBalance
	}
	totalPaid, err := b.statedb.TotalStoragePaid()
	if err != nil {
		return err
	}
	if new(big.Int).Sub(balance, amount).Cmp(totalPaid) < 0 {
		return ErrBelowTotalStoragePaid
	}

	return b.debitContractBalance(amount)
}
