package bridge

import (
	"math/big"

	"github.com/assistlabs/bridge-assist-go/state"
	logger "github.com/sirupsen/logrus"
)

// StorageDeposit credits the caller's prepaid rent. The first deposit must
// cover the registration cost; only the excess above it is spendable.
// Later deposits are credited in full.
func (b *Bridge) StorageDeposit(call *Call) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	attached := call.deposit()

	acc, ok, err := b.statedb.GetStorageAccount(call.Caller)
	if err != nil {
		return err
	}

	if !ok {
		if attached.Cmp(b.costRegister) < 0 {
			return ErrNotEnoughNearAttached
		}
		acc = &state.StorageAccount{
			Account:    call.Caller,
			Paid:       new(big.Int).Sub(attached, b.costRegister),
			TotalPaid:  new(big.Int).Set(attached),
			Registered: true,
		}
	} else {
		acc.Paid = new(big.Int).Add(acc.Paid, attached)
		acc.TotalPaid = new(big.Int).Add(acc.TotalPaid, attached)
	}

	if err := b.statedb.PutStorageAccount(acc); err != nil {
		return err
	}
	if err := b.creditContractBalance(attached); err != nil {
		return err
	}

	logger.WithField("account", call.Caller).
		Debugf("storage deposit of %s yocto, paid balance now %s", attached, acc.Paid)
	return nil
}

// StorageWithdraw returns amount of the caller's unspent rent balance.
func (b *Bridge) StorageWithdraw(call *Call, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok, err := b.statedb.GetStorageAccount(call.Caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoStoragePaid
	}
	if amount.Cmp(acc.Paid) > 0 {
		return ErrWithdrawOverPaid
	}

	acc.Paid = new(big.Int).Sub(acc.Paid, amount)
	if err := b.statedb.PutStorageAccount(acc); err != nil {
		return err
	}
	if err := b.debitContractBalance(amount); err != nil {
		return err
	}

	logger.WithField("account", call.Caller).
		Debugf("storage withdraw of %s yocto, paid balance now %s", amount, acc.Paid)
	return nil
}

func (b *Bridge) creditContractBalance(amount *big.Int) error {
	bal, err := b.getBigInt(keyContractBalance)
	if err != nil {
		return err
	}
	return b.setBigInt(keyContractBalance, new(big.Int).Add(bal, amount))
}

func (b *Bridge) debitContractBalance(amount *big.Int) error {
	bal, err := b.getBigInt(keyContractBalance)
	if err != nil {
		return err
	}
	return b.setBigInt(keyContractBalance, new(big.Int).Sub(bal, amount))
}
