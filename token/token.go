// Package token models the fungible-token contract the bridge disburses
// through. Calls are asynchronous: each returns a channel that resolves
// with the outcome once the downstream call settles, mirroring a
// cross-contract promise.
package token

import (
	"math/big"
)

// StorageBalance is the token-side storage deposit of one account.
type StorageBalance struct {
	Total     *big.Int `json:"total"`
	Available *big.Int `json:"available"`
}

// StorageBalanceResult resolves a StorageBalanceOf call. Balance is nil
// when the account never deposited storage on the token contract.
type StorageBalanceResult struct {
	Balance *StorageBalance
	Err     error
}

// Client is the transfer surface of the token contract the bridge consumes.
// Implementations must never block the caller; outcomes arrive on the
// returned channel exactly once.
type Client interface {
	// FtTransfer moves amount to receiver with a human-readable memo.
	// The resolved error is nil on success.
	FtTransfer(receiver string, amount *big.Int, memo string) <-chan error

	// StorageBalanceOf looks up the token-side storage balance of account.
	StorageBalanceOf(account string) <-chan StorageBalanceResult
}
