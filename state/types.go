package state

import (
	"errors"
	"math/big"
)

// Native chain identifier, the fixed side of every transaction this
// bridge records.
const CurrentChain = "NEAR"

var (
	ErrorAmountInvalid    = errors.New("amount invalid")
	ErrorNonceInvalid     = errors.New("nonce invalid")
	ErrorFromUserEmpty    = errors.New("from user is empty")
	ErrorToUserEmpty      = errors.New("to user is empty")
	ErrorFromChainEmpty   = errors.New("from chain is empty")
	ErrorToChainEmpty     = errors.New("to chain is empty")
	ErrorIndexOutOfRange  = errors.New("Index out of range")
	ErrorStoredRowInvalid = errors.New("stored transaction row is invalid")
)

// Transaction is one bridging record. Outbound records carry
// FromChain == CurrentChain, inbound (fulfilled) records carry
// ToChain == CurrentChain. Records are append-only, keyed by the user on
// the foreign side of the ledger sequence they live in.
type Transaction struct {
	FromUser  string   `json:"from_user"`
	ToUser    string   `json:"to_user"`
	Amount    *big.Int `json:"amount"`
	Timestamp uint64   `json:"timestamp"`
	FromChain string   `json:"from_chain"`
	ToChain   string   `json:"to_chain"`
	Nonce     *big.Int `json:"nonce"`
}

// Validate rejects records the ledger and the wire encoding cannot hold.
// Amount and nonce must fit the u128 the canonical encoding reserves for
// them; callers rely on this running before any hashing.
func (tx *Transaction) Validate() error {
	if tx.FromUser == "" {
		return ErrorFromUserEmpty
	}
	if tx.ToUser == "" {
		return ErrorToUserEmpty
	}
	if tx.Amount == nil || tx.Amount.Sign() < 0 || tx.Amount.BitLen() > 128 {
		return ErrorAmountInvalid
	}
	if tx.FromChain == "" {
		return ErrorFromChainEmpty
	}
	if tx.ToChain == "" {
		return ErrorToChainEmpty
	}
	if tx.Nonce == nil || tx.Nonce.Sign() < 0 || tx.Nonce.BitLen() > 128 {
		return ErrorNonceInvalid
	}
	return nil
}

// StorageAccount is the prepaid-rent row of one account. Paid is the
// spendable balance, TotalPaid the lifetime gross deposits. Registered
// never flips back to false once set.
type StorageAccount struct {
	Account    string   `json:"account"`
	Paid       *big.Int `json:"paid"`
	TotalPaid  *big.Int `json:"total_paid"`
	Registered bool     `json:"is_registered"`
}
