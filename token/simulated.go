package token

import (
	"errors"
	"math/big"
	"sync"
)

var (
	ErrReceiverNotRegistered = errors.New("receiver is not registered on token contract")
	ErrInsufficientBalance   = errors.New("sender bridge balance is insufficient")
	ErrTransferRejected      = errors.New("transfer rejected by token contract")
)

// SimulatedToken is an in-memory NEP-141 style token used by tests and the
// demo server. Transfers from the bridge succeed only when the receiver
// has a token-side storage deposit, which is exactly the failure mode the
// fulfillment rollback path has to survive.
type SimulatedToken struct {
	mu sync.Mutex

	balances map[string]*big.Int
	storage  map[string]*StorageBalance
	bridge   *big.Int // tokens held by the bridge account

	failTo map[string]bool // receivers whose transfers are forced to fail
}

func NewSimulatedToken(bridgeBalance *big.Int) *SimulatedToken {
	return &SimulatedToken{
		balances: make(map[string]*big.Int),
		storage:  make(map[string]*StorageBalance),
		bridge:   new(big.Int).Set(bridgeBalance),
		failTo:   make(map[string]bool),
	}
}

// RegisterAccount simulates a storage_deposit on the token contract.
func (s *SimulatedToken) RegisterAccount(account string, deposit *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage[account] = &StorageBalance{
		Total:     new(big.Int).Set(deposit),
		Available: new(big.Int),
	}
}

// FailTransfersTo makes every FtTransfer to receiver resolve with an error.
func (s *SimulatedToken) FailTransfersTo(receiver string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failTo[receiver] = true
}

// BalanceOf reads the credited balance of account.
func (s *SimulatedToken) BalanceOf(account string) *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[account]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(b)
}

// BridgeBalance reads the tokens still held by the bridge.
func (s *SimulatedToken) BridgeBalance() *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(big.Int).Set(s.bridge)
}

func (s *SimulatedToken) FtTransfer(receiver string, amount *big.Int, memo string) <-chan error {
	ch := make(chan error, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failTo[receiver] {
		ch <- ErrTransferRejected
		return ch
	}
	if _, ok := s.storage[receiver]; !ok {
		ch <- ErrReceiverNotRegistered
		return ch
	}
	if s.bridge.Cmp(amount) < 0 {
		ch <- ErrInsufficientBalance
		return ch
	}

	s.bridge.Sub(s.bridge, amount)
	b, ok := s.balances[receiver]
	if !ok {
		b = new(big.Int)
		s.balances[receiver] = b
	}
	b.Add(b, amount)

	ch <- nil
	return ch
}

func (s *SimulatedToken) StorageBalanceOf(account string) <-chan StorageBalanceResult {
	ch := make(chan StorageBalanceResult, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	sb, ok := s.storage[account]
	if !ok {
		ch <- StorageBalanceResult{}
		return ch
	}
	ch <- StorageBalanceResult{Balance: &StorageBalance{
		Total:     new(big.Int).Set(sb.Total),
		Available: new(big.Int).Set(sb.Available),
	}}
	return ch
}
