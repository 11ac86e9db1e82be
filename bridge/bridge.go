package bridge

import (
	"math/big"
	"sync"

	"github.com/assistlabs/bridge-assist-go/common"
	"github.com/assistlabs/bridge-assist-go/state"
	"github.com/assistlabs/bridge-assist-go/token"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// kv keys of the mutable configuration
const (
	keyOwner           = "owner"
	keyRelayerRole     = "relayerRole"
	keyFeeWallet       = "feeWallet"
	keyFeeNumerator    = "feeNumerator"
	keyLimitPerSend    = "limitPerSend"
	keyNonce           = "nonce"
	keyContractBalance = "contractBalance"
)

// Bridge is the token-bridging ledger core. Every public entry point runs
// under one mutex, which gives each call the sequential-execution guarantee
// the ledger invariants assume. The only asynchronous boundary is the
// fulfillment disbursement, tracked through the inflight set until its
// reconcile continuation commits or rolls back.
type Bridge struct {
	mu      sync.Mutex
	statedb *state.StateDB
	token   token.Client

	tokenAccount   string
	costRegister   *big.Int
	costOnTransfer *big.Int
	costFulfill    *big.Int
	costAddChain   *big.Int

	inflight map[ethcommon.Hash]bool
}

// New wires the bridge over its ledger and token client. The mutable
// configuration is seeded from cfg on an empty ledger and left untouched
// on restarts.
func New(statedb *state.StateDB, tokenClient token.Client, cfg *Config) (*Bridge, error) {
	if cfg.FeeNumerator >= FeeDenominator {
		return nil, ErrFeeTooHigh
	}
	relayer, err := common.ParsePublicKey(cfg.RelayerRole)
	if err != nil {
		return nil, ErrRelayerRoleNotConvertible
	}
	if relayer.Curve != common.CurveEd25519 {
		return nil, ErrRelayerWrongCurve
	}

	b := &Bridge{
		statedb:        statedb,
		token:          tokenClient,
		tokenAccount:   cfg.Token,
		costRegister:   new(big.Int).Set(cfg.CostRegister),
		costOnTransfer: new(big.Int).Set(cfg.CostOnTransfer),
		costFulfill:    new(big.Int).Set(cfg.CostFulfill),
		costAddChain:   new(big.Int).Set(cfg.CostAddChain),
		inflight:       make(map[ethcommon.Hash]bool),
	}

	if err := b.seed(cfg, relayer.String()); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Bridge) seed(cfg *Config, relayer string) error {
	_, ok, err := b.statedb.GetValue(keyOwner)
	if err != nil {
		return err
	}
	if ok {
		// restart over an initialized ledger
		return nil
	}

	pairs := map[string]string{
		keyOwner:           cfg.Owner,
		keyRelayerRole:     relayer,
		keyFeeWallet:       cfg.FeeWallet,
		keyFeeNumerator:    new(big.Int).SetUint64(uint64(cfg.FeeNumerator)).Text(10),
		keyLimitPerSend:    common.BigIntToDecStr(cfg.LimitPerSend),
		keyNonce:           "0",
		keyContractBalance: "0",
	}
	for k, v := range pairs {
		if err := b.statedb.SetValue(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bridge) getString(key string) (string, error) {
	v, ok, err := b.statedb.GetValue(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", state.ErrorStoredRowInvalid
	}
	return v, nil
}

func (b *Bridge) getBigInt(key string) (*big.Int, error) {
	s, err := b.getString(key)
	if err != nil {
		return nil, err
	}
	v := common.DecStrToBigInt(s)
	if v == nil {
		return nil, state.ErrorStoredRowInvalid
	}
	return v, nil
}

func (b *Bridge) setBigInt(key string, v *big.Int) error {
	return b.statedb.SetValue(key, common.BigIntToDecStr(v))
}

func (b *Bridge) onlyOwner(call *Call) error {
	owner, err := b.getString(keyOwner)
	if err != nil {
		return err
	}
	if call.Caller != owner {
		return ErrOnlyOwner
	}
	return nil
}

// checkCharge applies the two-tier storage gate without mutating anything.
// Missing row or zero balance and a short balance are distinct failure
// states with distinct messages.
func (b *Bridge) checkCharge(account string, cost *big.Int) (*state.StorageAccount, error) {
	acc, ok, err := b.statedb.GetStorageAccount(account)
	if err != nil {
		return nil, err
	}
	if !ok || acc.Paid.Sign() == 0 {
		return nil, ErrNotStoragePaid
	}
	if acc.Paid.Cmp(cost) < 0 {
		return nil, ErrNotEnoughStoragePaid
	}
	return acc, nil
}

// applyCharge debits cost from a row previously vetted by checkCharge.
func (b *Bridge) applyCharge(acc *state.StorageAccount, cost *big.Int) error {
	acc.Paid = new(big.Int).Sub(acc.Paid, cost)
	return b.statedb.PutStorageAccount(acc)
}
