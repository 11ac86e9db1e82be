package bridge

import (
	"math/big"

	"github.com/assistlabs/bridge-assist-go/common"
	"github.com/assistlabs/bridge-assist-go/state"
)

// FeeInfo is the fee routing configuration exposed to callers.
type FeeInfo struct {
	FeeWallet      string `json:"fee_wallet"`
	FeeNumerator   uint16 `json:"fee_numerator"`
	FeeDenominator uint16 `json:"fee_denominator"`
}

// StoragePaidInfo is the per-account storage-rent view: the row itself
// plus the fixed costs a caller needs to budget for.
type StoragePaidInfo struct {
	Registered       bool     `json:"is_registered"`
	Paid             *big.Int `json:"paid"`
	CostRegister     *big.Int `json:"cost_register"`
	CostOnTransfer   *big.Int `json:"cost_on_transfer"`
	CostFulfill      *big.Int `json:"cost_fulfill"`
	TotalStoragePaid *big.Int `json:"total_storage_paid"`
}

func (b *Bridge) Owner() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getString(keyOwner)
}

func (b *Bridge) RelayerRole() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getString(keyRelayerRole)
}

// Token returns the one fungible-token contract this bridge accepts.
func (b *Bridge) Token() string {
	return b.tokenAccount
}

func (b *Bridge) GetFeeInfo() (*FeeInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	wallet, err := b.getString(keyFeeWallet)
	if err != nil {
		return nil, err
	}
	numerator, err := b.feeNumerator()
	if err != nil {
		return nil, err
	}
	return &FeeInfo{
		FeeWallet:      wallet,
		FeeNumerator:   numerator,
		FeeDenominator: FeeDenominator,
	}, nil
}

func (b *Bridge) LimitPerSend() (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getBigInt(keyLimitPerSend)
}

// Nonce returns the next outbound sequence number.
func (b *Bridge) Nonce() (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getBigInt(keyNonce)
}

// ContractBalance returns the native currency the bridge holds.
func (b *Bridge) ContractBalance() (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getBigInt(keyContractBalance)
}

func (b *Bridge) GetStoragePaidInfo(account string) (*StoragePaidInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	info := &StoragePaidInfo{
		Paid:           new(big.Int),
		CostRegister:   new(big.Int).Set(b.costRegister),
		CostOnTransfer: new(big.Int).Set(b.costOnTransfer),
		CostFulfill:    new(big.Int).Set(b.costFulfill),
	}

	acc, ok, err := b.statedb.GetStorageAccount(account)
	if err != nil {
		return nil, err
	}
	if ok {
		info.Registered = acc.Registered
		info.Paid = acc.Paid
	}

	total, err := b.statedb.TotalStoragePaid()
	if err != nil {
		return nil, err
	}
	info.TotalStoragePaid = total

	return info, nil
}

// GetPayForAddChain returns the native deposit an AddChain call must attach.
func (b *Bridge) GetPayForAddChain() *big.Int {
	return new(big.Int).Set(b.costAddChain)
}

func (b *Bridge) IsAvailableChain(chain string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statedb.HasChain(chain)
}

func (b *Bridge) SupportedChainList() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statedb.ListChains()
}

func (b *Bridge) GetTransactionByUser(user string, index uint64) (*state.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statedb.GetTransactionByUser(user, index)
}

func (b *Bridge) GetTransactionsByUser(user string) ([]*state.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statedb.GetTransactionsByUser(user)
}

func (b *Bridge) GetTransactionsAmountByUser(user string) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statedb.CountTransactionsByUser(user)
}

// IsTxFulfilled looks up a hash in the fulfilled set. Accepts the hex
// digest with or without the 0x prefix.
func (b *Bridge) IsTxFulfilled(txHash string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statedb.HasFulfilled(common.HexStrToHash(txHash))
}
