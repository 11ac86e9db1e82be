package bridge

import (
	"database/sql"
	"math/big"

	"github.com/assistlabs/bridge-assist-go/common"
	"github.com/assistlabs/bridge-assist-go/relayer"
	"github.com/assistlabs/bridge-assist-go/state"
	"github.com/assistlabs/bridge-assist-go/token"
	_ "github.com/mattn/go-sqlite3"
)

// Test fixture costs, deliberately small round numbers so balance
// arithmetic in assertions stays readable.
var (
	simCostRegister   = big.NewInt(1000)
	simCostOnTransfer = big.NewInt(100)
	simCostFulfill    = big.NewInt(200)
	simCostAddChain   = big.NewInt(500)
)

// simEnv bundles a bridge over an in-memory ledger with its simulated
// token and relayer signer.
type simEnv struct {
	bridge  *Bridge
	statedb *state.StateDB
	token   *token.SimulatedToken
	signer  *relayer.Signer
	cfg     *Config

	owner     string
	feeWallet string
	tokenAcc  string
}

func newSimEnv(feeNumerator uint16) (*simEnv, error) {
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	statedb, err := state.NewStateDB(sqlDB)
	if err != nil {
		return nil, err
	}

	signer, err := relayer.GenSigner()
	if err != nil {
		return nil, err
	}

	env := &simEnv{
		statedb:   statedb,
		signer:    signer,
		owner:     "owner.testnet",
		feeWallet: "fee.testnet",
		tokenAcc:  "token.testnet",
	}

	env.token = token.NewSimulatedToken(big.NewInt(1_000_000_000))
	env.token.RegisterAccount(env.feeWallet, MinTokenStorageDeposit)

	env.cfg = &Config{
		Owner:          env.owner,
		RelayerRole:    signer.PublicKey(),
		Token:          env.tokenAcc,
		FeeWallet:      env.feeWallet,
		LimitPerSend:   big.NewInt(1_000_000),
		FeeNumerator:   feeNumerator,
		CostRegister:   simCostRegister,
		CostOnTransfer: simCostOnTransfer,
		CostFulfill:    simCostFulfill,
		CostAddChain:   simCostAddChain,
	}
	env.bridge, err = New(statedb, env.token, env.cfg)
	if err != nil {
		return nil, err
	}

	return env, nil
}

// ownerCall builds an owner call with a one-yocto deposit.
func (env *simEnv) ownerCall() *Call {
	return &Call{Caller: env.owner, Signer: env.owner, Deposit: big.NewInt(1), Timestamp: 1700000000}
}

func (env *simEnv) callFrom(account string, deposit *big.Int) *Call {
	return &Call{Caller: account, Signer: account, Deposit: deposit, Timestamp: 1700000000}
}

// tokenCall is a cross-contract notification from the token contract
// signed by user, the shape FtOnTransfer expects.
func (env *simEnv) tokenCall(user string) *Call {
	return &Call{Caller: env.tokenAcc, Signer: user, Timestamp: 1700000000}
}

// fulfillCall attaches one yocto and enough gas.
func (env *simEnv) fulfillCall(caller string) *Call {
	return &Call{
		Caller: caller, Signer: caller,
		Deposit: big.NewInt(1), PrepaidGas: GasForFulfill, Timestamp: 1700000000,
	}
}

// depositStorage funds account's rent balance with amount.
func (env *simEnv) depositStorage(account string, amount *big.Int) error {
	return env.bridge.StorageDeposit(env.callFrom(account, amount))
}

// addChain whitelists chain with the required deposit attached.
func (env *simEnv) addChain(chain string) error {
	call := env.ownerCall()
	call.Deposit = simCostAddChain
	return env.bridge.AddChain(call, chain)
}

// inboundTx builds a signed ETH->NEAR transaction addressed to toUser.
func (env *simEnv) inboundTx(toUser string, amount int64, nonce int64) (*state.Transaction, []byte) {
	tx := &state.Transaction{
		FromUser:  common.RandEthAddressStr(),
		ToUser:    toUser,
		Amount:    big.NewInt(amount),
		Timestamp: 1700000000,
		FromChain: "ETH",
		ToChain:   state.CurrentChain,
		Nonce:     big.NewInt(nonce),
	}
	return tx, env.signer.Sign(tx)
}

func (env *simEnv) close() {
	env.statedb.Close()
}
