// Server = bridge ledger + db/state + http reporter.
// All components are configured via environment variables (strings!).

package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"

	_ "github.com/mattn/go-sqlite3"

	"github.com/assistlabs/bridge-assist-go/bridge"
	"github.com/assistlabs/bridge-assist-go/common"
	"github.com/assistlabs/bridge-assist-go/reporter"
	"github.com/assistlabs/bridge-assist-go/state"
	"github.com/assistlabs/bridge-assist-go/token"
)

// Keep the configuration's fields as "text" as possible.
// Its easier to load it from env vars or a config file.
type BridgeServerConfig struct {
	// state side
	DbFilePath string // db file path

	// bridge side
	Owner        string // owner account id
	RelayerRole  string // "ed25519:<base58>" relayer public key
	TokenAccount string // fungible token account id the bridge accepts
	FeeWallet    string // account that receives the transfer fee
	LimitPerSend string // decimal, max token amount per outbound transfer
	FeeNumerator uint16 // fee = amount * numerator / 10000

	// fixed storage-rent costs in yocto, decimal strings
	CostRegister   string
	CostOnTransfer string
	CostFulfill    string
	CostAddChain   string

	// Http side
	HttpIp   string // eg. 0.0.0.0
	HttpPort string // eg. 8080
}

// BridgeServer holds the objects that consists of the bridge server.
type BridgeServer struct {
	MyStateDb *state.StateDB
	MyBridge  *bridge.Bridge
	MyToken   *token.SimulatedToken
	MyHttp    *reporter.HttpReporter
}

// NewBridgeServer creates a new bridge server.
func NewBridgeServer(bsc *BridgeServerConfig) (*BridgeServer, error) {
	// Create sql db, and related state_db.
	sqldb, err := sql.Open("sqlite3", bsc.DbFilePath)
	if err != nil {
		logger.Fatalf("failed to open db file: %v", err)
		return nil, err
	}

	// state_db
	myStateDb, err := state.NewStateDB(sqldb)
	if err != nil {
		logger.Fatalf("failed to create state db: %v", err)
		return nil, err
	}

	// Token client.
	// The server runs against a simulated fungible token until a
	// NEAR rpc-backed client lands.
	// TODO: swap in an rpc token client once the rpc signer story is settled.
	myToken := token.NewSimulatedToken(big.NewInt(0))

	cfg, err := parseBridgeConfig(bsc)
	if err != nil {
		logger.Fatalf("bad bridge configuration: %v", err)
		return nil, err
	}

	myBridge, err := bridge.New(myStateDb, myToken, cfg)
	if err != nil {
		logger.Fatalf("failed to create bridge: %v", err)
		return nil, err
	}

	// *** Setup a http server to report status ***
	httpServer := reporter.NewHttpReporter(
		bsc.HttpIp,
		bsc.HttpPort,
		myBridge,
	)
	// Turn on the http server
	go httpServer.Run()

	// Give it some time to start the http server
	time.Sleep(1 * time.Second)
	// *** End the setup of http server ***

	return &BridgeServer{
		MyStateDb: myStateDb,
		MyBridge:  myBridge,
		MyToken:   myToken,
		MyHttp:    httpServer,
	}, nil
}

// Create, then start the bridge server and wait.
// Press Ctrl-C to kill the server.
func StartBridgeServerAndWait(bsc *BridgeServerConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up a signal channel to listen for Ctrl-C (SIGINT) or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		fmt.Printf("Received signal: %v, cancelling context...\n", sig)
		cancel()
	}()

	server, err := NewBridgeServer(bsc)
	if err != nil {
		logger.Fatalf("failed to create bridge server: %v", err)
		return
	}

	<-ctx.Done()

	server.MyStateDb.Close()
}

// Helper function. Convert the text config into a bridge.Config.
func parseBridgeConfig(bsc *BridgeServerConfig) (*bridge.Config, error) {
	limit := common.DecStrToBigInt(bsc.LimitPerSend)
	if limit == nil {
		return nil, fmt.Errorf("cannot parse limit per send %q", bsc.LimitPerSend)
	}

	costs := make([]*big.Int, 0, 4)
	for _, s := range []string{bsc.CostRegister, bsc.CostOnTransfer, bsc.CostFulfill, bsc.CostAddChain} {
		v := common.DecStrToBigInt(s)
		if v == nil {
			return nil, fmt.Errorf("cannot parse storage cost %q", s)
		}
		costs = append(costs, v)
	}

	return &bridge.Config{
		Owner:          bsc.Owner,
		RelayerRole:    bsc.RelayerRole,
		Token:          bsc.TokenAccount,
		FeeWallet:      bsc.FeeWallet,
		LimitPerSend:   limit,
		FeeNumerator:   bsc.FeeNumerator,
		CostRegister:   costs[0],
		CostOnTransfer: costs[1],
		CostFulfill:    costs[2],
		CostAddChain:   costs[3],
	}, nil
}
