package state

import (
	"database/sql"
	"math/big"

	"github.com/assistlabs/bridge-assist-go/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/sirupsen/logrus"
)

// RandOutboundTransaction builds a plausible NEAR->foreign record for tests.
func RandOutboundTransaction(nonce int64) *Transaction {
	return &Transaction{
		FromUser:  common.RandAccountID(),
		ToUser:    common.RandEthAddressStr(),
		Amount:    big.NewInt(100),
		Timestamp: 1700000000,
		FromChain: CurrentChain,
		ToChain:   "ETH",
		Nonce:     big.NewInt(nonce),
	}
}

// RandInboundTransaction builds a plausible foreign->NEAR record for tests.
func RandInboundTransaction(nonce int64) *Transaction {
	return &Transaction{
		FromUser:  common.RandEthAddressStr(),
		ToUser:    common.RandAccountID(),
		Amount:    big.NewInt(100),
		Timestamp: 1700000000,
		FromChain: "ETH",
		ToChain:   CurrentChain,
		Nonce:     big.NewInt(nonce),
	}
}

func getMemoryDB() *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		logger.Fatal(err)
	}
	return db
}
