// This is a http type of reporter.
// It publishes the bridge's read-only views on http routes so relayers and
// dashboards can poll ledger state without touching the core.

package reporter

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/assistlabs/bridge-assist-go/bridge"
)

const (
	ROUTE_OWNER         = "/owner"
	ROUTE_RELAYER       = "/relayer"
	ROUTE_TOKEN         = "/token"
	ROUTE_FEE           = "/fee"
	ROUTE_LIMIT         = "/limit"
	ROUTE_NONCE         = "/nonce"
	ROUTE_STORAGE       = "/storage"
	ROUTE_TXS           = "/transactions"
	ROUTE_TX            = "/transaction"
	ROUTE_TX_COUNT      = "/transactions/count"
	ROUTE_FULFILLED     = "/fulfilled"
	ROUTE_CHAINS        = "/chains"
	ROUTE_CHAIN_CHECK   = "/chains/contains"
	ROUTE_ADD_CHAIN_PAY = "/chains/pay"
)

type HttpReporter struct {
	serverIP   string // listen ip
	serverPort string // listen port

	// upstream data source
	bridge *bridge.Bridge
}

func NewHttpReporter(serverIP, serverPort string, b *bridge.Bridge) *HttpReporter {
	return &HttpReporter{
		serverIP:   serverIP,
		serverPort: serverPort,
		bridge:     b,
	}
}

// Hook up routes & handlers
func (h *HttpReporter) SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET(ROUTE_OWNER, h.Owner)
	router.GET(ROUTE_RELAYER, h.Relayer)
	router.GET(ROUTE_TOKEN, h.Token)
	router.GET(ROUTE_FEE, h.Fee)
	router.GET(ROUTE_LIMIT, h.Limit)
	router.GET(ROUTE_NONCE, h.Nonce)
	router.GET(ROUTE_STORAGE, h.Storage)
	router.GET(ROUTE_TXS, h.Transactions)
	router.GET(ROUTE_TX, h.Transaction)
	router.GET(ROUTE_TX_COUNT, h.TransactionCount)
	router.GET(ROUTE_FULFILLED, h.Fulfilled)
	router.GET(ROUTE_CHAINS, h.Chains)
	router.GET(ROUTE_CHAIN_CHECK, h.ChainContains)
	router.GET(ROUTE_ADD_CHAIN_PAY, h.AddChainPay)

	return router
}

// Hook up router & ip:port
func (h *HttpReporter) Run() {
	router := h.SetupRouter()
	address := h.serverIP + ":" + h.serverPort
	if err := router.Run(address); err != nil {
		panic(err)
	}
}

func (h *HttpReporter) Owner(c *gin.Context) {
	owner, err := h.bridge.Owner()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": owner})
}

func (h *HttpReporter) Relayer(c *gin.Context) {
	key, err := h.bridge.RelayerRole()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"relayer_role": key})
}

func (h *HttpReporter) Token(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"token": h.bridge.Token()})
}

func (h *HttpReporter) Fee(c *gin.Context) {
	info, err := h.bridge.GetFeeInfo()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *HttpReporter) Limit(c *gin.Context) {
	limit, err := h.bridge.LimitPerSend()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"limit_per_send": limit.String()})
}

func (h *HttpReporter) Nonce(c *gin.Context) {
	nonce, err := h.bridge.Nonce()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonce": nonce.String()})
}

func (h *HttpReporter) Storage(c *gin.Context) {
	account := c.Query("account")
	if account == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account must be provided"})
		return
	}
	info, err := h.bridge.GetStoragePaidInfo(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *HttpReporter) Transactions(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user must be provided"})
		return
	}
	txs, err := h.bridge.GetTransactionsByUser(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *HttpReporter) Transaction(c *gin.Context) {
	user := c.Query("user")
	index, err := strconv.ParseUint(c.Query("index"), 10, 64)
	if user == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user and numeric index must be provided"})
		return
	}
	tx, err := h.bridge.GetTransactionByUser(user, index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *HttpReporter) TransactionCount(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user must be provided"})
		return
	}
	n, err := h.bridge.GetTransactionsAmountByUser(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *HttpReporter) Fulfilled(c *gin.Context) {
	hash := c.Query("hash")
	if hash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hash must be provided"})
		return
	}
	ok, err := h.bridge.IsTxFulfilled(hash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fulfilled": ok})
}

func (h *HttpReporter) Chains(c *gin.Context) {
	chains, err := h.bridge.SupportedChainList()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chains": chains})
}

func (h *HttpReporter) ChainContains(c *gin.Context) {
	chain := c.Query("chain")
	if chain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chain must be provided"})
		return
	}
	ok, err := h.bridge.IsAvailableChain(chain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}

func (h *HttpReporter) AddChainPay(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pay_for_add_chain": h.bridge.GetPayForAddChain().String()})
}
