package state

var (
	// prepaid storage-rent balance per account
	storageTable = `CREATE TABLE IF NOT EXISTS storage_paid (
		account VARCHAR(64) PRIMARY KEY NOT NULL,
		paid VARCHAR(40) NOT NULL,
		totalPaid VARCHAR(40) NOT NULL,
		registered INTEGER NOT NULL DEFAULT 0,
		CONSTRAINT chk_account CHECK (account != ''),
		CONSTRAINT chk_registered CHECK (registered IN (0, 1))
	);`

	// append-only per-user transaction sequences; seq is the position
	// inside one user's sequence, starting at 0
	transactionTable = `CREATE TABLE IF NOT EXISTS transactions (
		user VARCHAR(64) NOT NULL,
		seq INTEGER NOT NULL,
		fromUser VARCHAR(64) NOT NULL,
		toUser VARCHAR(64) NOT NULL,
		amount VARCHAR(40) NOT NULL,
		timestamp BIGINT UNSIGNED NOT NULL,
		fromChain VARCHAR(64) NOT NULL,
		toChain VARCHAR(64) NOT NULL,
		nonce VARCHAR(40) NOT NULL,
		PRIMARY KEY (user, seq),
		CONSTRAINT chk_user CHECK (user != ''),
		CONSTRAINT chk_fromChain CHECK (fromChain != ''),
		CONSTRAINT chk_toChain CHECK (toChain != '')
	);`

	// fulfilled inbound tx hashes, 32-byte keccak digests hex encoded
	// without 0x prefix; a row here is permanent
	fulfilledTable = `CREATE TABLE IF NOT EXISTS fulfilled (
		txHash CHAR(64) PRIMARY KEY NOT NULL,
		CONSTRAINT chk_txHash CHECK (length(txHash) = 64)
	);`

	// chain whitelist; rowid keeps insertion order for listing
	chainTable = `CREATE TABLE IF NOT EXISTS chains (
		chain VARCHAR(64) PRIMARY KEY NOT NULL,
		CONSTRAINT chk_chain CHECK (chain != '')
	);`

	// mutable configuration (owner, relayer key, fee, limit, nonce,
	// contract native balance) as plain text pairs
	kvTable = `CREATE TABLE IF NOT EXISTS kv (
		key VARCHAR(64) PRIMARY KEY NOT NULL,
		value TEXT NOT NULL
	);`

	txParamList = " user, seq, fromUser, toUser, amount, timestamp, fromChain, toChain, nonce "
)
