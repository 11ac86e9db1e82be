package state

import (
	"database/sql"

	"github.com/assistlabs/bridge-assist-go/database"
)

// StateDB persists every collection the bridge ledger owns: storage-rent
// accounts, per-user transaction sequences, the fulfilled-hash set, the
// chain whitelist and kv-backed configuration.
type StateDB struct {
	db        *sql.DB
	stmtCache *database.StmtCache
}

func NewStateDB(db *sql.DB) (*StateDB, error) {
	// 1. Create the tables.
	ddl := storageTable + transactionTable + fulfilledTable + chainTable + kvTable
	if _, err := db.Exec(ddl); err != nil {
		return nil, err
	}

	// 2. A stmt cache + db.
	return &StateDB{
		db:        db,
		stmtCache: database.NewStmtCache(db),
	}, nil
}

func (st *StateDB) Close() {
	st.stmtCache.Clear()
}

// GetValue reads one configuration entry. Missing keys return ok=false.
func (st *StateDB) GetValue(key string) (string, bool, error) {
	query := `SELECT value FROM kv WHERE key = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return "", false, err
	}

	var value string
	if err := stmt.QueryRow(key).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}

	return value, true, nil
}

var setValueQuery = `INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`

func (st *StateDB) SetValue(key, value string) error {
	stmt, err := st.stmtCache.Prepare(setValueQuery)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(key, value)
	return err
}
