package state

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// InsertFulfilled marks txHash as paid out. Rows in this set are permanent;
// the bridge only writes one after the payee transfer has settled.
func (st *StateDB) InsertFulfilled(txHash ethcommon.Hash) error {
	query := `INSERT OR IGNORE INTO fulfilled (txHash) VALUES (?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(txHash.String()[2:])
	return err
}

// HasFulfilled reports whether txHash has already been paid out.
func (st *StateDB) HasFulfilled(txHash ethcommon.Hash) (bool, error) {
	query := `SELECT COUNT(*) FROM fulfilled WHERE txHash = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	var n int
	if err := stmt.QueryRow(txHash.String()[2:]).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
