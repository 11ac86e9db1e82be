package state

import (
	"database/sql"
	"math/big"

	"github.com/assistlabs/bridge-assist-go/common"
)

var appendTransactionQuery = `INSERT INTO transactions (` + txParamList + `)
	VALUES (?, (SELECT COUNT(*) FROM transactions WHERE user = ?), ?, ?, ?, ?, ?, ?, ?)`

// AppendTransaction adds tx to the end of user's sequence. Sequences are
// append-only; rows are never updated or deleted.
func (st *StateDB) AppendTransaction(user string, tx *Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	stmt, err := st.stmtCache.Prepare(appendTransactionQuery)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(appendTransactionArgs(user, tx)...)
	return err
}

func appendTransactionArgs(user string, tx *Transaction) []any {
	return []any{user, user,
		tx.FromUser, tx.ToUser, common.BigIntToDecStr(tx.Amount), tx.Timestamp,
		tx.FromChain, tx.ToChain, common.BigIntToDecStr(tx.Nonce)}
}

// RecordOutbound persists one outbound transfer as a unit: the appended
// record, the sender's debited storage row and the advanced nonce land in
// a single transaction, so a failed write leaves no partial state behind.
func (st *StateDB) RecordOutbound(user string, tx *Transaction, acc *StorageAccount, nonceKey string, nonce *big.Int) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := checkStorageAccount(acc); err != nil {
		return err
	}

	appendStmt, err := st.stmtCache.Prepare(appendTransactionQuery)
	if err != nil {
		return err
	}
	storageStmt, err := st.stmtCache.Prepare(putStorageAccountQuery)
	if err != nil {
		return err
	}
	kvStmt, err := st.stmtCache.Prepare(setValueQuery)
	if err != nil {
		return err
	}

	dbtx, err := st.db.Begin()
	if err != nil {
		return err
	}
	defer dbtx.Rollback()

	if _, err := dbtx.Stmt(appendStmt).Exec(appendTransactionArgs(user, tx)...); err != nil {
		return err
	}
	if _, err := dbtx.Stmt(storageStmt).Exec(storageAccountArgs(acc)...); err != nil {
		return err
	}
	if _, err := dbtx.Stmt(kvStmt).Exec(nonceKey, common.BigIntToDecStr(nonce)); err != nil {
		return err
	}

	return dbtx.Commit()
}

// GetTransactionByUser returns the record at position index of user's
// sequence. ErrorIndexOutOfRange when the sequence is shorter.
func (st *StateDB) GetTransactionByUser(user string, index uint64) (*Transaction, error) {
	query := `SELECT fromUser, toUser, amount, timestamp, fromChain, toChain, nonce
		FROM transactions WHERE user = ? AND seq = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	tx, err := scanTransaction(stmt.QueryRow(user, index))
	if err == sql.ErrNoRows {
		return nil, ErrorIndexOutOfRange
	}
	return tx, err
}

// GetTransactionsByUser returns user's whole sequence in insertion order.
func (st *StateDB) GetTransactionsByUser(user string) ([]*Transaction, error) {
	query := `SELECT fromUser, toUser, amount, timestamp, fromChain, toChain, nonce
		FROM transactions WHERE user = ? ORDER BY seq ASC`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []*Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// CountTransactionsByUser returns the sequence length of user.
func (st *StateDB) CountTransactionsByUser(user string) (uint64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return 0, err
	}

	var n uint64
	if err := stmt.QueryRow(user).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	var (
		tx            Transaction
		amount, nonce string
	)
	if err := row.Scan(&tx.FromUser, &tx.ToUser, &amount, &tx.Timestamp,
		&tx.FromChain, &tx.ToChain, &nonce); err != nil {
		return nil, err
	}

	tx.Amount = common.DecStrToBigInt(amount)
	tx.Nonce = common.DecStrToBigInt(nonce)
	if tx.Amount == nil || tx.Nonce == nil {
		return nil, ErrorStoredRowInvalid
	}

	return &tx, nil
}
