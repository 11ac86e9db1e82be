package state

// AddChain whitelists a chain identifier. Duplicate adds are the caller's
// concern; the insert itself is idempotent.
func (st *StateDB) AddChain(chain string) error {
	query := `INSERT OR IGNORE INTO chains (chain) VALUES (?)`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(chain)
	return err
}

func (st *StateDB) RemoveChain(chain string) error {
	query := `DELETE FROM chains WHERE chain = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(chain)
	return err
}

func (st *StateDB) HasChain(chain string) (bool, error) {
	query := `SELECT COUNT(*) FROM chains WHERE chain = ?`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	var n int
	if err := stmt.QueryRow(chain).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListChains returns the whitelist in insertion order.
func (st *StateDB) ListChains() ([]string, error) {
	query := `SELECT chain FROM chains ORDER BY rowid ASC`
	stmt, err := st.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chains := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		chains = append(chains, c)
	}

	return chains, rows.Err()
}
