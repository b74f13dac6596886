package storage

// EnsureTestSchema creates the subset of the GnuCash schema this
// package touches. Production ledger files already carry the full
// schema; this exists for tests that start from an empty database.
func (s *Storage) EnsureTestSchema() error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			guid TEXT(32) PRIMARY KEY NOT NULL,
			name TEXT(2048) NOT NULL,
			account_type TEXT(2048) NOT NULL,
			commodity_guid TEXT(32),
			commodity_scu INTEGER NOT NULL,
			non_std_scu INTEGER NOT NULL DEFAULT 0,
			parent_guid TEXT(32),
			code TEXT(2048),
			description TEXT(2048),
			hidden INTEGER,
			placeholder INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS commodities (
			guid TEXT(32) PRIMARY KEY NOT NULL,
			namespace TEXT(2048) NOT NULL,
			mnemonic TEXT(2048) NOT NULL,
			fullname TEXT(2048),
			cusip TEXT(2048),
			fraction INTEGER NOT NULL,
			quote_flag INTEGER NOT NULL DEFAULT 0,
			quote_source TEXT(2048),
			quote_tz TEXT(2048)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			guid TEXT(32) PRIMARY KEY NOT NULL,
			currency_guid TEXT(32) NOT NULL,
			num TEXT(2048) NOT NULL,
			post_date TEXT(19),
			enter_date TEXT(19),
			description TEXT(2048)
		)`,
		`CREATE TABLE IF NOT EXISTS splits (
			guid TEXT(32) PRIMARY KEY NOT NULL,
			tx_guid TEXT(32) NOT NULL,
			account_guid TEXT(32) NOT NULL,
			memo TEXT(2048) NOT NULL,
			action TEXT(2048) NOT NULL,
			reconcile_state TEXT(1) NOT NULL,
			reconcile_date TEXT(19),
			value_num BIGINT NOT NULL,
			value_denom BIGINT NOT NULL,
			quantity_num BIGINT NOT NULL,
			quantity_denom BIGINT NOT NULL,
			lot_guid TEXT(32)
		)`,
	}
	for _, stmt := range ddl {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
