package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the complete ledger storage interface. It allows
// swapping the SQLite implementation for an in-memory mock in tests.
type Repository interface {
	AccountReader
	CommodityReader
	SplitReader
	LedgerWriter
	Close() error
}

// AccountReader lists and resolves accounts.
type AccountReader interface {
	// Accounts returns accounts matching the query filters.
	Accounts(q AccountQuery) ([]Account, error)
}

// CommodityReader lists commodities.
type CommodityReader interface {
	// Commodities returns commodities matching the query filters.
	Commodities(q CommodityQuery) ([]Commodity, error)

	// CommodityByGUID returns one commodity, or nil when absent.
	CommodityByGUID(guid string) (*Commodity, error)
}

// SplitReader loads splits joined with their parent transactions.
type SplitReader interface {
	// SplitTransactions returns split+transaction pairs matching the
	// query filters, ordered by post date then split guid.
	SplitTransactions(q TransactionQuery) ([]SplitTransaction, error)
}

// LedgerWriter appends new ledger rows during fix-up.
type LedgerWriter interface {
	// InsertTransaction inserts one transaction row. The caller
	// supplies the guid so subsequent splits can reference it.
	InsertTransaction(guid, currencyGUID string, postDate *time.Time, enterDate time.Time, description string) error

	// InsertSplit inserts one split row with a fresh guid and returns
	// that guid. value is denominated by the currency fraction,
	// quantity by the account SCU.
	InsertSplit(txGUID string, account Account, memo string, currency Commodity, amount decimal.Decimal) (string, error)

	// MoveSplit reassigns one split to another account.
	MoveSplit(splitGUID, targetAccountGUID string) error
}
