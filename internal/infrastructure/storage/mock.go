package storage

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkovacs/financ/internal/domain/money"
)

// MockRepository is an in-memory implementation of Repository for
// testing. It stores rows in slices and records mutations so tests can
// assert on what was written.
type MockRepository struct {
	AccountRows   []Account
	CommodityRows []Commodity
	SplitRows     []SplitTransaction

	// Mutations recorded in call order
	InsertedTransactions []Transaction
	InsertedSplits       []Split
	MovedSplits          map[string]string // split guid -> target account guid

	// Error injection for testing error paths
	InsertTransactionErr error
	InsertSplitErr       error
	MoveSplitErr         error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{MovedSplits: make(map[string]string)}
}

func likeMatch(value, filter string) bool {
	return filter == "" || strings.Contains(value, filter)
}

// Accounts returns accounts matching the query filters.
func (m *MockRepository) Accounts(q AccountQuery) ([]Account, error) {
	var out []Account
	for _, a := range m.AccountRows {
		if likeMatch(a.Name, q.Name) && likeMatch(a.ParentGUID, q.ParentGUID) &&
			likeMatch(a.GUID, q.GUID) && likeMatch(a.Type, q.Type) {
			out = append(out, a)
		}
	}
	if limit := limitOrDefault(q.Limit); int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Commodities returns commodities matching the query filters.
func (m *MockRepository) Commodities(q CommodityQuery) ([]Commodity, error) {
	var out []Commodity
	for _, c := range m.CommodityRows {
		if likeMatch(c.Mnemonic, q.Name) && likeMatch(c.Namespace, q.Namespace) {
			out = append(out, c)
		}
	}
	if limit := limitOrDefault(q.Limit); int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CommodityByGUID returns one commodity, or nil when absent.
func (m *MockRepository) CommodityByGUID(guid string) (*Commodity, error) {
	for _, c := range m.CommodityRows {
		if c.GUID == guid {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

// SplitTransactions returns pairs matching the query filters.
func (m *MockRepository) SplitTransactions(q TransactionQuery) ([]SplitTransaction, error) {
	var out []SplitTransaction
	for _, p := range m.SplitRows {
		if likeMatch(p.Split.TxGUID, q.TxGUID) && likeMatch(p.Split.AccountGUID, q.AccountGUID) &&
			likeMatch(p.Split.Memo, q.Memo) && likeMatch(p.Transaction.Description, q.Description) {
			out = append(out, p)
		}
	}
	if limit := limitOrDefault(q.Limit); int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// InsertTransaction records the transaction row.
func (m *MockRepository) InsertTransaction(guid, currencyGUID string, postDate *time.Time, enterDate time.Time, description string) error {
	if m.InsertTransactionErr != nil {
		return m.InsertTransactionErr
	}
	formattedPost := ""
	if postDate != nil {
		formattedPost = money.FormatLedgerDate(*postDate)
	}
	m.InsertedTransactions = append(m.InsertedTransactions, Transaction{
		GUID:         guid,
		CurrencyGUID: currencyGUID,
		PostDate:     formattedPost,
		EnterDate:    money.FormatLedgerDate(enterDate),
		Description:  description,
	})
	return nil
}

// InsertSplit records the split row and returns its guid.
func (m *MockRepository) InsertSplit(txGUID string, account Account, memo string, currency Commodity, amount decimal.Decimal) (string, error) {
	if m.InsertSplitErr != nil {
		return "", m.InsertSplitErr
	}
	value := money.Denominate(amount, currency.Fraction)
	quantity := money.Denominate(amount, account.CommoditySCU)
	guid := NewGUID()
	m.InsertedSplits = append(m.InsertedSplits, Split{
		GUID:          guid,
		TxGUID:        txGUID,
		AccountGUID:   account.GUID,
		Memo:          memo,
		ValueNum:      value.Num,
		ValueDenom:    value.Denom,
		QuantityNum:   quantity.Num,
		QuantityDenom: quantity.Denom,
	})
	return guid, nil
}

// MoveSplit records the reassignment.
func (m *MockRepository) MoveSplit(splitGUID, targetAccountGUID string) error {
	if m.MoveSplitErr != nil {
		return m.MoveSplitErr
	}
	m.MovedSplits[splitGUID] = targetAccountGUID
	return nil
}

// Close is a no-op for the mock.
func (m *MockRepository) Close() error { return nil }
