package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkovacs/financ/internal/domain/money"
)

// Default row limits. The correlation load cap bounds memory on huge
// ledgers; exceeding it silently truncates, callers needing
// completeness must raise it.
const (
	DefaultListLimit = 10
	DefaultLoadLimit = 10000
)

// AccountQuery filters the accounts table. Text filters are substring
// matches (SQL LIKE). A zero Limit falls back to DefaultListLimit.
type AccountQuery struct {
	Limit      int64
	Name       string
	ParentGUID string
	GUID       string
	Type       string
}

// CommodityQuery filters the commodities table by mnemonic and
// namespace.
type CommodityQuery struct {
	Limit     int64
	Name      string
	Namespace string
}

// TransactionQuery filters the splits-transactions join.
type TransactionQuery struct {
	Limit       int64
	TxGUID      string
	AccountGUID string
	Memo        string
	Description string
	Before      *time.Time
	After       *time.Time
}

// ForAccountLoad builds the bulk query the correlator uses: every
// split of one account, capped at limit rows.
func ForAccountLoad(accountGUID string, limit int64) TransactionQuery {
	if limit <= 0 {
		limit = DefaultLoadLimit
	}
	return TransactionQuery{Limit: limit, AccountGUID: accountGUID}
}

type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) like(column, value string) {
	if value == "" {
		return
	}
	w.clauses = append(w.clauses, column+" LIKE ?")
	w.args = append(w.args, "%"+value+"%")
}

func (w *whereBuilder) compare(column, op string, value any) {
	w.clauses = append(w.clauses, fmt.Sprintf("%s %s ?", column, op))
	w.args = append(w.args, value)
}

func (w *whereBuilder) clause() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func limitOrDefault(limit int64) int64 {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// Accounts returns accounts matching the query filters.
func (s *Storage) Accounts(q AccountQuery) ([]Account, error) {
	var w whereBuilder
	w.like("name", q.Name)
	w.like("parent_guid", q.ParentGUID)
	w.like("guid", q.GUID)
	w.like("account_type", q.Type)

	query := `
	SELECT guid, name, account_type,
	       COALESCE(commodity_guid, ''), commodity_scu,
	       COALESCE(parent_guid, ''), COALESCE(code, ''),
	       COALESCE(description, ''),
	       COALESCE(hidden, 0), COALESCE(placeholder, 0)
	FROM accounts` + w.clause() + `
	ORDER BY name LIMIT ?`

	rows, err := s.db.Query(query, append(w.args, limitOrDefault(q.Limit))...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		var hidden, placeholder int64
		if err := rows.Scan(&a.GUID, &a.Name, &a.Type, &a.CommodityGUID, &a.CommoditySCU,
			&a.ParentGUID, &a.Code, &a.Description, &hidden, &placeholder); err != nil {
			return nil, err
		}
		a.Hidden = hidden != 0
		a.Placeholder = placeholder != 0
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Commodities returns commodities matching the query filters.
func (s *Storage) Commodities(q CommodityQuery) ([]Commodity, error) {
	var w whereBuilder
	w.like("mnemonic", q.Name)
	w.like("namespace", q.Namespace)

	query := `
	SELECT guid, namespace, mnemonic, COALESCE(fullname, ''), fraction
	FROM commodities` + w.clause() + `
	ORDER BY mnemonic LIMIT ?`

	rows, err := s.db.Query(query, append(w.args, limitOrDefault(q.Limit))...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commodities: %w", err)
	}
	defer rows.Close()

	var commodities []Commodity
	for rows.Next() {
		var c Commodity
		if err := rows.Scan(&c.GUID, &c.Namespace, &c.Mnemonic, &c.Fullname, &c.Fraction); err != nil {
			return nil, err
		}
		commodities = append(commodities, c)
	}
	return commodities, rows.Err()
}

// CommodityByGUID returns one commodity, or nil when absent.
func (s *Storage) CommodityByGUID(guid string) (*Commodity, error) {
	query := `
	SELECT guid, namespace, mnemonic, COALESCE(fullname, ''), fraction
	FROM commodities WHERE guid = ?`

	var c Commodity
	err := s.db.QueryRow(query, guid).Scan(&c.GUID, &c.Namespace, &c.Mnemonic, &c.Fullname, &c.Fraction)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query commodity %s: %w", guid, err)
	}
	return &c, nil
}

// SplitTransactions returns split+transaction pairs matching the
// query filters. Results are ordered by post date, then split guid, so
// same-day same-amount candidates are consumed in a stable order.
func (s *Storage) SplitTransactions(q TransactionQuery) ([]SplitTransaction, error) {
	var w whereBuilder
	w.like("s.tx_guid", q.TxGUID)
	w.like("s.account_guid", q.AccountGUID)
	w.like("s.memo", q.Memo)
	w.like("t.description", q.Description)
	if q.After != nil {
		day := money.Day(q.After.Year(), q.After.Month(), q.After.Day())
		w.compare("t.post_date", ">=", money.FormatLedgerDate(day))
	}
	if q.Before != nil {
		day := money.Day(q.Before.Year(), q.Before.Month(), q.Before.Day())
		endOfDay := day.Add(24*time.Hour - time.Second)
		w.compare("t.post_date", "<=", money.FormatLedgerDate(endOfDay))
	}

	query := `
	SELECT s.guid, s.tx_guid, s.account_guid, s.memo, s.action,
	       s.value_num, s.value_denom, s.quantity_num, s.quantity_denom,
	       t.guid, COALESCE(t.currency_guid, ''), COALESCE(t.num, ''),
	       COALESCE(t.post_date, ''), COALESCE(t.enter_date, ''),
	       COALESCE(t.description, '')
	FROM splits s
	INNER JOIN transactions t ON t.guid = s.tx_guid` + w.clause() + `
	ORDER BY t.post_date, s.guid LIMIT ?`

	rows, err := s.db.Query(query, append(w.args, limitOrDefault(q.Limit))...)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	var pairs []SplitTransaction
	for rows.Next() {
		var p SplitTransaction
		if err := rows.Scan(
			&p.Split.GUID, &p.Split.TxGUID, &p.Split.AccountGUID, &p.Split.Memo, &p.Split.Action,
			&p.Split.ValueNum, &p.Split.ValueDenom, &p.Split.QuantityNum, &p.Split.QuantityDenom,
			&p.Transaction.GUID, &p.Transaction.CurrencyGUID, &p.Transaction.Num,
			&p.Transaction.PostDate, &p.Transaction.EnterDate, &p.Transaction.Description,
		); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
