// Package correlator pairs external bank transactions with ledger
// splits by date proximity and exact amount equality.
package correlator

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkovacs/financ/internal/domain/external"
	"github.com/mkovacs/financ/internal/domain/money"
	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

// Entry is one ledger split with its parent transaction and the
// in-memory matching annotation. The annotation never reaches the
// database.
type Entry struct {
	Split       storage.Split
	Transaction storage.Transaction

	PostingDate time.Time
	Amount      decimal.Decimal

	matched *external.Transaction
}

// PairWith marks the entry as matched with the given external
// transaction. Only the first call succeeds; an entry is matched at
// most once per run.
func (e *Entry) PairWith(tx external.Transaction) bool {
	if e.matched != nil {
		return false
	}
	copied := tx
	e.matched = &copied
	return true
}

// Matched returns the external transaction this entry was paired with,
// or nil.
func (e *Entry) Matched() *external.Transaction {
	return e.matched
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s - %s", e.Transaction, e.Split)
}

// Index holds all loaded ledger entries for one account, grouped by
// posting date. Date buckets keep a stable order (split guid) so
// first-fit matching is deterministic when several same-day entries
// share an amount.
type Index struct {
	byDate map[time.Time][]*Entry
	dates  []time.Time // sorted
}

// BuildIndex groups split+transaction pairs by posting date. A
// malformed post date or a zero quantity denominator is an error:
// silently skipping rows would corrupt the reconciliation counts.
func BuildIndex(pairs []storage.SplitTransaction) (*Index, error) {
	idx := &Index{byDate: make(map[time.Time][]*Entry)}
	for _, pair := range pairs {
		date, err := money.ParseLedgerDate(pair.Transaction.PostDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", pair.Transaction.GUID, err)
		}
		amount, err := pair.Split.Quantity()
		if err != nil {
			return nil, fmt.Errorf("split %s: %w", pair.Split.GUID, err)
		}
		idx.byDate[date] = append(idx.byDate[date], &Entry{
			Split:       pair.Split,
			Transaction: pair.Transaction,
			PostingDate: date,
			Amount:      amount,
		})
	}
	for date, bucket := range idx.byDate {
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].Split.GUID < bucket[j].Split.GUID
		})
		idx.dates = append(idx.dates, date)
	}
	sort.Slice(idx.dates, func(i, j int) bool { return idx.dates[i].Before(idx.dates[j]) })
	return idx, nil
}

// Len returns the number of entries in the index.
func (x *Index) Len() int {
	n := 0
	for _, bucket := range x.byDate {
		n += len(bucket)
	}
	return n
}

// findUnmatched returns the first unmatched entry on the given date
// with exactly the given amount, or nil.
func (x *Index) findUnmatched(date time.Time, amount decimal.Decimal) *Entry {
	for _, entry := range x.byDate[date] {
		if entry.matched == nil && money.Equal(entry.Amount, amount) {
			return entry
		}
	}
	return nil
}

// UnmatchedWithin returns all still-unmatched entries with posting
// dates inside the inclusive [min, max] range, in date order. A nil
// bound leaves that side open.
func (x *Index) UnmatchedWithin(min, max *time.Time) []*Entry {
	var out []*Entry
	for _, date := range x.dates {
		if min != nil && date.Before(*min) {
			continue
		}
		if max != nil && date.After(*max) {
			continue
		}
		for _, entry := range x.byDate[date] {
			if entry.matched == nil {
				out = append(out, entry)
			}
		}
	}
	return out
}
