// Package external models bank-export transactions after a format
// adapter has normalized them. The correlator consumes this type only;
// it never sees a bank-specific row.
package external

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkovacs/financ/internal/domain/money"
)

// MatchMode selects which date of an external transaction the
// correlator matches on.
type MatchMode int

const (
	// ByBooking matches on the bank's booking date.
	ByBooking MatchMode = iota
	// BySpending prefers the spending date extracted from the
	// description, falling back to the booking date.
	BySpending
)

// Transaction is one normalized row from a bank export. Immutable once
// built by a format adapter.
type Transaction struct {
	// PrimaryDate is the settlement/booking date as reported by the bank.
	PrimaryDate *time.Time
	// SecondaryDate is an alternate date, typically the spending date
	// extracted from free-text description.
	SecondaryDate *time.Time

	Amount decimal.Decimal
	Fee    *decimal.Decimal

	Description      string
	Category         string
	CounterpartyID   string
	CounterpartyName string
}

// MatchingDate resolves the date used for correlation under the given
// mode. Returns nil when the transaction carries no usable date; such
// a transaction is unmatchable.
func (t Transaction) MatchingDate(mode MatchMode) *time.Time {
	if mode == BySpending && t.SecondaryDate != nil {
		return t.SecondaryDate
	}
	return t.PrimaryDate
}

// DescriptionOrCategory returns the description when present, the
// category otherwise.
func (t Transaction) DescriptionOrCategory() string {
	if t.Description != "" {
		return t.Description
	}
	return t.Category
}

// CounterpartyLabel combines the counterparty account id and name for
// display and for memos on created splits.
func (t Transaction) CounterpartyLabel() string {
	switch {
	case t.CounterpartyID != "" && t.CounterpartyName != "":
		return t.CounterpartyID + " - " + t.CounterpartyName
	case t.CounterpartyName != "":
		return t.CounterpartyName
	default:
		return t.CounterpartyID
	}
}

// String renders the display line:
// <primary|----------> <secondary|----------> <amount> (fee: <fee>) [<category>] - <description>
func (t Transaction) String() string {
	var b strings.Builder
	b.WriteString(formatOptionalDate(t.PrimaryDate))
	b.WriteByte(' ')
	b.WriteString(formatOptionalDate(t.SecondaryDate))
	fmt.Fprintf(&b, " %s", t.Amount)
	if t.Fee != nil {
		fmt.Fprintf(&b, " (fee: %s)", t.Fee)
	}
	if t.Category != "" {
		fmt.Fprintf(&b, " [%s]", t.Category)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, " - %s", t.Description)
	}
	return b.String()
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "----------"
	}
	return money.FormatDay(*t)
}

// List is a batch of normalized transactions together with the
// min/max of their matching dates. The bounds are nil when no
// transaction carries a resolvable date.
type List struct {
	Transactions []Transaction
	MinDate      *time.Time
	MaxDate      *time.Time
}

// NewList computes the date bounds over the matching dates of the
// given transactions under the given mode.
func NewList(transactions []Transaction, mode MatchMode) List {
	var min, max *time.Time
	for i := range transactions {
		d := transactions[i].MatchingDate(mode)
		if d == nil {
			continue
		}
		if min == nil || d.Before(*min) {
			v := *d
			min = &v
		}
		if max == nil || d.After(*max) {
			v := *d
			max = &v
		}
	}
	return List{Transactions: transactions, MinDate: min, MaxDate: max}
}
