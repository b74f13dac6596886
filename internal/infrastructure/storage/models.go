package storage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mkovacs/financ/internal/domain/money"
)

// Account is one row of the GnuCash accounts table.
type Account struct {
	GUID          string
	Name          string
	Type          string
	CommodityGUID string
	CommoditySCU  int64
	ParentGUID    string
	Code          string
	Description   string
	Hidden        bool
	Placeholder   bool
}

func (a Account) String() string {
	return fmt.Sprintf("[%s]<%s> - %s", a.Type, a.GUID, a.Name)
}

// Commodity is one row of the GnuCash commodities table. Fraction is
// the display denominator of the commodity (100 for cent currencies).
type Commodity struct {
	GUID      string
	Namespace string
	Mnemonic  string
	Fullname  string
	Fraction  int64
}

func (c Commodity) String() string {
	return fmt.Sprintf("[%s]<%s> - %s (%s) 1/%d", c.Namespace, c.GUID, c.Mnemonic, c.Fullname, c.Fraction)
}

// Split is one leg of a double-entry transaction, posted to exactly
// one account. value_* is denominated in the transaction currency's
// fraction, quantity_* in the account's SCU.
type Split struct {
	GUID          string
	TxGUID        string
	AccountGUID   string
	Memo          string
	Action        string
	ValueNum      int64
	ValueDenom    int64
	QuantityNum   int64
	QuantityDenom int64
}

// Value returns the split value as an exact decimal. Errors on a zero
// denominator, which only a corrupt ledger file produces.
func (s Split) Value() (decimal.Decimal, error) {
	return money.FromDenominated(money.Denominated{Num: s.ValueNum, Denom: s.ValueDenom})
}

// Quantity returns the split quantity as an exact decimal.
func (s Split) Quantity() (decimal.Decimal, error) {
	return money.FromDenominated(money.Denominated{Num: s.QuantityNum, Denom: s.QuantityDenom})
}

// String renders the split display line: <memo>:<action> - <value> <quantity>
func (s Split) String() string {
	value, verr := s.Value()
	quantity, qerr := s.Quantity()
	if verr != nil || qerr != nil {
		return fmt.Sprintf("%s:%s - %d/%d %d/%d", s.Memo, s.Action,
			s.ValueNum, s.ValueDenom, s.QuantityNum, s.QuantityDenom)
	}
	return fmt.Sprintf("%s:%s - %s %s", s.Memo, s.Action, value, quantity)
}

// Transaction is one row of the GnuCash transactions table. PostDate
// and EnterDate keep the raw column text; use money.ParseLedgerDate to
// interpret them.
type Transaction struct {
	GUID         string
	CurrencyGUID string
	Num          string
	PostDate     string
	EnterDate    string
	Description  string
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s - %s", t.PostDate, t.Description)
}

// SplitTransaction pairs a split with its parent transaction, the unit
// the correlation load works in.
type SplitTransaction struct {
	Split       Split
	Transaction Transaction
}
