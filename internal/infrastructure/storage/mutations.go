package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkovacs/financ/internal/domain/money"
)

// NewGUID generates a GnuCash guid: a random UUID with the dashes
// stripped, 32 hex characters.
func NewGUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// InsertTransaction inserts one transaction row. GnuCash leaves num
// empty for ordinary transactions, and an absent post date is stored
// as an empty string.
func (s *Storage) InsertTransaction(guid, currencyGUID string, postDate *time.Time, enterDate time.Time, description string) error {
	formattedPost := ""
	if postDate != nil {
		formattedPost = money.FormatLedgerDate(*postDate)
	}

	query := `
	INSERT INTO transactions (guid, currency_guid, num, post_date, enter_date, description)
	VALUES (?, ?, '', ?, ?, ?)`

	res, err := s.db.Exec(query, guid, currencyGUID, formattedPost, money.FormatLedgerDate(enterDate), description)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", guid, err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return fmt.Errorf("transaction insert affected %d rows", n)
	}
	return nil
}

// InsertSplit inserts one split row and returns its fresh guid. The
// value is denominated in the currency's display fraction, the
// quantity in the account's smallest currency unit; the two scales are
// independent.
func (s *Storage) InsertSplit(txGUID string, account Account, memo string, currency Commodity, amount decimal.Decimal) (string, error) {
	value := money.Denominate(amount, currency.Fraction)
	quantity := money.Denominate(amount, account.CommoditySCU)
	splitGUID := NewGUID()

	query := `
	INSERT INTO splits
	(guid, tx_guid, account_guid, memo, action, reconcile_state, reconcile_date,
	 value_num, value_denom, quantity_num, quantity_denom, lot_guid)
	VALUES (?, ?, ?, ?, '', 'n', '', ?, ?, ?, ?, '')`

	_, err := s.db.Exec(query, splitGUID, txGUID, account.GUID, memo,
		value.Num, value.Denom, quantity.Num, quantity.Denom)
	if err != nil {
		return "", fmt.Errorf("failed to insert split on %s: %w", account.Name, err)
	}
	return splitGUID, nil
}

// MoveSplit reassigns one split to another account.
func (s *Storage) MoveSplit(splitGUID, targetAccountGUID string) error {
	res, err := s.db.Exec(`UPDATE splits SET account_guid = ? WHERE guid = ?`, targetAccountGUID, splitGUID)
	if err != nil {
		return fmt.Errorf("failed to move split %s: %w", splitGUID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("move split %s affected %d rows", splitGUID, n)
	}
	return nil
}
