// Package fixup creates ledger transactions for external transactions
// the correlator could not match, under operator control.
package fixup

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkovacs/financ/internal/domain/external"
	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

// Configuration errors. These abort before any row is written.
var (
	ErrCommodityMismatch = errors.New("fixup: main and counterparty accounts have different commodities")
	ErrUnknownCommodity  = errors.New("fixup: account commodity not found")
	ErrNoFeeAccount      = errors.New("fixup: transaction carries a fee but no fee account is configured")
)

// Response is the operator's decision for one candidate transaction.
type Response int

const (
	// Accept creates a ledger transaction for this candidate.
	Accept Response = iota
	// Skip leaves this candidate unreconciled.
	Skip
	// AcceptAll accepts this and every remaining candidate without
	// further prompting.
	AcceptAll
	// Abort stops immediately, keeping the work done so far.
	Abort
)

// Responder supplies the operator's decision for one candidate. The
// terminal implementation lives in the cli package; tests script a
// fixed sequence.
type Responder interface {
	Confirm(tx external.Transaction) (Response, error)
}

// Driver creates balanced transactions on the ledger.
type Driver struct {
	repo         storage.Repository
	main         storage.Account
	counterparty storage.Account
	fee          *storage.Account // nil when not configured
	mode         external.MatchMode
	responder    Responder
	logger       *slog.Logger
	now          func() time.Time
}

// New creates a fix-up driver. fee may be nil when the source bank
// never reports separate fees.
func New(repo storage.Repository, main, counterparty storage.Account, fee *storage.Account,
	mode external.MatchMode, responder Responder, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		repo:         repo,
		main:         main,
		counterparty: counterparty,
		fee:          fee,
		mode:         mode,
		responder:    responder,
		logger:       logger,
		now:          time.Now,
	}
}

// Summary reports what one fix-up run did.
type Summary struct {
	Created int
	Skipped int
	Failed  int
	Aborted bool
}

// Run offers each unmatched external transaction, in original order,
// to the responder and creates ledger transactions for accepted ones.
//
// The pre-check refuses mixed-commodity account pairs outright:
// partial fix-up across currencies is never attempted. Per-candidate
// failures (fee with no fee account, insert errors) are counted and
// logged, not fatal. There is no multi-row atomicity: a failed split
// insert leaves the transaction partially written, a known limitation.
func (d *Driver) Run(unmatched []external.Transaction) (Summary, error) {
	if d.main.CommodityGUID != d.counterparty.CommodityGUID {
		return Summary{}, fmt.Errorf("%w: %s vs %s",
			ErrCommodityMismatch, d.main.Name, d.counterparty.Name)
	}
	currency, err := d.repo.CommodityByGUID(d.main.CommodityGUID)
	if err != nil {
		return Summary{}, err
	}
	if currency == nil {
		return Summary{}, fmt.Errorf("%w: %s", ErrUnknownCommodity, d.main.CommodityGUID)
	}

	var summary Summary
	acceptAll := false
	for _, tx := range unmatched {
		if tx.Fee != nil && !tx.Fee.IsZero() && d.fee == nil {
			d.logger.Error("cannot create transaction with fee", slog.String("transaction", tx.String()))
			summary.Failed++
			continue
		}

		response := Accept
		if !acceptAll {
			response, err = d.responder.Confirm(tx)
			if err != nil {
				return summary, err
			}
		}

		switch response {
		case Abort:
			summary.Aborted = true
			return summary, nil
		case Skip:
			summary.Skipped++
			continue
		case AcceptAll:
			acceptAll = true
		}

		if err := d.create(tx, *currency); err != nil {
			d.logger.Error("failed to create transaction",
				slog.String("transaction", tx.String()),
				slog.String("error", err.Error()))
			summary.Failed++
			continue
		}
		summary.Created++
	}
	return summary, nil
}

// create writes one balanced transaction: main split for the amount,
// counterparty split for -amount-fee, and a fee split when a fee is
// present. The three value amounts sum to zero.
func (d *Driver) create(tx external.Transaction, currency storage.Commodity) error {
	guid := storage.NewGUID()
	if err := d.repo.InsertTransaction(guid, currency.GUID,
		tx.MatchingDate(d.mode), d.now(), tx.DescriptionOrCategory()); err != nil {
		return err
	}

	fee := decimal.Zero
	if tx.Fee != nil {
		fee = *tx.Fee
	}

	if _, err := d.repo.InsertSplit(guid, d.main, "", currency, tx.Amount); err != nil {
		return err
	}
	counterAmount := tx.Amount.Neg().Sub(fee)
	if _, err := d.repo.InsertSplit(guid, d.counterparty, tx.CounterpartyLabel(), currency, counterAmount); err != nil {
		return err
	}
	if !fee.IsZero() {
		if _, err := d.repo.InsertSplit(guid, *d.fee, "transaction fee", currency, fee); err != nil {
			return err
		}
	}

	d.logger.Info("created ledger transaction",
		slog.String("guid", guid),
		slog.String("external", tx.String()))
	return nil
}
