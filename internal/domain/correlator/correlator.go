package correlator

import (
	"log/slog"

	"github.com/mkovacs/financ/internal/domain/external"
	"github.com/mkovacs/financ/internal/domain/money"
)

// DefaultMaxOffset is how far, in days, the ring search strays from an
// external transaction's matching date.
const DefaultMaxOffset = 10

// Config holds correlator configuration.
type Config struct {
	// MaxOffset is the maximum absolute date offset in days.
	// Zero falls back to DefaultMaxOffset.
	MaxOffset int
}

// Correlator runs ring-expansion matching over one ledger index. It
// owns the index for the duration of the run; matching state is
// written directly onto the entries.
type Correlator struct {
	index  *Index
	config Config
	logger *slog.Logger
}

// New creates a correlator over the given index.
func New(index *Index, config Config, logger *slog.Logger) *Correlator {
	if config.MaxOffset <= 0 {
		config.MaxOffset = DefaultMaxOffset
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Correlator{index: index, config: config, logger: logger}
}

// Result summarizes one correlation run.
type Result struct {
	MatchedCount      int
	UnmatchedExternal []external.Transaction
	// UnmatchedLedger holds still-unmatched ledger entries inside the
	// date range spanned by the external transactions. The ring search
	// itself is not bound by that range; only this report is.
	UnmatchedLedger []*Entry
}

// Run pairs the external transactions against the index.
//
// The search expands in rings: delta 0, then +1, -1, +2, -2, ... up to
// MaxOffset. At each ring every still-unpaired external transaction
// probes the bucket at matching_date+delta and claims the first
// unmatched amount-equal entry. Greedy first-fit, no backtracking:
// same-day duplicates pair in bucket order, which is all
// reconciliation needs.
func (c *Correlator) Run(list external.List, mode external.MatchMode) Result {
	working := make([]external.Transaction, len(list.Transactions))
	copy(working, list.Transactions)

	matched := 0
	for _, delta := range ringDeltas(c.config.MaxOffset) {
		if len(working) == 0 {
			break
		}
		remaining := working[:0]
		for _, tx := range working {
			date := tx.MatchingDate(mode)
			if date == nil {
				// Dateless transactions never query the index.
				remaining = append(remaining, tx)
				continue
			}
			target := money.AddDays(*date, delta)
			entry := c.index.findUnmatched(target, tx.Amount)
			if entry == nil || !entry.PairWith(tx) {
				remaining = append(remaining, tx)
				continue
			}
			matched++
			c.logger.Debug("paired transaction",
				slog.String("external", tx.String()),
				slog.String("split", entry.Split.GUID),
				slog.Int("delta_days", delta))
		}
		working = remaining
	}

	return Result{
		MatchedCount:      matched,
		UnmatchedExternal: working,
		UnmatchedLedger:   c.index.UnmatchedWithin(list.MinDate, list.MaxDate),
	}
}

// ringDeltas yields 0, 1, -1, 2, -2, ... maxOffset, -maxOffset.
func ringDeltas(maxOffset int) []int {
	deltas := make([]int, 0, 2*maxOffset+1)
	deltas = append(deltas, 0)
	for d := 1; d <= maxOffset; d++ {
		deltas = append(deltas, d, -d)
	}
	return deltas
}
