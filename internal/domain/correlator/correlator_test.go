package correlator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacs/financ/internal/domain/external"
	"github.com/mkovacs/financ/internal/domain/money"
	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

func ledgerPair(splitGUID, postDate, amount string) storage.SplitTransaction {
	d := decimal.RequireFromString(amount)
	denominated := money.Denominate(d, 100)
	return storage.SplitTransaction{
		Split: storage.Split{
			GUID:          splitGUID,
			TxGUID:        "tx-" + splitGUID,
			AccountGUID:   "acc-main",
			ValueNum:      denominated.Num,
			ValueDenom:    denominated.Denom,
			QuantityNum:   denominated.Num,
			QuantityDenom: denominated.Denom,
		},
		Transaction: storage.Transaction{
			GUID:     "tx-" + splitGUID,
			PostDate: postDate + " 00:00:00",
		},
	}
}

func externalTx(day *time.Time, amount string) external.Transaction {
	return external.Transaction{
		PrimaryDate: day,
		Amount:      decimal.RequireFromString(amount),
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := money.Day(y, m, d)
	return &t
}

func runCorrelation(t *testing.T, pairs []storage.SplitTransaction, txs []external.Transaction, maxOffset int) (*Index, Result) {
	t.Helper()
	idx, err := BuildIndex(pairs)
	require.NoError(t, err)
	list := external.NewList(txs, external.ByBooking)
	result := New(idx, Config{MaxOffset: maxOffset}, nil).Run(list, external.ByBooking)
	return idx, result
}

func TestRun_ExactDateMatch(t *testing.T) {
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{ledgerPair("s1", "2024-01-10", "-42.50")},
		[]external.Transaction{externalTx(datePtr(2024, time.January, 10), "-42.50")},
		10)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Empty(t, result.UnmatchedExternal)
	assert.Empty(t, result.UnmatchedLedger)
}

func TestRun_MatchAtPlusThree(t *testing.T) {
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{ledgerPair("s1", "2024-01-10", "-42.50")},
		[]external.Transaction{externalTx(datePtr(2024, time.January, 13), "-42.50")},
		10)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Empty(t, result.UnmatchedExternal)
	assert.Empty(t, result.UnmatchedLedger)
}

func TestRun_OffsetBeyondMax(t *testing.T) {
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{ledgerPair("s1", "2024-01-10", "-42.50")},
		[]external.Transaction{externalTx(datePtr(2024, time.January, 25), "-42.50")},
		10)
	assert.Equal(t, 0, result.MatchedCount)
	assert.Len(t, result.UnmatchedExternal, 1)
}

func TestRun_EarlierRingWins(t *testing.T) {
	// Two externals share the amount. The one whose date lands on the
	// ledger date at delta=0 must claim the entry; the one that would
	// only reach it at delta=+3 stays unmatched.
	entryDate := datePtr(2024, time.January, 10)
	offDate := datePtr(2024, time.January, 7)
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{ledgerPair("s1", "2024-01-10", "-5.00")},
		[]external.Transaction{
			externalTx(offDate, "-5.00"),
			externalTx(entryDate, "-5.00"),
		},
		10)
	assert.Equal(t, 1, result.MatchedCount)
	require.Len(t, result.UnmatchedExternal, 1)
	assert.Equal(t, *offDate, *result.UnmatchedExternal[0].PrimaryDate)
}

func TestRun_ExactAmountOnly(t *testing.T) {
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{ledgerPair("s1", "2024-01-10", "-10.00")},
		[]external.Transaction{externalTx(datePtr(2024, time.January, 10), "-10.001")},
		10)
	assert.Equal(t, 0, result.MatchedCount)
	assert.Len(t, result.UnmatchedExternal, 1)
	assert.Len(t, result.UnmatchedLedger, 1)
}

func TestRun_DatelessNeverMatches(t *testing.T) {
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{ledgerPair("s1", "2024-02-01", "-10.00")},
		[]external.Transaction{externalTx(nil, "-10.00")},
		10)
	assert.Equal(t, 0, result.MatchedCount)
	assert.Len(t, result.UnmatchedExternal, 1)
	// No date bounds: every unmatched ledger entry is reported.
	assert.Len(t, result.UnmatchedLedger, 1)
}

func TestRun_AtMostOneMatchPerEntry(t *testing.T) {
	day := datePtr(2024, time.January, 10)
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{ledgerPair("s1", "2024-01-10", "-5.00")},
		[]external.Transaction{
			externalTx(day, "-5.00"),
			externalTx(day, "-5.00"),
		},
		10)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Len(t, result.UnmatchedExternal, 1)
}

func TestRun_RerunDoesNotRepair(t *testing.T) {
	idx, err := BuildIndex([]storage.SplitTransaction{ledgerPair("s1", "2024-01-10", "-5.00")})
	require.NoError(t, err)

	tx := externalTx(datePtr(2024, time.January, 10), "-5.00")
	list := external.NewList([]external.Transaction{tx}, external.ByBooking)

	first := New(idx, Config{}, nil).Run(list, external.ByBooking)
	assert.Equal(t, 1, first.MatchedCount)

	// Same index, second pass: the entry is already claimed.
	second := New(idx, Config{}, nil).Run(list, external.ByBooking)
	assert.Equal(t, 0, second.MatchedCount)
	assert.Len(t, second.UnmatchedExternal, 1)
}

func TestRun_EmptyExternalIsNoOp(t *testing.T) {
	idx, result := runCorrelation(t,
		[]storage.SplitTransaction{
			ledgerPair("s1", "2024-01-10", "-5.00"),
			ledgerPair("s2", "2024-01-11", "7.00"),
		},
		nil, 10)
	assert.Equal(t, 0, result.MatchedCount)
	assert.Empty(t, result.UnmatchedExternal)
	for _, entry := range idx.UnmatchedWithin(nil, nil) {
		assert.Nil(t, entry.Matched())
	}
}

func TestRun_TieBreakBySplitGUID(t *testing.T) {
	// Two same-day same-amount entries: first-fit pairs the lower guid.
	idx, result := runCorrelation(t,
		[]storage.SplitTransaction{
			ledgerPair("s2", "2024-01-10", "-5.00"),
			ledgerPair("s1", "2024-01-10", "-5.00"),
		},
		[]external.Transaction{externalTx(datePtr(2024, time.January, 10), "-5.00")},
		10)
	assert.Equal(t, 1, result.MatchedCount)
	require.Len(t, result.UnmatchedLedger, 1)
	assert.Equal(t, "s2", result.UnmatchedLedger[0].Split.GUID)
	_ = idx
}

func TestRun_LedgerOutsideExternalRangeNotReported(t *testing.T) {
	// The ledger entry at 2024-03-01 is far outside the external date
	// range and unmatched, but the noise report is bounded by the
	// external min/max.
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{
			ledgerPair("s1", "2024-01-10", "-42.50"),
			ledgerPair("s2", "2024-03-01", "-99.00"),
		},
		[]external.Transaction{externalTx(datePtr(2024, time.January, 10), "-42.50")},
		10)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Empty(t, result.UnmatchedLedger)
}

func TestRun_ShiftedMatchOutsideRange(t *testing.T) {
	// Matching reach is not bounded by the external range: an entry 3
	// days past the max external date can still be claimed.
	_, result := runCorrelation(t,
		[]storage.SplitTransaction{ledgerPair("s1", "2024-01-13", "-42.50")},
		[]external.Transaction{externalTx(datePtr(2024, time.January, 10), "-42.50")},
		10)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Empty(t, result.UnmatchedExternal)
}

func TestBuildIndex_MalformedDate(t *testing.T) {
	pair := ledgerPair("s1", "2024-01-10", "-5.00")
	pair.Transaction.PostDate = "not a date"
	_, err := BuildIndex([]storage.SplitTransaction{pair})
	require.Error(t, err)
}

func TestBuildIndex_ZeroDenominator(t *testing.T) {
	pair := ledgerPair("s1", "2024-01-10", "-5.00")
	pair.Split.QuantityDenom = 0
	_, err := BuildIndex([]storage.SplitTransaction{pair})
	require.Error(t, err)
}

func TestUnmatchedWithin_Bounds(t *testing.T) {
	idx, err := BuildIndex([]storage.SplitTransaction{
		ledgerPair("s1", "2024-01-05", "-1.00"),
		ledgerPair("s2", "2024-01-10", "-2.00"),
		ledgerPair("s3", "2024-01-15", "-3.00"),
	})
	require.NoError(t, err)

	min := money.Day(2024, time.January, 6)
	max := money.Day(2024, time.January, 14)
	within := idx.UnmatchedWithin(&min, &max)
	require.Len(t, within, 1)
	assert.Equal(t, "s2", within[0].Split.GUID)

	assert.Len(t, idx.UnmatchedWithin(nil, &max), 2)
	assert.Len(t, idx.UnmatchedWithin(&min, nil), 2)
	assert.Len(t, idx.UnmatchedWithin(nil, nil), 3)
}

func TestPairWith_OnlyOnce(t *testing.T) {
	entry := &Entry{}
	first := external.Transaction{Description: "first"}
	second := external.Transaction{Description: "second"}
	assert.True(t, entry.PairWith(first))
	assert.False(t, entry.PairWith(second))
	require.NotNil(t, entry.Matched())
	assert.Equal(t, "first", entry.Matched().Description)
}
