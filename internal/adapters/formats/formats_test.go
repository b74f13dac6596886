package formats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacs/financ/internal/domain/money"
)

func TestForName(t *testing.T) {
	f, err := ForName("")
	require.NoError(t, err)
	assert.Equal(t, OTP, f)

	f, err = ForName("OTP")
	require.NoError(t, err)
	assert.Equal(t, OTP, f)

	f, err = ForName("granit")
	require.NoError(t, err)
	assert.Equal(t, Granit, f)

	_, err = ForName("revolut")
	require.Error(t, err)
}

func TestExtractDate(t *testing.T) {
	d := ExtractDate("XYZ. PD.  2016.10.20 4488620465")
	require.NotNil(t, d)
	assert.Equal(t, money.Day(2016, time.October, 20), *d)

	assert.Nil(t, ExtractDate(""))
	assert.Nil(t, ExtractDate("no date here"))
	assert.Nil(t, ExtractDate("2016.13.45 invalid"))
}

func TestParseOTP(t *testing.T) {
	rows := [][]string{
		{},
		{"", "header row skipped"},
		{"T1", "card", "2024.01.10.", "2024.01.11.", "-4250,00", "", "111222", "CORNER STORE", "purchase 2024.01.08 ref 123"},
		{"T2", "transfer", "2024.01.12.", "", "15 000", "", "", "", "incoming"},
	}
	txs := OTP.ParseRows(rows)
	require.Len(t, txs, 2)

	first := txs[0]
	require.NotNil(t, first.PrimaryDate)
	assert.Equal(t, money.Day(2024, time.January, 10), *first.PrimaryDate)
	require.NotNil(t, first.SecondaryDate)
	assert.Equal(t, money.Day(2024, time.January, 8), *first.SecondaryDate)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("-4250.00")))
	assert.Equal(t, "card", first.Category)
	assert.Equal(t, "111222", first.CounterpartyID)
	assert.Equal(t, "CORNER STORE", first.CounterpartyName)

	second := txs[1]
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("15000")))
	assert.Nil(t, second.SecondaryDate)
}

func TestParseGranit(t *testing.T) {
	rows := [][]string{
		{"Date", "Amount", "", "", "", "", "Category"},
		{"", "-1 234,56", "", "", "2024-02-05", "", "groceries", "KISBOLT U'JPEST", "87654321", "", "", "weekly shopping"},
		{"", "not a number"},
	}
	txs := Granit.ParseRows(rows)
	require.Len(t, txs, 1)

	tx := txs[0]
	require.NotNil(t, tx.PrimaryDate)
	assert.Equal(t, money.Day(2024, time.February, 5), *tx.PrimaryDate)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-1234.56")))
	assert.Equal(t, "kisbolt újpest", tx.CounterpartyName)
	assert.Equal(t, "kisbolt újpest weekly shopping", tx.Description)
	assert.Equal(t, "87654321", tx.CounterpartyID)
	assert.Nil(t, tx.SecondaryDate)
}

func TestParseGranit_NameFallbackColumn(t *testing.T) {
	rows := [][]string{
		{"", "-10,00", "", "", "2024-02-05", "", "", "", "", "fallback name"},
	}
	txs := Granit.ParseRows(rows)
	require.Len(t, txs, 1)
	assert.Equal(t, "fallback name", txs[0].CounterpartyName)
}

func TestRepairAccents(t *testing.T) {
	assert.Equal(t, "kovács bt", repairAccents("KOVA'CS BT"))
	assert.Equal(t, "Zöldség", repairAccents("Zo:ldség"))
	assert.Equal(t, "", repairAccents(""))
}
