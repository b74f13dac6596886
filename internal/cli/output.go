package cli

import (
	"fmt"
	"io"

	"github.com/mkovacs/financ/internal/domain/correlator"
	"github.com/mkovacs/financ/internal/domain/external"
	"github.com/mkovacs/financ/internal/domain/money"
	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

// PrintAccounts prints the account list the way the accounts command
// renders it.
func PrintAccounts(w io.Writer, accounts []storage.Account) {
	fmt.Fprintf(w, "Displaying %d accounts\n", len(accounts))
	for _, a := range accounts {
		fmt.Fprintln(w, a)
	}
}

// PrintCommodities prints the commodity list.
func PrintCommodities(w io.Writer, commodities []storage.Commodity) {
	fmt.Fprintf(w, "Displaying %d commodities\n", len(commodities))
	for _, c := range commodities {
		fmt.Fprintln(w, c)
	}
}

// PrintSplits prints split+transaction pairs.
func PrintSplits(w io.Writer, pairs []storage.SplitTransaction) {
	fmt.Fprintf(w, "Displaying %d splits\n", len(pairs))
	for _, p := range pairs {
		fmt.Fprintf(w, "[%s]<%s> - %s - %s\n", p.Split.AccountGUID, p.Split.TxGUID, p.Transaction, p.Split)
	}
}

// PrintCorrelationSummary reports counts and the external date range
// before any fix-up runs, so the operator can judge plausibility first.
func PrintCorrelationSummary(w io.Writer, list external.List, result correlator.Result) {
	fmt.Fprintf(w, "Loaded %d external transactions", len(list.Transactions))
	if list.MinDate != nil && list.MaxDate != nil {
		fmt.Fprintf(w, " covering %s .. %s", money.FormatDay(*list.MinDate), money.FormatDay(*list.MaxDate))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Matched: %d Unmatched external: %d Unmatched ledger: %d\n",
		result.MatchedCount, len(result.UnmatchedExternal), len(result.UnmatchedLedger))
}

// PrintUnmatched lists both unmatched sides of a correlation result.
func PrintUnmatched(w io.Writer, result correlator.Result, listLedger bool) {
	if len(result.UnmatchedExternal) > 0 {
		fmt.Fprintln(w, "Unmatched external transactions:")
		for _, tx := range result.UnmatchedExternal {
			fmt.Fprintf(w, "  %s\n", tx)
		}
	}
	if listLedger && len(result.UnmatchedLedger) > 0 {
		fmt.Fprintln(w, "Ledger transactions missing from the external source:")
		for _, entry := range result.UnmatchedLedger {
			fmt.Fprintf(w, "  %s\n", entry)
		}
	}
}
