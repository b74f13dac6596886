// Command financ works against a GnuCash SQLite ledger: list accounts,
// transactions and commodities, and correlate the ledger with a bank
// spreadsheet export.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mkovacs/financ/internal/adapters/formats"
	"github.com/mkovacs/financ/internal/cli"
	"github.com/mkovacs/financ/internal/domain/correlator"
	"github.com/mkovacs/financ/internal/domain/external"
	"github.com/mkovacs/financ/internal/domain/fixup"
	"github.com/mkovacs/financ/internal/domain/money"
	"github.com/mkovacs/financ/internal/infrastructure/config"
	"github.com/mkovacs/financ/internal/infrastructure/logging"
	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "accounts":
		err = runAccounts(os.Args[2:])
	case "transactions":
		err = runTransactions(os.Args[2:])
	case "commodities":
		err = runCommodities(os.Args[2:])
	case "correlate":
		err = runCorrelate(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: financ <command> [flags]

Commands:
  accounts      list ledger accounts
  transactions  list splits with their transactions
  commodities   list commodities
  correlate     reconcile the ledger against a bank spreadsheet export

Run 'financ <command> -h' for the command's flags.`)
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	configPath string
	dbPath     string
	verbose    bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Configuration file path")
	fs.StringVar(&c.dbPath, "db", "", "GnuCash SQLite file (overrides config)")
	fs.BoolVar(&c.verbose, "verbose", false, "Enable verbose logging")
}

// setup loads config, builds the logger and opens the ledger.
func (c *commonFlags) setup() (*config.Config, *slog.Logger, *storage.Storage, error) {
	cfg := config.LoadOrEnv(c.configPath)
	if c.verbose {
		cfg.Observability.Logging.Level = "debug"
	}
	logger := logging.NewLogger(cfg.Observability.Logging)

	dbPath := cfg.Ledger.DatabasePath
	if c.dbPath != "" {
		dbPath = c.dbPath
	}
	if dbPath == "" {
		return nil, nil, nil, errors.New("no ledger database configured (use -db, financ.yaml or DATABASE_URL)")
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, store, nil
}

// selectorFlags registers one account selector under a flag prefix.
func selectorFlags(fs *flag.FlagSet, prefix string) *cli.AccountSelector {
	sel := &cli.AccountSelector{}
	fs.StringVar(&sel.Name, prefix+"-name", "", "Account name filter")
	fs.StringVar(&sel.ParentGUID, prefix+"-parent", "", "Account parent guid filter")
	fs.StringVar(&sel.GUID, prefix+"-guid", "", "Account guid filter")
	fs.StringVar(&sel.Type, prefix+"-type", "", "Account type filter")
	return sel
}

func runAccounts(args []string) error {
	fs := flag.NewFlagSet("accounts", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	limit := fs.Int64("limit", storage.DefaultListLimit, "Limit number of accounts")
	sel := selectorFlags(fs, "account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, _, store, err := common.setup()
	if err != nil {
		return err
	}
	defer store.Close()

	accounts, err := store.Accounts(storage.AccountQuery{
		Limit:      *limit,
		Name:       sel.Name,
		ParentGUID: sel.ParentGUID,
		GUID:       sel.GUID,
		Type:       sel.Type,
	})
	if err != nil {
		return err
	}
	cli.PrintAccounts(os.Stdout, accounts)
	return nil
}

func runCommodities(args []string) error {
	fs := flag.NewFlagSet("commodities", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	limit := fs.Int64("limit", storage.DefaultListLimit, "Limit number of commodities")
	name := fs.String("name", "", "Commodity mnemonic filter")
	namespace := fs.String("commodity-type", "", "Commodity namespace filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, _, store, err := common.setup()
	if err != nil {
		return err
	}
	defer store.Close()

	commodities, err := store.Commodities(storage.CommodityQuery{
		Limit:     *limit,
		Name:      *name,
		Namespace: *namespace,
	})
	if err != nil {
		return err
	}
	cli.PrintCommodities(os.Stdout, commodities)
	return nil
}

func runTransactions(args []string) error {
	fs := flag.NewFlagSet("transactions", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	limit := fs.Int64("limit", storage.DefaultListLimit, "Limit number of splits")
	txid := fs.String("transaction-id", "", "Splits of the given transaction")
	before := fs.String("before", "", "Splits before the given date (yyyy-mm-dd)")
	after := fs.String("after", "", "Splits after the given date (yyyy-mm-dd)")
	memo := fs.String("memo", "", "Splits with the given memo")
	description := fs.String("description", "", "Splits with the given description")
	moveSplit := fs.Bool("move-split", false, "Move the found splits to the target account")
	sel := selectorFlags(fs, "account")
	targetSel := selectorFlags(fs, "target-account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, logger, store, err := common.setup()
	if err != nil {
		return err
	}
	defer store.Close()

	q := storage.TransactionQuery{
		Limit:       *limit,
		TxGUID:      *txid,
		Memo:        *memo,
		Description: *description,
	}
	if *after != "" {
		d, err := money.ParseDay(*after)
		if err != nil {
			return err
		}
		q.After = &d
	}
	if *before != "" {
		d, err := money.ParseDay(*before)
		if err != nil {
			return err
		}
		q.Before = &d
	}

	var account *storage.Account
	if !sel.IsZero() {
		resolved, err := sel.ResolveOne(store)
		if err != nil {
			return err
		}
		account = &resolved
		q.AccountGUID = resolved.GUID
		fmt.Printf("Listing transactions in %s\n", resolved.Name)
	}

	pairs, err := store.SplitTransactions(q)
	if err != nil {
		return err
	}

	if !*moveSplit {
		cli.PrintSplits(os.Stdout, pairs)
		return nil
	}

	target, err := targetSel.ResolveOne(store)
	if err != nil {
		return fmt.Errorf("unable to determine the move-split target account: %w", err)
	}
	if account != nil && account.CommodityGUID != target.CommodityGUID {
		return fmt.Errorf("different commodities, unable to transfer between %s and %s",
			account.Name, target.Name)
	}

	fmt.Printf("Moving %d splits to %s\n", len(pairs), target.Name)
	for _, pair := range pairs {
		if err := store.MoveSplit(pair.Split.GUID, target.GUID); err != nil {
			return err
		}
		logger.Info("moved split",
			slog.String("split", pair.Split.GUID),
			slog.String("target", target.GUID))
	}
	return nil
}

func runCorrelate(args []string) error {
	fs := flag.NewFlagSet("correlate", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	input := fs.String("input", "", "Spreadsheet with the transactions to correlate (required)")
	sheetName := fs.String("sheet-name", "", "Sheet name (first sheet when empty)")
	formatName := fs.String("format", "", "Bank format of the sheet (otp, granit)")
	byBookingDate := fs.Bool("by-booking-date", false, "Match by booking date instead of spending date")
	listExtra := fs.Bool("list-extra-transactions", false, "List ledger transactions missing from the external source")
	fix := fs.Bool("fix", false, "Interactively create ledger transactions for unmatched rows")
	sel := selectorFlags(fs, "account")
	fromSel := selectorFlags(fs, "from-account")
	feeSel := selectorFlags(fs, "fee-account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return errors.New("correlate needs -input")
	}

	format, err := formats.ForName(*formatName)
	if err != nil {
		return err
	}
	mode := external.BySpending
	if *byBookingDate {
		mode = external.ByBooking
	}

	cfg, logger, store, err := common.setup()
	if err != nil {
		return err
	}
	defer store.Close()

	account, err := sel.ResolveOne(store)
	if err != nil {
		return err
	}

	workbook, err := formats.OpenWorkbook(*input)
	if err != nil {
		return err
	}
	defer workbook.Close()

	list, err := workbook.Load(*sheetName, format, mode)
	if err != nil {
		return err
	}

	pairs, err := store.SplitTransactions(storage.ForAccountLoad(account.GUID, cfg.Correlator.LoadLimit))
	if err != nil {
		return err
	}
	index, err := correlator.BuildIndex(pairs)
	if err != nil {
		return err
	}
	logger.Debug("loaded ledger entries",
		slog.String("account", account.Name),
		slog.Int("entries", index.Len()))

	result := correlator.New(index, correlator.Config{MaxOffset: cfg.Correlator.MaxDateOffset}, logger).
		Run(list, mode)

	cli.PrintCorrelationSummary(os.Stdout, list, result)
	cli.PrintUnmatched(os.Stdout, result, *listExtra)

	if !*fix || len(result.UnmatchedExternal) == 0 {
		return nil
	}

	counterparty, err := fromSel.ResolveOne(store)
	if err != nil {
		return fmt.Errorf("counterparty account: %w", err)
	}
	var feeAccount *storage.Account
	if !feeSel.IsZero() {
		resolved, err := feeSel.ResolveOne(store)
		if err != nil {
			return fmt.Errorf("fee account: %w", err)
		}
		feeAccount = &resolved
	}

	responder := cli.NewPromptResponder(os.Stdin, os.Stdout)
	driver := fixup.New(store, account, counterparty, feeAccount, mode, responder, logger)
	summary, err := driver.Run(result.UnmatchedExternal)
	if err != nil {
		return err
	}
	fmt.Printf("Fix-up: created=%d skipped=%d failed=%d", summary.Created, summary.Skipped, summary.Failed)
	if summary.Aborted {
		fmt.Print(" (aborted)")
	}
	fmt.Println()
	return nil
}
