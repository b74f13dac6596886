// Package formats adapts bank-specific spreadsheet layouts into
// normalized external transactions. Each supported bank is one variant
// of the Format enum; the correlator never sees a bank-specific row.
package formats

import (
	"fmt"
	"strings"

	"github.com/mkovacs/financ/internal/domain/external"
)

// Format identifies a supported bank export layout.
type Format int

const (
	// OTP is the OTP Bank account-history XLSX export.
	OTP Format = iota
	// Granit is the Granit Bank account-history XLSX export.
	Granit
)

// ForName resolves a format by its CLI name. An empty name defaults
// to OTP.
func ForName(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "otp":
		return OTP, nil
	case "granit":
		return Granit, nil
	default:
		return 0, fmt.Errorf("formats: unknown format %q", name)
	}
}

func (f Format) String() string {
	switch f {
	case OTP:
		return "otp"
	case Granit:
		return "granit"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseRows converts raw sheet rows into normalized transactions.
// Rows that do not look like transaction rows (headers, footers,
// padding) are skipped.
func (f Format) ParseRows(rows [][]string) []external.Transaction {
	switch f {
	case Granit:
		return parseGranit(rows)
	default:
		return parseOTP(rows)
	}
}

// parseOTP maps the OTP layout: category col 1, settlement date col 2,
// amount col 4, counterparty id/name cols 6/7, description col 8. The
// spending date is embedded in the description text.
func parseOTP(rows [][]string) []external.Transaction {
	var out []external.Transaction
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		amount := cellDecimal(row, 4)
		if amount == nil {
			continue
		}
		description := cell(row, 8)
		out = append(out, external.Transaction{
			PrimaryDate:      cellDate(row, 2),
			SecondaryDate:    ExtractDate(description),
			Amount:           *amount,
			Category:         cell(row, 1),
			Description:      description,
			CounterpartyID:   cell(row, 6),
			CounterpartyName: cell(row, 7),
		})
	}
	return out
}

// parseGranit maps the Granit layout: amount col 1 (numeric rows
// only), date col 4, category col 6, counterparty name col 7 (falling
// back to col 9), counterparty id col 8, comment col 11. Names arrive
// in a transliterated ASCII form and get their accents repaired.
func parseGranit(rows [][]string) []external.Transaction {
	var out []external.Transaction
	for _, row := range rows {
		amount := cellDecimal(row, 1)
		if amount == nil {
			continue
		}
		name := cell(row, 7)
		if name == "" {
			name = cell(row, 9)
		}
		name = repairAccents(name)
		comment := cell(row, 11)
		out = append(out, external.Transaction{
			PrimaryDate:      cellISODate(row, 4),
			Amount:           *amount,
			Category:         cell(row, 6),
			Description:      joinNonEmpty(name, comment),
			CounterpartyID:   cell(row, 8),
			CounterpartyName: name,
		})
	}
	return out
}

func joinNonEmpty(first, second string) string {
	switch {
	case first == "":
		return second
	case second == "":
		return first
	default:
		return first + " " + second
	}
}

var accentReplacer = strings.NewReplacer(
	"A'", "Á", "I'", "Í", "E'", "É", "O'", "Ó", "U'", "Ú", "U:", "Ü", "O:", "Ö",
	"a'", "á", "i'", "í", "e'", "é", "o'", "ó", "u'", "ú", "u:", "ü", "o:", "ö",
)

// repairAccents undoes the bank's ASCII transliteration of Hungarian
// accented characters. All-uppercase names are lowercased first, the
// way they appear in the actual exports.
func repairAccents(s string) string {
	if s != "" && s == strings.ToUpper(s) {
		s = strings.ToLower(s)
	}
	return accentReplacer.Replace(s)
}
