package formats

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkovacs/financ/internal/domain/money"
)

// cell returns the trimmed cell at the given column, or "" when the
// row is shorter. Spreadsheet readers drop trailing empty cells, so
// rows of one sheet can have different lengths.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// cellDate parses a yyyy.mm.dd. cell, the layout OTP exports use.
func cellDate(row []string, col int) *time.Time {
	return parseCellDate(cell(row, col), "2006.01.02.")
}

// cellISODate parses a yyyy-mm-dd cell.
func cellISODate(row []string, col int) *time.Time {
	return parseCellDate(cell(row, col), "2006-01-02")
}

func parseCellDate(s, layout string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}
	day := money.Day(t.Year(), t.Month(), t.Day())
	return &day
}

// cellDecimal parses a numeric cell. Space and non-breaking-space
// thousands separators are stripped, a decimal comma becomes a dot.
func cellDecimal(row []string, col int) *decimal.Decimal {
	s := cell(row, col)
	if s == "" {
		return nil
	}
	s = strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

var spendingDateRe = regexp.MustCompile(`(\d{4})\.(\d{2})\.(\d{2})`)

// ExtractDate pulls a yyyy.mm.dd spending date out of free text, the
// way card statements embed the purchase date in the description.
func ExtractDate(s string) *time.Time {
	m := spendingDateRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	t, err := time.Parse("2006.01.02", m[1]+"."+m[2]+"."+m[3])
	if err != nil {
		return nil
	}
	day := money.Day(t.Year(), t.Month(), t.Day())
	return &day
}
