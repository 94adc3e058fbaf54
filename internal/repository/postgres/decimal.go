package postgres

import "github.com/shopspring/decimal"

// decimalFromString parses a NUMERIC column scanned as text. Columns are
// NOT NULL so a parse failure only happens on storage corruption; the
// zero value is returned in that case.
func decimalFromString(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}
