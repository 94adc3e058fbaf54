package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecimalFromString(t *testing.T) {
	if got := decimalFromString("123.45"); !got.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("got %s, want 123.45", got)
	}
	if got := decimalFromString("not-a-number"); !got.IsZero() {
		t.Fatalf("got %s for unparseable input, want 0", got)
	}
}
