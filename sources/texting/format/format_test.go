package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumberifyGroupsThousands(t *testing.T) {
	assert.Equal(t, "0", Numberify(0))
	assert.Equal(t, "1,234,567", Numberify(1234567))
	assert.Equal(t, "12.50", Decimalify(decimal.RequireFromString("12.5")))
}

func TestCurrencify(t *testing.T) {
	assert.Equal(t, "50,000 UZS", Currencify(50000, "uzs"))
	assert.Equal(t, "900", Currencify(900, ""))
	assert.Equal(t, "50,000 UZS", CurrencifyDecimal(decimal.NewFromInt(50000), "UZS"))
	assert.Equal(t, "9.99 USD", CurrencifyDecimal(decimal.RequireFromString("9.99"), "usd"))
}

func TestDatifyUsesLocation(t *testing.T) {
	moment := time.Date(2026, time.March, 2, 20, 30, 0, 0, time.UTC)
	tashkent := time.FixedZone("Asia/Tashkent", 5*60*60)

	assert.Equal(t, "2026-03-02 20:30", Datify(moment, nil))
	assert.Equal(t, "2026-03-03 01:30", Datify(moment, tashkent))
}
