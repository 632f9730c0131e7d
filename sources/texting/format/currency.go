package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currencify renders a whole-unit price followed by its currency code, e.g. "50,000 UZS".
func Currencify(price int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Numberify(price)
	}
	return Numberify(price) + " " + currency
}

func CurrencifyDecimal(value decimal.Decimal, currency string) string {
	if value.IsInteger() {
		return Currencify(value.IntPart(), currency)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	return strings.TrimSpace(Decimalify(value) + " " + currency)
}

// Datify renders a moment in the given location; a nil location means UTC.
func Datify(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02 15:04")
}
