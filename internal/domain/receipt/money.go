package receipt

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney coerces a user-entered amount string into a decimal value.
// Editors send partially typed or formatted input ("12.", "1,500.00",
// "PHP 2,000"); anything that cannot be parsed degrades to zero so a
// document mid-edit still aggregates instead of failing.
func ParseMoney(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, ",", "")
	for _, prefix := range []string{"PHP", "Php", "php", "₱"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MoneyFromFloat converts a float amount into a decimal value. Non-finite
// values degrade to zero rather than propagating into totals.
func MoneyFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// FormatAmount renders an amount as a 2-decimal currency string with
// thousands separators, e.g. "1,500.00".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
