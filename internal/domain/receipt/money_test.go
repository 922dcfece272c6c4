package receipt

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain integer", "1500", "1500"},
		{"decimal", "1500.50", "1500.5"},
		{"thousands separators", "1,500.00", "1500"},
		{"currency prefix", "PHP 2,000", "2000"},
		{"peso sign", "₱350.25", "350.25"},
		{"trailing dot mid-edit", "12.", "12"},
		{"surrounding whitespace", "  750  ", "750"},
		{"negative", "-200", "-200"},
		{"empty string", "", "0"},
		{"garbage", "abc", "0"},
		{"double dot", "1.2.3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			got := ParseMoney(tt.input)
			assert.True(t, got.Equal(want), "ParseMoney(%q) = %s, want %s", tt.input, got, want)
		})
	}
}

func TestMoneyFromFloat(t *testing.T) {
	assert.True(t, MoneyFromFloat(1500).Equal(decimal.NewFromInt(1500)))
	assert.True(t, MoneyFromFloat(math.NaN()).IsZero())
	assert.True(t, MoneyFromFloat(math.Inf(1)).IsZero())
	assert.True(t, MoneyFromFloat(math.Inf(-1)).IsZero())
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0.00"},
		{"1500", "1,500.00"},
		{"1234567.891", "1,234,567.89"},
		{"-9876.5", "-9,876.50"},
		{"999", "999.00"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, FormatAmount(d))
	}
}
