package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/pkg/money"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"27.4576", "27.46"},
		{"27.454", "27.45"},
		{"27.455", "27.46"}, // mitad hacia arriba
		{"0.005", "0.01"},
		{"32.40", "32.4"},
		{"0", "0"},
	}
	for _, tc := range cases {
		got := money.Round2(dec(tc.in))
		assert.True(t, got.Equal(dec(tc.want)), "Round2(%s) = %s, esperado %s", tc.in, got, tc.want)
	}
}

func TestRoundUnit(t *testing.T) {
	assert.True(t, money.RoundUnit(dec("212.40")).Equal(dec("212")))
	assert.True(t, money.RoundUnit(dec("212.50")).Equal(dec("213")))
	assert.True(t, money.RoundUnit(dec("212.61")).Equal(dec("213")))
}

func TestSafeDiv_DenominadorCero(t *testing.T) {
	// División por cero debe dar 0, nunca panic ni NaN.
	got := money.SafeDiv(dec("10"), decimal.Zero)
	assert.True(t, got.IsZero())

	got = money.SafeDiv(dec("10"), dec("4"))
	assert.True(t, got.Equal(dec("2.5")))
}

func TestPercent(t *testing.T) {
	// 200 × 10% = 20
	assert.True(t, money.Percent(dec("200"), dec("10")).Equal(dec("20")))
	// 180 × 18% = 32.40
	assert.True(t, money.Percent(dec("180"), dec("18")).Equal(dec("32.4")))
	// porcentaje cero
	assert.True(t, money.Percent(dec("180"), decimal.Zero).IsZero())
}

func TestClampPercent(t *testing.T) {
	assert.True(t, money.ClampPercent(dec("-5")).IsZero())
	assert.True(t, money.ClampPercent(dec("150")).Equal(dec("100")))
	assert.True(t, money.ClampPercent(dec("42.5")).Equal(dec("42.5")))
}
