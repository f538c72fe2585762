package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeFare(t *testing.T) {
	cases := []struct {
		base       float64
		gst, total float64
	}{
		{1000, 50, 1050},
		{2500, 125, 2625},
		{999, 49.95, 1048.95},
		{333.33, 16.67, 350},
		{0, 0, 0},
		{0.1, 0.01, 0.11},
	}
	for _, tc := range cases {
		got := ComputeFare(tc.base)
		assert.Equal(t, tc.gst, got.GST, "gst for %v", tc.base)
		assert.Equal(t, tc.total, got.Total, "total for %v", tc.base)
	}
}

func TestComputeFareTotalIsBasePlusGST(t *testing.T) {
	for _, base := range []float64{1, 17.5, 123.45, 999.99, 4321.1, 150000} {
		f := ComputeFare(base)
		sum := decimal.NewFromFloat(f.Base).Add(decimal.NewFromFloat(f.GST)).Round(2)
		assert.True(t, sum.Equal(decimal.NewFromFloat(f.Total)), "base %v: %v + %v != %v", base, f.Base, f.GST, f.Total)
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.13, RoundMoney(10.125))
	assert.Equal(t, 10.0, RoundMoney(9.999))
}
