package handlers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{0.4523, "$0.45"},
		{-0.001, "$0.00"},
		{999.995, "$1,000.00"},
		{33617.075, "$33,617.08"},
		{-546.8, "-$546.80"},
		{1e20, "$100,000,000,000,000,000,000.00"},
		{-1e20, "-$100,000,000,000,000,000,000.00"},
		{math.NaN(), "$0.00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, usd(c.in), "%v", c.in)
	}
	assert.Equal(t, "+$1,117.08", signedUSD(1117.075))
}
