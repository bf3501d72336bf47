package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotesReturnsCopy(t *testing.T) {
	q := Quotes()
	require.Len(t, q, 5)
	q[0].Price = 1

	assert.Equal(t, 67234.15, Quotes()[0].Price)
}

func TestThemeLookup(t *testing.T) {
	th, ok := Theme(DefaultTheme)
	require.True(t, ok)
	assert.Equal(t, "Zinc", th.Name)

	_, ok = Theme("neon")
	assert.False(t, ok)
	assert.Len(t, Themes(), 3)
}
