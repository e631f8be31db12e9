package match

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTradeRingEviction(t *testing.T) {
	r := newTradeRing(5)
	assert.Equal(t, 0, r.len())
	assert.Empty(t, r.snapshot())

	for i := int64(1); i <= 7; i++ {
		r.push(Trade{Price: decimal.NewFromInt(i), Quantity: i, TakerSide: Buy})
	}

	assert.Equal(t, 5, r.len())

	trades := r.snapshot()
	assert.Len(t, trades, 5)

	// Newest first, oldest two evicted.
	for i, trade := range trades {
		assert.Equal(t, int64(7-i), trade.Quantity)
	}
}

func TestTradeRingPartialFill(t *testing.T) {
	r := newTradeRing(5)

	r.push(Trade{Quantity: 1, TakerSide: Buy})
	r.push(Trade{Quantity: 2, TakerSide: Sell})

	trades := r.snapshot()
	assert.Len(t, trades, 2)
	assert.Equal(t, int64(2), trades[0].Quantity)
	assert.Equal(t, Sell, trades[0].TakerSide)
	assert.Equal(t, int64(1), trades[1].Quantity)
}
