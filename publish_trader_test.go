package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublishTraderTape(t *testing.T) {
	publisher := NewMemoryPublishTrader()
	book := NewOrderBook(WithPublishTrader(publisher))

	require.NoError(t, book.AddOrder(limitOrder(1, Sell, 100.0, 10)))
	require.NoError(t, book.AddOrder(limitOrder(2, Sell, 102.0, 10)))
	require.NoError(t, book.AddOrder(limitOrder(3, Buy, 102.0, 15)))
	require.NoError(t, book.AddOrder(marketOrder(4, Sell, 5)))

	// The buy aggressor hit 10 @ 100 and 5 @ 102 and rested nothing, so the
	// market sell found no bids and traded nothing.
	require.Equal(t, 2, publisher.Count())
	assert.Equal(t, int64(15), publisher.TotalVolume())

	last, ok := publisher.Last()
	require.True(t, ok)
	assert.Equal(t, "102", last.Price.String())
	assert.Equal(t, int64(5), last.Quantity)

	buys := publisher.ByTakerSide(Buy)
	assert.Len(t, buys, 2)
	assert.Empty(t, publisher.ByTakerSide(Sell))

	// VWAP = (10*100 + 5*102) / 15
	assert.Equal(t, "100.6666666666666667", publisher.VWAP().StringFixed(16))
}

func TestMemoryPublishTraderEmpty(t *testing.T) {
	publisher := NewMemoryPublishTrader()

	assert.Equal(t, 0, publisher.Count())
	assert.Equal(t, int64(0), publisher.TotalVolume())
	assert.True(t, publisher.VWAP().IsZero())

	_, ok := publisher.Last()
	assert.False(t, ok)
}
