package sim

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	match "github.com/tradesim/matchbook"
)

func TestNextOrderShape(t *testing.T) {
	queue := match.NewOrderQueue()
	var ids atomic.Int64

	s := New(queue, &ids, Config{
		MarketRatio: 0.1,
		StopRatio:   0.1,
		Seed:        42,
	})

	lo := decimal.NewFromInt(98)
	hi := decimal.NewFromInt(102)

	var lastID int64
	for i := 0; i < 1000; i++ {
		order := s.nextOrder()

		assert.Greater(t, order.ID, lastID)
		lastID = order.ID

		assert.Contains(t, []match.Side{match.Buy, match.Sell}, order.Side)
		assert.GreaterOrEqual(t, order.Quantity, int64(1))
		assert.LessOrEqual(t, order.Quantity, int64(100))
		assert.Equal(t, order.Quantity, order.OriginalQuantity)

		switch order.Type {
		case match.Market:
			assert.True(t, order.Price.IsZero())
		case match.Stop:
			assert.True(t, order.StopPrice.GreaterThanOrEqual(lo))
			assert.True(t, order.StopPrice.LessThanOrEqual(hi))
		case match.Limit:
			assert.True(t, order.Price.GreaterThanOrEqual(lo))
			assert.True(t, order.Price.LessThanOrEqual(hi))
		default:
			t.Fatalf("unexpected order type %s", order.Type)
		}
	}
}

func TestSimulatorRunStop(t *testing.T) {
	queue := match.NewOrderQueue()
	var ids atomic.Int64

	s := New(queue, &ids, Config{Seed: 1})
	go s.Run()

	require.Eventually(t, func() bool {
		return queue.Len() > 10
	}, time.Second, time.Millisecond)

	s.Stop()
	s.Wait()

	// All generated orders are valid book input.
	book := match.NewOrderBook()
	queue.Stop()
	for {
		order, ok := queue.Pop()
		if !ok {
			break
		}
		assert.NoError(t, book.AddOrder(order))
	}
}

func TestSharedIDSourceAcrossProducers(t *testing.T) {
	queue := match.NewOrderQueue()
	var ids atomic.Int64

	s1 := New(queue, &ids, Config{Seed: 1})
	s2 := New(queue, &ids, Config{Seed: 2})

	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		o1 := s1.nextOrder()
		o2 := s2.nextOrder()
		assert.False(t, seen[o1.ID])
		assert.False(t, seen[o2.ID])
		seen[o1.ID] = true
		seen[o2.ID] = true
	}
}
