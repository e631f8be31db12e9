package match

import (
	"testing"

	"github.com/shopspring/decimal"
)

func BenchmarkAddLimitOrder(b *testing.B) {
	book := NewOrderBook()
	price := decimal.NewFromInt(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = book.AddOrder(NewOrder(int64(i), Sell, Limit, price, 10))
	}
}

func BenchmarkMatchMarketOrder(b *testing.B) {
	book := NewOrderBook()
	for i := 0; i < 10000; i++ {
		_ = book.AddOrder(NewOrder(int64(i), Sell, Limit, decimal.NewFromInt(int64(100+i%10)), 10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = book.AddOrder(NewOrder(int64(20000+i), Buy, Market, decimal.Zero, 5))

		// Keep liquidity from draining during long runs.
		if i%2000 == 1999 {
			b.StopTimer()
			for j := 0; j < 1000; j++ {
				_ = book.AddOrder(NewOrder(int64(50000+i+j), Sell, Limit, decimal.NewFromInt(int64(100+j%10)), 10))
			}
			b.StartTimer()
		}
	}
}

func BenchmarkSnapshot(b *testing.B) {
	book := NewOrderBook()
	for i := 0; i < 1000; i++ {
		_ = book.AddOrder(NewOrder(int64(i), Buy, Limit, decimal.NewFromInt(int64(i%50)), 10))
		_ = book.AddOrder(NewOrder(int64(10000+i), Sell, Limit, decimal.NewFromInt(int64(100+i%50)), 10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = book.Snapshot(DefaultDepthLimit)
	}
}

func BenchmarkOrderQueue(b *testing.B) {
	q := NewOrderQueue()
	order := NewOrder(1, Buy, Limit, decimal.NewFromInt(100), 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(order)
		_, _ = q.Pop()
	}
}
