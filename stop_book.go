package match

import (
	"github.com/igrmk/treemap/v2"
	"github.com/shopspring/decimal"
)

// stopLevel is the FIFO of parked stops sharing one stop price.
type stopLevel struct {
	orders []*Order
}

// stopBook holds untriggered stop orders ordered by stop price. Buy stops are
// ordered ascending (lowest stop price triggers first); sell stops descending
// (highest first). The head is always the next stop to trigger.
type stopBook struct {
	side   Side
	levels *treemap.TreeMap[decimal.Decimal, *stopLevel]
	count  int64
}

func newBuyStopBook() *stopBook {
	return &stopBook{
		side: Buy,
		levels: treemap.NewWithKeyCompare[decimal.Decimal, *stopLevel](func(a, b decimal.Decimal) bool {
			return a.LessThan(b)
		}),
	}
}

func newSellStopBook() *stopBook {
	return &stopBook{
		side: Sell,
		levels: treemap.NewWithKeyCompare[decimal.Decimal, *stopLevel](func(a, b decimal.Decimal) bool {
			return a.GreaterThan(b)
		}),
	}
}

// park appends an order to the FIFO at its stop price.
func (b *stopBook) park(order *Order) {
	level, ok := b.levels.Get(order.StopPrice)
	if !ok {
		level = &stopLevel{}
		b.levels.Set(order.StopPrice, level)
	}
	level.orders = append(level.orders, order)
	b.count++
}

// peekPrice returns the stop price of the next stop to trigger.
func (b *stopBook) peekPrice() (decimal.Decimal, bool) {
	it := b.levels.Iterator()
	if !it.Valid() {
		return decimal.Zero, false
	}
	return it.Key(), true
}

// popHead removes and returns the next stop to trigger, in FIFO order within
// its level.
func (b *stopBook) popHead() *Order {
	it := b.levels.Iterator()
	if !it.Valid() {
		return nil
	}

	price := it.Key()
	level := it.Value()

	order := level.orders[0]
	level.orders = level.orders[1:]
	b.count--

	if len(level.orders) == 0 {
		b.levels.Del(price)
	}

	return order
}

// size returns the number of parked stops.
func (b *stopBook) size() int64 {
	return b.count
}
