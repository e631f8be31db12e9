package match

import (
	"github.com/huandu/skiplist"
	"github.com/shopspring/decimal"
)

// priceUnit is one price level: a FIFO of resting orders sharing a price.
type priceUnit struct {
	totalQuantity int64
	head          *Order
	tail          *Order
	count         int64
}

// queue holds one side of the book: a skip list of price levels ordered
// best-price-first. Level lookup goes through the skip list comparator, so
// decimals that differ only in exponent ("100" vs "100.00") land on the same
// level.
type queue struct {
	side        Side
	totalOrders int64
	depths      int64
	depthList   *skiplist.SkipList
}

// NewBuyerQueue creates a new queue for buy orders (bids).
// The orders are sorted by price in descending order (highest price first).
func NewBuyerQueue() *queue {
	return &queue{
		side: Buy,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)

			if d1.LessThan(d2) {
				return 1
			} else if d1.GreaterThan(d2) {
				return -1
			}

			return 0
		})),
	}
}

// NewSellerQueue creates a new queue for sell orders (asks).
// The orders are sorted by price in ascending order (lowest price first).
func NewSellerQueue() *queue {
	return &queue{
		side: Sell,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)

			if d1.GreaterThan(d2) {
				return 1
			} else if d1.LessThan(d2) {
				return -1
			}

			return 0
		})),
	}
}

// insertOrder inserts an order at its price level. isFront re-inserts a
// partially filled maker at the head so it keeps its time priority.
func (q *queue) insertOrder(order *Order, isFront bool) {
	el := q.depthList.Get(order.Price)
	if el != nil {
		unit, _ := el.Value.(*priceUnit)
		if isFront {
			order.next = unit.head
			order.prev = nil
			if unit.head != nil {
				unit.head.prev = order
			}
			unit.head = order
			if unit.tail == nil {
				unit.tail = order
			}
		} else {
			order.prev = unit.tail
			order.next = nil
			if unit.tail != nil {
				unit.tail.next = order
			}
			unit.tail = order
			if unit.head == nil {
				unit.head = order
			}
		}

		unit.totalQuantity += order.Quantity
		unit.count++
		q.totalOrders++
	} else {
		unit := &priceUnit{
			head:          order,
			tail:          order,
			totalQuantity: order.Quantity,
			count:         1,
		}
		order.next = nil
		order.prev = nil

		q.depthList.Set(order.Price, unit)

		q.totalOrders++
		q.depths++
	}
}

// peekHeadOrder returns the order at the front of the queue (best price) without removing it.
func (q *queue) peekHeadOrder() *Order {
	el := q.depthList.Front()
	if el == nil {
		return nil
	}

	unit, _ := el.Value.(*priceUnit)
	return unit.head
}

// popHeadOrder removes and returns the order at the front of the queue.
// When the level empties it is removed together with the pop.
func (q *queue) popHeadOrder() *Order {
	el := q.depthList.Front()
	if el == nil {
		return nil
	}

	unit, _ := el.Value.(*priceUnit)
	order := unit.head

	unit.head = order.next
	if unit.head != nil {
		unit.head.prev = nil
	} else {
		unit.tail = nil
	}
	order.next = nil
	order.prev = nil

	unit.totalQuantity -= order.Quantity
	unit.count--
	q.totalOrders--

	if unit.count == 0 {
		q.depthList.RemoveElement(el)
		q.depths--
	}

	return order
}

// bestPrice returns the price at the front of the queue.
func (q *queue) bestPrice() (decimal.Decimal, bool) {
	ord := q.peekHeadOrder()
	if ord == nil {
		return decimal.Zero, false
	}
	return ord.Price, true
}

// orderCount returns the total number of orders in the queue.
func (q *queue) orderCount() int64 {
	return q.totalOrders
}

// depthCount returns the number of price levels in the queue.
func (q *queue) depthCount() int64 {
	return q.depths
}

// depth returns the aggregated book depth up to the specified limit,
// best price first.
func (q *queue) depth(limit int) []DepthItem {
	result := make([]DepthItem, 0, limit)

	el := q.depthList.Front()
	for i := 0; i < limit && el != nil; i++ {
		unit, _ := el.Value.(*priceUnit)
		result = append(result, DepthItem{
			Price:    unit.head.Price,
			Quantity: unit.totalQuantity,
		})
		el = el.Next()
	}

	return result
}

// topQuantity sums the resting quantity across the best `levels` price levels.
func (q *queue) topQuantity(levels int) int64 {
	var total int64

	el := q.depthList.Front()
	for i := 0; i < levels && el != nil; i++ {
		unit, _ := el.Value.(*priceUnit)
		total += unit.totalQuantity
		el = el.Next()
	}

	return total
}
