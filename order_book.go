package match

import (
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// OrderBookOption configures an OrderBook.
type OrderBookOption func(*OrderBook)

// WithStopCheckInterval sets how many trades accumulate between stop-book
// evaluations.
func WithStopCheckInterval(n int) OrderBookOption {
	return func(book *OrderBook) {
		if n > 0 {
			book.stopCheckInterval = n
		}
	}
}

// WithTradeRingSize sets how many recent trades the book retains.
func WithTradeRingSize(n int) OrderBookOption {
	return func(book *OrderBook) {
		if n > 0 {
			book.trades = newTradeRing(n)
		}
	}
}

// WithPublishTrader sets the trade publisher. The default discards.
func WithPublishTrader(p PublishTrader) OrderBookOption {
	return func(book *OrderBook) {
		if p != nil {
			book.publishTrader = p
		}
	}
}

// OrderBook is a single-venue limit order book with stop order support.
//
// A single exclusive lock guards the ladders, the stop books and the trade
// ring, so every AddOrder call and every snapshot observes the book in a
// consistent state. The pending-stop counter is atomic and may be read
// outside the lock; it is a hint for the stop-check fast path and correctness
// does not depend on its freshness.
type OrderBook struct {
	mu        sync.Mutex
	bidQueue  *queue
	askQueue  *queue
	buyStops  *stopBook
	sellStops *stopBook

	pendingStops atomic.Int64

	trades        *tradeRing
	publishTrader PublishTrader

	stopCheckInterval int
	tradesSinceCheck  int
	inStopCheck       bool
}

// NewOrderBook creates a new order book instance.
func NewOrderBook(opts ...OrderBookOption) *OrderBook {
	book := &OrderBook{
		bidQueue:          NewBuyerQueue(),
		askQueue:          NewSellerQueue(),
		buyStops:          newBuyStopBook(),
		sellStops:         newSellStopBook(),
		trades:            newTradeRing(DefaultTradeRingSize),
		publishTrader:     NewDiscardPublishTrader(),
		stopCheckInterval: DefaultStopCheckInterval,
	}

	for _, opt := range opts {
		opt(book)
	}

	return book
}

// AddOrder applies an order to the book. Stop orders park until triggered;
// market orders match and drop any residual; limit and iceberg orders match
// and rest any residual. Returns ErrInvalidOrder for malformed input, in
// which case the book is unchanged.
func (book *OrderBook) AddOrder(order *Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}

	book.mu.Lock()
	defer book.mu.Unlock()

	switch order.Type {
	case Stop:
		stops := book.buyStops
		if order.Side == Sell {
			stops = book.sellStops
		}
		stops.park(order)
		book.pendingStops.Add(1)
		return nil
	case Market:
		book.matchMarketOrder(order)
	default: // Limit, Iceberg: iceberg matches and rests on its visible quantity
		book.matchLimitOrder(order)
	}

	book.maybeCheckStops(order.Side)
	return nil
}

// Snapshot returns the aggregated top-of-book up to depth levels per side,
// bids descending and asks ascending by price. depth <= 0 means
// DefaultDepthLimit.
func (book *OrderBook) Snapshot(depth int) (bids, asks []DepthItem) {
	if depth <= 0 {
		depth = DefaultDepthLimit
	}

	book.mu.Lock()
	defer book.mu.Unlock()

	return book.bidQueue.depth(depth), book.askQueue.depth(depth)
}

// LastTrades returns a copy of the retained trades, newest first.
func (book *OrderBook) LastTrades() []Trade {
	book.mu.Lock()
	defer book.mu.Unlock()

	return book.trades.snapshot()
}

// Imbalance returns the signed top-5 depth imbalance in [-1, 1].
// Positive values indicate buy pressure; an empty book yields 0.
func (book *OrderBook) Imbalance() float64 {
	book.mu.Lock()
	defer book.mu.Unlock()

	bidQty := book.bidQueue.topQuantity(DefaultDepthLimit)
	askQty := book.askQueue.topQuantity(DefaultDepthLimit)

	total := bidQty + askQty
	if total == 0 {
		return 0
	}

	return float64(bidQty-askQty) / float64(total)
}

// PendingStops returns the number of parked stop orders. It reads the atomic
// counter and does not take the book lock.
func (book *OrderBook) PendingStops() int64 {
	return book.pendingStops.Load()
}

// Stats returns usage counters for the order book.
func (book *OrderBook) Stats() BookStats {
	book.mu.Lock()
	defer book.mu.Unlock()

	return BookStats{
		AskDepthCount: book.askQueue.depthCount(),
		AskOrderCount: book.askQueue.orderCount(),
		BidDepthCount: book.bidQueue.depthCount(),
		BidOrderCount: book.bidQueue.orderCount(),
		PendingStops:  book.pendingStops.Load(),
	}
}

// matchLimitOrder matches the order against the opposite queue while its
// limit price crosses, best price first, FIFO within each level. Any residual
// quantity rests at the order's limit price.
func (book *OrderBook) matchLimitOrder(order *Order) {
	var myQueue, targetQueue *queue
	if order.Side == Buy {
		myQueue = book.bidQueue
		targetQueue = book.askQueue
	} else {
		myQueue = book.askQueue
		targetQueue = book.bidQueue
	}

	for {
		tOrd := targetQueue.peekHeadOrder()

		if tOrd == nil {
			myQueue.insertOrder(order, false)
			return
		}

		// Check price condition before popping
		if order.Side == Buy && order.Price.LessThan(tOrd.Price) ||
			order.Side == Sell && order.Price.GreaterThan(tOrd.Price) {
			myQueue.insertOrder(order, false)
			return
		}

		tOrd = targetQueue.popHeadOrder()

		traded := order.Quantity
		if tOrd.Quantity < traded {
			traded = tOrd.Quantity
		}

		book.recordTrade(tOrd.Price, traded, order.Side)
		order.Quantity -= traded
		tOrd.Quantity -= traded

		if tOrd.Quantity > 0 {
			// Partially filled maker keeps its time priority
			targetQueue.insertOrder(tOrd, true)
		}

		if order.Quantity == 0 {
			return
		}
	}
}

// matchMarketOrder matches the order against the opposite queue at any price
// until filled or liquidity is exhausted. Residual quantity is discarded;
// market orders never rest.
func (book *OrderBook) matchMarketOrder(order *Order) {
	targetQueue := book.bidQueue
	if order.Side == Buy {
		targetQueue = book.askQueue
	}

	for order.Quantity > 0 {
		tOrd := targetQueue.popHeadOrder()
		if tOrd == nil {
			return
		}

		traded := order.Quantity
		if tOrd.Quantity < traded {
			traded = tOrd.Quantity
		}

		book.recordTrade(tOrd.Price, traded, order.Side)
		order.Quantity -= traded
		tOrd.Quantity -= traded

		if tOrd.Quantity > 0 {
			targetQueue.insertOrder(tOrd, true)
		}
	}
}

// recordTrade appends a trade to the ring and hands it to the publisher.
func (book *OrderBook) recordTrade(price decimal.Decimal, quantity int64, takerSide Side) {
	trade := Trade{
		Price:     price,
		Quantity:  quantity,
		TakerSide: takerSide,
	}

	book.trades.push(trade)
	book.tradesSinceCheck++
	book.publishTrader.PublishTrades(&trade)
}

// maybeCheckStops lazily evaluates the stop books: only once
// stopCheckInterval trades have accumulated, and only while stops are parked.
// The reference price is the best opposite price after the matching pass; if
// that side is empty the check is skipped. Nested invocation from
// triggered-order matching is forbidden by the inStopCheck flag, so triggers
// produced by triggered trades wait for the next outer check.
func (book *OrderBook) maybeCheckStops(aggressorSide Side) {
	if book.inStopCheck {
		return
	}

	if book.pendingStops.Load() == 0 {
		return
	}

	if book.tradesSinceCheck < book.stopCheckInterval {
		return
	}
	book.tradesSinceCheck = 0

	var reference decimal.Decimal
	var ok bool
	if aggressorSide == Buy {
		reference, ok = book.askQueue.bestPrice()
	} else {
		reference, ok = book.bidQueue.bestPrice()
	}
	if !ok {
		return
	}

	book.checkStops(reference)
}

// checkStops pops every stop whose stop price is crossed by the reference
// price, converts it to a market order preserving side and quantity, and
// matches it inline.
func (book *OrderBook) checkStops(reference decimal.Decimal) {
	book.inStopCheck = true
	defer func() { book.inStopCheck = false }()

	var triggered []*Order

	for {
		price, ok := book.buyStops.peekPrice()
		if !ok || reference.LessThan(price) {
			break
		}
		triggered = append(triggered, book.buyStops.popHead())
		book.pendingStops.Add(-1)
	}

	for {
		price, ok := book.sellStops.peekPrice()
		if !ok || reference.GreaterThan(price) {
			break
		}
		triggered = append(triggered, book.sellStops.popHead())
		book.pendingStops.Add(-1)
	}

	for _, order := range triggered {
		order.Type = Market
		book.matchMarketOrder(order)
	}
}

// validateOrder rejects malformed input before it can touch the book.
func validateOrder(order *Order) error {
	if order == nil {
		return ErrInvalidOrder
	}

	switch order.Type {
	case Limit, Market, Stop, Iceberg:
	default:
		return ErrInvalidOrder
	}

	if order.Quantity <= 0 || order.HiddenQuantity < 0 {
		return ErrInvalidOrder
	}

	if order.Price.IsNegative() {
		return ErrInvalidOrder
	}

	if order.Type == Stop && order.StopPrice.Sign() <= 0 {
		return ErrInvalidOrder
	}

	return nil
}
