package match

import (
	"sync"

	"github.com/shopspring/decimal"
)

// PublishTrader receives every trade the book records. Implementations must
// either process synchronously or copy the trades before returning.
type PublishTrader interface {
	PublishTrades(...*Trade)
}

// MemoryPublishTrader retains every published trade by value and exposes a
// query surface over the captured tape. Useful for tests and offline
// analysis of a simulation run.
type MemoryPublishTrader struct {
	mu     sync.RWMutex
	trades []Trade
}

func NewMemoryPublishTrader() *MemoryPublishTrader {
	return &MemoryPublishTrader{
		trades: make([]Trade, 0),
	}
}

func (m *MemoryPublishTrader) PublishTrades(trades ...*Trade) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, trade := range trades {
		m.trades = append(m.trades, *trade)
	}
}

// Count returns the number of captured trades.
func (m *MemoryPublishTrader) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trades)
}

// Get returns the trade at index, in publication order.
func (m *MemoryPublishTrader) Get(index int) Trade {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.trades[index]
}

// Last returns the most recently published trade.
func (m *MemoryPublishTrader) Last() (Trade, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.trades) == 0 {
		return Trade{}, false
	}
	return m.trades[len(m.trades)-1], true
}

// ByTakerSide returns the captured trades whose aggressor was side.
func (m *MemoryPublishTrader) ByTakerSide(side Side) []Trade {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Trade
	for _, trade := range m.trades {
		if trade.TakerSide == side {
			out = append(out, trade)
		}
	}
	return out
}

// TotalVolume returns the summed quantity across all captured trades.
func (m *MemoryPublishTrader) TotalVolume() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, trade := range m.trades {
		total += trade.Quantity
	}
	return total
}

// VWAP returns the volume-weighted average price of the captured tape,
// zero when no trades have been published.
func (m *MemoryPublishTrader) VWAP() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var volume int64
	notional := decimal.Zero
	for _, trade := range m.trades {
		notional = notional.Add(trade.Price.Mul(decimal.NewFromInt(trade.Quantity)))
		volume += trade.Quantity
	}

	if volume == 0 {
		return decimal.Zero
	}
	return notional.Div(decimal.NewFromInt(volume))
}

// DiscardPublishTrader discards all trades, useful for benchmarking.
type DiscardPublishTrader struct {
}

func NewDiscardPublishTrader() *DiscardPublishTrader {
	return &DiscardPublishTrader{}
}

func (p *DiscardPublishTrader) PublishTrades(trades ...*Trade) {

}
