// Package sim generates a random order flow for driving the matching engine.
package sim

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	match "github.com/tradesim/matchbook"
)

// Config controls the shape of the generated flow.
type Config struct {
	// Price band for limit orders, inclusive integer prices.
	MinPrice int
	MaxPrice int

	// Quantity band, inclusive.
	MinQuantity int
	MaxQuantity int

	// Interval between orders. Zero pushes as fast as possible.
	Interval time.Duration

	// MarketRatio and StopRatio are the per-order probabilities of emitting
	// a market or stop order instead of a limit order.
	MarketRatio float64
	StopRatio   float64

	// Seed for the generator. Zero seeds from the current time.
	Seed int64
}

func (c *Config) applyDefaults() {
	if c.MinPrice == 0 && c.MaxPrice == 0 {
		c.MinPrice, c.MaxPrice = 98, 102
	}
	if c.MinQuantity == 0 && c.MaxQuantity == 0 {
		c.MinQuantity, c.MaxQuantity = 1, 100
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

// Simulator is a producer: it pushes randomly generated orders into the
// hand-off queue until stopped.
type Simulator struct {
	cfg     Config
	queue   *match.OrderQueue
	ids     *atomic.Int64
	rng     *rand.Rand
	running atomic.Bool
	done    chan struct{}
}

// New creates a simulator. ids is the shared order-id source so that
// multiple producers never collide.
func New(queue *match.OrderQueue, ids *atomic.Int64, cfg Config) *Simulator {
	cfg.applyDefaults()

	s := &Simulator{
		cfg:   cfg,
		queue: queue,
		ids:   ids,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		done:  make(chan struct{}),
	}
	s.running.Store(true)
	return s
}

// Run generates orders until Stop is called.
func (s *Simulator) Run() {
	defer close(s.done)

	for s.running.Load() {
		s.queue.Push(s.nextOrder())

		if s.cfg.Interval > 0 {
			time.Sleep(s.cfg.Interval)
		}
	}
}

// Stop asks the producer loop to exit; Wait blocks until it has.
func (s *Simulator) Stop() {
	s.running.Store(false)
}

func (s *Simulator) Wait() {
	<-s.done
}

func (s *Simulator) nextOrder() *match.Order {
	id := s.ids.Add(1)

	side := match.Buy
	if s.rng.Intn(2) == 1 {
		side = match.Sell
	}

	price := decimal.NewFromInt(int64(s.cfg.MinPrice + s.rng.Intn(s.cfg.MaxPrice-s.cfg.MinPrice+1)))
	quantity := int64(s.cfg.MinQuantity + s.rng.Intn(s.cfg.MaxQuantity-s.cfg.MinQuantity+1))

	roll := s.rng.Float64()
	switch {
	case roll < s.cfg.MarketRatio:
		return match.NewOrder(id, side, match.Market, decimal.Zero, quantity)
	case roll < s.cfg.MarketRatio+s.cfg.StopRatio:
		return match.NewStopOrder(id, side, price, quantity)
	default:
		return match.NewOrder(id, side, match.Limit, price, quantity)
	}
}
