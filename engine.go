package match

import (
	"time"

	"github.com/rs/xid"
)

// Engine is the single matching consumer: it pops orders from the queue in
// serialization order and applies them to the book, recording the matching
// latency of every processed order.
//
// Run exits once the queue is stopped and drained. Shutdown is cooperative:
// quiesce the producers, call queue.Stop(), then wait on Done.
type Engine struct {
	id        string
	book      *OrderBook
	queue     *OrderQueue
	latencies *LatencyLog
	done      chan struct{}

	// ReportEvery logs a progress line after this many processed orders.
	// Zero disables progress logging.
	ReportEvery int
}

// NewEngine creates an engine consuming from queue into book.
func NewEngine(book *OrderBook, queue *OrderQueue) *Engine {
	return &Engine{
		id:        xid.New().String(),
		book:      book,
		queue:     queue,
		latencies: NewLatencyLog(),
		done:      make(chan struct{}),
	}
}

// ID returns the engine run identifier.
func (e *Engine) ID() string {
	return e.id
}

// Latencies returns the per-order latency log.
func (e *Engine) Latencies() *LatencyLog {
	return e.latencies
}

// Done is closed when Run returns.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Run consumes orders until the queue reports closed and empty. Invalid
// orders are logged and skipped; the book stays unchanged for them.
func (e *Engine) Run() {
	defer close(e.done)

	processed := 0
	for {
		order, ok := e.queue.Pop()
		if !ok {
			logger.Info("engine stopped", "engine_id", e.id, "processed", processed)
			return
		}

		start := time.Now()
		if err := e.book.AddOrder(order); err != nil {
			attrs := append(orderAttrs(order), "engine_id", e.id, "error", err)
			logger.Warn("order rejected", attrs...)
			continue
		}
		e.latencies.Record(order.ID, time.Since(start))

		processed++
		if e.ReportEvery > 0 && processed%e.ReportEvery == 0 {
			logger.Info("engine progress",
				"engine_id", e.id,
				"processed", processed,
				"avg_latency_us", e.latencies.Average(),
				"queue_len", e.queue.Len())
		}
	}
}
