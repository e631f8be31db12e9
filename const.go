package match

const (
	// DefaultDepthLimit is the number of price levels returned by Snapshot
	// when the caller does not ask for a specific depth.
	DefaultDepthLimit = 5

	// DefaultTradeRingSize is the number of recent trades retained by the book.
	DefaultTradeRingSize = 5

	// DefaultStopCheckInterval is the number of trades between stop-book
	// evaluations.
	DefaultStopCheckInterval = 10
)
