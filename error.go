package match

import "errors"

var (
	// ErrInvalidOrder rejects malformed input: non-positive quantity,
	// negative price, a stop without a stop price, or an unknown type.
	ErrInvalidOrder = errors.New("the order is invalid")

	// ErrQueueClosed documents the push-after-stop surface. The queue
	// currently accepts such pushes silently; a stricter hand-off would
	// return this.
	ErrQueueClosed = errors.New("order queue is closed")
)
