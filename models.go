package match

import (
	"github.com/shopspring/decimal"
)

type Side int8

const (
	Buy  Side = 1
	Sell Side = 2
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "unknown"
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

type OrderType string

const (
	Market  OrderType = "market"
	Limit   OrderType = "limit"
	Stop    OrderType = "stop"    // inert until StopPrice is crossed, then becomes a market order
	Iceberg OrderType = "iceberg" // limit order carrying a hidden reserve
)

// Order represents an order submitted to the book.
//
// Quantity is the remaining quantity and is decremented in place during
// matching; OriginalQuantity keeps the size at submission. ID is assigned by
// the caller and uniqueness is not enforced by the book.
//
// HiddenQuantity is carried for Iceberg orders but there is no replenishment:
// an Iceberg matches and rests on its visible quantity only.
type Order struct {
	ID               int64           `json:"id"`
	Side             Side            `json:"side"`
	Type             OrderType       `json:"type"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int64           `json:"quantity"`
	OriginalQuantity int64           `json:"original_quantity"`
	StopPrice        decimal.Decimal `json:"stop_price,omitempty"`
	HiddenQuantity   int64           `json:"hidden_quantity,omitempty"`

	// Intrusive linked list pointers for the price level FIFO (ignored by JSON)
	next *Order
	prev *Order
}

// NewOrder builds an order and sets its OriginalQuantity to quantity. It sets
// no hidden reserve; NewIcebergOrder builds an iceberg whose original quantity
// includes one.
func NewOrder(id int64, side Side, orderType OrderType, price decimal.Decimal, quantity int64) *Order {
	return &Order{
		ID:               id,
		Side:             side,
		Type:             orderType,
		Price:            price,
		Quantity:         quantity,
		OriginalQuantity: quantity,
	}
}

// NewStopOrder builds a stop order that converts to a market order once the
// reference price crosses stopPrice.
func NewStopOrder(id int64, side Side, stopPrice decimal.Decimal, quantity int64) *Order {
	return &Order{
		ID:               id,
		Side:             side,
		Type:             Stop,
		StopPrice:        stopPrice,
		Quantity:         quantity,
		OriginalQuantity: quantity,
	}
}

// NewIcebergOrder builds an iceberg order. Only the visible quantity takes
// part in matching; the hidden reserve is carried on the order.
func NewIcebergOrder(id int64, side Side, price decimal.Decimal, visible, hidden int64) *Order {
	return &Order{
		ID:               id,
		Side:             side,
		Type:             Iceberg,
		Price:            price,
		Quantity:         visible,
		OriginalQuantity: visible + hidden,
		HiddenQuantity:   hidden,
	}
}

// Trade is the record emitted by each match. Price is always the maker
// (resting) price; TakerSide is the side of the incoming aggressor.
type Trade struct {
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	TakerSide Side            `json:"taker_side"`
}

// DepthItem is one aggregated price level of a book snapshot.
type DepthItem struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// BookStats contains counters about the resting book.
type BookStats struct {
	AskDepthCount int64
	AskOrderCount int64
	BidDepthCount int64
	BidOrderCount int64
	PendingStops  int64
}
