package match

import (
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("component", "matchbook")

// SetLogger replaces the package logger, e.g. to redirect engine output
// into an application-wide handler.
func SetLogger(l *slog.Logger) {
	logger = l
}

// orderAttrs returns the standard logging fields for an order. Market orders
// carry no meaningful price, so it is omitted for them.
func orderAttrs(order *Order) []any {
	if order == nil {
		return []any{"order", "nil"}
	}

	attrs := []any{
		"order_id", order.ID,
		"side", order.Side.String(),
		"type", string(order.Type),
		"quantity", order.Quantity,
	}

	if order.Type == Stop {
		attrs = append(attrs, "stop_price", order.StopPrice.String())
	} else if order.Type != Market {
		attrs = append(attrs, "price", order.Price.String())
	}

	return attrs
}
