// Package notifier contains notification transports. The log sender stands
// in for a real email gateway; swapping in SMTP or a provider SDK only
// requires another ports.NotificationSender implementation.
package notifier

import (
	"context"
	"log/slog"

	"ecshop/internal/core/domain/model/order"
)

// LogSender writes notifications to the structured log instead of
// delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-backed notification sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "notifier")}
}

// Send logs the rendered notification.
func (s *LogSender) Send(ctx context.Context, notification *order.Notification) error {
	s.logger.InfoContext(ctx, "notification dispatched",
		"order_id", notification.OrderID(),
		"type", string(notification.Type()),
		"method", string(notification.Method()),
		"recipient", notification.Recipient(),
		"subject", notification.Subject(),
	)
	return nil
}
