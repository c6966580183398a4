package notifier

import "context"

// Interface is the delivery sink for formatted reports.
type Interface interface {
	Send(text string) error
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}
