package notifier

import (
	"context"
	"fmt"
	"regexp"
)

var htmlTags = regexp.MustCompile(`</?[a-z]+>`)

// ConsoleNotifier prints reports to stdout. Used when Telegram is not
// configured.
type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier { return &ConsoleNotifier{} }

func (c *ConsoleNotifier) Send(text string) error {
	fmt.Println(htmlTags.ReplaceAllString(text, ""))
	return nil
}

func (c *ConsoleNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	return c.Send(text)
}
