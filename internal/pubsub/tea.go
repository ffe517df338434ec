package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and returns it as a tea.Msg.
// It returns nil once ctx is cancelled or ch is closed, which ends the loop.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}

// ContinuousListener keeps one subscription open across Update calls.
// Re-issue Listen after handling each event to keep receiving.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker for the lifetime of ctx.
func NewContinuousListener[T any](ctx context.Context, broker Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Listen returns a command that yields the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}
