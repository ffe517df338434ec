// Package viewport keeps the text view, line-number gutter and navigation
// slider scrolled in lockstep. A Controller owns the shared State and hands
// every change to all subscribers in the same update.
package viewport

import (
	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/search"
)

// Subscriber renders from viewport state. OnViewport runs synchronously
// inside the publishing call.
type Subscriber interface {
	OnViewport(State)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(State)

func (f SubscriberFunc) OnViewport(s State) { f(s) }

// Controller is not safe for concurrent use; it lives on the UI goroutine.
type Controller struct {
	state      State
	subs       []Subscriber
	publishing bool
	suppressed int
}

// NewController starts at the top of a document of lines lines shown
// height rows at a time.
func NewController(lines, height int) *Controller {
	return &Controller{state: newState(0, lines, height, OriginLoad)}
}

// Subscribe adds s. Subscribers are notified in registration order.
func (c *Controller) Subscribe(s Subscriber) {
	c.subs = append(c.subs, s)
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Suppressed counts changes dropped because they arrived mid-publish.
func (c *Controller) Suppressed() int { return c.suppressed }

// OnScroll moves the view to fraction (clamped to [0,1]).
func (c *Controller) OnScroll(fraction float64) State {
	return c.apply(fraction, OriginScroll)
}

// OnSliderMove moves the view to a slider value in [0,100].
func (c *Controller) OnSliderMove(value float64) State {
	return c.apply(FractionForSlider(value), OriginSlider)
}

// OnJumpTo brings span's first line on screen. A visible line does not
// move the view; otherwise the line is centred as far as the bounds allow.
func (c *Controller) OnJumpTo(span search.MatchSpan) State {
	line := span.Start.Line
	if c.state.Visible(line) {
		return c.state
	}
	top := line - 1 - c.state.Height/2
	return c.apply(c.state.fractionForTop(top), OriginJump)
}

// ScrollLines moves the view by delta lines.
func (c *Controller) ScrollLines(delta int) State {
	top := c.state.TopLine - 1 + delta
	return c.apply(c.state.fractionForTop(top), OriginScroll)
}

// ScrollPages moves the view by delta screens.
func (c *Controller) ScrollPages(delta int) State {
	return c.ScrollLines(delta * max(c.state.Height-1, 1))
}

// GotoTop shows the first line.
func (c *Controller) GotoTop() State { return c.apply(0, OriginScroll) }

// GotoBottom shows the last line.
func (c *Controller) GotoBottom() State { return c.apply(1, OriginScroll) }

// Resize changes the visible height and keeps the fraction.
func (c *Controller) Resize(height int) State {
	return c.set(newState(c.state.Fraction, c.state.Lines, height, OriginResize))
}

// SetLineCount swaps in a document of lines lines and keeps the fraction.
func (c *Controller) SetLineCount(lines int) State {
	return c.set(newState(c.state.Fraction, lines, c.state.Height, OriginLoad))
}

// Reset switches to a new document and returns to the top.
func (c *Controller) Reset(lines int) State {
	return c.set(newState(0, lines, c.state.Height, OriginLoad))
}

func (c *Controller) apply(fraction float64, origin Origin) State {
	return c.set(newState(fraction, c.state.Lines, c.state.Height, origin))
}

// set installs s and publishes it. Changes requested by a subscriber while
// a publish is running are dropped.
func (c *Controller) set(s State) State {
	if c.publishing {
		c.suppressed++
		log.Warn(log.CatViewport, "dropped re-entrant update", "origin", s.Origin, "fraction", s.Fraction)
		return c.state
	}
	c.state = s
	return c.publish()
}

func (c *Controller) publish() State {
	c.publishing = true
	defer func() { c.publishing = false }()

	s := c.state
	for _, sub := range c.subs {
		sub.OnViewport(s)
	}
	log.Debug(log.CatViewport, "published", "origin", s.Origin, "fraction", s.Fraction, "top", s.TopLine)
	return s
}
