package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/azario0/prototypes-txt-reader/internal/document"
	"github.com/azario0/prototypes-txt-reader/internal/search"
)

type mockSubscriber struct {
	mock.Mock
}

func (m *mockSubscriber) OnViewport(s State) {
	m.Called(s)
}

func spanOnLine(line int) search.MatchSpan {
	return search.MatchSpan{Start: document.Position{Line: line}, End: document.Position{Line: line, Column: 1}, Length: 1}
}

func TestController_AllSubscribersSeeSameState(t *testing.T) {
	c := NewController(1000, 50)
	text, gutter, slider := &mockSubscriber{}, &mockSubscriber{}, &mockSubscriber{}

	var order []string
	for name, sub := range map[string]*mockSubscriber{"text": text, "gutter": gutter, "slider": slider} {
		sub.On("OnViewport", mock.Anything).Run(func(mock.Arguments) { order = append(order, name) }).Once()
	}
	c.Subscribe(text)
	c.Subscribe(gutter)
	c.Subscribe(slider)

	got := c.OnScroll(0.5)

	for _, sub := range []*mockSubscriber{text, gutter, slider} {
		sub.AssertExpectations(t)
		sub.AssertCalled(t, "OnViewport", got)
	}
	require.Equal(t, []string{"text", "gutter", "slider"}, order, "registration order")
	require.Equal(t, 0.5, got.Fraction)
	require.Equal(t, 476, got.TopLine)
}

func TestController_OnScrollClamps(t *testing.T) {
	c := NewController(100, 10)

	require.Equal(t, 1.0, c.OnScroll(1.7).Fraction)
	require.Equal(t, 0.0, c.OnScroll(-0.2).Fraction)
	require.Equal(t, 0.0, c.OnScroll(math.NaN()).Fraction)
}

func TestController_OnSliderMove(t *testing.T) {
	c := NewController(101, 1)

	s := c.OnSliderMove(25)

	require.Equal(t, 0.25, s.Fraction)
	require.Equal(t, 26, s.TopLine)
	require.Equal(t, OriginSlider, s.Origin)
	require.Equal(t, 25, SliderValue(s))
}

func TestController_JumpToVisibleLineDoesNotMove(t *testing.T) {
	c := NewController(1000, 20)
	sub := &mockSubscriber{}
	c.Subscribe(sub)

	before := c.State()
	after := c.OnJumpTo(spanOnLine(15))

	require.Equal(t, before, after)
	sub.AssertNotCalled(t, "OnViewport", mock.Anything)
}

func TestController_JumpToCentres(t *testing.T) {
	c := NewController(1000, 20)

	s := c.OnJumpTo(spanOnLine(500))

	require.Equal(t, OriginJump, s.Origin)
	require.True(t, s.Visible(500))
	require.Equal(t, 490, s.TopLine)
}

func TestController_JumpNearEndsClamps(t *testing.T) {
	c := NewController(1000, 20)

	s := c.OnJumpTo(spanOnLine(999))
	require.Equal(t, 981, s.TopLine)
	require.Equal(t, 1.0, s.Fraction)

	s = c.OnJumpTo(spanOnLine(2))
	require.Equal(t, 1, s.TopLine)
	require.Equal(t, 0.0, s.Fraction)
}

func TestController_ShortDocumentNeverScrolls(t *testing.T) {
	c := NewController(5, 20)

	s := c.ScrollLines(3)

	require.Equal(t, 1, s.TopLine)
	require.Equal(t, 0.0, s.Fraction)
	require.Equal(t, 5, s.BottomLine())
}

func TestController_KeyboardHelpers(t *testing.T) {
	c := NewController(100, 10)

	require.Equal(t, 4, c.ScrollLines(3).TopLine)
	require.Equal(t, 13, c.ScrollPages(1).TopLine)
	require.Equal(t, 91, c.GotoBottom().TopLine)
	require.Equal(t, 1, c.GotoTop().TopLine)
}

func TestController_ResizeKeepsFraction(t *testing.T) {
	c := NewController(200, 10)
	c.OnScroll(0.5)

	s := c.Resize(50)

	require.Equal(t, 0.5, s.Fraction)
	require.Equal(t, OriginResize, s.Origin)
	require.Equal(t, 76, s.TopLine)
}

func TestController_ResetReturnsToTop(t *testing.T) {
	c := NewController(200, 10)
	c.GotoBottom()

	s := c.Reset(30)

	require.Equal(t, 1, s.TopLine)
	require.Equal(t, 30, s.Lines)
	require.Equal(t, OriginLoad, s.Origin)
}

func TestController_ReentrantUpdateIsDropped(t *testing.T) {
	c := NewController(100, 10)
	calls := 0
	c.Subscribe(SubscriberFunc(func(State) {
		calls++
		c.OnScroll(0.9) // a renderer trying to scroll back
	}))

	s := c.OnScroll(0.2)

	require.Equal(t, 1, calls)
	require.Equal(t, 0.2, s.Fraction)
	require.Equal(t, 0.2, c.State().Fraction)
	require.Equal(t, 1, c.Suppressed())
}

func TestController_SetLineCountKeepsFraction(t *testing.T) {
	c := NewController(100, 10)
	c.OnScroll(0.5)

	s := c.SetLineCount(1010)

	require.Equal(t, 0.5, s.Fraction)
	require.Equal(t, 501, s.TopLine)
}

// === properties ===

func TestProperty_FractionAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewController(rapid.IntRange(1, 5000).Draw(t, "lines"), rapid.IntRange(1, 200).Draw(t, "height"))
		ops := rapid.SliceOfN(rapid.IntRange(0, 5), 1, 20).Draw(t, "ops")
		for _, op := range ops {
			var s State
			switch op {
			case 0:
				s = c.OnScroll(rapid.Float64Range(-2, 2).Draw(t, "f"))
			case 1:
				s = c.OnSliderMove(rapid.Float64Range(-50, 150).Draw(t, "v"))
			case 2:
				s = c.ScrollLines(rapid.IntRange(-300, 300).Draw(t, "d"))
			case 3:
				s = c.OnJumpTo(spanOnLine(rapid.IntRange(1, c.State().Lines).Draw(t, "line")))
			case 4:
				s = c.Resize(rapid.IntRange(1, 200).Draw(t, "h"))
			case 5:
				s = c.ScrollPages(rapid.IntRange(-3, 3).Draw(t, "p"))
			}
			if s.Fraction < 0 || s.Fraction > 1 {
				t.Fatalf("fraction %v out of range", s.Fraction)
			}
			if s.TopLine < 1 || s.TopLine > s.MaxTop()+1 {
				t.Fatalf("top line %d outside [1, %d]", s.TopLine, s.MaxTop()+1)
			}
		}
	})
}

func TestProperty_SliderTracksFraction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewController(rapid.IntRange(1, 100000).Draw(t, "lines"), 40)
		s := c.OnScroll(rapid.Float64Range(0, 1).Draw(t, "f"))
		if d := math.Abs(float64(SliderValue(s)) - s.Fraction*100); d > 0.5 {
			t.Fatalf("slider %d drifted %v from fraction %v", SliderValue(s), d, s.Fraction)
		}
	})
}

func TestProperty_JumpMakesLineVisible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.IntRange(1, 10000).Draw(t, "lines")
		c := NewController(lines, rapid.IntRange(1, 100).Draw(t, "height"))
		line := rapid.IntRange(1, lines).Draw(t, "line")
		if s := c.OnJumpTo(spanOnLine(line)); !s.Visible(line) {
			t.Fatalf("line %d not visible after jump: %+v", line, s)
		}
	})
}
