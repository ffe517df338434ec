// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#9A9A9A", Dark: "#696969"} // hints, help, gutter

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Reader components
	HighlightBgColor   = lipgloss.AdaptiveColor{Light: "#FFD166", Dark: "#FFD166"} // current match
	HighlightFgColor   = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#1F1F1F"}
	GutterColor        = lipgloss.AdaptiveColor{Light: "#9A9A9A", Dark: "#6C7086"}
	SliderTrackColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#3B3B3B"}
	SliderThumbColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	SearchPromptColor  = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	StatusBarBgColor   = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#262626"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Toasts
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
)

// Theme holds colour overrides; empty fields keep the defaults.
type Theme struct {
	Highlight string
	Gutter    string
	Slider    string
	Error     string
}

// ApplyTheme installs overrides. It must run before any component renders.
func ApplyTheme(t Theme) {
	if t.Highlight != "" {
		HighlightBgColor = lipgloss.AdaptiveColor{Light: t.Highlight, Dark: t.Highlight}
	}
	if t.Gutter != "" {
		GutterColor = lipgloss.AdaptiveColor{Light: t.Gutter, Dark: t.Gutter}
	}
	if t.Slider != "" {
		SliderThumbColor = lipgloss.AdaptiveColor{Light: t.Slider, Dark: t.Slider}
		SearchPromptColor = SliderThumbColor
	}
	if t.Error != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: t.Error, Dark: t.Error}
		ToastBorderErrorColor = StatusErrorColor
	}
}

// Styles derived from the colour tokens. Built on demand so ApplyTheme
// takes effect.

// Highlight styles the current search match.
func Highlight() lipgloss.Style {
	return lipgloss.NewStyle().Background(HighlightBgColor).Foreground(HighlightFgColor)
}

// Gutter styles line numbers.
func Gutter() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(GutterColor)
}

// StatusBar styles the bottom line.
func StatusBar() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TextSecondaryColor).Background(StatusBarBgColor)
}

// Muted styles hints.
func Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TextMutedColor)
}

// Error styles inline error text.
func Error() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
}
