// Package markdown renders markdown for the help overlay.
package markdown

import "github.com/charmbracelet/glamour"

// noMarginStyle drops glamour's document margins so output sits flush in a
// bordered box.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps a glamour renderer configured for a fixed width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer wrapping at width. style is a glamour style name;
// empty selects the style from the terminal background.
func New(width int, style string) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	opts = append(opts, glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(md string) (string, error) {
	return r.renderer.Render(md)
}
