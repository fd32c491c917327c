package render

// Style holds the visual settings shared by the renderers. Colours are CSS
// colour strings; an empty Background leaves the surface transparent.
type Style struct {
	Background string  `toml:"background" json:"background,omitempty"`
	EdgeColor  string  `toml:"edge_color" json:"edge_color,omitempty"`
	EdgeWidth  float64 `toml:"edge_width" json:"edge_width,omitempty"`
	NodeColor  string  `toml:"node_color" json:"node_color,omitempty"`
	LabelColor string  `toml:"label_color" json:"label_color,omitempty"`
	FontFamily string  `toml:"font_family" json:"font_family,omitempty"`
	FontSize   float64 `toml:"font_size" json:"font_size,omitempty"`
}

// DefaultStyle returns grey edges and dark nodes with white labels.
func DefaultStyle() Style {
	return Style{
		EdgeColor:  "#999",
		EdgeWidth:  1,
		NodeColor:  "#333",
		LabelColor: "#fff",
		FontFamily: "sans-serif",
		FontSize:   12,
	}
}

// WithDefaults returns s with every unset field taken from [DefaultStyle].
// Background is left as is.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.EdgeColor == "" {
		s.EdgeColor = d.EdgeColor
	}
	if s.EdgeWidth == 0 {
		s.EdgeWidth = d.EdgeWidth
	}
	if s.NodeColor == "" {
		s.NodeColor = d.NodeColor
	}
	if s.LabelColor == "" {
		s.LabelColor = d.LabelColor
	}
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.FontSize == 0 {
		s.FontSize = d.FontSize
	}
	return s
}

// Truncate shortens s to at most n runes, ending in an ellipsis when cut.
// n <= 0 leaves s unchanged.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
