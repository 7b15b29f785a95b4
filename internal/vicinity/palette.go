package vicinity

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type Colors struct {
	Fill   string `json:"fill" yaml:"fill"`
	Stroke string `json:"stroke" yaml:"stroke"`
	Hover  string `json:"hover" yaml:"hover"`
}

type LegendItem struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// LotStyle is the rendering of one polygon.
type LotStyle struct {
	Fill        string `json:"fill"`
	Stroke      string `json:"stroke"`
	StrokeWidth int    `json:"stroke_width"`
}

type Palette struct {
	types    map[string]Colors
	fallback Colors
	legend   []LegendItem
}

var defaultColors = Colors{Fill: "rgba(107, 114, 128, 0.3)", Stroke: "#6b7280", Hover: "rgba(107, 114, 128, 0.5)"}

func defaultTypeColors() map[string]Colors {
	vacant := Colors{Fill: "rgba(107, 114, 128, 0.25)", Stroke: "#6b7280", Hover: "rgba(107, 114, 128, 0.45)"}
	premiere := Colors{Fill: "rgba(21, 128, 61, 0.35)", Stroke: "#15803d", Hover: "rgba(21, 128, 61, 0.55)"}
	return map[string]Colors{
		"Duplex Premiere":     premiere,
		"Duplex Premier":      premiere,
		"Duplex Deluxe":       {Fill: "rgba(37, 99, 235, 0.35)", Stroke: "#2563eb", Hover: "rgba(37, 99, 235, 0.55)"},
		"Duplex Economic":     {Fill: "rgba(234, 179, 8, 0.35)", Stroke: "#ca8a04", Hover: "rgba(234, 179, 8, 0.55)"},
		"Triplex":             {Fill: "rgba(168, 85, 247, 0.35)", Stroke: "#9333ea", Hover: "rgba(168, 85, 247, 0.55)"},
		"RowHouse Socialized": {Fill: "rgba(239, 68, 68, 0.35)", Stroke: "#dc2626", Hover: "rgba(239, 68, 68, 0.55)"},
		"RowHouse Compound":   {Fill: "rgba(249, 115, 22, 0.35)", Stroke: "#ea580c", Hover: "rgba(249, 115, 22, 0.55)"},
		"VACANT LOT":          vacant,
	}
}

func defaultLegend() []LegendItem {
	return []LegendItem{
		{Label: "Duplex Premiere", Color: "#15803d"},
		{Label: "Duplex Deluxe", Color: "#2563eb"},
		{Label: "Duplex Economic", Color: "#ca8a04"},
		{Label: "Triplex", Color: "#9333ea"},
		{Label: "Rowhouse", Color: "#dc2626"},
		{Label: "Vacant Lot", Color: "#6b7280"},
	}
}

func DefaultPalette() *Palette {
	return &Palette{
		types:    defaultTypeColors(),
		fallback: defaultColors,
		legend:   defaultLegend(),
	}
}

type paletteFile struct {
	Default *Colors           `yaml:"default"`
	Types   map[string]Colors `yaml:"types"`
	Legend  []LegendItem      `yaml:"legend"`
}

// LoadPalette merges a YAML override document onto the default palette.
// Types listed in the document replace (or add to) the defaults; a non-empty
// legend replaces the default legend.
func LoadPalette(data []byte) (*Palette, error) {
	p := DefaultPalette()

	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}

	if file.Default != nil {
		if err := file.Default.validate(); err != nil {
			return nil, fmt.Errorf("default colors: %w", err)
		}
		p.fallback = *file.Default
	}
	for name, colors := range file.Types {
		if err := colors.validate(); err != nil {
			return nil, fmt.Errorf("colors for %q: %w", name, err)
		}
		p.types[name] = colors
	}
	if len(file.Legend) > 0 {
		p.legend = file.Legend
	}
	return p, nil
}

func (c Colors) validate() error {
	if c.Fill == "" || c.Stroke == "" || c.Hover == "" {
		return fmt.Errorf("fill, stroke and hover are all required")
	}
	return nil
}

// Colors returns the colors for a lot type, falling back to the default set.
// Surrounding whitespace in the type is ignored.
func (p *Palette) Colors(lotType string) Colors {
	if c, ok := p.types[lotType]; ok {
		return c
	}
	if c, ok := p.types[strings.TrimSpace(lotType)]; ok {
		return c
	}
	return p.fallback
}

// Style returns the polygon style; active is true when the lot is hovered or selected.
func (p *Palette) Style(lotType string, active bool) LotStyle {
	c := p.Colors(lotType)
	if active {
		return LotStyle{Fill: c.Hover, Stroke: c.Stroke, StrokeWidth: 2}
	}
	return LotStyle{Fill: c.Fill, Stroke: c.Stroke, StrokeWidth: 1}
}

func (p *Palette) Legend() []LegendItem {
	return slices.Clone(p.legend)
}

// Types lists the lot types with a dedicated color set, sorted.
func (p *Palette) Types() []string {
	return slices.Sorted(maps.Keys(p.types))
}
