package vicinity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette_Colors(t *testing.T) {
	p := DefaultPalette()

	assert.Equal(t, "#2563eb", p.Colors("Duplex Deluxe").Stroke)
	assert.Equal(t, p.Colors("Duplex Premiere"), p.Colors("Duplex Premier"))
	assert.Equal(t, "#6b7280", p.Colors(" VACANT LOT").Stroke)
	assert.Equal(t, defaultColors, p.Colors("Bungalow"))
}

func TestPalette_Style(t *testing.T) {
	p := DefaultPalette()

	idle := p.Style("Triplex", false)
	assert.Equal(t, LotStyle{Fill: "rgba(168, 85, 247, 0.35)", Stroke: "#9333ea", StrokeWidth: 1}, idle)

	active := p.Style("Triplex", true)
	assert.Equal(t, LotStyle{Fill: "rgba(168, 85, 247, 0.55)", Stroke: "#9333ea", StrokeWidth: 2}, active)

	unknown := p.Style("Bungalow", true)
	assert.Equal(t, defaultColors.Hover, unknown.Fill)
}

func TestLoadPalette(t *testing.T) {
	p, err := LoadPalette([]byte(`
default:
  fill: "#000"
  stroke: "#111"
  hover: "#222"
types:
  Triplex:
    fill: "#333"
    stroke: "#444"
    hover: "#555"
  Bungalow:
    fill: "#666"
    stroke: "#777"
    hover: "#888"
`))
	require.NoError(t, err)

	assert.Equal(t, "#444", p.Colors("Triplex").Stroke)
	assert.Equal(t, "#777", p.Colors("Bungalow").Stroke)
	assert.Equal(t, "#2563eb", p.Colors("Duplex Deluxe").Stroke)
	assert.Equal(t, "#111", p.Colors("Unknown").Stroke)
	assert.Equal(t, DefaultPalette().Legend(), p.Legend())
	assert.Contains(t, p.Types(), "Bungalow")
}

func TestLoadPalette_Errors(t *testing.T) {
	_, err := LoadPalette([]byte("types: [not, a, map]"))
	assert.Error(t, err)

	_, err = LoadPalette([]byte("types:\n  Triplex:\n    fill: \"#333\"\n"))
	assert.Error(t, err)
}

func TestLoadPalette_Legend(t *testing.T) {
	p, err := LoadPalette([]byte("legend:\n  - label: Lots\n    color: \"#123456\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []LegendItem{{Label: "Lots", Color: "#123456"}}, p.Legend())
}
