package vicinity

import (
	"math"

	"github.com/paulmach/orb"
)

// Natural pixel size of the base map image.
const (
	MapWidth  = 1404
	MapHeight = 908
)

const (
	MinScale  = 1.0
	MaxScale  = 5.0
	ZoomStep  = 1.3
	WheelOut  = 0.9
	WheelIn   = 1.1
	PanMargin = 40.0

	// scales this close to MinScale count as fully zoomed out
	scaleEpsilon = 1e-9

	tooltipOffsetX = 16
	tooltipOffsetY = -10
	tooltipWidth   = 260
	tooltipHeight  = 180
	// used for tooltip clamping when the container size is unknown
	fallbackExtent = 999
)

type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Container is the on-screen size of the map viewport in CSS pixels.
type Container struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (c Container) known() bool {
	return c.Width > 0 && c.Height > 0
}

type Options struct {
	MapWidth  float64
	MapHeight float64
	// ClampPan keeps at least PanMargin pixels of the image inside the container.
	ClampPan  bool
	PanMargin float64
}

func DefaultOptions() Options {
	return Options{
		MapWidth:  MapWidth,
		MapHeight: MapHeight,
		ClampPan:  true,
		PanMargin: PanMargin,
	}
}

// State is everything the map view needs to render one frame.
type State struct {
	Scale          float64 `json:"scale"`
	Translate      Vec     `json:"translate"`
	Panning        bool    `json:"panning"`
	PanStart       Vec     `json:"pan_start"`
	TranslateStart Vec     `json:"translate_start"`
	Hovered        string  `json:"hovered,omitempty"`
	Tooltip        Vec     `json:"tooltip"`
	Selected       string  `json:"selected,omitempty"`
}

func InitialState() State {
	return State{Scale: MinScale}
}

// TooltipVisible reports whether the hover card is shown. An open detail view
// suppresses it.
func (s State) TooltipVisible() bool {
	return s.Hovered != "" && s.Selected == ""
}

type EventType string

const (
	EventZoomIn       EventType = "zoom_in"
	EventZoomOut      EventType = "zoom_out"
	EventReset        EventType = "reset"
	EventWheel        EventType = "wheel"
	EventPointerDown  EventType = "pointer_down"
	EventPointerMove  EventType = "pointer_move"
	EventPointerUp    EventType = "pointer_up"
	EventPointerLeave EventType = "pointer_leave"
	EventClick        EventType = "click"
	EventCloseDetail  EventType = "close_detail"
)

// Target is the element an event landed on.
type Target string

const (
	TargetMap      Target = ""
	TargetControl  Target = "control"
	TargetTooltip  Target = "tooltip"
	TargetBackdrop Target = "backdrop"
)

type PointerKind string

const (
	PointerMouse PointerKind = "mouse"
	PointerTouch PointerKind = "touch"
)

// Event is one input event. Pos is relative to the container's top-left corner.
type Event struct {
	Type    EventType   `json:"type"`
	Pos     Vec         `json:"pos"`
	DeltaY  float64     `json:"delta_y,omitempty"`
	Target  Target      `json:"target,omitempty"`
	Pointer PointerKind `json:"pointer,omitempty"`
	Touches int         `json:"touches,omitempty"`
}

// Viewer holds the fixed inputs of the state machine: the lots, the options
// and the container size.
type Viewer struct {
	catalog   *Catalog
	opts      Options
	container Container
}

func NewViewer(catalog *Catalog, container Container, opts Options) Viewer {
	if opts.MapWidth <= 0 || opts.MapHeight <= 0 {
		opts.MapWidth, opts.MapHeight = MapWidth, MapHeight
	}
	return Viewer{catalog: catalog, opts: opts, container: container}
}

// WithContainer returns a copy of v for a different viewport size.
func (v Viewer) WithContainer(c Container) Viewer {
	v.container = c
	return v
}

func (v Viewer) Container() Container {
	return v.container
}

// Reduce applies e to s and returns the next state. It never mutates s.
func (v Viewer) Reduce(s State, e Event) State {
	if s.Scale < MinScale {
		s.Scale = MinScale
	}

	switch e.Type {
	case EventZoomIn:
		s.Scale = math.Min(s.Scale*ZoomStep, MaxScale)
		s.Translate = v.clampTranslate(s.Translate, s.Scale)

	case EventZoomOut:
		return v.zoomTo(s, s.Scale/ZoomStep)

	case EventReset:
		s.Scale = MinScale
		s.Translate = Vec{}

	case EventWheel:
		factor := WheelIn
		if e.DeltaY > 0 {
			factor = WheelOut
		}
		return v.zoomTo(s, math.Max(MinScale, math.Min(s.Scale*factor, MaxScale)))

	case EventPointerDown:
		if e.Target == TargetControl || e.Target == TargetTooltip {
			return s
		}
		if e.Pointer == PointerTouch && e.Touches != 1 {
			return s
		}
		s.Panning = true
		s.PanStart = e.Pos
		s.TranslateStart = s.Translate

	case EventPointerMove:
		if s.Panning {
			if e.Pointer == PointerTouch && e.Touches != 1 {
				return s
			}
			s.Translate = v.clampTranslate(s.TranslateStart.Add(e.Pos.Sub(s.PanStart)), s.Scale)
			return s
		}
		if e.Pointer == PointerTouch {
			return s
		}
		if lot, ok := v.lotAt(s, e.Pos); ok {
			s.Hovered = lot.ID
			s.Tooltip = v.tooltipAnchor(e.Pos)
		} else {
			s.Hovered = ""
		}

	case EventPointerUp:
		s.Panning = false

	case EventPointerLeave:
		s.Panning = false
		s.Hovered = ""

	case EventClick:
		if e.Target == TargetBackdrop {
			s.Selected = ""
			return s
		}
		if e.Target != TargetMap {
			return s
		}
		if lot, ok := v.lotAt(s, e.Pos); ok {
			s.Selected = lot.ID
		}

	case EventCloseDetail:
		s.Selected = ""
	}
	return s
}

// zoomTo sets the scale, re-centering when it drops to the minimum.
func (v Viewer) zoomTo(s State, scale float64) State {
	if scale <= MinScale+scaleEpsilon {
		s.Scale = MinScale
		s.Translate = Vec{}
		return s
	}
	s.Scale = scale
	s.Translate = v.clampTranslate(s.Translate, scale)
	return s
}

func (v Viewer) lotAt(s State, pos Vec) (Lot, bool) {
	if v.catalog == nil {
		return Lot{}, false
	}
	pt, ok := v.ScreenToImage(s, pos)
	if !ok {
		return Lot{}, false
	}
	return v.catalog.HitTest(pt)
}

// fit returns the meet scale factor and the offset of the image inside the
// untransformed container.
func (v Viewer) fit() (k float64, off Vec) {
	k = math.Min(v.container.Width/v.opts.MapWidth, v.container.Height/v.opts.MapHeight)
	off = Vec{
		X: (v.container.Width - v.opts.MapWidth*k) / 2,
		Y: (v.container.Height - v.opts.MapHeight*k) / 2,
	}
	return k, off
}

// ScreenToImage maps a container-relative position to image pixel space,
// undoing the pan/zoom transform (origin at the container centre) and the
// xMidYMid meet fit of the overlay.
func (v Viewer) ScreenToImage(s State, pos Vec) (orb.Point, bool) {
	if !v.container.known() {
		return orb.Point{}, false
	}
	scale := s.Scale
	if scale <= 0 {
		scale = MinScale
	}

	center := Vec{X: v.container.Width / 2, Y: v.container.Height / 2}
	local := Vec{
		X: center.X + (pos.X-center.X-s.Translate.X)/scale,
		Y: center.Y + (pos.Y-center.Y-s.Translate.Y)/scale,
	}

	k, off := v.fit()
	return orb.Point{(local.X - off.X) / k, (local.Y - off.Y) / k}, true
}

// ImageToScreen is the inverse of ScreenToImage.
func (v Viewer) ImageToScreen(s State, pt orb.Point) Vec {
	k, off := v.fit()
	center := Vec{X: v.container.Width / 2, Y: v.container.Height / 2}
	local := Vec{X: off.X + pt[0]*k, Y: off.Y + pt[1]*k}
	return Vec{
		X: center.X + s.Translate.X + s.Scale*(local.X-center.X),
		Y: center.Y + s.Translate.Y + s.Scale*(local.Y-center.Y),
	}
}

func (v Viewer) clampTranslate(t Vec, scale float64) Vec {
	if !v.opts.ClampPan || !v.container.known() {
		return t
	}
	k, _ := v.fit()
	boundX := math.Max(0, (v.container.Width+scale*v.opts.MapWidth*k)/2-v.opts.PanMargin)
	boundY := math.Max(0, (v.container.Height+scale*v.opts.MapHeight*k)/2-v.opts.PanMargin)
	return Vec{
		X: math.Max(-boundX, math.Min(t.X, boundX)),
		Y: math.Max(-boundY, math.Min(t.Y, boundY)),
	}
}

// tooltipAnchor offsets the card from the pointer and keeps it inside the container.
func (v Viewer) tooltipAnchor(pos Vec) Vec {
	w, h := v.container.Width, v.container.Height
	if w <= 0 {
		w = fallbackExtent
	}
	if h <= 0 {
		h = fallbackExtent
	}
	return Vec{
		X: math.Max(0, math.Min(pos.X+tooltipOffsetX, w-tooltipWidth)),
		Y: math.Max(0, math.Min(pos.Y+tooltipOffsetY, h-tooltipHeight)),
	}
}
