package vicinity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"vicmar/server/internal/geometry"
)

// Availability values for a unit slot
const (
	AvailabilityAvailable = "available"
	AvailabilityReserved  = "reserved"
	AvailabilitySold      = "sold"
	AvailabilityVacant    = "vacant"
)

// UnitSlot is one sellable dwelling within a lot. Key is "" for a single-unit
// lot and "A", "B" or "C" for multi-unit structures.
type UnitSlot struct {
	Key          string `json:"key"`
	LotNum       string `json:"lot_num"`
	LotArea      string `json:"lot_area"`
	Availability string `json:"availability"`
}

type LotInfo struct {
	Type     string     `json:"type"`
	BlockNum string     `json:"block_num"`
	Phase    string     `json:"phase"`
	Units    []UnitSlot `json:"units"`
}

type Lot struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Polygon  orb.Ring  `json:"polygon"`
	Centroid orb.Point `json:"centroid"`
	Priority int       `json:"priority"`
	Info     LotInfo   `json:"info"`
}

type Stats struct {
	Total    int `json:"total"`
	Duplex   int `json:"duplex"`
	Triplex  int `json:"triplex"`
	Rowhouse int `json:"rowhouse"`
}

// Catalog is the read-only set of lots shown on the vicinity map.
type Catalog struct {
	lots []Lot
	byID map[string]int
	// indexes into lots, lowest priority first (painter's order)
	drawOrder []int
}

// unit slot source keys in the order they are presented
var slotKeys = []struct {
	field string
	key   string
}{
	{field: "unit", key: ""},
	{field: "unitA", key: "A"},
	{field: "unitB", key: "B"},
	{field: "unitC", key: "C"},
	{field: "", key: ""},
}

// flexString accepts either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

type rawUnit struct {
	LotNum       flexString `json:"lotNum"`
	LotArea      flexString `json:"lotArea"`
	Availability string     `json:"availability"`
}

type rawLot struct {
	Coords   string                     `json:"coords"`
	Priority *int                       `json:"priority"`
	Info     map[string]json.RawMessage `json:"info"`
}

// LoadCatalog reads a lot document of the form {"<category>": [{coords, info}, ...]}.
// Categories keep their document order, which is also the default draw order.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read lot data: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("lot data must be an object keyed by category")
	}

	c := &Catalog{byID: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read category: %w", err)
		}
		category, _ := tok.(string)

		var raws []rawLot
		if err := dec.Decode(&raws); err != nil {
			return nil, fmt.Errorf("failed to decode category %s: %w", category, err)
		}

		for idx, raw := range raws {
			lot, err := buildLot(category, idx, raw)
			if err != nil {
				return nil, err
			}
			if raw.Priority != nil {
				lot.Priority = *raw.Priority
			} else {
				lot.Priority = len(c.lots)
			}
			if _, dup := c.byID[lot.ID]; dup {
				return nil, fmt.Errorf("duplicate lot id %s", lot.ID)
			}
			c.byID[lot.ID] = len(c.lots)
			c.lots = append(c.lots, lot)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read lot data: %w", err)
	}

	c.drawOrder = make([]int, len(c.lots))
	for i := range c.drawOrder {
		c.drawOrder[i] = i
	}
	slices.SortStableFunc(c.drawOrder, func(a, b int) int {
		return c.lots[a].Priority - c.lots[b].Priority
	})
	return c, nil
}

// ParseCatalog is LoadCatalog over an in-memory document.
func ParseCatalog(data []byte) (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(data))
}

func buildLot(category string, idx int, raw rawLot) (Lot, error) {
	id := category + "-" + strconv.Itoa(idx)

	ring, err := geometry.ParseCoords(raw.Coords)
	if err != nil {
		return Lot{}, fmt.Errorf("lot %s: %w", id, err)
	}

	var info LotInfo
	for field, dst := range map[string]*string{"type": &info.Type, "blockNum": &info.BlockNum, "phase": &info.Phase} {
		data, ok := raw.Info[field]
		if !ok {
			continue
		}
		var v flexString
		if err := json.Unmarshal(data, &v); err != nil {
			return Lot{}, fmt.Errorf("lot %s: invalid %s: %w", id, field, err)
		}
		*dst = string(v)
	}

	info.Units = []UnitSlot{}
	for _, slot := range slotKeys {
		data, ok := raw.Info[slot.field]
		if !ok || bytes.Equal(data, []byte("null")) {
			continue
		}
		var u rawUnit
		if err := json.Unmarshal(data, &u); err != nil {
			return Lot{}, fmt.Errorf("lot %s: invalid unit %q: %w", id, slot.field, err)
		}
		// the unnamed slot only counts when it carries a lot number
		if slot.field == "" && u.LotNum == "" {
			continue
		}
		availability := strings.ToLower(strings.TrimSpace(u.Availability))
		if !isAvailability(availability) {
			return Lot{}, fmt.Errorf("lot %s: unknown availability %q", id, u.Availability)
		}
		info.Units = append(info.Units, UnitSlot{
			Key:          slot.key,
			LotNum:       string(u.LotNum),
			LotArea:      string(u.LotArea),
			Availability: availability,
		})
	}

	return Lot{
		ID:       id,
		Category: category,
		Polygon:  ring,
		Centroid: geometry.Centroid(ring),
		Info:     info,
	}, nil
}

func isAvailability(s string) bool {
	switch s {
	case AvailabilityAvailable, AvailabilityReserved, AvailabilitySold, AvailabilityVacant:
		return true
	}
	return false
}

// Lots returns every lot in catalog order.
func (c *Catalog) Lots() []Lot {
	return slices.Clone(c.lots)
}

func (c *Catalog) Lot(id string) (Lot, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Lot{}, false
	}
	return c.lots[idx], true
}

// DrawOrder returns the lots bottom-most first.
func (c *Catalog) DrawOrder() []Lot {
	out := make([]Lot, len(c.drawOrder))
	for i, idx := range c.drawOrder {
		out[i] = c.lots[idx]
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.lots)
}

// Stats counts lots per listing type.
func (c *Catalog) Stats() Stats {
	stats := Stats{Total: len(c.lots)}
	for _, lot := range c.lots {
		switch ListingType(lot.Info.Type) {
		case "duplex":
			stats.Duplex++
		case "triplex":
			stats.Triplex++
		case "rowhouse":
			stats.Rowhouse++
		}
	}
	return stats
}

// ListingType maps a lot type onto the listings page type filter, or "" when
// the lot has no listing (vacant land).
func ListingType(lotType string) string {
	t := strings.ToLower(lotType)
	switch {
	case strings.Contains(t, "duplex"):
		return "duplex"
	case strings.Contains(t, "triplex"):
		return "triplex"
	case strings.Contains(t, "rowhouse"), strings.Contains(t, "row house"):
		return "rowhouse"
	}
	return ""
}
