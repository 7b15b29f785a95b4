package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ParseCoords turns a flat "x1,y1,x2,y2,..." list into a closed ring.
func ParseCoords(coords string) (orb.Ring, error) {
	parts := strings.Split(coords, ",")
	if len(parts)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates (%d)", len(parts))
	}
	if len(parts) < 6 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(parts)/2)
	}

	ring := make(orb.Ring, 0, len(parts)/2+1)
	for i := 0; i < len(parts); i += 2 {
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x coordinate %q: %w", parts[i], err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y coordinate %q: %w", parts[i+1], err)
		}
		ring = append(ring, orb.Point{x, y})
	}

	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// Contains reports whether pt lies inside ring, checking the bounding box first.
func Contains(ring orb.Ring, pt orb.Point) bool {
	if !ring.Bound().Contains(pt) {
		return false
	}
	return planar.RingContains(ring, pt)
}

// Centroid returns the area-weighted centre of ring.
func Centroid(ring orb.Ring) orb.Point {
	c, _ := planar.CentroidArea(ring)
	return c
}

// SVGPoints formats ring for an SVG points attribute, dropping the closing point.
func SVGPoints(ring orb.Ring) string {
	points := ring
	if len(points) > 1 && points.Closed() {
		points = points[:len(points)-1]
	}

	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(p[0], 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p[1], 'f', -1, 64))
	}
	return b.String()
}
