package vicinity

import (
	"github.com/paulmach/orb"

	"vicmar/server/internal/geometry"
)

// HitTest returns the top-most lot containing p (image pixel space). On
// overlap the highest priority wins; equal priorities go to the later lot.
func (c *Catalog) HitTest(p orb.Point) (Lot, bool) {
	for i := len(c.drawOrder) - 1; i >= 0; i-- {
		lot := c.lots[c.drawOrder[i]]
		if geometry.Contains(lot.Polygon, p) {
			return lot, true
		}
	}
	return Lot{}, false
}
