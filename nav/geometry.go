package nav

import "math"

// Point is a 2D offset from the menu center, +x right, +y down.
type Point struct {
	X float64
	Y float64
}

// ItemPosition maps a 0-based ordinal to its offset on the radial arc.
// The arc spans spreadDegrees starting at startDegrees; 0° points right and
// angles grow clockwise in screen coordinates. A single item sits at the
// start angle (the N=1 case would otherwise divide by zero).
func ItemPosition(position, n int, spreadDegrees, startDegrees, radius float64) Point {
	step := spreadDegrees / float64(max(n-1, 1))
	angle := (startDegrees + float64(position)*step) * math.Pi / 180
	return Point{
		X: radius * math.Cos(angle),
		Y: radius * math.Sin(angle),
	}
}

// ItemAngle reports the item's arc angle in degrees, for callers that lay
// out along the arc themselves.
func ItemAngle(position, n int, spreadDegrees, startDegrees float64) float64 {
	step := spreadDegrees / float64(max(n-1, 1))
	return startDegrees + float64(position)*step
}

// ItemPosition returns the radial offset for the item at the given ordinal
// under the current config, with the radius compacted on narrow viewports.
func (c *Coordinator) ItemPosition(position int) Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg := c.cfg
	radius := cfg.Radius
	if c.viewportW > 0 && cfg.CompactWidth > 0 && c.viewportW < cfg.CompactWidth {
		radius *= cfg.CompactFactor
	}
	return ItemPosition(position, len(cfg.Items), cfg.SpreadDegrees, cfg.StartDegrees, radius)
}
