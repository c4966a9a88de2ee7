// Package core provides fundamental types and utilities shared by the game
// logic and the platform layer. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Rect represents an axis-aligned bounding box used for all collision geometry.
// Edges are half-open: a rect covers [X, X+W) horizontally and [Y, Y+H) vertically.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// SetRight moves the rect horizontally so its right edge lands on x.
func (r *Rect) SetRight(x int) {
	r.X = x - r.W
}

// SetBottom moves the rect vertically so its bottom edge lands on y.
func (r *Rect) SetBottom(y int) {
	r.Y = y - r.H
}

// Translate returns a copy of the rect moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersects returns true if this rectangle overlaps with another.
// Rects that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// CollisionTest returns every tile the rect overlaps, in input order.
// Returns nil when nothing overlaps.
func CollisionTest(r Rect, tiles []Rect) []Rect {
	var hits []Rect
	for _, tile := range tiles {
		if r.Intersects(tile) {
			hits = append(hits, tile)
		}
	}
	return hits
}

// CollidesAny reports whether the rect overlaps at least one tile.
// Same semantics as len(CollisionTest(r, tiles)) > 0 without allocating.
func CollidesAny(r Rect, tiles []Rect) bool {
	for _, tile := range tiles {
		if r.Intersects(tile) {
			return true
		}
	}
	return false
}

// Fit scales a content area of cw x ch into a window of ww x wh keeping the
// aspect ratio, and returns the centered destination rect. A zero-sized
// content or window yields an empty rect at the origin.
func Fit(cw, ch, ww, wh int) Rect {
	if cw <= 0 || ch <= 0 || ww <= 0 || wh <= 0 {
		return Rect{}
	}

	// Window wider than the content ratio: height limits the scale
	var w, h int
	if ww*ch >= wh*cw {
		h = wh
		w = cw * wh / ch
	} else {
		w = ww
		h = ch * ww / cw
	}

	return Rect{X: (ww - w) / 2, Y: (wh - h) / 2, W: w, H: h}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
