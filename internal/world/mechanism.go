package world

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Mechanism is the contract shared by gates and doors: a trigger, evaluated
// once per frame, moves the mechanism one step toward open or closed.
type Mechanism interface {
	// Advance runs one frame of progression toward open (active) or closed.
	Advance(active bool)
	// Progress is 0 when closed and 1 when fully open.
	Progress() float64
	// IsOpen reports whether the mechanism reached its open end.
	IsOpen() bool
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_out_cubic": ease.InOutCubic,
	"out_bounce":   ease.OutBounce,
}

// easingFunc returns the named easing; unknown names fall back to linear.
func easingFunc(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}

// progression counts frames between closed (0) and open (frames) and maps
// the count through an eased tween for positions.
type progression struct {
	frame  int
	frames int
	tween  *gween.Tween
}

func newProgression(frames int, easing string) progression {
	frames = max(frames, 1)
	return progression{
		frames: frames,
		tween:  gween.New(0, 1, float32(frames), easingFunc(easing)),
	}
}

// step moves one frame toward the active end and reports whether it moved.
func (p *progression) step(active bool) bool {
	switch {
	case active && p.frame < p.frames:
		p.frame++
	case !active && p.frame > 0:
		p.frame--
	default:
		return false
	}
	return true
}

// peek returns the frame step would move to.
func (p *progression) peek(active bool) int {
	switch {
	case active && p.frame < p.frames:
		return p.frame + 1
	case !active && p.frame > 0:
		return p.frame - 1
	}
	return p.frame
}

func (p *progression) set(frame int) {
	p.frame = min(max(frame, 0), p.frames)
}

func (p *progression) done() bool {
	return p.frame >= p.frames
}

// eased returns the eased ratio at a frame, 0 at 0 and 1 at frames.
func (p *progression) eased(frame int) float64 {
	switch {
	case frame <= 0:
		return 0
	case frame >= p.frames:
		return 1
	}
	v, _ := p.tween.Set(float32(frame))
	return float64(v)
}

// linear returns the plain completed fraction.
func (p *progression) linear() float64 {
	return float64(p.frame) / float64(p.frames)
}

var (
	_ Mechanism = (*Gate)(nil)
	_ Mechanism = (*Door)(nil)
)
