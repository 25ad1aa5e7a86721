package widget

import "github.com/go-gl/mathgl/mgl32"

const (
	thumbWidth   = 8
	visibleTicks = 10
)

type Slider struct {
	BaseComponent
	Value    float32 // 0.0 to 1.0
	Steps    int
	ID       string
	OnChange func(val float32)

	dragging bool
}

func NewSlider(x, y, w, h float32, initialVal float32, steps int, id string, onChange func(val float32)) *Slider {
	return &Slider{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Value:         initialVal,
		Steps:         steps,
		ID:            id,
		OnChange:      onChange,
	}
}

// Dragging reports whether the slider holds the pointer.
func (s *Slider) Dragging() bool {
	return s.dragging
}

// HandleInput captures the pointer on press inside the track and follows it
// until release, even outside the track.
func (s *Slider) HandleInput(ptr Pointer) bool {
	switch {
	case s.dragging && ptr.Down:
		s.setFromX(ptr.X)
		return true
	case s.dragging:
		s.dragging = false
		return true
	case ptr.JustPressed && s.Contains(ptr.X, ptr.Y):
		s.dragging = true
		s.setFromX(ptr.X)
		return true
	}
	return false
}

func (s *Slider) setFromX(x float32) {
	v := float32(0)
	if s.W > 0 {
		v = (x - s.X) / s.W
	}
	v = Snap(mgl32.Clamp(v, 0, 1), s.Steps)
	if v != s.Value {
		s.Value = v
		if s.OnChange != nil {
			s.OnChange(v)
		}
	}
}

// Snap rounds v in [0,1] to the nearest of steps evenly spaced positions.
func Snap(v float32, steps int) float32 {
	if steps <= 1 {
		return v
	}
	denom := float32(steps - 1)
	i := int(v*denom + 0.5)
	i = max(0, min(i, steps-1))
	return float32(i) / denom
}

func (s *Slider) Render(p Painter) {
	p.DrawFilledRect(s.X, s.Y, s.W, s.H, mgl32.Vec3{0.3, 0.3, 0.3}, 0.8)

	// fill up to the value like a progress bar
	p.DrawFilledRect(s.X, s.Y, s.W*s.Value, s.H, mgl32.Vec3{0.18, 0.45, 0.7}, 0.9)

	// downsample step ticks to ~10 to reduce clutter
	if s.Steps > 1 {
		tickHeight := s.H * 0.6
		tickY := s.Y + (s.H-tickHeight)*0.5
		tickColor := mgl32.Vec3{0.9, 0.9, 0.9}
		spacing := max(s.Steps/visibleTicks, 1)
		for i := 0; i < s.Steps; i++ {
			if i != 0 && i != s.Steps-1 && i%spacing != 0 {
				continue
			}
			ratio := float32(i) / float32(s.Steps-1)
			p.DrawFilledRect(s.X+ratio*s.W-1, tickY, 2, tickHeight, tickColor, 0.18)
		}
	}

	thumbX := s.X + (s.W-thumbWidth)*s.Value
	p.DrawFilledRect(thumbX, s.Y, thumbWidth, s.H, mgl32.Vec3{0.6, 0.6, 0.6}, 0.9)
}
