package widget

import "github.com/go-gl/mathgl/mgl32"

// Painter is the drawing surface widgets render onto. Coordinates are window
// pixels with a top-left origin.
type Painter interface {
	DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32)
	DrawText(text string, x, y, scale float32, color mgl32.Vec3)
	MeasureText(text string, scale float32) (float32, float32)
}

// Pointer is the mouse state for one frame.
type Pointer struct {
	X, Y        float32
	Down        bool // left button held
	JustPressed bool // left button went down this frame
}

type Component interface {
	Render(p Painter)
	HandleInput(ptr Pointer) bool
	SetPosition(x, y float32)
	SetSize(w, h float32)
	GetSize() (float32, float32)
}

type BaseComponent struct {
	X, Y, W, H float32
}

func (b *BaseComponent) SetPosition(x, y float32)    { b.X, b.Y = x, y }
func (b *BaseComponent) SetSize(w, h float32)        { b.W, b.H = w, h }
func (b *BaseComponent) GetSize() (float32, float32) { return b.W, b.H }

// Contains reports whether (x, y) lies inside the component.
func (b *BaseComponent) Contains(x, y float32) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// FitText returns the scale at which text fills heightRatio of h without
// exceeding maxW, and its width at that scale.
func FitText(p Painter, text string, h, heightRatio, maxW float32) (scale, width float32) {
	_, rawH := p.MeasureText(text, 1.0)
	if rawH == 0 {
		rawH = 20
	}
	scale = h * heightRatio / rawH
	width, _ = p.MeasureText(text, scale)
	if width > maxW && width > 0 {
		scale *= maxW / width
		width = maxW
	}
	return scale, width
}
