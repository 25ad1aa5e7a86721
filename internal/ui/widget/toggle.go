package widget

import "github.com/go-gl/mathgl/mgl32"

type Toggle struct {
	BaseComponent
	IsOn      bool
	OnToggle  func(isOn bool)
	IsHovered bool
}

func NewToggle(x, y, w, h float32, initial bool, onToggle func(isOn bool)) *Toggle {
	return &Toggle{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		IsOn:          initial,
		OnToggle:      onToggle,
	}
}

func (t *Toggle) Render(p Painter) {
	bgColor := mgl32.Vec3{0.5, 0.2, 0.2}
	if t.IsOn {
		bgColor = mgl32.Vec3{0.2, 0.5, 0.2}
	}
	if t.IsHovered {
		bgColor = bgColor.Mul(1.2)
	}
	p.DrawFilledRect(t.X, t.Y, t.W, t.H, bgColor, 0.85)

	if t.IsOn {
		inset := t.H * 0.25
		p.DrawFilledRect(t.X+inset, t.Y+inset, t.W-2*inset, t.H-2*inset, mgl32.Vec3{0.9, 0.9, 0.9}, 0.9)
	}
}

func (t *Toggle) HandleInput(ptr Pointer) bool {
	t.IsHovered = t.Contains(ptr.X, ptr.Y)
	if t.IsHovered && ptr.JustPressed {
		t.IsOn = !t.IsOn
		if t.OnToggle != nil {
			t.OnToggle(t.IsOn)
		}
		return true
	}
	return false
}
