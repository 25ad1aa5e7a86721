package widget

import "github.com/go-gl/mathgl/mgl32"

type Button struct {
	BaseComponent
	Text      string
	OnClick   func()
	IsHovered bool

	// AlignLeft draws the label at the left edge instead of centred.
	AlignLeft bool

	NormalColor mgl32.Vec3
	HoverColor  mgl32.Vec3
	TextColor   mgl32.Vec3
}

func NewButton(text string, x, y, w, h float32, onClick func()) *Button {
	return &Button{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Text:          text,
		OnClick:       onClick,
		NormalColor:   mgl32.Vec3{0.3, 0.3, 0.3},
		HoverColor:    mgl32.Vec3{0.4, 0.4, 0.4},
		TextColor:     mgl32.Vec3{1, 1, 1},
	}
}

func (b *Button) Render(p Painter) {
	color := b.NormalColor
	if b.IsHovered {
		color = b.HoverColor
	}
	p.DrawFilledRect(b.X, b.Y, b.W, b.H, color, 1.0)

	if b.Text == "" {
		return
	}
	const heightRatio = 0.55
	scale, textW := FitText(p, b.Text, b.H, heightRatio, b.W*0.9)
	textH := b.H * heightRatio
	textX := b.X + (b.W-textW)/2
	if b.AlignLeft {
		textX = b.X + b.H*0.3
	}
	// baseline sits at roughly 75% of the line height
	baseline := b.Y + (b.H-textH)/2 + textH*0.75
	p.DrawText(b.Text, textX, baseline, scale, b.TextColor)
}

func (b *Button) HandleInput(ptr Pointer) bool {
	b.IsHovered = b.Contains(ptr.X, ptr.Y)
	if b.IsHovered && ptr.JustPressed {
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}
