// Package panel is the on-screen parameter editor. It owns the current
// params.Params value and replaces it on every edit.
package panel

import (
	"fmt"
	"math"

	"wave-city/internal/params"
	"wave-city/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"
)

// Layout in window pixels.
const (
	Width       = 320
	Margin      = 8
	RowHeight   = 22
	RowGap      = 2
	LabelWidth  = 150
	ValueWidth  = 48
	TextScale   = 0.42
	ToggleInset = 4
)

var (
	background  = mgl32.Vec3{0.1, 0.1, 0.12}
	labelColor  = mgl32.Vec3{0.92, 0.92, 0.92}
	valueColor  = mgl32.Vec3{0.6, 0.8, 1.0}
	headerColor = mgl32.Vec3{0.16, 0.16, 0.2}
)

var channelNames = [3]string{"R", "G", "B"}

type row struct {
	field   params.Field
	channel int // color channel for KindColor rows, -1 otherwise
	label   string
	control widget.Component
	slider  *widget.Slider
	toggle  *widget.Toggle
	y       float32
}

type folder struct {
	name      string
	header    *widget.Button // nil for the root folder
	collapsed bool
	rows      []*row
}

// Panel lays out one control per tunable field, grouped into collapsible
// folders, in the top-right corner of the window.
type Panel struct {
	params   params.Params
	OnChange func(old, next params.Params)

	title   *widget.Button
	folders []*folder
	closed  bool

	visible bool
	viewW   float32
	viewH   float32
	height  float32
}

// New builds the panel for p. It starts hidden.
func New(p params.Params) *Panel {
	pn := &Panel{params: p, viewW: 1280, viewH: 720}
	pn.title = widget.NewButton("Controls", 0, 0, Width, RowHeight, func() { pn.closed = !pn.closed })
	pn.title.NormalColor = headerColor
	pn.title.HoverColor = headerColor.Mul(1.3)

	byName := map[string]*folder{}
	for _, f := range params.Fields() {
		fd, ok := byName[f.Folder]
		if !ok {
			fd = &folder{name: f.Folder}
			if f.Folder != params.FolderRoot {
				fd.header = widget.NewButton(f.Folder, 0, 0, Width, RowHeight, nil)
				fd.header.AlignLeft = true
				fd.header.NormalColor = headerColor
				fd.header.HoverColor = headerColor.Mul(1.3)
				fd.header.OnClick = func() { fd.collapsed = !fd.collapsed }
			}
			byName[f.Folder] = fd
			pn.folders = append(pn.folders, fd)
		}
		fd.rows = append(fd.rows, pn.rowsFor(f)...)
	}
	pn.sync()
	pn.layout()
	return pn
}

func (pn *Panel) rowsFor(f params.Field) []*row {
	switch f.Kind {
	case params.KindBool:
		r := &row{field: f, channel: -1, label: f.Name}
		r.toggle = widget.NewToggle(0, 0, RowHeight-ToggleInset, RowHeight-ToggleInset, false, func(on bool) {
			v := 0.0
			if on {
				v = 1
			}
			pn.apply(f.Name, v)
		})
		r.control = r.toggle
		return []*row{r}

	case params.KindColor:
		rows := make([]*row, 0, 3)
		for ch := range 3 {
			r := &row{field: f, channel: ch, label: f.Name + " " + channelNames[ch]}
			r.slider = widget.NewSlider(0, 0, 0, 0, 0, 256, f.Name+channelNames[ch], func(v float32) {
				cur, err := pn.params.Get(f.Name)
				if err != nil {
					return
				}
				c := params.Color(cur).WithChannel(ch, uint8(math.Round(float64(v)*255)))
				pn.apply(f.Name, float64(c))
			})
			r.control = r.slider
			rows = append(rows, r)
		}
		return rows

	default:
		r := &row{field: f, channel: -1, label: f.Name}
		r.slider = widget.NewSlider(0, 0, 0, 0, 0, f.Steps(), f.Name, func(v float32) {
			pn.apply(f.Name, f.Denormalize(float64(v)))
		})
		r.control = r.slider
		return []*row{r}
	}
}

// apply commits one edit: a new Params value replaces the current one and
// OnChange observes both.
func (pn *Panel) apply(name string, v float64) {
	next, err := pn.params.With(name, v)
	if err != nil {
		log.Warn().Err(err).Str("field", name).Msg("rejected panel edit")
		return
	}
	old := pn.params
	if next == old {
		pn.sync()
		return
	}
	pn.params = next
	pn.sync()
	if pn.OnChange != nil {
		pn.OnChange(old, next)
	}
}

// sync pushes the current params into every control.
func (pn *Panel) sync() {
	for _, fd := range pn.folders {
		for _, r := range fd.rows {
			v, err := pn.params.Get(r.field.Name)
			if err != nil {
				continue
			}
			switch {
			case r.toggle != nil:
				r.toggle.IsOn = v != 0
			case r.channel >= 0:
				r.slider.Value = float32(params.Color(v).Channel(r.channel)) / 255
			default:
				r.slider.Value = float32(r.field.Normalize(v))
			}
		}
	}
}

// Params returns the current parameter value.
func (pn *Panel) Params() params.Params {
	return pn.params
}

// SetParams replaces the edited value without firing OnChange.
func (pn *Panel) SetParams(p params.Params) {
	pn.params = p
	pn.sync()
}

func (pn *Panel) Visible() bool { return pn.visible }

func (pn *Panel) Toggle() {
	pn.visible = !pn.visible
}

// SetViewport anchors the panel to the window's top-right corner.
func (pn *Panel) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	pn.viewW, pn.viewH = float32(width), float32(height)
	pn.layout()
}

func (pn *Panel) left() float32 {
	return max(pn.viewW-Width-Margin, 0)
}

// layout positions every visible control from the top down.
func (pn *Panel) layout() {
	x := pn.left()
	y := float32(Margin)

	pn.title.SetPosition(x, y)
	y += RowHeight + RowGap
	if !pn.closed {
		for _, fd := range pn.folders {
			if fd.header != nil {
				fd.header.SetPosition(x, y)
				y += RowHeight + RowGap
			}
			if fd.collapsed {
				continue
			}
			for _, r := range fd.rows {
				r.y = y
				ctrlX := x + LabelWidth
				if r.toggle != nil {
					r.toggle.SetPosition(ctrlX, y+ToggleInset/2)
				} else {
					r.slider.SetPosition(ctrlX, y+3)
					r.slider.SetSize(Width-LabelWidth-ValueWidth-Margin, RowHeight-6)
				}
				y += RowHeight + RowGap
			}
		}
	}
	pn.height = y - Margin
}

// visibleRows returns the rows not hidden by a collapsed folder.
func (pn *Panel) visibleRows() []*row {
	if pn.closed {
		return nil
	}
	var out []*row
	for _, fd := range pn.folders {
		if !fd.collapsed {
			out = append(out, fd.rows...)
		}
	}
	return out
}

func (pn *Panel) headers() []*widget.Button {
	out := []*widget.Button{pn.title}
	if pn.closed {
		return out
	}
	for _, fd := range pn.folders {
		if fd.header != nil {
			out = append(out, fd.header)
		}
	}
	return out
}

// Contains reports whether (x, y) is over the panel.
func (pn *Panel) Contains(x, y float32) bool {
	l := pn.left()
	return pn.visible && x >= l && x <= l+Width && y >= Margin && y <= Margin+pn.height
}

// HandleInput routes one frame of pointer state to the controls. It returns
// true when the panel consumed the pointer, so the camera should ignore it.
func (pn *Panel) HandleInput(ptr widget.Pointer) bool {
	if !pn.visible {
		return false
	}
	consumed := false
	for _, r := range pn.visibleRows() {
		if r.control.HandleInput(ptr) {
			consumed = true
		}
	}
	for _, h := range pn.headers() {
		if h.HandleInput(ptr) {
			consumed = true
			// a header click changes which rows exist
			pn.layout()
			break
		}
	}
	return consumed || pn.Contains(ptr.X, ptr.Y)
}

// Dragging reports whether any slider currently holds the pointer.
func (pn *Panel) Dragging() bool {
	for _, fd := range pn.folders {
		for _, r := range fd.rows {
			if r.slider != nil && r.slider.Dragging() {
				return true
			}
		}
	}
	return false
}

// Render draws the panel when visible.
func (pn *Panel) Render(p widget.Painter) {
	if !pn.visible {
		return
	}
	x := pn.left()
	p.DrawFilledRect(x, Margin, Width, pn.height, background, 0.85)

	for _, h := range pn.headers() {
		h.Render(p)
	}
	for _, r := range pn.visibleRows() {
		baseline := r.y + RowHeight*0.72
		p.DrawText(r.label, x+6, baseline, TextScale, labelColor)
		r.control.Render(p)
		if r.slider != nil {
			p.DrawText(pn.valueText(r), x+Width-ValueWidth, baseline, TextScale, valueColor)
		}
	}
}

func (pn *Panel) valueText(r *row) string {
	v, err := pn.params.Get(r.field.Name)
	if err != nil {
		return "?"
	}
	switch {
	case r.channel >= 0:
		return fmt.Sprintf("%d", params.Color(v).Channel(r.channel))
	case r.field.Kind == params.KindInt:
		return fmt.Sprintf("%d", int(v))
	case r.field.Step >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
