package panel

import (
	"testing"
	"time"

	"wave-city/internal/params"
	"wave-city/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
)

type recordingPainter struct {
	rects int
	texts []string
}

func (r *recordingPainter) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	r.rects++
}

func (r *recordingPainter) DrawText(text string, x, y, scale float32, color mgl32.Vec3) {
	r.texts = append(r.texts, text)
}

func (r *recordingPainter) MeasureText(text string, scale float32) (float32, float32) {
	return float32(len(text)) * 8 * scale, 16 * scale
}

func findRow(t *testing.T, pn *Panel, label string) *row {
	t.Helper()
	for _, fd := range pn.folders {
		for _, r := range fd.rows {
			if r.label == label {
				return r
			}
		}
	}
	t.Fatalf("no row %q", label)
	return nil
}

func click(pn *Panel, x, y float32) bool {
	consumed := pn.HandleInput(widget.Pointer{X: x, Y: y, Down: true, JustPressed: true})
	pn.HandleInput(widget.Pointer{X: x, Y: y})
	return consumed
}

func shownPanel() *Panel {
	pn := New(params.Default())
	pn.SetViewport(1280, 720)
	pn.Toggle()
	return pn
}

func TestPanelStartsHidden(t *testing.T) {
	pn := New(params.Default())
	if pn.Visible() {
		t.Fatal("panel visible at start")
	}
	p := &recordingPainter{}
	pn.Render(p)
	if p.rects != 0 || len(p.texts) != 0 {
		t.Error("hidden panel drew something")
	}
	if pn.HandleInput(widget.Pointer{X: 1200, Y: 40, JustPressed: true, Down: true}) {
		t.Error("hidden panel consumed input")
	}

	pn.Toggle()
	if !pn.Visible() {
		t.Fatal("Toggle did not show the panel")
	}
	pn.Toggle()
	if pn.Visible() {
		t.Fatal("second Toggle did not hide the panel")
	}
}

func TestPanelRowsCoverFields(t *testing.T) {
	pn := New(params.Default())
	n := 0
	for _, f := range params.Fields() {
		if f.Kind == params.KindColor {
			n += 3
		} else {
			n++
		}
	}
	if got := len(pn.visibleRows()); got != n {
		t.Errorf("%d rows, want %d", got, n)
	}
}

func TestToggleRowFiresOnChange(t *testing.T) {
	pn := shownPanel()
	var calls int
	var old, next params.Params
	pn.OnChange = func(o, n params.Params) { calls++; old, next = o, n }

	tg := findRow(t, pn, "perlinNoise").toggle
	if !click(pn, tg.X+tg.W/2, tg.Y+tg.H/2) {
		t.Fatal("click on toggle not consumed")
	}
	if calls != 1 || !old.PerlinNoise || next.PerlinNoise {
		t.Fatalf("calls=%d old=%v next=%v", calls, old.PerlinNoise, next.PerlinNoise)
	}
	if pn.Params().PerlinNoise {
		t.Error("panel params not replaced")
	}
}

func TestSliderDragSetsGridExtent(t *testing.T) {
	pn := shownPanel()
	var last [2]params.Params
	pn.OnChange = func(o, n params.Params) { last = [2]params.Params{o, n} }

	s := findRow(t, pn, "objectsX").slider
	pn.HandleInput(widget.Pointer{X: s.X + s.W, Y: s.Y + 1, Down: true, JustPressed: true})
	if !pn.Dragging() {
		t.Fatal("slider did not capture the pointer")
	}
	pn.HandleInput(widget.Pointer{X: s.X + s.W + 500, Y: s.Y + 200, Down: true})
	pn.HandleInput(widget.Pointer{X: s.X + s.W + 500, Y: s.Y + 200})

	if pn.Params().ObjectsX != 100 {
		t.Errorf("objectsX = %d, want 100", pn.Params().ObjectsX)
	}
	if !params.NeedsRepopulate(last[0], last[1]) {
		t.Error("grid-extent edit should need a repopulate")
	}
	if pn.Dragging() {
		t.Error("drag not released")
	}
}

func TestColorChannelSlider(t *testing.T) {
	pn := shownPanel()
	s := findRow(t, pn, "ambientLightColor R").slider
	click(pn, s.X, s.Y+1)
	if got := pn.Params().AmbientLightColor; got != 0x00ffff {
		t.Errorf("ambient color = %v, want #00ffff", got)
	}
}

func TestFolderCollapse(t *testing.T) {
	pn := shownPanel()
	before := len(pn.visibleRows())
	var objects *folder
	for _, fd := range pn.folders {
		if fd.name == params.FolderObjects {
			objects = fd
		}
	}
	h := objects.header
	click(pn, h.X+10, h.Y+h.H/2)
	if got := len(pn.visibleRows()); got != before-len(objects.rows) {
		t.Errorf("%d rows after collapse, want %d", got, before-len(objects.rows))
	}
	click(pn, h.X+10, h.Y+h.H/2)
	if got := len(pn.visibleRows()); got != before {
		t.Errorf("%d rows after expand, want %d", got, before)
	}
}

func TestTitleClosesPanel(t *testing.T) {
	pn := shownPanel()
	click(pn, pn.title.X+5, pn.title.Y+5)
	if len(pn.visibleRows()) != 0 || len(pn.headers()) != 1 {
		t.Error("closed panel still lists rows")
	}
}

func TestSetParamsDoesNotFire(t *testing.T) {
	pn := shownPanel()
	pn.OnChange = func(o, n params.Params) { t.Error("OnChange fired for SetParams") }
	p := params.Default()
	p.Elevation = 20
	pn.SetParams(p)
	if s := findRow(t, pn, "elevation").slider; s.Value != 1 {
		t.Errorf("elevation slider at %v, want 1", s.Value)
	}
}

func TestPanelCapturesPointerOverBackground(t *testing.T) {
	pn := shownPanel()
	if !pn.HandleInput(widget.Pointer{X: pn.left() + 2, Y: Margin + RowHeight + 5}) {
		t.Error("pointer over the panel should be captured")
	}
	if pn.HandleInput(widget.Pointer{X: 10, Y: 10, JustPressed: true, Down: true}) {
		t.Error("pointer away from the panel should not be captured")
	}
}

func TestRenderDrawsLabels(t *testing.T) {
	pn := shownPanel()
	p := &recordingPainter{}
	pn.Render(p)
	found := false
	for _, s := range p.texts {
		if s == "waveFrequency" {
			found = true
		}
	}
	if !found {
		t.Error("waveFrequency label not drawn")
	}
}

func TestOverlay(t *testing.T) {
	var o Overlay
	p := &recordingPainter{}
	o.Render(p)
	if p.rects != 0 {
		t.Error("hidden overlay drew")
	}
	for range 5 {
		o.AddFrame(20*time.Millisecond, 2500)
	}
	lines := o.Lines()
	if lines[0] != "FPS: 50" || lines[2] != "Objects: 2500" {
		t.Errorf("overlay lines %q", lines[:3])
	}
	o.Toggle()
	o.Render(p)
	if p.rects != 1 || len(p.texts) != len(lines) {
		t.Errorf("visible overlay drew %d rects / %d texts", p.rects, len(p.texts))
	}
}
