package panel

import (
	"fmt"
	"time"

	"wave-city/internal/profiling"
	"wave-city/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
)

// Overlay is the frame-timing readout in the top-left corner.
type Overlay struct {
	visible bool
	frames  profiling.FrameStats
	objects int
}

func (o *Overlay) Toggle()       { o.visible = !o.visible }
func (o *Overlay) Visible() bool { return o.visible }

// AddFrame records the duration of a finished frame and the object count it drew.
func (o *Overlay) AddFrame(d time.Duration, objects int) {
	o.frames.Add(d)
	o.objects = objects
}

// Lines returns the text the overlay shows.
func (o *Overlay) Lines() []string {
	avg, lo, hi := o.frames.Summary()
	lines := []string{
		fmt.Sprintf("FPS: %.0f", o.frames.FPS()),
		fmt.Sprintf("Frame: %s avg | %s min | %s max",
			profiling.FormatMs(avg), profiling.FormatMs(lo), profiling.FormatMs(hi)),
		fmt.Sprintf("Objects: %d", o.objects),
	}
	return append(lines, profiling.Lines(8)...)
}

func (o *Overlay) Render(p widget.Painter) {
	if !o.visible {
		return
	}
	const (
		x        = 10
		startY   = 24
		lineStep = 17
		scale    = 0.375
	)
	lines := o.Lines()
	p.DrawFilledRect(4, 4, 420, float32(len(lines))*lineStep+12, mgl32.Vec3{0, 0, 0}, 0.5)
	for i, line := range lines {
		p.DrawText(line, x, startY+float32(i)*lineStep, scale, mgl32.Vec3{1, 1, 1})
	}
}
