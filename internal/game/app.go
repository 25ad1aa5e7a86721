package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"wave-city/internal/camera"
	"wave-city/internal/config"
	"wave-city/internal/graphics/renderables/buildings"
	"wave-city/internal/graphics/renderables/helper"
	"wave-city/internal/graphics/renderables/ui"
	"wave-city/internal/graphics/renderer"
	"wave-city/internal/heightfield"
	"wave-city/internal/input"
	"wave-city/internal/panel"
	"wave-city/internal/params"
	"wave-city/internal/profiling"
	"wave-city/internal/scene"
	"wave-city/internal/ui/widget"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"
)

// SlowFrame is the frame time above which the loop logs a warning.
const SlowFrame = 50 * time.Millisecond

// OrbitTarget is the point the camera orbits at startup.
var OrbitTarget = mgl32.Vec3{1, 0, 1}

// App owns the window-facing pieces and drives the frame loop.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	opts         config.Options

	renderer  *renderer.Renderer
	uiLayer   *ui.UI
	buildings *buildings.Buildings
	controls  *camera.OrbitControls
	panel     *panel.Panel
	overlay   *panel.Overlay
	session   *Session

	clock      *FrameClock
	fpsLimiter *FPSLimiter

	// pointer accumulates cursor/button state between frames for the panel
	pointer widget.Pointer
}

// NewApp builds the renderer, scene and panel and starts loading the model.
func NewApp(window *glfw.Window, im *input.InputManager, opts config.Options, p params.Params) (*App, error) {
	width, height := window.GetSize()
	fbW, fbH := window.GetFramebufferSize()

	cam := camera.NewCamera(width, height)
	controls := camera.NewOrbitControls(cam, OrbitTarget, width, height)
	controls.EnableDamping = true

	buildingsRenderer := buildings.NewBuildings()
	helperRenderer := helper.NewLightHelper()
	uiRenderer := ui.NewUI()

	r, err := renderer.NewRenderer(cam, width, height,
		buildingsRenderer,
		helperRenderer,
		uiRenderer,
	)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	r.SetFramebufferSize(fbW, fbH)

	seed := opts.ResolveSeed()
	noise, err := heightfield.NewNoise(opts.Noise, seed)
	if err != nil {
		r.Dispose()
		return nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	session := NewSession(scene.New(rng), noise, p, buildingsRenderer)

	pn := panel.New(p)
	pn.SetViewport(width, height)
	pn.OnChange = func(old, next params.Params) {
		session.SetParams(next)
	}

	log.Info().
		Str("noise", opts.Noise).
		Int64("seed", seed).
		Int("objectsX", p.ObjectsX).
		Int("objectsZ", p.ObjectsZ).
		Msg("scene configured")

	session.LoadModel(opts.ModelPath)

	return &App{
		window:       window,
		inputManager: im,
		opts:         opts,
		renderer:     r,
		uiLayer:      uiRenderer,
		buildings:    buildingsRenderer,
		controls:     controls,
		panel:        pn,
		overlay:      &panel.Overlay{},
		session:      session,
		clock:        NewFrameClock(nil),
		fpsLimiter:   NewFPSLimiter(opts.FPSLimit),
	}, nil
}

// Run loops until the window closes or stop fires.
func (a *App) Run(stop <-chan struct{}) {
	for !a.window.ShouldClose() {
		select {
		case <-stop:
			log.Info().Msg("stop requested")
			return
		default:
		}
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	elapsed, dt := a.clock.Tick()

	func() {
		defer profiling.Track("glfw.PollEvents")()
		glfw.PollEvents()
	}()

	a.handleActions()
	a.session.PollModel()
	a.handlePointer()
	a.controls.Update()
	a.session.Update(elapsed)

	a.draw(dt)
	a.window.SwapBuffers()

	frame := time.Since(startTick)
	a.overlay.AddFrame(frame, a.session.Scene.Len())
	if frame > SlowFrame {
		log.Warn().Dur("frame", frame).Str("top", profiling.TopN(5)).Msg("slow frame")
	}

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait()
}

func (a *App) draw(dt float64) {
	a.renderer.Render(a.session.Scene, a.session.Params, dt)

	defer profiling.Track("panel.Render")()
	a.panel.Render(a.uiLayer)
	a.overlay.Render(a.uiLayer)
}

// handlePointer gives the panel this frame's pointer state, then clears the
// one-frame press edge.
func (a *App) handlePointer() {
	a.panel.HandleInput(a.pointer)
	a.pointer.JustPressed = false
}

func (a *App) handleActions() {
	im := a.inputManager

	if im.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionTogglePanel) {
		a.panel.Toggle()
		log.Debug().Bool("visible", a.panel.Visible()).Msg("panel toggled")
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		a.overlay.Toggle()
	}
	if im.JustPressed(input.ActionToggleHelper) {
		p := a.session.Params
		next, err := p.With("directionalLightHelper", boolValue(!p.DirectionalLightHelper))
		if err == nil {
			a.applyParams(next)
		}
	}
	if im.JustPressed(input.ActionReloadPreset) {
		a.reloadPreset()
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// applyParams installs parameters that did not come from the panel.
func (a *App) applyParams(next params.Params) {
	a.panel.SetParams(next)
	a.session.SetParams(next)
}

func (a *App) reloadPreset() {
	if a.opts.ParamsPath == "" {
		log.Info().Msg("no preset file configured; restoring defaults")
		a.applyParams(params.Default())
		return
	}
	p, err := params.Load(a.opts.ParamsPath)
	if err != nil {
		log.Error().Err(err).Str("path", a.opts.ParamsPath).Msg("preset reload failed")
		return
	}
	a.applyParams(p)
	log.Info().Str("path", a.opts.ParamsPath).Msg("preset reloaded")
}

// RefreshRender repaints without advancing input, used while the window is resized.
func (a *App) RefreshRender() {
	a.session.Update(a.clock.Elapsed())
	a.draw(0)
	a.window.SwapBuffers()
}

// Close releases GPU resources and writes the final parameters when asked to.
func (a *App) Close() error {
	a.renderer.Dispose()
	if a.opts.SaveParamsPath == "" {
		return nil
	}
	if err := params.Save(a.opts.SaveParamsPath, a.session.Params); err != nil {
		return fmt.Errorf("save parameters: %w", err)
	}
	log.Info().Str("path", a.opts.SaveParamsPath).Msg("parameters saved")
	return nil
}
