package game

import (
	"wave-city/internal/camera"
	"wave-city/internal/input"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupInputHandlers wires GLFW callbacks to the input manager, the panel
// pointer and the orbit controls.
func SetupInputHandlers(app *App) {
	window := app.window
	im := app.inputManager

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		app.pointer.X, app.pointer.Y = float32(xpos), float32(ypos)
		if app.controls.Dragging() != camera.DragNone {
			app.controls.Drag(xpos, ypos)
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)

		if button == glfw.MouseButtonLeft {
			app.pointer.Down = action == glfw.Press
			if action == glfw.Press {
				app.pointer.JustPressed = true
			}
		}

		switch action {
		case glfw.Press:
			x, y := w.GetCursorPos()
			// presses on the panel belong to the panel
			if app.panel.Contains(float32(x), float32(y)) || app.panel.Dragging() {
				return
			}
			switch button {
			case glfw.MouseButtonLeft:
				mode := camera.DragRotate
				if im.IsActive(input.ActionModShift) {
					mode = camera.DragPan
				}
				app.controls.BeginDrag(mode, x, y)
			case glfw.MouseButtonRight, glfw.MouseButtonMiddle:
				app.controls.BeginDrag(camera.DragPan, x, y)
			}
		case glfw.Release:
			app.controls.EndDrag()
		}
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if app.panel.Contains(app.pointer.X, app.pointer.Y) {
			return
		}
		app.controls.Scroll(yoff)
	})

	im.SetKeyCallback(window)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		app.renderer.SetFramebufferSize(fbWidth, fbHeight)

		// layout and the camera aspect use window (logical) coordinates
		winW, winH := w.GetSize()
		app.renderer.UpdateViewport(winW, winH)
		app.controls.SetViewport(winW, winH)
		app.panel.SetViewport(winW, winH)
		// NOTE: Do not render here. Rely on SetRefreshCallback for smooth resizing on macOS.
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		app.RefreshRender()
	})
}
