// Package pixel adapts a faiface/pixel window into the two peripherals the
// CHIP-8 core needs from a windowing backend: the Display Buffer and the
// Keypad Adapter. The CHIP-8 has one instruction that draws a sprite to the
// screen, in XOR mode; a pixel turned off as a result of drawing signals
// collision, which the dispatcher reports through VF.
package pixel

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/chippy8/chippy8/internal/chip8"
)

const (
	screenWidth  = 64
	screenHeight = 32
	cellScale    = 10
	winWidth     = screenWidth * cellScale
	winHeight    = screenHeight * cellScale
)

// InputAction re-exports the core's control-signal type so callers outside
// this package never need to import internal/chip8 just to name an action.
type InputAction = chip8.InputAction

const (
	ActionNone         = chip8.ActionNone
	ActionQuit         = chip8.ActionQuit
	ActionReset        = chip8.ActionReset
	ActionPause        = chip8.ActionPause
	ActionDecreaseTick = chip8.ActionDecreaseTick
	ActionIncreaseTick = chip8.ActionIncreaseTick
	ActionDebugInfo    = chip8.ActionDebugInfo
)

// keyMap is the fixed host-to-hex mapping: rows 1234/QWER/ASDF/ZXCV map to
// hex 123C/456D/789E/A0BF.
var keyMap = map[uint8]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Window embeds a pixelgl window and serves as both the Display Buffer and
// the Keypad Adapter: it owns the logical 64x32 framebuffer, blits sprite
// rows into it in XOR mode, and polls the same window for control keys and
// hex keypad state.
type Window struct {
	win    *pixelgl.Window
	pixels [screenHeight][screenWidth]bool
}

// NewWindow creates the scaled presentation surface (a fixed 640x320,
// 10x the logical 64x32 CHIP-8 screen) and returns a ready Window.
func NewWindow() (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "chippy8",
		Bounds: pixel.R(0, 0, winWidth, winHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %w", err)
	}
	return &Window{win: w}, nil
}

// Closed reports whether the window's close signal has fired.
func (w *Window) Closed() bool {
	return w.win.Closed()
}

// ScreenDimensions returns the logical CHIP-8 framebuffer dimensions.
func (w *Window) ScreenDimensions() (int, int) {
	return screenWidth, screenHeight
}

// Clear zeroes every pixel and presents a blanked surface.
func (w *Window) Clear() {
	for y := range w.pixels {
		for x := range w.pixels[y] {
			w.pixels[y][x] = false
		}
	}
	w.win.Clear(colornames.Black)
	w.win.Update()
}

// DrawRow XOR-blits one 8-pixel horizontal sprite row starting at (x, y).
// The byte's MSB is the leftmost pixel; both coordinates wrap modulo the
// buffer dimensions. It reports whether any previously-lit pixel was
// turned off as a result.
func (w *Window) DrawRow(x, y int, row byte) bool {
	collision := false
	for bit := 0; bit < 8; bit++ {
		if row&(0x80>>uint(bit)) == 0 {
			continue
		}
		px := (x + bit) % screenWidth
		py := y % screenHeight
		if w.pixels[py][px] {
			collision = true
		}
		w.pixels[py][px] = !w.pixels[py][px]
	}
	return collision
}

// Render copies the logical buffer to the presentation surface.
func (w *Window) Render() {
	w.win.Clear(colornames.Black)

	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(1, 1, 1)

	cw, ch := float64(winWidth)/float64(screenWidth), float64(winHeight)/float64(screenHeight)

	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			if !w.pixels[y][x] {
				continue
			}
			// flip Y: CHIP-8 row 0 is the top of the screen, pixel's origin is bottom-left
			drawY := screenHeight - 1 - y
			draw.Push(pixel.V(cw*float64(x), ch*float64(drawY)))
			draw.Push(pixel.V(cw*float64(x)+cw, ch*float64(drawY)+ch))
			draw.Rectangle(0)
		}
	}

	draw.Draw(w.win)
	w.win.Update()
}

// PollControl is a nonblocking poll for a control action (Quit, Reset,
// Pause, DecreaseTick, IncreaseTick, DebugInfo). It returns at most one
// action per call.
func (w *Window) PollControl() (InputAction, bool) {
	w.win.UpdateInput()

	switch {
	case w.win.Closed() || w.win.JustPressed(pixelgl.KeyEscape):
		return ActionQuit, true
	case w.win.JustPressed(pixelgl.KeyEnter):
		return ActionReset, true
	case w.win.JustPressed(pixelgl.KeySpace):
		return ActionPause, true
	case w.win.JustPressed(pixelgl.KeyLeftBracket):
		return ActionDecreaseTick, true
	case w.win.JustPressed(pixelgl.KeyRightBracket):
		return ActionIncreaseTick, true
	case w.win.JustPressed(pixelgl.KeyTab):
		return ActionDebugInfo, true
	}

	return ActionNone, false
}

// KeyPressed is a brief, nonblocking poll of the hex keypad: it reports the
// mapped hex key currently held down, if any.
func (w *Window) KeyPressed() (byte, bool) {
	for hex, btn := range keyMap {
		if w.win.Pressed(btn) {
			return hex, true
		}
	}
	return 0, false
}

// WaitForKey blocks until a mapped hex key is observed down, polling the
// window at a fixed interval so the host stays responsive to a concurrent
// Quit signal (spec's "pump a Quit check inside the wait").
func (w *Window) WaitForKey() byte {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		w.win.UpdateInput()
		if w.win.Closed() {
			return 0
		}
		if key, ok := w.KeyPressed(); ok {
			return key
		}
	}
	return 0
}
