// Package cli provides a standalone host for the bridge. It drives the
// core one frame per Ebiten tick and presents the delivered video and
// audio, standing in for a real plugin frontend.
package cli

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/emame/mame"
	"github.com/user-none/emame/render"
	"github.com/user-none/emame/retro"
	"github.com/user-none/emame/ui"
)

// Runner implements ebiten.Game. Update runs exactly one core frame, which
// blocks until the emulation goroutine has delivered it; Draw renders the
// latest snapshot from the shared framebuffer.
type Runner struct {
	core        *retro.Core
	audioPlayer *ui.AudioPlayer

	sharedInput       *ui.SharedInput
	sharedFramebuffer *ui.SharedFramebuffer

	pixelFormat retro.PixelFormat

	offscreen *ebiten.Image
	rgba      []byte
	drawOpts  ebiten.DrawImageOptions
}

// NewRunner wraps the core, registering all host callbacks on it. Callers
// must still Init the core and load a game before the first Update.
func NewRunner(core *retro.Core) *Runner {
	r := &Runner{
		core:              core,
		sharedInput:       &ui.SharedInput{},
		sharedFramebuffer: ui.NewSharedFramebuffer(render.MaxPixels),
		pixelFormat:       retro.PixelFormatXRGB1555,
	}

	core.SetEnvironment(r.onEnvironment)
	core.SetVideoRefresh(r.onVideoRefresh)
	core.SetAudioSampleBatch(r.onAudioBatch)
	core.SetInputPoll(func() {})
	core.SetInputState(r.onInputState)
	core.SetControlsMapper(mapControls)

	return r
}

// Close cleans up the runner's resources.
func (r *Runner) Close() {
	if r.audioPlayer != nil {
		r.audioPlayer.Close()
		r.audioPlayer = nil
	}
}

func (r *Runner) onEnvironment(cmd retro.EnvCommand, data any) bool {
	if cmd != retro.EnvSetPixelFormat {
		return false
	}
	format, ok := data.(retro.PixelFormat)
	if !ok {
		return false
	}
	switch format {
	case retro.PixelFormatRGB565, retro.PixelFormatXRGB1555:
		r.pixelFormat = format
		return true
	}
	return false
}

// onVideoRefresh copies the frame out of the core's scratch buffer; the
// buffer is reused next frame and must not be retained.
func (r *Runner) onVideoRefresh(pix []uint16, width, height, pitch int) {
	r.sharedFramebuffer.Update(pix, width, height)
}

// onAudioBatch queues one frame's samples. The player is created on the
// first batch, once the engine has reported its sample rate.
func (r *Runner) onAudioBatch(samples []int16, frames int) int {
	if r.audioPlayer == nil {
		rate := r.core.FrameDescriptor().SampleRate
		if rate <= 0 {
			return frames
		}
		player, err := ui.NewAudioPlayer(rate, 1.0)
		if err != nil {
			log.Printf("Warning: audio initialization failed: %v", err)
			return frames
		}
		r.audioPlayer = player
	}

	r.audioPlayer.QueueSamples(samples)
	return frames
}

func (r *Runner) onInputState(port, device, index, id int) int16 {
	if device != retro.DeviceJoypad {
		return 0
	}
	if r.sharedInput.Pressed(port, id) {
		return 1
	}
	return 0
}

// mapControls is a minimal demonstration mapping: joypad directions to the
// engine's joystick bits, the first two face buttons and start/coin to
// player one. A full per-game mapping table does not exist yet.
func mapControls(state *mame.AllControlsState, input retro.InputState) {
	for player := 0; player < mame.MaxPlayers; player++ {
		var joy, buttons uint32

		if input(player, retro.DeviceJoypad, 0, retro.JoypadUp) != 0 {
			joy |= mame.JoystickUp
		}
		if input(player, retro.DeviceJoypad, 0, retro.JoypadDown) != 0 {
			joy |= mame.JoystickDown
		}
		if input(player, retro.DeviceJoypad, 0, retro.JoypadLeft) != 0 {
			joy |= mame.JoystickLeft
		}
		if input(player, retro.DeviceJoypad, 0, retro.JoypadRight) != 0 {
			joy |= mame.JoystickRight
		}
		if input(player, retro.DeviceJoypad, 0, retro.JoypadB) != 0 {
			buttons |= 1 << 0
		}
		if input(player, retro.DeviceJoypad, 0, retro.JoypadA) != 0 {
			buttons |= 1 << 1
		}

		state.PerPlayer[player].JoystickState = joy
		state.PerPlayer[player].ButtonsState = buttons
	}

	if input(0, retro.DeviceJoypad, 0, retro.JoypadStart) != 0 {
		state.Shared.Buttons |= mame.SharedStart1
	} else {
		state.Shared.Buttons &^= mame.SharedStart1
	}
	if input(0, retro.DeviceJoypad, 0, retro.JoypadSelect) != 0 {
		state.Shared.Buttons |= mame.SharedCoin1
	} else {
		state.Shared.Buttons &^= mame.SharedCoin1
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	r.pollInputToShared()
	r.core.Run()
	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	pixels, width, height := r.sharedFramebuffer.Read()
	if width == 0 || height == 0 {
		return
	}

	need := width * height * 4
	if cap(r.rgba) < need {
		r.rgba = make([]byte, need)
	}
	r.rgba = r.rgba[:need]
	convertToRGBA(pixels[:width*height], r.rgba, r.pixelFormat)

	if r.offscreen == nil || r.offscreen.Bounds().Dx() != width || r.offscreen.Bounds().Dy() != height {
		r.offscreen = ebiten.NewImage(width, height)
	}
	r.offscreen.WritePixels(r.rgba)

	// Scale to fit the window while preserving aspect ratio
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scaleX := float64(screenW) / float64(width)
	scaleY := float64(screenH) / float64(height)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	offsetX := (float64(screenW) - float64(width)*scale) / 2
	offsetY := (float64(screenH) - float64(height)*scale) / 2

	r.drawOpts = ebiten.DrawImageOptions{}
	r.drawOpts.GeoM.Scale(scale, scale)
	r.drawOpts.GeoM.Translate(offsetX, offsetY)
	r.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(r.offscreen, &r.drawOpts)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// convertToRGBA expands packed 16-bit pixels to RGBA bytes for Ebiten.
func convertToRGBA(src []uint16, dst []byte, format retro.PixelFormat) {
	for i, p := range src {
		var r, g, b byte
		if format == retro.PixelFormatRGB565 {
			r = byte(p>>11) << 3
			g = byte(p>>5&0x3F) << 2
			b = byte(p&0x1F) << 3
		} else {
			r = byte(p>>10&0x1F) << 3
			g = byte(p>>5&0x1F) << 3
			b = byte(p&0x1F) << 3
		}
		dst[i*4+0] = r
		dst[i*4+1] = g
		dst[i*4+2] = b
		dst[i*4+3] = 0xFF
	}
}

// pollInputToShared reads keyboard input on the Ebiten thread and latches
// it for the input-state callback (arrows/WASD, J/K for buttons, Enter for
// start, Backspace for coin).
func (r *Runner) pollInputToShared() {
	var buttons uint32

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		buttons |= 1 << retro.JoypadUp
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		buttons |= 1 << retro.JoypadDown
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		buttons |= 1 << retro.JoypadLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		buttons |= 1 << retro.JoypadRight
	}
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		buttons |= 1 << retro.JoypadB
	}
	if ebiten.IsKeyPressed(ebiten.KeyK) {
		buttons |= 1 << retro.JoypadA
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		buttons |= 1 << retro.JoypadStart
	}
	if ebiten.IsKeyPressed(ebiten.KeyBackspace) {
		buttons |= 1 << retro.JoypadSelect
	}

	r.sharedInput.Set(0, buttons)
}
