// Package retro implements the plugin entry-point surface the host drives.
// All host-visible state lives in one Core context object; the host calls
// its methods from a single controlling goroutine.
package retro

import (
	"log"

	"github.com/user-none/emame/mame"
	"github.com/user-none/emame/render"
	"github.com/user-none/emame/session"
)

// APIVersion is the fixed plugin API version this core implements.
const APIVersion = 1

// Library identity reported to the host.
const (
	LibraryName    = "emame"
	LibraryVersion = "1.0.0"
)

// PixelFormat is the host-side pixel layout negotiated via the environment
// callback.
type PixelFormat int

const (
	PixelFormatXRGB1555 PixelFormat = iota
	PixelFormatXRGB8888
	PixelFormatRGB565
)

// EnvCommand identifies an environment callback request.
type EnvCommand int

const (
	// EnvSetPixelFormat proposes a PixelFormat. The host returns true to
	// accept it.
	EnvSetPixelFormat EnvCommand = iota
)

// Host callback types. The host registers these before Init; unregistered
// callbacks are skipped.
type (
	// Environment services core-to-host requests.
	Environment func(cmd EnvCommand, data any) bool

	// VideoRefresh receives one converted frame. pix is valid only for
	// the duration of the call; pitch is in bytes.
	VideoRefresh func(pix []uint16, width, height, pitch int)

	// AudioSample receives one stereo frame.
	AudioSample func(left, right int16)

	// AudioSampleBatch receives a frame's worth of interleaved stereo
	// samples and returns the number of frames consumed.
	AudioSampleBatch func(samples []int16, frames int) int

	// InputPoll asks the host to latch controller input.
	InputPoll func()

	// InputState queries one control's current state.
	InputState func(port, device, index, id int) int16

	// ControlsMapper translates host input-state queries into the
	// engine's controls structure. The default mapping is empty.
	ControlsMapper func(state *mame.AllControlsState, input InputState)
)

// SystemInfo is the static capability descriptor.
type SystemInfo struct {
	LibraryName     string
	LibraryVersion  string
	ValidExtensions string
	NeedFullPath    bool
	BlockExtract    bool
}

// FrameDescriptor tracks the most recently delivered frame's geometry and
// audio rate. All fields are zero until the corresponding first callback
// fires.
type FrameDescriptor struct {
	Width      int
	Height     int
	Stride     int // bytes per output row, always 2*Width
	SampleRate int
}

// Core is the process-wide bridge context: registered host callbacks, the
// wrapped engine, and the active session. Its shared fields are only
// touched inside the frame handshake's critical sections, so no locking
// beyond the session's own is needed.
type Core struct {
	engine mame.Engine

	env        Environment
	video      VideoRefresh
	audio      AudioSample
	audioBatch AudioSampleBatch
	inputPoll  InputPoll
	inputState InputState
	mapper     ControlsMapper

	initialized bool
	converter   *render.Converter
	desc        FrameDescriptor

	game int
	sess *session.Session
}

// New creates a Core wrapping the given engine.
func New(engine mame.Engine) *Core {
	return &Core{
		engine: engine,
		game:   mame.GameInvalid,
	}
}

// SetEnvironment registers the environment callback.
func (c *Core) SetEnvironment(cb Environment) { c.env = cb }

// SetVideoRefresh registers the video-delivery callback.
func (c *Core) SetVideoRefresh(cb VideoRefresh) { c.video = cb }

// SetAudioSample registers the single-frame audio callback.
func (c *Core) SetAudioSample(cb AudioSample) { c.audio = cb }

// SetAudioSampleBatch registers the batch audio callback. When both audio
// callbacks are registered the batch callback is preferred.
func (c *Core) SetAudioSampleBatch(cb AudioSampleBatch) { c.audioBatch = cb }

// SetInputPoll registers the input-poll callback.
func (c *Core) SetInputPoll(cb InputPoll) { c.inputPoll = cb }

// SetInputState registers the input-state query callback.
func (c *Core) SetInputState(cb InputState) { c.inputState = cb }

// SetControlsMapper installs the hook that maps host input into engine
// controls. No mapping table exists yet, so the default is a pass-through
// that latches nothing.
func (c *Core) SetControlsMapper(m ControlsMapper) { c.mapper = m }

// Init initializes the engine and negotiates the output pixel format with
// the host. Calling it again is a no-op. The format is queried exactly
// once: RGB565 when the host accepts it, XRGB1555 otherwise.
func (c *Core) Init() {
	if c.initialized {
		return
	}

	if err := c.engine.Initialize(); err != nil {
		// The plugin contract assumes init succeeds; failure here will
		// surface when a game is loaded.
		log.Printf("engine initialize: %v", err)
	}

	format := render.FormatXRGB1555
	if c.env != nil && c.env(EnvSetPixelFormat, PixelFormatRGB565) {
		format = render.FormatRGB565
	}
	c.converter = render.NewConverter(format)

	c.initialized = true
}

// Deinit tears down any active session and releases the engine.
func (c *Core) Deinit() {
	c.UnloadGame()
	c.engine.Deinitialize()
	c.converter = nil
	c.initialized = false
}

// GetSystemInfo returns the static capability descriptor. ROM archives
// must be passed by full path and never pre-extracted.
func (c *Core) GetSystemInfo() SystemInfo {
	return SystemInfo{
		LibraryName:     LibraryName,
		LibraryVersion:  LibraryVersion,
		ValidExtensions: "zip|ZIP|chd|CHD",
		NeedFullPath:    true,
		BlockExtract:    true,
	}
}
