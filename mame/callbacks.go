package mame

// StartupPhase identifies a stage of engine startup reported while a
// RunGame call is bringing a session up.
type StartupPhase int

const (
	StartupPhasePreparing StartupPhase = iota
	StartupPhaseLoadingRoms
	StartupPhaseInitializingMachine
)

// String returns the display name of the phase.
func (p StartupPhase) String() string {
	switch p {
	case StartupPhasePreparing:
		return "Preparing"
	case StartupPhaseLoadingRoms:
		return "Loading ROMs"
	case StartupPhaseInitializingMachine:
		return "Initializing Machine"
	default:
		return "Unknown"
	}
}

// MaxPlayers is the most simultaneous players the controls state carries.
const MaxPlayers = 4

// Joystick direction bits for PerPlayerControlsState.JoystickState.
const (
	JoystickUp uint32 = 1 << iota
	JoystickDown
	JoystickLeft
	JoystickRight
)

// Shared control bits for SharedControlsState.
const (
	SharedCoin1 uint32 = 1 << iota
	SharedCoin2
	SharedStart1
	SharedStart2
)

// PerPlayerControlsState holds one player's latched input for a frame.
type PerPlayerControlsState struct {
	JoystickState uint32
	ButtonsState  uint32
}

// SharedControlsState holds cabinet-wide input (coins, start buttons).
type SharedControlsState struct {
	Buttons uint32
}

// AllControlsState is filled in by the bridge when the engine polls input.
type AllControlsState struct {
	PerPlayer [MaxPlayers]PerPlayerControlsState
	Shared    SharedControlsState
}

// RunGameCallbacks are invoked by the engine from inside RunGame, on the
// goroutine that called RunGame, once per emulated frame (except StartingUp,
// which fires during session bring-up). Nil members are skipped.
type RunGameCallbacks struct {
	// StatusText delivers formatted engine status messages.
	StatusText func(text string)

	// StartingUp reports bring-up progress and hands over the running-game
	// handle before the first frame.
	StartingUp func(phase StartupPhase, pctComplete int, game RunningGame)

	// PollAllControlsState asks the bridge to latch input for the frame.
	PollAllControlsState func(state *AllControlsState)

	// UpdateVideo delivers the frame's ordered render primitive list.
	UpdateVideo func(prims []RenderPrimitive)

	// UpdateAudio delivers the frame's interleaved stereo PCM samples.
	// buf holds samplesThisFrame stereo frames (two int16 per frame).
	UpdateAudio func(sampleRate, samplesThisFrame int, buf []int16)

	// SetMasterVolume reports an attenuation change in dB.
	SetMasterVolume func(attenuation int)

	// MakeRunningGameCalls is the per-frame safe point where the bridge
	// may issue Schedule calls on the running game.
	MakeRunningGameCalls func()

	// Paused fires once per frame while the engine is internally paused.
	Paused func()
}
