// Package mame defines the boundary to the collaborator emulation engine.
// The engine owns machine simulation, ROM loading and rendering-primitive
// generation; this package only describes the surface the bridge consumes.
package mame

// RunGameStatus is the result of a blocking RunGame call.
type RunGameStatus int

const (
	RunGameStatusSuccess RunGameStatus = iota
	RunGameStatusInvalidGameNum
	RunGameStatusFailedValidityCheck
	RunGameStatusMissingFiles
	RunGameStatusNoSuchGame
	RunGameStatusInvalidConfiguration
	RunGameStatusGeneralError
)

// String returns the display name of the status.
func (s RunGameStatus) String() string {
	switch s {
	case RunGameStatusSuccess:
		return "success"
	case RunGameStatusInvalidGameNum:
		return "invalid game number"
	case RunGameStatusFailedValidityCheck:
		return "failed validity check"
	case RunGameStatusMissingFiles:
		return "missing files"
	case RunGameStatusNoSuchGame:
		return "no such game"
	case RunGameStatusInvalidConfiguration:
		return "invalid configuration"
	case RunGameStatusGeneralError:
		return "general error"
	default:
		return "unknown"
	}
}

// RunGameOptions holds the settings passed to a RunGame call.
type RunGameOptions struct {
	// RomPath is the directory searched for the game's ROM archives.
	RomPath string

	// SampleRate requests an audio output rate in Hz. Zero lets the
	// engine pick its default.
	SampleRate int

	// SkipGameInfo suppresses the engine's informational startup screens.
	SkipGameInfo bool
}

// RunningGame is the engine's opaque handle for an in-progress session.
// Schedule calls are asynchronous requests: the engine acts on them at its
// next internal frame boundary, after which the blocking RunGame call either
// continues (resets) or returns (exit).
type RunningGame interface {
	ScheduleExit()
	ScheduleSoftReset()
	ScheduleHardReset()
}

// GameInvalid is returned by GameNumber when a name resolves to no game.
const GameInvalid = -1

// Engine is the collaborator emulation library. RunGame blocks for the
// whole session, invoking the supplied callbacks once per emulated frame,
// and returns only on session exit or on a named failure condition.
type Engine interface {
	// Initialize prepares the engine for use. Safe to call more than once.
	Initialize() error

	// Deinitialize releases engine resources.
	Deinitialize()

	// GameNumber resolves a short game name to a game number, or
	// GameInvalid if the name is unknown.
	GameNumber(name string) int

	// GameFullName returns the descriptive title for a game number.
	GameFullName(game int) string

	// GameScreenRefreshRate returns the game's screen refresh rate in Hz.
	GameScreenRefreshRate(game int) float64

	// GameMaxSimultaneousPlayers returns the player count for a game.
	GameMaxSimultaneousPlayers(game int) int

	// RunGame runs a game to completion. The callbacks are invoked on the
	// calling goroutine.
	RunGame(game int, opts RunGameOptions, cbs *RunGameCallbacks) RunGameStatus
}
