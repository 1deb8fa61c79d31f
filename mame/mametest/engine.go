// Package mametest provides an in-memory reference engine for exercising
// the bridge without the real emulation library. It implements the full
// run-loop contract: startup phases, per-frame callbacks with a paletted
// test-pattern frame and a square-wave tone, and schedule-exit/reset
// handles with observable counters.
package mametest

import (
	"fmt"
	"sync"

	"github.com/user-none/emame/mame"
)

// Default frame geometry and audio rate for runs that don't override
// them.
const (
	DefaultWidth  = 320
	DefaultHeight = 240

	defaultSampleRate = 48000
)

// rowPadding is appended to each test-pattern row so consumers see a
// source stride wider than the visible width, as real surfaces have.
const rowPadding = 8

// Game describes one entry in the engine's game table.
type Game struct {
	Name        string
	FullName    string
	RefreshRate float64
	Players     int

	// Width and Height of the generated frame; defaults apply when zero.
	Width  int
	Height int

	// Status, when not success, makes RunGame fail with it before any
	// callback fires.
	Status mame.RunGameStatus
}

// RunningGame is the engine's session handle. The Schedule calls latch
// requests that the run loop acts on at its next frame boundary; the
// counters record how often each was honored.
type RunningGame struct {
	mu          sync.Mutex
	exitPending bool
	softPending bool
	hardPending bool
	softResets  int
	hardResets  int
}

func (g *RunningGame) ScheduleExit() {
	g.mu.Lock()
	g.exitPending = true
	g.mu.Unlock()
}

func (g *RunningGame) ScheduleSoftReset() {
	g.mu.Lock()
	g.softPending = true
	g.mu.Unlock()
}

func (g *RunningGame) ScheduleHardReset() {
	g.mu.Lock()
	g.hardPending = true
	g.mu.Unlock()
}

// SoftResets returns how many soft resets the run loop has honored.
func (g *RunningGame) SoftResets() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.softResets
}

// HardResets returns how many hard resets the run loop has honored.
func (g *RunningGame) HardResets() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hardResets
}

// consume returns and clears the pending requests.
func (g *RunningGame) consume() (exit, soft, hard bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	exit = g.exitPending
	soft, hard = g.softPending, g.hardPending
	g.exitPending, g.softPending, g.hardPending = false, false, false
	if soft {
		g.softResets++
	}
	if hard {
		g.hardResets++
	}
	return exit, soft, hard
}

// Engine is an in-memory mame.Engine with a fixed game table.
type Engine struct {
	games []Game

	mu   sync.Mutex
	init bool

	// LastHandle is the RunningGame of the most recent RunGame call,
	// recorded before the first frame for test inspection.
	handleMu   sync.Mutex
	lastHandle *RunningGame
}

var _ mame.Engine = (*Engine)(nil)

// NewEngine creates an engine with the given game table, or a small
// default table when none is supplied.
func NewEngine(games ...Game) *Engine {
	if len(games) == 0 {
		games = []Game{
			{Name: "demo", FullName: "Test Pattern Demo", RefreshRate: 60.0, Players: 1},
			{Name: "tone", FullName: "Tone Generator", RefreshRate: 59.94, Players: 2},
		}
	}
	return &Engine{games: games}
}

// Initialize marks the engine ready. Safe to call repeatedly.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	e.init = true
	e.mu.Unlock()
	return nil
}

// Deinitialize marks the engine torn down.
func (e *Engine) Deinitialize() {
	e.mu.Lock()
	e.init = false
	e.mu.Unlock()
}

// GameNumber resolves a short name to its table index.
func (e *Engine) GameNumber(name string) int {
	for i, g := range e.games {
		if g.Name == name {
			return i
		}
	}
	return mame.GameInvalid
}

// GameFullName returns the descriptive title for a game number.
func (e *Engine) GameFullName(game int) string {
	if game < 0 || game >= len(e.games) {
		return ""
	}
	return e.games[game].FullName
}

// GameScreenRefreshRate returns the game's refresh rate in Hz.
func (e *Engine) GameScreenRefreshRate(game int) float64 {
	if game < 0 || game >= len(e.games) {
		return 0
	}
	return e.games[game].RefreshRate
}

// GameMaxSimultaneousPlayers returns the game's player count.
func (e *Engine) GameMaxSimultaneousPlayers(game int) int {
	if game < 0 || game >= len(e.games) {
		return 0
	}
	return e.games[game].Players
}

// LastHandle returns the session handle from the most recent RunGame call.
func (e *Engine) LastHandle() *RunningGame {
	e.handleMu.Lock()
	defer e.handleMu.Unlock()
	return e.lastHandle
}

// RunGame runs the game's callback loop until an exit is scheduled. It
// blocks the calling goroutine for the whole session, like the real
// engine's run call.
func (e *Engine) RunGame(game int, opts mame.RunGameOptions, cbs *mame.RunGameCallbacks) mame.RunGameStatus {
	if game < 0 || game >= len(e.games) {
		return mame.RunGameStatusInvalidGameNum
	}
	g := e.games[game]
	if g.Status != mame.RunGameStatusSuccess {
		return g.Status
	}

	rate := opts.SampleRate
	if rate <= 0 {
		rate = defaultSampleRate
	}

	handle := &RunningGame{}
	e.handleMu.Lock()
	e.lastHandle = handle
	e.handleMu.Unlock()

	if cbs.StartingUp != nil {
		cbs.StartingUp(mame.StartupPhasePreparing, 0, handle)
		cbs.StartingUp(mame.StartupPhaseLoadingRoms, 50, handle)
		cbs.StartingUp(mame.StartupPhaseInitializingMachine, 100, handle)
	}
	if cbs.StatusText != nil && !opts.SkipGameInfo {
		cbs.StatusText(fmt.Sprintf("running %s from %s", g.FullName, opts.RomPath))
	}

	f := newFrameGen(g, rate)
	var controls mame.AllControlsState

	for {
		if cbs.PollAllControlsState != nil {
			cbs.PollAllControlsState(&controls)
		}
		if cbs.UpdateVideo != nil {
			cbs.UpdateVideo(f.prims())
		}
		if cbs.UpdateAudio != nil {
			buf := f.audio()
			cbs.UpdateAudio(rate, len(buf)/2, buf)
		}
		if cbs.MakeRunningGameCalls != nil {
			cbs.MakeRunningGameCalls()
		}

		exit, soft, hard := handle.consume()
		if exit {
			return mame.RunGameStatusSuccess
		}
		if soft || hard {
			f.restart()
		}
		f.advance()
	}
}
