package session

import (
	"fmt"
	"sync"

	"github.com/user-none/emame/mame"
)

// State is the lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateRunning
	StateStopRequested
	StateStopped
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopRequested:
		return "stop requested"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StartError reports that the engine's run call failed before the session
// produced its first frame. Status carries the engine's named condition.
type StartError struct {
	Status mame.RunGameStatus
}

func (e *StartError) Error() string {
	return fmt.Sprintf("session start failed: %s", e.Status)
}

// Config describes a session to start.
type Config struct {
	Engine  mame.Engine
	Game    int
	Options mame.RunGameOptions

	// Callbacks receive the per-frame engine callbacks. StartingUp and
	// MakeRunningGameCalls are owned by the session; values supplied here
	// for those two are chained before the session's own handling.
	Callbacks mame.RunGameCallbacks
}

// Session is one run of a selected game, from successful start to full
// exit. The engine's blocking run call executes on a dedicated goroutine;
// the controlling goroutine drives it one frame at a time through Advance.
type Session struct {
	engine mame.Engine
	game   int
	rv     *Rendezvous

	mu      sync.Mutex
	state   State
	running mame.RunningGame

	started   chan struct{}
	startOnce sync.Once
	done      chan struct{}
	status    mame.RunGameStatus
}

// Start launches the emulation goroutine for the configured game and waits
// until the engine either reports its first startup phase or returns. A run
// failure before that point is returned as a *StartError; the goroutine is
// already gone in that case and no further teardown is needed.
func Start(cfg Config) (*Session, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("session: no engine")
	}
	if cfg.Game < 0 {
		return nil, &StartError{Status: mame.RunGameStatusInvalidGameNum}
	}

	s := &Session{
		engine:  cfg.Engine,
		game:    cfg.Game,
		rv:      NewRendezvous(),
		state:   StateStarting,
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}

	cbs := cfg.Callbacks
	userStartingUp := cbs.StartingUp
	cbs.StartingUp = func(phase mame.StartupPhase, pct int, game mame.RunningGame) {
		s.mu.Lock()
		s.running = game
		s.mu.Unlock()
		s.markStarted()
		if userStartingUp != nil {
			userStartingUp(phase, pct, game)
		}
	}
	userFrameCalls := cbs.MakeRunningGameCalls
	cbs.MakeRunningGameCalls = func() {
		if userFrameCalls != nil {
			userFrameCalls()
		}
		s.frameCheckpoint()
	}

	go s.run(cfg.Options, &cbs)

	<-s.started

	s.mu.Lock()
	if s.state == StateStopped {
		status := s.status
		s.mu.Unlock()
		<-s.done
		if status != mame.RunGameStatusSuccess {
			return nil, &StartError{Status: status}
		}
		return s, nil
	}
	s.state = StateRunning
	s.mu.Unlock()
	return s, nil
}

// run owns the engine's blocking run loop for the session lifetime.
func (s *Session) run(opts mame.RunGameOptions, cbs *mame.RunGameCallbacks) {
	status := s.engine.RunGame(s.game, opts, cbs)

	s.mu.Lock()
	s.status = status
	s.state = StateStopped
	s.mu.Unlock()

	s.rv.markExited()
	s.markStarted()
	close(s.done)
}

// frameCheckpoint runs at the engine's per-frame safe point. It completes
// the frame handshake and translates any consumed control request into a
// Schedule call on the running game.
func (s *Session) frameCheckpoint() {
	s.markStarted()

	switch s.rv.checkpoint() {
	case actionExit:
		if g := s.runningGame(); g != nil {
			g.ScheduleExit()
		}
	case actionReset:
		if g := s.runningGame(); g != nil {
			g.ScheduleSoftReset()
		}
	}
}

func (s *Session) markStarted() {
	s.startOnce.Do(func() { close(s.started) })
}

func (s *Session) runningGame() mame.RunningGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ExitStatus returns the engine status recorded when the run loop
// returned. Only meaningful once the session has stopped.
func (s *Session) ExitStatus() mame.RunGameStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Advance grants the emulation goroutine one frame and blocks until the
// frame completes or the session terminates. Returns true if a frame was
// produced.
func (s *Session) Advance() bool {
	return s.rv.Advance()
}

// RequestReset schedules a soft reset at the next checkpoint. Repeated
// requests before the checkpoint observes them coalesce into one.
func (s *Session) RequestReset() {
	s.rv.RequestReset()
}

// Teardown requests a clean exit and blocks until the emulation goroutine
// has fully exited. Calling it on a stopped session returns immediately.
func (s *Session) Teardown() {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	s.state = StateStopRequested
	s.mu.Unlock()

	s.rv.requestUnload()
	<-s.done
}
