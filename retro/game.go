package retro

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/user-none/emame/mame"
	"github.com/user-none/emame/session"
)

// parseGamePath splits a ROM path into the directory searched for ROM
// archives and the short game name: the base name with its extension
// stripped and lower-cased. A bare filename yields directory ".".
func parseGamePath(path string) (dir, name string) {
	dir = filepath.Dir(path)
	base := filepath.Base(path)
	name = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	return dir, name
}

// LoadGame resolves the path's game name with the engine and starts a
// session for it. Resolution failure returns an error with no state
// mutated. Any previously running session is torn down first.
func (c *Core) LoadGame(path string) error {
	dir, name := parseGamePath(path)

	game := c.engine.GameNumber(name)
	if game == mame.GameInvalid {
		return fmt.Errorf("unknown game %q", name)
	}

	if c.sess != nil {
		c.UnloadGame()
	}

	sess, err := session.Start(session.Config{
		Engine: c.engine,
		Game:   game,
		Options: mame.RunGameOptions{
			RomPath: dir,
		},
		Callbacks: mame.RunGameCallbacks{
			StatusText:           c.onStatusText,
			StartingUp:           c.onStartingUp(game),
			PollAllControlsState: c.onPollControls,
			UpdateVideo:          c.onUpdateVideo,
			UpdateAudio:          c.onUpdateAudio,
		},
	})
	if err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}

	c.game = game
	c.sess = sess
	return nil
}

// LoadGameSpecial is not supported.
func (c *Core) LoadGameSpecial(gameType int, paths ...string) bool {
	return false
}

// Run advances the session by exactly one frame, blocking until the frame
// has been delivered. If the session has terminated on its own (engine
// failure or scheduled exit), the termination is logged and the core
// returns to idle; nothing here is fatal.
func (c *Core) Run() {
	if c.sess == nil {
		return
	}

	if !c.sess.Advance() {
		if status := c.sess.ExitStatus(); status != mame.RunGameStatusSuccess {
			log.Printf("run loop ended: %s", status)
		}
		c.sess = nil
	}
}

// Reset requests a soft reset, delivered at the emulation goroutine's next
// safe point. Requests coalesce until then.
func (c *Core) Reset() {
	if c.sess != nil {
		c.sess.RequestReset()
	}
}

// UnloadGame tears down the active session, blocking until the emulation
// goroutine has fully exited, then zeroes the frame descriptor. Calling it
// with no active session is a no-op.
func (c *Core) UnloadGame() {
	if c.sess != nil {
		c.sess.Teardown()
		c.sess = nil
	}
	c.game = mame.GameInvalid
	c.desc = FrameDescriptor{}
}

func (c *Core) onStatusText(text string) {
	log.Print(text)
}

func (c *Core) onStartingUp(game int) func(mame.StartupPhase, int, mame.RunningGame) {
	fullName := c.engine.GameFullName(game)
	return func(phase mame.StartupPhase, pct int, _ mame.RunningGame) {
		log.Printf("starting up: %s: %s - %d%%", fullName, phase, pct)
	}
}
