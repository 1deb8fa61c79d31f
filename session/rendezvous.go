// Package session coordinates the host-driven control goroutine and the
// engine's blocking run loop so that exactly one emulated frame advances
// per host tick.
package session

import "sync"

// checkpointAction tells the emulation goroutine what to do after waking
// at its per-frame checkpoint.
type checkpointAction int

const (
	actionContinue checkpointAction = iota
	actionReset
	actionExit
)

// Rendezvous is a baton-passing handshake between the controlling goroutine
// and the emulation goroutine. One mutex guards everything, including the
// control-request flags; two condition variables carry the two signals.
// At most one frame is in flight between the signals at any time.
type Rendezvous struct {
	mu         sync.Mutex
	toRunner   *sync.Cond // wakes the emulation goroutine
	fromRunner *sync.Cond // wakes the controlling goroutine

	advance   bool // controller granted the next frame
	frameDone bool // emulation completed a frame
	parked    bool // emulation goroutine is blocked at its checkpoint
	exiting   bool // exit handed out; later checkpoints must not wait
	exited    bool // emulation goroutine has left its run loop

	// Control-request flags. Set by the controlling goroutine, consumed
	// by the emulation goroutine at its checkpoint. Requests coalesce:
	// setting an already-set flag has no further effect.
	resetRequested  bool
	unloadRequested bool
}

// NewRendezvous creates a Rendezvous with both signals clear.
func NewRendezvous() *Rendezvous {
	r := &Rendezvous{}
	r.toRunner = sync.NewCond(&r.mu)
	r.fromRunner = sync.NewCond(&r.mu)
	return r
}

// Advance signals the emulation goroutine to proceed past its checkpoint
// and blocks until it completes a frame or exits. Returns true if a frame
// was produced, false if the emulation goroutine has terminated.
//
// The grant is only issued once the emulation goroutine is parked at its
// checkpoint; a grant issued mid-frame would let the next checkpoint fall
// through without blocking and both sides would run at once. Any
// completion already pending at that point is discarded: it belongs to a
// frame delivered before this grant (the startup frame). Advance only
// returns on a completion signaled in response to its own grant, which
// keeps the two goroutines strictly alternating.
func (r *Rendezvous) Advance() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for !r.parked && !r.exited {
		r.fromRunner.Wait()
	}
	if r.exited {
		return false
	}

	r.frameDone = false
	r.advance = true
	r.toRunner.Signal()

	for !r.frameDone && !r.exited {
		r.fromRunner.Wait()
	}

	done := r.frameDone
	r.frameDone = false
	return done
}

// checkpoint is called once per frame from the emulation goroutine. It
// signals frame completion, blocks until the controller grants the next
// frame, then consumes any pending control request. Unload wins over reset.
//
// Once an exit has been handed out the engine is winding down; it may
// still pass further safe points before its run call returns, and those
// must not wait for a grant that will never come.
func (r *Rendezvous) checkpoint() checkpointAction {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frameDone = true
	r.fromRunner.Signal()

	if r.exiting {
		return actionExit
	}

	r.parked = true
	for !r.advance {
		r.toRunner.Wait()
	}
	r.advance = false
	r.parked = false

	if r.unloadRequested {
		r.unloadRequested = false
		r.exiting = true
		return actionExit
	}
	if r.resetRequested {
		r.resetRequested = false
		return actionReset
	}
	return actionContinue
}

// RequestReset marks a reset pending for the next checkpoint.
func (r *Rendezvous) RequestReset() {
	r.mu.Lock()
	r.resetRequested = true
	r.mu.Unlock()
}

// requestUnload marks an unload pending and wakes the emulation goroutine
// as if a frame had been granted, so a checkpoint blocked on the advance
// signal can observe the request.
func (r *Rendezvous) requestUnload() {
	r.mu.Lock()
	r.unloadRequested = true
	r.advance = true
	r.toRunner.Signal()
	r.mu.Unlock()
}

// markExited records that the emulation goroutine has left its run loop
// and releases a controller blocked in Advance.
func (r *Rendezvous) markExited() {
	r.mu.Lock()
	r.exited = true
	r.fromRunner.Broadcast()
	r.mu.Unlock()
}
