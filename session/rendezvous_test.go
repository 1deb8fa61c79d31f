package session

import (
	"testing"
	"time"
)

// fakeRunner stands in for the engine's run loop: it cycles through the
// checkpoint, counting completed frames, until told to exit.
type fakeRunner struct {
	rv     *Rendezvous
	frames chan int
	resets chan struct{}
	done   chan struct{}
}

func startFakeRunner(rv *Rendezvous) *fakeRunner {
	f := &fakeRunner{
		rv:     rv,
		frames: make(chan int, 64),
		resets: make(chan struct{}, 64),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(f.done)
		frame := 0
		for {
			frame++
			f.frames <- frame
			switch rv.checkpoint() {
			case actionExit:
				return
			case actionReset:
				f.resets <- struct{}{}
			}
		}
	}()
	return f
}

// TestRendezvousFrameForCallBijection verifies each Advance returns only
// after exactly one checkpoint cycle completed.
func TestRendezvousFrameForCallBijection(t *testing.T) {
	rv := NewRendezvous()
	f := startFakeRunner(rv)

	const n = 10
	for i := 0; i < n; i++ {
		if !rv.Advance() {
			t.Fatalf("Advance %d reported termination", i)
		}
	}

	// The runner produces one frame before its first checkpoint and one
	// more after each grant, so n advances leave n+1 frames observed.
	for want := 1; want <= n+1; want++ {
		select {
		case got := <-f.frames:
			if got != want {
				t.Fatalf("frame = %d, want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for frame %d", want)
		}
	}
	select {
	case got := <-f.frames:
		t.Fatalf("unexpected extra frame %d", got)
	default:
	}

	rv.requestUnload()
	<-f.done
}

// TestRendezvousResetCoalescing verifies N reset requests before the next
// checkpoint collapse into a single reset action.
func TestRendezvousResetCoalescing(t *testing.T) {
	rv := NewRendezvous()
	f := startFakeRunner(rv)

	rv.RequestReset()
	rv.RequestReset()
	rv.RequestReset()

	if !rv.Advance() {
		t.Fatal("Advance reported termination")
	}
	if !rv.Advance() {
		t.Fatal("second Advance reported termination")
	}

	rv.requestUnload()
	<-f.done

	if got := len(f.resets); got != 1 {
		t.Errorf("reset actions = %d, want 1", got)
	}
}

// TestRendezvousUnloadWakesCheckpoint verifies requestUnload alone releases
// a runner blocked at its checkpoint and that it exits without producing
// another frame.
func TestRendezvousUnloadWakesCheckpoint(t *testing.T) {
	rv := NewRendezvous()
	f := startFakeRunner(rv)

	// Drain the eager first frame so the runner is parked at checkpoint 1.
	<-f.frames

	rv.requestUnload()

	select {
	case <-f.done:
	case <-time.After(time.Second):
		t.Fatal("runner did not exit after unload request")
	}

	if got := len(f.frames); got != 0 {
		t.Errorf("frames after unload = %d, want 0", got)
	}
}

// TestRendezvousAdvanceAfterExit verifies Advance returns false once the
// runner has terminated.
func TestRendezvousAdvanceAfterExit(t *testing.T) {
	rv := NewRendezvous()
	f := startFakeRunner(rv)

	rv.requestUnload()
	<-f.done
	rv.markExited()

	if rv.Advance() {
		t.Error("Advance = true after runner exit, want false")
	}
}

// TestRendezvousAdvanceWaitsForInFlightFrame verifies a grant issued
// while the first frame is still in flight is not honored until the
// runner has parked: after Advance returns, no further frame appears
// without another grant.
func TestRendezvousAdvanceWaitsForInFlightFrame(t *testing.T) {
	rv := NewRendezvous()
	release := make(chan struct{})
	frames := make(chan int, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		frame := 0
		for {
			frame++
			if frame == 1 {
				<-release
			}
			frames <- frame
			if rv.checkpoint() == actionExit {
				return
			}
		}
	}()

	advanced := make(chan bool, 1)
	go func() { advanced <- rv.Advance() }()

	// Let the grant land while frame 1 has not completed, then finish
	// the frame.
	time.Sleep(10 * time.Millisecond)
	close(release)

	select {
	case ok := <-advanced:
		if !ok {
			t.Fatal("Advance reported termination")
		}
	case <-time.After(time.Second):
		t.Fatal("Advance did not return")
	}

	for want := 1; want <= 2; want++ {
		if got := <-frames; got != want {
			t.Fatalf("frame = %d, want %d", got, want)
		}
	}
	select {
	case got := <-frames:
		t.Fatalf("frame %d produced with no grant after Advance returned", got)
	case <-time.After(50 * time.Millisecond):
	}

	rv.requestUnload()
	<-done
}

// TestRendezvousCheckpointAfterExit verifies a safe point reached after
// the exit was handed out returns immediately instead of waiting for a
// grant.
func TestRendezvousCheckpointAfterExit(t *testing.T) {
	rv := NewRendezvous()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for rv.checkpoint() != actionExit {
		}
		// An engine honoring the exit at its next frame boundary passes
		// one more safe point on the way out.
		if got := rv.checkpoint(); got != actionExit {
			t.Errorf("post-exit checkpoint = %d, want exit", got)
		}
	}()

	rv.requestUnload()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("checkpoint after exit blocked waiting for a grant")
	}
}

// TestRendezvousAdvanceUnblockedByExit verifies a controller blocked in
// Advance is released when the runner exits instead of completing a frame.
func TestRendezvousAdvanceUnblockedByExit(t *testing.T) {
	rv := NewRendezvous()

	go func() {
		// Runner dies without ever reaching a checkpoint.
		time.Sleep(10 * time.Millisecond)
		rv.markExited()
	}()

	result := make(chan bool, 1)
	go func() { result <- rv.Advance() }()

	select {
	case got := <-result:
		if got {
			t.Error("Advance = true, want false after exit")
		}
	case <-time.After(time.Second):
		t.Fatal("Advance did not unblock on runner exit")
	}
}
