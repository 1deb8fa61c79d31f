package mametest

import (
	"testing"

	"github.com/user-none/emame/mame"
)

// TestGameNumberResolution verifies name lookup against the game table.
func TestGameNumberResolution(t *testing.T) {
	e := NewEngine()

	if got := e.GameNumber("demo"); got != 0 {
		t.Errorf("GameNumber(demo) = %d, want 0", got)
	}
	if got := e.GameNumber("tone"); got != 1 {
		t.Errorf("GameNumber(tone) = %d, want 1", got)
	}
	if got := e.GameNumber("nosuch"); got != mame.GameInvalid {
		t.Errorf("GameNumber(nosuch) = %d, want %d", got, mame.GameInvalid)
	}
}

// TestMetadataQueries verifies per-game metadata and out-of-range handling.
func TestMetadataQueries(t *testing.T) {
	e := NewEngine()

	if got := e.GameFullName(0); got != "Test Pattern Demo" {
		t.Errorf("full name = %q", got)
	}
	if got := e.GameScreenRefreshRate(0); got != 60.0 {
		t.Errorf("refresh rate = %v, want 60", got)
	}
	if got := e.GameMaxSimultaneousPlayers(1); got != 2 {
		t.Errorf("players = %d, want 2", got)
	}

	if got := e.GameFullName(99); got != "" {
		t.Errorf("full name out of range = %q, want empty", got)
	}
	if got := e.GameScreenRefreshRate(-1); got != 0 {
		t.Errorf("refresh rate out of range = %v, want 0", got)
	}
}

// TestRunGameInvalidNumber verifies the named failure for a game number
// outside the table.
func TestRunGameInvalidNumber(t *testing.T) {
	e := NewEngine()

	status := e.RunGame(99, mame.RunGameOptions{}, &mame.RunGameCallbacks{})
	if status != mame.RunGameStatusInvalidGameNum {
		t.Errorf("status = %s, want invalid game number", status)
	}
}

// TestRunGameCallbackCycle runs one frame synchronously by scheduling an
// exit from the per-frame safe point and checks the callback sequence.
func TestRunGameCallbackCycle(t *testing.T) {
	e := NewEngine()

	var phases []mame.StartupPhase
	videoFrames := 0
	audioSamples := 0
	polled := 0

	cbs := &mame.RunGameCallbacks{
		StartingUp: func(phase mame.StartupPhase, pct int, game mame.RunningGame) {
			phases = append(phases, phase)
			if game == nil {
				t.Error("StartingUp delivered a nil handle")
			}
		},
		PollAllControlsState: func(state *mame.AllControlsState) { polled++ },
		UpdateVideo: func(prims []mame.RenderPrimitive) {
			videoFrames++
			if len(prims) != 2 {
				t.Fatalf("primitive count = %d, want 2", len(prims))
			}
			if prims[0].Flags&mame.FlagScreenTexture != 0 {
				t.Error("overlay quad carries the screen flag")
			}
			screen := prims[1]
			if screen.Flags&mame.FlagScreenTexture == 0 {
				t.Error("screen quad missing the screen flag")
			}
			if screen.Texture.RowPixels <= screen.Texture.Width {
				t.Error("screen texture has no row padding to exercise")
			}
		},
		UpdateAudio: func(rate, n int, buf []int16) {
			if rate != defaultSampleRate {
				t.Errorf("rate = %d, want %d", rate, defaultSampleRate)
			}
			if len(buf) != n*2 {
				t.Errorf("buffer length = %d, want %d", len(buf), n*2)
			}
			audioSamples += n
		},
		MakeRunningGameCalls: func() { e.LastHandle().ScheduleExit() },
	}

	status := e.RunGame(0, mame.RunGameOptions{RomPath: "/roms"}, cbs)
	if status != mame.RunGameStatusSuccess {
		t.Fatalf("status = %s, want success", status)
	}

	wantPhases := []mame.StartupPhase{
		mame.StartupPhasePreparing,
		mame.StartupPhaseLoadingRoms,
		mame.StartupPhaseInitializingMachine,
	}
	if len(phases) != len(wantPhases) {
		t.Fatalf("startup phases = %v", phases)
	}
	for i, p := range wantPhases {
		if phases[i] != p {
			t.Errorf("phase %d = %s, want %s", i, phases[i], p)
		}
	}
	if videoFrames != 1 || polled != 1 {
		t.Errorf("video = %d, polls = %d, want 1 each", videoFrames, polled)
	}
	if audioSamples != defaultSampleRate/60 {
		t.Errorf("audio frames = %d, want %d", audioSamples, defaultSampleRate/60)
	}
}

// TestRunGameOptionsHonored verifies the audio rate override and the
// game-info suppression options.
func TestRunGameOptionsHonored(t *testing.T) {
	e := NewEngine()

	gotRate, gotFrames := 0, 0
	statusTexts := 0
	cbs := &mame.RunGameCallbacks{
		StatusText: func(text string) { statusTexts++ },
		UpdateAudio: func(rate, n int, buf []int16) {
			gotRate, gotFrames = rate, n
		},
		MakeRunningGameCalls: func() { e.LastHandle().ScheduleExit() },
	}

	opts := mame.RunGameOptions{SampleRate: 32000, SkipGameInfo: true}
	if status := e.RunGame(0, opts, cbs); status != mame.RunGameStatusSuccess {
		t.Fatalf("status = %s, want success", status)
	}

	if gotRate != 32000 {
		t.Errorf("rate = %d, want 32000", gotRate)
	}
	if gotFrames != 32000/60 {
		t.Errorf("audio frames = %d, want %d", gotFrames, 32000/60)
	}
	if statusTexts != 0 {
		t.Errorf("status text delivered %d times with game info skipped", statusTexts)
	}
}

// TestRunGameHardReset verifies a hard reset restarts the pattern without
// ending the run.
func TestRunGameHardReset(t *testing.T) {
	e := NewEngine()

	frames := 0
	cbs := &mame.RunGameCallbacks{
		MakeRunningGameCalls: func() {
			frames++
			switch frames {
			case 1:
				e.LastHandle().ScheduleHardReset()
			case 3:
				e.LastHandle().ScheduleExit()
			}
		},
	}

	if status := e.RunGame(0, mame.RunGameOptions{}, cbs); status != mame.RunGameStatusSuccess {
		t.Fatalf("status = %s, want success", status)
	}
	if got := e.LastHandle().HardResets(); got != 1 {
		t.Errorf("hard resets = %d, want 1", got)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
}
