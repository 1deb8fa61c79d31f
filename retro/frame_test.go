package retro

import (
	"testing"

	"github.com/user-none/emame/mame"
	"github.com/user-none/emame/render"
)

func newInitializedCore(t *testing.T) *Core {
	t.Helper()
	c := New(nil)
	c.converter = render.NewConverter(render.FormatRGB565)
	return c
}

// TestAudioRelayBatchPreferred verifies batch delivery gets the whole
// buffer in one call even when both callbacks are registered.
func TestAudioRelayBatchPreferred(t *testing.T) {
	c := New(nil)

	batchCalls := 0
	var batchFrames int
	var batchSamples []int16
	c.SetAudioSampleBatch(func(samples []int16, frames int) int {
		batchCalls++
		batchFrames = frames
		batchSamples = samples
		return frames
	})
	c.SetAudioSample(func(left, right int16) {
		t.Error("single-frame callback invoked with batch registered")
	})

	buf := []int16{1, 2, 3, 4, 5, 6, 7, 8}
	c.onUpdateAudio(44100, 4, buf)

	if batchCalls != 1 {
		t.Fatalf("batch calls = %d, want 1", batchCalls)
	}
	if batchFrames != 4 {
		t.Errorf("batch frames = %d, want 4", batchFrames)
	}
	if len(batchSamples) != 8 {
		t.Errorf("batch sample count = %d, want 8", len(batchSamples))
	}
	if got := c.FrameDescriptor().SampleRate; got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
}

// TestAudioRelaySingleFrameFallback verifies per-frame delivery iterates
// left/right pairs in order.
func TestAudioRelaySingleFrameFallback(t *testing.T) {
	c := New(nil)

	type pair struct{ left, right int16 }
	var got []pair
	c.SetAudioSample(func(left, right int16) {
		got = append(got, pair{left, right})
	})

	c.onUpdateAudio(48000, 4, []int16{1, 2, 3, 4, 5, 6, 7, 8})

	want := []pair{{1, 2}, {3, 4}, {5, 6}, {7, 8}}
	if len(got) != len(want) {
		t.Fatalf("deliveries = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestAudioRelayNoDeliveryRegistered verifies samples are dropped, not
// buffered, and the rate is still tracked.
func TestAudioRelayNoDeliveryRegistered(t *testing.T) {
	c := New(nil)

	c.onUpdateAudio(22050, 2, []int16{1, 2, 3, 4})

	if got := c.FrameDescriptor().SampleRate; got != 22050 {
		t.Errorf("sample rate = %d, want 22050", got)
	}
}

// TestAudioRelayRateTracksChanges verifies the descriptor follows a
// mid-session rate change.
func TestAudioRelayRateTracksChanges(t *testing.T) {
	c := New(nil)

	c.onUpdateAudio(44100, 0, nil)
	c.onUpdateAudio(48000, 0, nil)

	if got := c.FrameDescriptor().SampleRate; got != 48000 {
		t.Errorf("sample rate = %d, want 48000", got)
	}
}

// TestVideoDeliveryUpdatesDescriptor verifies a converted frame reaches
// the host with tightly packed stride and updates the descriptor first.
func TestVideoDeliveryUpdatesDescriptor(t *testing.T) {
	c := newInitializedCore(t)

	var gotW, gotH, gotPitch int
	var descAtDelivery FrameDescriptor
	c.SetVideoRefresh(func(pix []uint16, width, height, pitch int) {
		gotW, gotH, gotPitch = width, height, pitch
		descAtDelivery = c.FrameDescriptor()
	})

	tex := mame.Texture{
		Width: 3, Height: 2, RowPixels: 3,
		Format:    mame.TexFormatRGB32,
		PixelsRGB: make([]uint32, 6),
	}
	c.onUpdateVideo([]mame.RenderPrimitive{{
		Type: mame.PrimitiveQuad, Flags: mame.FlagScreenTexture, Texture: tex,
	}})

	if gotW != 3 || gotH != 2 {
		t.Errorf("delivered %dx%d, want 3x2", gotW, gotH)
	}
	if gotPitch != 6 {
		t.Errorf("pitch = %d, want 6 (2*width)", gotPitch)
	}
	if descAtDelivery.Width != 3 || descAtDelivery.Height != 2 || descAtDelivery.Stride != 6 {
		t.Errorf("descriptor at delivery = %+v, want 3x2 stride 6", descAtDelivery)
	}
}

// TestVideoSkipLeavesStateUntouched verifies a frame with no usable
// surface neither invokes the host nor mutates the descriptor.
func TestVideoSkipLeavesStateUntouched(t *testing.T) {
	c := newInitializedCore(t)

	c.SetVideoRefresh(func(pix []uint16, width, height, pitch int) {
		t.Error("host invoked for a dropped frame")
	})

	c.onUpdateVideo([]mame.RenderPrimitive{
		{Type: mame.PrimitiveLine, Flags: mame.FlagScreenTexture},
	})

	if got := c.FrameDescriptor(); got != (FrameDescriptor{}) {
		t.Errorf("descriptor mutated by dropped frame: %+v", got)
	}
}

// TestPollControlsDefaultMapping verifies the input poll fires and that
// with no mapper installed nothing is latched.
func TestPollControlsDefaultMapping(t *testing.T) {
	c := New(nil)

	polled := false
	c.SetInputPoll(func() { polled = true })
	c.SetInputState(func(port, device, index, id int) int16 { return 1 })

	var state mame.AllControlsState
	c.onPollControls(&state)

	if !polled {
		t.Error("input poll not invoked")
	}
	if state != (mame.AllControlsState{}) {
		t.Errorf("controls latched with empty default mapping: %+v", state)
	}
}
