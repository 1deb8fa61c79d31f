package retro

import "github.com/user-none/emame/mame"

// onUpdateVideo converts the frame's screen surface and hands it to the
// host synchronously. The pixel buffer is reused next frame; the host must
// not retain it. Frames with no convertible surface are dropped and the
// host is not invoked.
func (c *Core) onUpdateVideo(prims []mame.RenderPrimitive) {
	pix, w, h, ok := c.converter.Convert(prims)
	if !ok {
		return
	}

	c.desc.Width = w
	c.desc.Height = h
	c.desc.Stride = w * 2

	if c.video != nil {
		c.video(pix, w, h, w*2)
	}
}

// onUpdateAudio forwards one frame's interleaved stereo samples to
// whichever delivery callback the host registered, preferring batch
// delivery. With neither registered the samples are dropped. The sample
// rate is tracked unconditionally, even mid-session changes.
func (c *Core) onUpdateAudio(rate, frames int, buf []int16) {
	c.desc.SampleRate = rate

	n := frames * 2
	if n > len(buf) {
		n = len(buf) &^ 1
		frames = n / 2
	}

	switch {
	case c.audioBatch != nil:
		c.audioBatch(buf[:n], frames)
	case c.audio != nil:
		for i := 0; i+1 < n; i += 2 {
			c.audio(buf[i], buf[i+1])
		}
	}
}

// onPollControls asks the host to latch input, then applies the installed
// controls mapper. With no mapper installed the engine's controls state is
// left unlatched.
func (c *Core) onPollControls(state *mame.AllControlsState) {
	if c.inputPoll != nil {
		c.inputPoll()
	}
	if c.mapper != nil && c.inputState != nil {
		c.mapper(state, c.inputState)
	}
}
