package retro

// GameGeometry is the host's view of the current frame geometry.
type GameGeometry struct {
	BaseWidth  int
	BaseHeight int
	MaxWidth   int
	MaxHeight  int

	// AspectRatio of zero tells the host to derive the aspect ratio
	// from the base width and height.
	AspectRatio float64
}

// SystemTiming is the host's view of frame and audio pacing.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo combines geometry and timing for the av-info query.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GetSystemAVInfo reports the current av parameters. Width and height are
// only known after the first video frame, the sample rate after the first
// audio frame; the refresh rate comes from the selected game's metadata.
func (c *Core) GetSystemAVInfo() SystemAVInfo {
	var fps float64
	if c.game >= 0 {
		fps = c.engine.GameScreenRefreshRate(c.game)
	}

	return SystemAVInfo{
		Geometry: GameGeometry{
			BaseWidth:   c.desc.Width,
			BaseHeight:  c.desc.Height,
			MaxWidth:    c.desc.Width,
			MaxHeight:   c.desc.Height,
			AspectRatio: 0,
		},
		Timing: SystemTiming{
			FPS:        fps,
			SampleRate: float64(c.desc.SampleRate),
		},
	}
}

// FrameDescriptor returns the most recent frame geometry and audio rate.
func (c *Core) FrameDescriptor() FrameDescriptor {
	return c.desc
}
