package mametest

import "github.com/user-none/emame/mame"

// frameGen produces the per-frame render-primitive list and audio buffer
// for one session. Buffers are allocated once and rewritten each frame.
type frameGen struct {
	width  int
	height int
	frame  int

	palette []uint32
	pixels  []uint16
	samples []int16

	samplesPerFrame int
	toneHalfPeriod  int
	tonePhase       int
	toneHigh        bool
}

func newFrameGen(g Game, sampleRate int) *frameGen {
	w, h := g.Width, g.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	samplesPerFrame := sampleRate / 60
	return &frameGen{
		width:  w,
		height: h,
		palette: []uint32{
			0xFF000000, // black
			0xFFFF0000, // red
			0xFF00FF00, // green
			0xFF0000FF, // blue
		},
		pixels:          make([]uint16, (w+rowPadding)*h),
		samples:         make([]int16, samplesPerFrame*2),
		samplesPerFrame: samplesPerFrame,
		toneHalfPeriod:  sampleRate / 440 / 2,
	}
}

func (f *frameGen) advance() {
	f.frame++
}

func (f *frameGen) restart() {
	f.frame = 0
}

// prims returns the frame's draw list: a UI overlay quad that is not the
// screen surface, followed by the screen quad carrying a scrolling
// checker pattern. Row padding past the visible width is left as zero
// indices and must be skipped by consumers.
func (f *frameGen) prims() []mame.RenderPrimitive {
	stride := f.width + rowPadding
	for y := 0; y < f.height; y++ {
		row := f.pixels[y*stride:]
		for x := 0; x < f.width; x++ {
			row[x] = uint16(((x >> 3) + (y >> 3) + f.frame) & 3)
		}
	}

	screen := mame.Texture{
		Width:         f.width,
		Height:        f.height,
		RowPixels:     stride,
		Format:        mame.TexFormatPalette16,
		Palette:       f.palette,
		PixelsIndexed: f.pixels,
	}

	return []mame.RenderPrimitive{
		{Type: mame.PrimitiveQuad, Flags: 0, Texture: mame.Texture{
			Width: 1, Height: 1, RowPixels: 1,
			Format:    mame.TexFormatRGB32,
			PixelsRGB: []uint32{0x00FFFFFF},
		}},
		{Type: mame.PrimitiveQuad, Flags: mame.FlagScreenTexture, Texture: screen},
	}
}

// audio returns one tick's worth of interleaved stereo samples: a 440 Hz
// square wave, phase carried across frames.
func (f *frameGen) audio() []int16 {
	const amp = 6000
	for i := 0; i < f.samplesPerFrame; i++ {
		if f.tonePhase >= f.toneHalfPeriod {
			f.tonePhase = 0
			f.toneHigh = !f.toneHigh
		}
		f.tonePhase++

		v := int16(amp)
		if !f.toneHigh {
			v = -amp
		}
		f.samples[i*2] = v
		f.samples[i*2+1] = v
	}
	return f.samples
}
