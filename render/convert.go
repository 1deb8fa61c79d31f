// Package render converts one engine render-primitive list per frame into
// a host-consumable packed 16-bit pixel buffer.
package render

import "github.com/user-none/emame/mame"

// Scratch buffer capacity in pixels. Surfaces larger than this are dropped.
const (
	MaxWidth  = 2048
	MaxHeight = 1536
	MaxPixels = MaxWidth * MaxHeight
)

// OutputFormat is the host's negotiated packed 16-bit pixel layout.
type OutputFormat int

const (
	// FormatXRGB1555 packs pixels as 0RRRRRGGGGGBBBBB.
	FormatXRGB1555 OutputFormat = iota

	// FormatRGB565 packs pixels as RRRRRGGGGGGBBBBB.
	FormatRGB565
)

// Converter holds a fixed-capacity scratch buffer and converts the primary
// screen surface of a frame into tightly packed 16-bit pixels. The buffer
// is reused every frame; callers must not retain the returned slice past
// the frame.
type Converter struct {
	format OutputFormat
	buf    []uint16
}

// NewConverter creates a converter producing the given output format.
func NewConverter(format OutputFormat) *Converter {
	return &Converter{
		format: format,
		buf:    make([]uint16, MaxPixels),
	}
}

// Convert selects the frame's screen surface and converts it. Returns the
// converted pixels (a view into the scratch buffer, width*height long,
// stride == width) and the surface dimensions. ok is false when the frame
// produced no output: no qualifying primitive, an oversized surface, or an
// unsupported texture format. The scratch buffer's previous contents are
// untouched in that case.
func (c *Converter) Convert(prims []mame.RenderPrimitive) (pix []uint16, width, height int, ok bool) {
	prim := selectScreen(prims)
	if prim == nil {
		return nil, 0, 0, false
	}

	tex := &prim.Texture
	if tex.Width <= 0 || tex.Height <= 0 || tex.Width*tex.Height > MaxPixels {
		return nil, 0, 0, false
	}

	switch tex.Format {
	case mame.TexFormatPalette16, mame.TexFormatPaletteA16:
		if !c.convertIndexed(tex) {
			return nil, 0, 0, false
		}
	case mame.TexFormatRGB32, mame.TexFormatARGB32:
		if !c.convertRGB(tex) {
			return nil, 0, 0, false
		}
	default:
		// Luma/chroma and undefined formats are silently skipped.
		return nil, 0, 0, false
	}

	n := tex.Width * tex.Height
	return c.buf[:n], tex.Width, tex.Height, true
}

// selectScreen returns the first quad flagged as the primary screen
// surface. Vector primitives and overlay quads are ignored; multi-screen
// games show only the first screen.
func selectScreen(prims []mame.RenderPrimitive) *mame.RenderPrimitive {
	for i := range prims {
		p := &prims[i]
		if p.Type == mame.PrimitiveQuad && p.Flags&mame.FlagScreenTexture != 0 {
			return p
		}
	}
	return nil
}

// convertIndexed converts palette-indexed source pixels, resolving each
// index through the texture's palette. Trailing row padding is skipped.
func (c *Converter) convertIndexed(tex *mame.Texture) bool {
	stride := rowStride(tex)
	if len(tex.PixelsIndexed) < stride*(tex.Height-1)+tex.Width {
		return false
	}

	out := 0
	for y := 0; y < tex.Height; y++ {
		row := tex.PixelsIndexed[y*stride:]
		for x := 0; x < tex.Width; x++ {
			argb := uint32(0)
			if idx := int(row[x]); idx < len(tex.Palette) {
				argb = tex.Palette[idx]
			}
			c.buf[out] = c.pack(argb)
			out++
		}
	}
	return true
}

// convertRGB converts packed 32-bit RGB/ARGB source pixels. Alpha is
// ignored. Trailing row padding is skipped.
func (c *Converter) convertRGB(tex *mame.Texture) bool {
	stride := rowStride(tex)
	if len(tex.PixelsRGB) < stride*(tex.Height-1)+tex.Width {
		return false
	}

	out := 0
	for y := 0; y < tex.Height; y++ {
		row := tex.PixelsRGB[y*stride:]
		for x := 0; x < tex.Width; x++ {
			c.buf[out] = c.pack(row[x])
			out++
		}
	}
	return true
}

func rowStride(tex *mame.Texture) int {
	if tex.RowPixels > tex.Width {
		return tex.RowPixels
	}
	return tex.Width
}

// pack reduces an ARGB32 value to the negotiated 16-bit layout by nearest
// mapping. No dithering.
func (c *Converter) pack(argb uint32) uint16 {
	r := (argb >> 16) & 0xFF
	g := (argb >> 8) & 0xFF
	b := argb & 0xFF

	if c.format == FormatRGB565 {
		return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	}
	return uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(b>>3)
}
