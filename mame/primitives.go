package mame

// PrimitiveType distinguishes drawable primitive kinds.
type PrimitiveType int

const (
	// PrimitiveLine is a vector segment. The bridge ignores these.
	PrimitiveLine PrimitiveType = iota

	// PrimitiveQuad is a textured rectangular surface.
	PrimitiveQuad
)

// Primitive flag bits.
const (
	// FlagScreenTexture marks the quad carrying the primary screen
	// surface for the frame.
	FlagScreenTexture uint32 = 1 << iota
)

// TextureFormat identifies the pixel layout of a primitive's texture.
type TextureFormat int

const (
	TexFormatUndefined TextureFormat = iota

	// TexFormatPalette16 is 16-bit palette indices, opaque.
	TexFormatPalette16

	// TexFormatPaletteA16 is 16-bit palette indices with per-pixel alpha
	// in the palette entries. The bridge ignores the alpha.
	TexFormatPaletteA16

	// TexFormatRGB32 is packed 32-bit RGB, high byte unused.
	TexFormatRGB32

	// TexFormatARGB32 is packed 32-bit ARGB.
	TexFormatARGB32

	// TexFormatYUY16 is packed luma/chroma. Unsupported by the bridge.
	TexFormatYUY16
)

// Texture is one primitive's source surface. Exactly one of PixelsIndexed
// or PixelsRGB is populated, chosen by Format. Rows are RowPixels wide;
// pixels past Width in each row are padding.
type Texture struct {
	Width     int
	Height    int
	RowPixels int
	Format    TextureFormat

	// Palette holds ARGB32 entries for the indexed formats.
	Palette []uint32

	PixelsIndexed []uint16
	PixelsRGB     []uint32
}

// RenderPrimitive is one entry of the engine's per-frame draw list.
type RenderPrimitive struct {
	Type    PrimitiveType
	Flags   uint32
	Texture Texture
}
