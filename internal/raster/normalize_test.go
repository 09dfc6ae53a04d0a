package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorModeOf(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want ColorMode
	}{
		{"opaque nrgba", solid(4, blue), ModeRGB},
		{"alpha nrgba", badge(4, red), ModeRGBA},
		{"paletted", image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black}), ModePaletted},
		{"gray", image.NewGray(image.Rect(0, 0, 2, 2)), ModeGray},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), ModeRGB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, colorModeOf(tt.img))
		})
	}
}

func TestNormalize_CompositesAlpha(t *testing.T) {
	img := solid(2, transparent)
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 128})

	out, err := Normalize(img, color.White)
	require.NoError(t, err)
	assert.Equal(t, white, out.RGBAAt(0, 0))
	half := out.RGBAAt(1, 1)
	assert.Equal(t, uint8(255), half.R)
	assert.InDelta(t, 127, int(half.G), 2)
	assert.Equal(t, uint8(255), half.A)

	out, err = Normalize(img, color.Black)
	require.NoError(t, err)
	assert.Equal(t, black, out.RGBAAt(0, 0))
	assert.InDelta(t, 128, int(out.RGBAAt(1, 1).R), 2)
}

func TestNormalize_IgnoresBackgroundAlpha(t *testing.T) {
	out, err := Normalize(solid(2, transparent), color.NRGBA{R: 10, G: 20, B: 30, A: 0x40})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, out.RGBAAt(0, 0))
}

func TestNormalize_PalettedTransparency(t *testing.T) {
	p := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.NRGBA{}, red})
	p.SetColorIndex(1, 0, 1)

	out, err := Normalize(p, color.Black)
	require.NoError(t, err)
	assert.Equal(t, black, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: red.R, G: red.G, B: red.B, A: 255}, out.RGBAAt(1, 0))
}

func TestNormalize_Gray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 1, 1))
	g.SetGray(0, 0, color.Gray{Y: 90})

	out, err := Normalize(g, color.Black)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 90, G: 90, B: 90, A: 255}, out.RGBAAt(0, 0))
}

func TestNormalize_MovesOriginToZero(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 14, 14))
	img.SetNRGBA(10, 10, red)

	out, err := Normalize(img, color.White)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
	assert.Equal(t, color.RGBA{R: red.R, G: red.G, B: red.B, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, white, out.RGBAAt(3, 3))
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize(image.NewNRGBA(image.Rectangle{}), color.White)
	assert.ErrorIs(t, err, ErrUnsupportedColorMode)
}

func TestColorMode_String(t *testing.T) {
	assert.Equal(t, "paletted", ModePaletted.String())
	assert.Equal(t, "ColorMode(7)", ColorMode(7).String())
}
