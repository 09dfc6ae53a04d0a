package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// ColorMode classifies how a source stores its pixels.
type ColorMode int

const (
	ModeRGB ColorMode = iota
	ModeRGBA
	ModePaletted
	ModeGray
)

func (m ColorMode) String() string {
	switch m {
	case ModeRGB:
		return "rgb"
	case ModeRGBA:
		return "rgba"
	case ModePaletted:
		return "paletted"
	case ModeGray:
		return "gray"
	}
	return fmt.Sprintf("ColorMode(%d)", int(m))
}

func colorModeOf(img image.Image) ColorMode {
	switch img.(type) {
	case *image.Paletted:
		return ModePaletted
	case *image.Gray, *image.Gray16:
		return ModeGray
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return ModeRGB
	}
	return ModeRGBA
}

// Normalize returns an opaque copy of img with its origin at (0, 0).
// Alpha, including palette alpha, is composited over bg; bg's own alpha is ignored.
func Normalize(img image.Image, bg color.Color) (*image.RGBA, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrUnsupportedColorMode, b.Dx(), b.Dy())
	}

	switch colorModeOf(img) {
	case ModePaletted:
		return flatten(expandPalette(img.(*image.Paletted)), bg), nil
	case ModeRGBA:
		return flatten(img, bg), nil
	default:
		return toRGB(img), nil
	}
}

// expandPalette converts indexed pixels to full color, keeping palette alpha.
func expandPalette(p *image.Paletted) *image.NRGBA {
	b := p.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), p, b.Min, draw.Src)
	return dst
}

// flatten paints img over a solid bg.
func flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	if b.Min != (image.Point{}) {
		rebased := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rebased, rebased.Bounds(), img, b.Min, draw.Src)
		img = rebased
	}
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(opaque(bg))
	dc.Clear()
	dc.DrawImage(img, 0, 0)
	return dc.Image().(*image.RGBA)
}

func toRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	setOpaque(dst)
	return dst
}

// opaque drops the alpha of c, un-premultiplying first.
func opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}

// setOpaque forces every pixel's alpha to 0xff so PNG encodes it as truecolor.
func setOpaque(img *image.RGBA) {
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
}
