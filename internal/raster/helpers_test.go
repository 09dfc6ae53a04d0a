package raster

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	ico "github.com/sergeymakinen/go-ico"
	"github.com/stretchr/testify/require"
)

var (
	red         = color.NRGBA{R: 220, G: 20, B: 30, A: 255}
	blue        = color.NRGBA{R: 30, G: 60, B: 200, A: 255}
	transparent = color.NRGBA{}
	white       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black       = color.RGBA{A: 255}
)

// solid returns an edge x edge image filled with c.
func solid(edge int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	for y := 0; y < edge; y++ {
		for x := 0; x < edge; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// badge returns a transparent edge x edge image with an opaque c square in
// the middle half.
func badge(edge int, c color.NRGBA) *image.NRGBA {
	img := solid(edge, transparent)
	for y := edge / 4; y < edge*3/4; y++ {
		for x := edge / 4; x < edge*3/4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// writeICO encodes frames into an .ico file under t.TempDir.
func writeICO(t *testing.T, name string, frames ...image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ico.EncodeAll(&buf, frames))
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// writePNGICO stores img as a single PNG-compressed icon entry, a layout
// ico.Encode only produces for 256x256 frames.
func writePNGICO(t *testing.T, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	b := img.Bounds()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, wrapPNGInICO(buf.Bytes(), b.Dx(), b.Dy()), 0o644))
	return path
}

// wrapPNGInICO wraps raw PNG bytes in a minimal ICO container.
func wrapPNGInICO(pngData []byte, w, h int) []byte {
	const headerSize = 6
	const entrySize = 16

	// ICO dimensions: 0 means 256 (or larger).
	bw, bh := byte(w), byte(h)
	if w >= 256 {
		bw = 0
	}
	if h >= 256 {
		bh = 0
	}

	buf := make([]byte, headerSize+entrySize+len(pngData))

	binary.LittleEndian.PutUint16(buf[0:], 0) // reserved
	binary.LittleEndian.PutUint16(buf[2:], 1) // type: ICO
	binary.LittleEndian.PutUint16(buf[4:], 1) // count

	off := headerSize
	buf[off+0] = bw
	buf[off+1] = bh
	binary.LittleEndian.PutUint16(buf[off+4:], 1)  // planes
	binary.LittleEndian.PutUint16(buf[off+6:], 32) // bits per pixel
	binary.LittleEndian.PutUint32(buf[off+8:], uint32(len(pngData)))
	binary.LittleEndian.PutUint32(buf[off+12:], headerSize+entrySize)

	copy(buf[headerSize+entrySize:], pngData)
	return buf
}

// pngHeader returns a PNG signature and an IHDR chunk for a w x h 8-bit RGB
// image, with no pixel data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 4+13)
	copy(ihdr, "IHDR")
	binary.BigEndian.PutUint32(ihdr[4:], w)
	binary.BigEndian.PutUint32(ihdr[8:], h)
	ihdr[12] = 8 // bit depth
	ihdr[13] = 2 // color type: truecolor

	buf := []byte("\x89PNG\r\n\x1a\n")
	buf = binary.BigEndian.AppendUint32(buf, 13)
	buf = append(buf, ihdr...)
	return binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(ihdr))
}

// readPNG decodes path and returns the image with its raw bytes.
func readPNG(t *testing.T, path string) (image.Image, []byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img, data
}

// rgbaAt returns the 8-bit color of img at (x, y).
func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}
