package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	// Formats accepted besides ICO. go-ico registers "ico" and "cur" itself.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	ico "github.com/sergeymakinen/go-ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// maxSourceEdge bounds the dimensions read from a non-ICO header before
// its pixels are allocated.
const maxSourceEdge = 16384

// icoMagic is the ICONDIR prefix: reserved=0, type=1 (icon).
var icoMagic = []byte{0x00, 0x00, 0x01, 0x00}

// Source is a decoded input image.
type Source struct {
	Path   string
	Format string
	Image  image.Image
	Frames int
}

// Width returns the native width of the decoded frame.
func (s *Source) Width() int { return s.Image.Bounds().Dx() }

// Height returns the native height of the decoded frame.
func (s *Source) Height() int { return s.Image.Bounds().Dy() }

// Mode returns the color mode of the decoded frame.
func (s *Source) Mode() ColorMode { return colorModeOf(s.Image) }

// Load reads and decodes path. ICO files yield their largest frame.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return decode(path, data)
}

func decode(path string, data []byte) (*Source, error) {
	if bytes.HasPrefix(data, icoMagic) {
		// image.Decode sniffing rejects some icons extracted from executables.
		frames, err := ico.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
		}
		if len(frames) == 0 {
			return nil, fmt.Errorf("%w: %s: no icons", ErrDecode, path)
		}
		return &Source{Path: path, Format: "ico", Image: largest(frames), Frames: len(frames)}, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxSourceEdge || cfg.Height > maxSourceEdge {
		return nil, fmt.Errorf("%w: %s: %dx%d exceeds %dx%d", ErrDecode, path, cfg.Width, cfg.Height, maxSourceEdge, maxSourceEdge)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return &Source{Path: path, Format: format, Image: img, Frames: 1}, nil
}

// largest returns the frame with the most pixels, the first one on ties.
// ico.Decode ranks frames by bit depth before size.
func largest(frames []image.Image) image.Image {
	var best image.Image
	bestArea := -1
	for _, f := range frames {
		b := f.Bounds()
		if area := b.Dx() * b.Dy(); area > bestArea {
			best, bestArea = f, area
		}
	}
	return best
}

// Info describes a source without converting it.
type Info struct {
	Path   string
	Format string
	Width  int
	Height int
	Mode   ColorMode
	Frames int
}

func (i Info) String() string {
	frames := ""
	if i.Frames > 1 {
		frames = fmt.Sprintf(", %d frames", i.Frames)
	}
	return fmt.Sprintf("%s %dx%d %s%s", i.Format, i.Width, i.Height, i.Mode, frames)
}

// Probe loads path and reports its format, size and color mode.
func Probe(path string) (Info, error) {
	src, err := Load(path)
	if err != nil {
		return Info{Path: path}, err
	}
	return src.Info(), nil
}

// Info summarizes s.
func (s *Source) Info() Info {
	return Info{
		Path:   s.Path,
		Format: s.Format,
		Width:  s.Width(),
		Height: s.Height(),
		Mode:   s.Mode(),
		Frames: s.Frames,
	}
}
