package raster

import "errors"

// Errors returned by Rasterize, Load and Probe. Match them with errors.Is.
var (
	ErrNotFound             = errors.New("source not found")
	ErrUnreadable           = errors.New("source unreadable")
	ErrDecode               = errors.New("decode source")
	ErrUnsupportedColorMode = errors.New("unsupported color mode")
	ErrNoSizes              = errors.New("no sizes requested")
	ErrInvalidSize          = errors.New("invalid size")
	ErrWrite                = errors.New("write output")
	ErrNilResolver          = errors.New("nil resolver")
)
