package raster

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeSpec names one output resolution: a density label and a square edge in pixels.
type SizeSpec struct {
	Label string `json:"label"`
	Edge  int    `json:"edge"`
}

func (s SizeSpec) String() string {
	return fmt.Sprintf("%s (%dx%d)", s.Label, s.Edge, s.Edge)
}

// MaxEdge is the largest edge Rasterize renders.
const MaxEdge = 8192

// Validate reports whether s can be rendered.
func (s SizeSpec) Validate() error {
	if s.Label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidSize)
	}
	if s.Edge <= 0 {
		return fmt.Errorf("%w: %s edge %d must be positive", ErrInvalidSize, s.Label, s.Edge)
	}
	if s.Edge > MaxEdge {
		return fmt.Errorf("%w: %s edge %d exceeds %d", ErrInvalidSize, s.Label, s.Edge, MaxEdge)
	}
	return nil
}

// DefaultSizes returns the Android launcher density buckets, smallest first.
func DefaultSizes() []SizeSpec {
	return []SizeSpec{
		{Label: "ldpi", Edge: 36},
		{Label: "mdpi", Edge: 48},
		{Label: "hdpi", Edge: 72},
		{Label: "xhdpi", Edge: 96},
		{Label: "xxhdpi", Edge: 144},
		{Label: "xxxhdpi", Edge: 192},
	}
}

// ParseSizes parses a comma separated "label:edge" list, e.g. "mdpi:48,xhdpi:96".
// Order is preserved. Edges are only checked for being integers; positivity is
// left to Rasterize so a bad entry fails on its own.
func ParseSizes(s string) ([]SizeSpec, error) {
	var sizes []SizeSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		label, edge, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("parse size %q: want label:edge", part)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("parse size %q: empty label", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(edge))
		if err != nil {
			return nil, fmt.Errorf("parse size %q: %w", part, err)
		}
		sizes = append(sizes, SizeSpec{Label: label, Edge: n})
	}
	if len(sizes) == 0 {
		return nil, ErrNoSizes
	}
	return sizes, nil
}

// FormatSizes is the inverse of ParseSizes.
func FormatSizes(sizes []SizeSpec) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = s.Label + ":" + strconv.Itoa(s.Edge)
	}
	return strings.Join(parts, ",")
}
