// Package raster converts a single icon into a set of opaque, square PNG
// bitmaps, one per requested density bucket.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Rasterizer holds the parameters shared by every conversion. It keeps no
// state between calls and may be reused for several sources.
type Rasterizer struct {
	Sizes      []SizeSpec
	Background color.Color
	Filter     Filter
}

// New returns a Rasterizer using DefaultFilter. A nil bg means white.
func New(sizes []SizeSpec, bg color.Color) *Rasterizer {
	return &Rasterizer{Sizes: sizes, Background: bg, Filter: DefaultFilter}
}

// Rasterize converts sourcePath with a default Rasterizer.
func Rasterize(sourcePath string, sizes []SizeSpec, bg color.Color, resolve Resolver) (*Result, error) {
	return New(sizes, bg).Rasterize(sourcePath, resolve)
}

// Rasterize decodes sourcePath once and writes one PNG per size to the path
// chosen by resolve. The returned error is non-nil only when nothing could be
// attempted (no sizes, unknown filter, unreadable source); per-size failures
// are recorded in the Result. The Result is never nil.
func (r *Rasterizer) Rasterize(sourcePath string, resolve Resolver) (*Result, error) {
	res := &Result{Source: sourcePath}
	if err := r.check(resolve); err != nil {
		res.SourceErr = err
		return res, err
	}

	src, err := Load(sourcePath)
	if err != nil {
		res.SourceErr = err
		return res, err
	}
	return r.Convert(src, resolve)
}

// Convert is Rasterize for an already decoded source.
func (r *Rasterizer) Convert(src *Source, resolve Resolver) (*Result, error) {
	res := &Result{Source: src.Path, Info: src.Info()}
	if err := r.check(resolve); err != nil {
		res.SourceErr = err
		return res, err
	}

	base, err := Normalize(src.Image, r.background())
	if err != nil {
		res.SourceErr = fmt.Errorf("normalize %s: %w", src.Path, err)
		return res, res.SourceErr
	}

	for _, s := range r.Sizes {
		res.Outcomes = append(res.Outcomes, r.render(base, s, resolve))
	}
	return res, nil
}

func (r *Rasterizer) check(resolve Resolver) error {
	if len(r.Sizes) == 0 {
		return ErrNoSizes
	}
	if resolve == nil {
		return ErrNilResolver
	}
	if r.Filter != "" && !ValidFilterName(string(r.Filter)) {
		return fmt.Errorf("unknown filter %q", string(r.Filter))
	}
	return nil
}

func (r *Rasterizer) background() color.Color {
	if r.Background == nil {
		return color.White
	}
	return r.Background
}

func (r *Rasterizer) render(base *image.RGBA, s SizeSpec, resolve Resolver) Outcome {
	out := Outcome{Size: s}
	if err := s.Validate(); err != nil {
		out.Err = err
		return out
	}

	path, err := resolve(s)
	if err != nil {
		out.Err = fmt.Errorf("%w: %w", ErrWrite, err)
		return out
	}
	out.Path = path

	img, err := Resample(base, s.Edge, r.Filter)
	if err != nil {
		out.Err = err
		return out
	}
	data, err := encodePNG(img)
	if err != nil {
		out.Err = fmt.Errorf("%w: encode %s: %w", ErrWrite, s.Label, err)
		return out
	}
	if err := writeFile(path, data); err != nil {
		out.Err = fmt.Errorf("%w: %w", ErrWrite, err)
		return out
	}
	out.Bytes = int64(len(data))
	return out
}

// Outcome is the result for one size.
type Outcome struct {
	Size  SizeSpec
	Path  string
	Bytes int64
	Err   error
}

// Written reports whether the bitmap was written.
func (o Outcome) Written() bool { return o.Err == nil }

// Status summarizes a Result.
type Status int

const (
	NotConverted Status = iota
	Partial
	Converted
)

func (s Status) String() string {
	switch s {
	case NotConverted:
		return "not converted"
	case Partial:
		return "partially converted"
	case Converted:
		return "fully converted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result collects the outcomes of one Rasterize call, in size order.
type Result struct {
	Source    string
	Info      Info
	Outcomes  []Outcome
	SourceErr error
}

// Written returns how many sizes were written.
func (r *Result) Written() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Written() {
			n++
		}
	}
	return n
}

// Status reports whether every, some or none of the sizes were written.
func (r *Result) Status() Status {
	n := r.Written()
	switch {
	case r.SourceErr != nil || n == 0:
		return NotConverted
	case n < len(r.Outcomes):
		return Partial
	}
	return Converted
}

// Lookup returns the outcome for label.
func (r *Result) Lookup(label string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Size.Label == label {
			return o, true
		}
	}
	return Outcome{}, false
}

// Failed returns the outcomes that were not written.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.Written() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err returns nil when every size was written, the source error when the
// source could not be used, and otherwise the joined per-size errors.
func (r *Result) Err() error {
	if r.SourceErr != nil {
		return r.SourceErr
	}
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", o.Size.Label, o.Err))
	}
	return errors.Join(errs...)
}

// Summary is a one-line description such as "partially converted (5 of 6 sizes)".
func (r *Result) Summary() string {
	if r.SourceErr != nil {
		if errors.Is(r.SourceErr, ErrNotFound) || errors.Is(r.SourceErr, ErrUnreadable) || errors.Is(r.SourceErr, ErrDecode) {
			return "not converted (source unreadable)"
		}
		return "not converted (" + r.SourceErr.Error() + ")"
	}
	return fmt.Sprintf("%s (%d of %d sizes)", r.Status(), r.Written(), len(r.Outcomes))
}
