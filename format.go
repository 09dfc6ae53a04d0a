package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/babs/ico2mipmap/internal/raster"
)

// variantResult pairs a variant with its conversion result.
type variantResult struct {
	Variant Variant
	Result  *raster.Result
}

// formatOutcome returns "  ok    mdpi      48x48     1.2 kB  path" or a FAIL line with the error.
func formatOutcome(o raster.Outcome) string {
	dims := fmt.Sprintf("%dx%d", o.Size.Edge, o.Size.Edge)
	if !o.Written() {
		return fmt.Sprintf("  FAIL  %-8s  %-9s  %v", o.Size.Label, dims, o.Err)
	}
	return fmt.Sprintf("  ok    %-8s  %-9s  %8s  %s", o.Size.Label, dims, humanize.Bytes(uint64(o.Bytes)), o.Path)
}

// formatSource describes the decoded source, or why it could not be used.
func formatSource(res *raster.Result) string {
	if res.SourceErr != nil {
		return fmt.Sprintf("  source: %v", res.SourceErr)
	}
	return fmt.Sprintf("  source: %s", res.Info)
}

// formatResult returns the per-variant report: source line, one line per size, summary.
func formatResult(res *raster.Result) []string {
	lines := []string{formatSource(res)}
	for _, o := range res.Outcomes {
		lines = append(lines, formatOutcome(o))
	}
	return append(lines, "  => "+res.Summary())
}

// formatSummary returns the closing report listing where each variant was written.
func formatSummary(results []variantResult) []string {
	converted := 0
	for _, vr := range results {
		if vr.Result.Status() == raster.Converted {
			converted++
		}
	}
	lines := []string{fmt.Sprintf("%d of %d icons fully converted", converted, len(results))}
	for _, vr := range results {
		line := fmt.Sprintf("  %-6s %s", vr.Variant.Name, vr.Result.Summary())
		if where := outputPattern(vr.Result); where != "" {
			line += " -> " + where
		}
		lines = append(lines, line)
	}
	return lines
}

// outputPattern returns a glob-like description of where outputs went,
// e.g. "res/mipmap-*/ic_launcher.png", taken from the first written size.
func outputPattern(res *raster.Result) string {
	for _, o := range res.Outcomes {
		if !o.Written() {
			continue
		}
		dir := filepath.Dir(o.Path)
		base := filepath.Base(dir)
		if n := len(base) - len(o.Size.Label); n >= 0 && base[n:] == o.Size.Label {
			return filepath.Join(filepath.Dir(dir), base[:n]+"*", filepath.Base(o.Path))
		}
		return o.Path
	}
	return ""
}

// formatCheckLine reports a probed source: found, missing or unreadable.
func formatCheckLine(name, path string, info raster.Info, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("  %-6s found       %s (%s)", name, path, info)
	case errors.Is(err, raster.ErrNotFound):
		return fmt.Sprintf("  %-6s MISSING     %s", name, path)
	default:
		return fmt.Sprintf("  %-6s UNREADABLE  %s: %v", name, path, err)
	}
}
