package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSizes(t *testing.T) {
	assert.Equal(t, "ldpi:36,mdpi:48,hdpi:72,xhdpi:96,xxhdpi:144,xxxhdpi:192", FormatSizes(DefaultSizes()))
}

func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes(" xhdpi:96, mdpi : 48 ,")
	require.NoError(t, err)
	assert.Equal(t, []SizeSpec{{Label: "xhdpi", Edge: 96}, {Label: "mdpi", Edge: 48}}, sizes)
}

func TestParseSizes_KeepsNonPositiveEdges(t *testing.T) {
	sizes, err := ParseSizes("s1:10,s2:-1")
	require.NoError(t, err)
	assert.Equal(t, []SizeSpec{{Label: "s1", Edge: 10}, {Label: "s2", Edge: -1}}, sizes)
}

func TestParseSizes_Errors(t *testing.T) {
	for _, in := range []string{"mdpi", "mdpi:big", ":48", ""} {
		_, err := ParseSizes(in)
		assert.Error(t, err, "ParseSizes(%q)", in)
	}
	_, err := ParseSizes(" , ")
	assert.ErrorIs(t, err, ErrNoSizes)
}

func TestSizeSpec_Validate(t *testing.T) {
	assert.NoError(t, SizeSpec{Label: "mdpi", Edge: 48}.Validate())
	assert.ErrorIs(t, SizeSpec{Label: "mdpi", Edge: 0}.Validate(), ErrInvalidSize)
	assert.ErrorIs(t, SizeSpec{Edge: 48}.Validate(), ErrInvalidSize)
	assert.NoError(t, SizeSpec{Label: "max", Edge: MaxEdge}.Validate())
	assert.ErrorIs(t, SizeSpec{Label: "huge", Edge: MaxEdge + 1}.Validate(), ErrInvalidSize)
	assert.Equal(t, "mdpi (48x48)", SizeSpec{Label: "mdpi", Edge: 48}.String())
}
