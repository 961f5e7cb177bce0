// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/easy-converter/pkg/types"
)

func TestParsePageSize(t *testing.T) {
	tests := []struct {
		spec   string
		want   Size
		wantOK bool
	}{
		{spec: "A4", want: A4, wantOK: true},
		{spec: "a4", want: A4, wantOK: true},
		{spec: "LETTER", want: Letter, wantOK: true},
		{spec: "letter", want: Letter, wantOK: true},
		{spec: "8.5x11", want: Size{Width: 612, Height: 792}, wantOK: true},
		{spec: "4X6", want: Size{Width: 288, Height: 432}, wantOK: true},
		{spec: "legal", want: A4},
		{spec: "8.5", want: A4},
		{spec: "axb", want: A4},
		{spec: "0x11", want: A4},
		{spec: "-1x11", want: A4},
		{spec: "", want: A4},
		{spec: "nanx11", want: A4},
		{spec: "8.5xNaN", want: A4},
		{spec: "infx11", want: A4},
		{spec: "8.5x+Inf", want: A4},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, ok := ParsePageSize(tt.spec)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.want.Height, got.Height, 1e-9)
		})
	}
}

func TestPresetSizes(t *testing.T) {
	assert.InDelta(t, 595.2755905511812, A4.Width, 1e-9)
	assert.InDelta(t, 841.8897637795277, A4.Height, 1e-9)
	assert.Equal(t, 612.0, Letter.Width)
	assert.Equal(t, 792.0, Letter.Height)
}

func TestNewGeometry(t *testing.T) {
	tests := []struct {
		name    string
		size    Size
		margin  float64
		wantErr bool
	}{
		{name: "a4 half inch", size: A4, margin: 36},
		{name: "zero margin", size: Letter, margin: 0},
		{name: "negative margin", size: Letter, margin: -1, wantErr: true},
		{name: "margin equals half width", size: Letter, margin: 306, wantErr: true},
		{name: "margin exceeds half height", size: Size{Width: 1000, Height: 100}, margin: 60, wantErr: true},
		{name: "zero width", size: Size{Width: 0, Height: 100}, margin: 0, wantErr: true},
		{name: "NaN margin", size: Letter, margin: math.NaN(), wantErr: true},
		{name: "infinite margin", size: Letter, margin: math.Inf(1), wantErr: true},
		{name: "NaN width", size: Size{Width: math.NaN(), Height: 792}, margin: 0, wantErr: true},
		{name: "infinite height", size: Size{Width: 612, Height: math.Inf(1)}, margin: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGeometry(tt.size, tt.margin)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, g.Size())
			assert.Equal(t, tt.margin, g.Margin())
			assert.Greater(t, g.UsableWidth(), 0.0)
			assert.Greater(t, g.UsableHeight(), 0.0)
		})
	}
}

func TestGeometryFromConfig(t *testing.T) {
	t.Run("valid size", func(t *testing.T) {
		var w bytes.Buffer
		g, err := GeometryFromConfig(types.ImageConfig{PageSize: "letter", Margin: 0.5}, &w)
		require.NoError(t, err)
		assert.Equal(t, Letter, g.Size())
		assert.Equal(t, 36.0, g.Margin())
		assert.Empty(t, w.String())
	})

	t.Run("invalid size falls back to A4 with warning", func(t *testing.T) {
		var w bytes.Buffer
		g, err := GeometryFromConfig(types.ImageConfig{PageSize: "tabloid", Margin: 0.5}, &w)
		require.NoError(t, err)
		assert.Equal(t, A4, g.Size())
		assert.Contains(t, w.String(), "Invalid page size: tabloid. Using A4.")
	})

	t.Run("NaN margin", func(t *testing.T) {
		var w bytes.Buffer
		_, err := GeometryFromConfig(types.ImageConfig{PageSize: "letter", Margin: math.NaN()}, &w)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("margin too large", func(t *testing.T) {
		var w bytes.Buffer
		_, err := GeometryFromConfig(types.ImageConfig{PageSize: "4x6", Margin: 2}, &w)
		assert.Error(t, err)
	})
}
