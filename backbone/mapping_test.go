package backbone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/btn0s/prototype-playground/backbone"
)

func TestButtonForIndex(t *testing.T) {
	tests := []struct {
		index  int
		want   backbone.Button
		wantOk bool
	}{
		{index: 0, want: backbone.ButtonA, wantOk: true},
		{index: 5, want: backbone.ButtonR1, wantOk: true},
		{index: 6, want: backbone.ButtonL2, wantOk: true},
		{index: 8, want: backbone.ButtonCapture, wantOk: true},
		{index: 9, want: backbone.ButtonMenu, wantOk: true},
		{index: 12, want: backbone.ButtonDPadUp, wantOk: true},
		{index: 16, want: backbone.ButtonHome, wantOk: true},
		{index: 17, want: backbone.ButtonMore, wantOk: true},
		{index: 18},
		{index: -1},
	}
	for _, tt := range tests {
		got, ok := backbone.ButtonForIndex(tt.index)
		assert.Equal(t, tt.wantOk, ok, "index %d", tt.index)
		if tt.wantOk {
			assert.Equal(t, tt.want, got, "index %d", tt.index)
		}
	}
}

func TestEveryButtonHasAnIndex(t *testing.T) {
	seen := map[backbone.Button]bool{}
	for i := 0; i < 18; i++ {
		b, ok := backbone.ButtonForIndex(i)
		assert.True(t, ok)
		seen[b] = true
	}
	assert.Len(t, seen, len(backbone.Buttons()))
}

func TestParseButton(t *testing.T) {
	for _, b := range backbone.Buttons() {
		got, ok := backbone.ParseButton(b.String())
		assert.True(t, ok, b.String())
		assert.Equal(t, b, got)
	}
	got, ok := backbone.ParseButton("dpadleft")
	assert.True(t, ok)
	assert.Equal(t, backbone.ButtonDPadLeft, got)

	_, ok = backbone.ParseButton("Start")
	assert.False(t, ok)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name   string
		side   backbone.Side
		dir    backbone.Direction
		wantOk bool
	}{
		{name: "LeftUp", side: backbone.SideLeft, dir: backbone.Up, wantOk: true},
		{name: "LeftRight", side: backbone.SideLeft, dir: backbone.Right, wantOk: true},
		{name: "rightdown", side: backbone.SideRight, dir: backbone.Down, wantOk: true},
		{name: "RightLeft", side: backbone.SideRight, dir: backbone.Left, wantOk: true},
		{name: "Left"},
		{name: "UpLeft"},
		{name: "LeftSideways"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, dir, ok := backbone.ParseDirection(tt.name)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.side, side)
				assert.Equal(t, tt.dir, dir)
			}
		})
	}
}
