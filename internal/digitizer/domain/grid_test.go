package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGridModel_LargeIsFiveTimesSmall(t *testing.T) {
	g := DefaultGridModel(800, 600, 4, 25, 10)

	assert.Equal(t, 4.0, g.SmallSquarePx)
	assert.Equal(t, 20.0, g.LargeSquarePx)
	assert.Equal(t, 800, g.ImageWidth)
	assert.Equal(t, 600, g.ImageHeight)
	assert.True(t, g.Valid())
}

func TestGridModelValid_RejectsNilOrZeroSmallSquare(t *testing.T) {
	assert.False(t, (*GridModel)(nil).Valid())
	assert.False(t, (&GridModel{SmallSquarePx: 0, LargeSquarePx: 0}).Valid())
}

func TestGridModelValid_RejectsWrongRatio(t *testing.T) {
	g := &GridModel{SmallSquarePx: 4, LargeSquarePx: 19}
	assert.False(t, g.Valid())
}
