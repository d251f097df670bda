package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/trainrun/model"
)

const smallWagon = `
#####d#
#.....#
#.....D
#.....#
#######
`

func TestParseLayout(t *testing.T) {
	w, err := ParseLayout(smallWagon)
	require.NoError(t, err)
	assert.Equal(t, 5, w.Rows())
	assert.Equal(t, 7, w.Cols())

	top := w.Tiles[0][5]
	assert.True(t, top.IsDoor())
	assert.True(t, top.Solid)
	assert.Equal(t, model.North, top.Facing)

	right := w.Tiles[2][6]
	assert.True(t, right.IsDoor())
	assert.False(t, right.Solid)
	assert.Equal(t, model.East, right.Facing)

	assert.False(t, w.Tiles[2][3].Solid)
	assert.True(t, w.Tiles[4][3].Solid)
}

func TestLayoutRoundTrip(t *testing.T) {
	w, err := ParseLayout(smallWagon)
	require.NoError(t, err)
	assert.Equal(t, smallWagon[1:], Layout(w))
}

func TestParseLayoutErrors(t *testing.T) {
	for name, src := range map[string]string{
		"ragged":       "#####\n#...#\n####\n",
		"too small":    "##\n##\n",
		"even height":  "#####\n#...#\n#...#\n#####\n",
		"inner wall":   "#####\n#.#.#\n#####\n",
		"border floor": "##.##\n#...#\n#####\n",
		"corner door":  "d####\n#...#\n#####\n",
		"unknown":      "#####\n#.x.#\n#####\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLayout(src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLayout))
		})
	}
}
