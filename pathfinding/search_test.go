package pathfinding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridFromRows reads '.' as walkable and anything else as blocked.
func gridFromRows(rows ...string) Grid {
	g := NewGrid(len(rows[0]), len(rows), false, Padding{})
	for y, row := range rows {
		for x, ch := range row {
			g.Cells[x][y] = ch == '.'
		}
	}
	return g
}

// bfs is the reference distance over the same 4-neighbourhood.
func bfs(g Grid, start, end Cell) (int, bool) {
	dist := map[Cell]int{start: 0}
	queue := []Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == end {
			return dist[current], true
		}
		for _, d := range []Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := Cell{current.X + d.X, current.Y + d.Y}
			if !g.InBounds(next) || !g.Cells[next.X][next.Y] {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}
	return 0, false
}

func assertValidPath(t *testing.T, g Grid, path Path, start, end Cell) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, end, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		assert.True(t, g.IsWalkable(path[i].X, path[i].Y), "step %d %v blocked", i, path[i])
		assert.Equal(t, 1, manhattan(path[i-1], path[i]), "step %d %v -> %v is not orthogonal", i, path[i-1], path[i])
	}
}

func TestSearchMatchesBFS(t *testing.T) {
	tests := []struct {
		name       string
		rows       []string
		start, end Cell
	}{
		{
			name:  "open",
			rows:  []string{".....", ".....", ".....", ".....", "....."},
			start: Cell{0, 0}, end: Cell{4, 4},
		},
		{
			name:  "wall with gap",
			rows:  []string{"..#..", "..#..", "..#..", "..#..", "....."},
			start: Cell{0, 0}, end: Cell{4, 0},
		},
		{
			name:  "maze",
			rows:  []string{".#...", ".#.#.", ".#.#.", "...#.", "####."},
			start: Cell{0, 0}, end: Cell{4, 4},
		},
		{
			name:  "same cell",
			rows:  []string{"...", "...", "..."},
			start: Cell{1, 1}, end: Cell{1, 1},
		},
		{
			name:  "blocked start",
			rows:  []string{"#..", "...", "..."},
			start: Cell{0, 0}, end: Cell{2, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridFromRows(tt.rows...)
			path, ok := Search(g, tt.start, tt.end)
			require.True(t, ok)
			want, ok := bfs(g, tt.start, tt.end)
			require.True(t, ok)
			assert.Equal(t, want, len(path)-1)
			assertValidPath(t, g, path, tt.start, tt.end)
		})
	}
}

func TestSearchRandomGridsAgreeWithBFS(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		w, h := 3+rnd.Intn(10), 3+rnd.Intn(10)
		g := NewGrid(w, h, true, Padding{})
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				g.Cells[x][y] = rnd.Float64() > 0.3
			}
		}
		start := Cell{rnd.Intn(w), rnd.Intn(h)}
		end := Cell{rnd.Intn(w), rnd.Intn(h)}

		path, ok := Search(g, start, end)
		want, reachable := bfs(g, start, end)
		if !g.Cells[end.X][end.Y] {
			reachable = false
		}
		require.Equal(t, reachable, ok, "grid %d\n%s%v -> %v", i, g, start, end)
		if ok {
			assert.Equal(t, want, len(path)-1, "grid %d\n%s", i, g)
			assertValidPath(t, g, path, start, end)
		}
	}
}

func TestSearchNoPath(t *testing.T) {
	g := gridFromRows(
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
	)
	path, ok := Search(g, Cell{0, 2}, Cell{4, 2})
	assert.False(t, ok)
	assert.Nil(t, path)
}

func TestSearchNeverMovesDiagonally(t *testing.T) {
	// the only connection between the halves is a diagonal touch
	g := gridFromRows(
		"..#",
		".#.",
		"#..",
	)
	_, ok := Search(g, Cell{0, 0}, Cell{2, 2})
	assert.False(t, ok)
}

func TestSearchEndOutsideOrBlocked(t *testing.T) {
	g := gridFromRows("...", ".#.", "...")

	_, ok := Search(g, Cell{0, 0}, Cell{3, 0})
	assert.False(t, ok)
	_, ok = Search(g, Cell{0, 0}, Cell{0, -1})
	assert.False(t, ok)
	_, ok = Search(g, Cell{0, 0}, Cell{1, 1})
	assert.False(t, ok)
}

func TestSearchStartOutsidePanics(t *testing.T) {
	g := gridFromRows("...", "...")
	assert.Panics(t, func() {
		Search(g, Cell{-1, 0}, Cell{1, 1})
	})
}

func TestIsWalkableOutsidePanics(t *testing.T) {
	g := NewGrid(2, 2, true, Padding{})
	assert.True(t, g.IsWalkable(1, 1))
	assert.Panics(t, func() { g.IsWalkable(2, 0) })
	assert.Panics(t, func() { g.IsWalkable(0, -1) })
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(3, 2, true, Padding{1, 1, 1, 1})
	c := g.Clone()
	c.Cells[1][1] = false

	assert.True(t, g.Cells[1][1])
	assert.Equal(t, g.Padding, c.Padding)
	assert.Equal(t, 3, c.Width())
	assert.Equal(t, 2, c.Height())
}

func TestGridString(t *testing.T) {
	g := gridFromRows(".#", "#.")
	assert.Equal(t, ".#\n#.\n", g.String())
}
