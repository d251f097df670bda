package pathfinding

import (
	"container/heap"
	"fmt"
)

type neighbor struct {
	dx, dy   int
	diagonal bool
}

// all eight surrounding cells; diagonal ones are never expanded so agents
// can not cut wall corners
var neighborOffsets = [...]neighbor{
	{dx: -1, dy: -1, diagonal: true},
	{dx: -1, dy: 0},
	{dx: -1, dy: 1, diagonal: true},
	{dx: 0, dy: -1},
	{dx: 0, dy: 1},
	{dx: 1, dy: -1, diagonal: true},
	{dx: 1, dy: 0},
	{dx: 1, dy: 1, diagonal: true},
}

const stepCost = 1

type searchNode struct {
	cell   Cell
	g, f   int
	seq    int
	index  int
	parent *searchNode
}

type openQueue []*searchNode

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openQueue) Push(x interface{}) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

func manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func neighbors(g Grid, c Cell, out []Cell) []Cell {
	out = out[:0]
	for _, n := range neighborOffsets {
		if n.diagonal {
			continue
		}
		next := Cell{c.X + n.dx, c.Y + n.dy}
		if !g.InBounds(next) || !g.IsWalkable(next.X, next.Y) {
			continue
		}
		out = append(out, next)
	}
	return out
}

// Search finds a shortest path from start to end. The path starts with start.
// It reports false when end is outside the grid, blocked or not connected.
// The start cell itself does not need to be walkable but must lie in the grid.
func Search(g Grid, start, end Cell) (Path, bool) {
	if !g.InBounds(start) {
		panic(fmt.Sprintf("pathfinding: search start %v outside %dx%d grid", start, g.Width(), g.Height()))
	}
	if !g.InBounds(end) || !g.IsWalkable(end.X, end.Y) {
		return nil, false
	}

	seq := 0
	open := &openQueue{}
	heap.Init(open)
	heap.Push(open, &searchNode{cell: start, f: manhattan(start, end)})
	best := map[Cell]int{start: 0}
	closed := make(map[Cell]struct{})
	buf := make([]Cell, 0, 4)

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		if _, seen := closed[current.cell]; seen {
			continue
		}
		closed[current.cell] = struct{}{}
		if current.cell == end {
			return reconstruct(current), true
		}

		buf = neighbors(g, current.cell, buf)
		for _, next := range buf {
			if _, seen := closed[next]; seen {
				continue
			}
			cost := current.g + stepCost
			if prev, ok := best[next]; ok && cost >= prev {
				continue
			}
			best[next] = cost
			seq++
			heap.Push(open, &searchNode{
				cell:   next,
				g:      cost,
				f:      cost + manhattan(next, end),
				seq:    seq,
				parent: current,
			})
		}
	}
	return nil, false
}

func reconstruct(end *searchNode) Path {
	path := make(Path, 0, end.g+1)
	for n := end; n != nil; n = n.parent {
		path = append(path, n.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
