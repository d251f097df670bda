package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zucenko/trainrun/model"
)

var ErrLayout = errors.New("bad wagon layout")

// ParseLayout reads a wagon drawn in ASCII:
//
//	#######
//	#.....#
//	d.....D
//	#.....#
//	#######
//
// '#' wall, '.' floor, 'd' closed door, 'D' open door. Blank lines are skipped.
func ParseLayout(s string) (*model.Wagon, error) {
	return ReadLayout(strings.NewReader(s))
}

func ReadLayout(reader io.Reader) (*model.Wagon, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	lines := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(lines) > 0 && len(line) != len(lines[0]) {
			return nil, fmt.Errorf("%w: row %d is %d wide, expected %d", ErrLayout, len(lines), len(line), len(lines[0]))
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 3 || len(lines[0]) < 3 {
		return nil, fmt.Errorf("%w: needs at least 3x3 tiles", ErrLayout)
	}

	rows, cols := len(lines), len(lines[0])
	wagon, err := model.NewWagon(cols-2, rows-2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	for row, line := range lines {
		for col, char := range line {
			border := row == 0 || col == 0 || row == rows-1 || col == cols-1
			switch char {
			case '#':
				if !border {
					return nil, fmt.Errorf("%w: wall inside the wagon at (%d,%d)", ErrLayout, row, col)
				}
			case '.':
				if border {
					return nil, fmt.Errorf("%w: floor on the border at (%d,%d)", ErrLayout, row, col)
				}
			case 'd', 'D':
				if err := wagon.PlaceDoor(row, col, char == 'D'); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrLayout, err)
				}
			default:
				return nil, fmt.Errorf("%w: unknown tile %q at (%d,%d)", ErrLayout, char, row, col)
			}
		}
	}
	return wagon, nil
}

// Layout draws a wagon back in the same format.
func Layout(w *model.Wagon) string {
	var b strings.Builder
	for row := range w.Tiles {
		for col := range w.Tiles[row] {
			tile := &w.Tiles[row][col]
			switch {
			case tile.IsDoor() && tile.Solid:
				b.WriteByte('d')
			case tile.IsDoor():
				b.WriteByte('D')
			case tile.Solid:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
