package grid

import (
	"errors"
	"fmt"
)

// ErrBadShape indicates that requested grid dimensions are non-positive.
var ErrBadShape = errors.New("grid: dimensions must be > 0")

// ErrOutOfRange indicates that a row or column index is outside valid range.
var ErrOutOfRange = errors.New("grid: index out of range")

// gridErrorf wraps an underlying error with method context.
func gridErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Grid.%s(%d,%d): %w", method, row, col, err)
}

// Grid is a row-major positions-by-channels matrix of float64 values.
// r is rows (positions), c is columns (channels), and data holds r*c
// elements in row-major order.
type Grid struct {
	r, c int
	data []float64
}

// New creates an r-by-c Grid initialized to zeros.
// Returns ErrBadShape for non-positive dimensions.
// Complexity: O(r*c) time and memory.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Grid{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// BroadcastCol builds a len(values)-by-cols Grid where row i is filled with
// values[i]. This is the shape of per-position quantities (angle,
// divergence) viewed across channels.
func BroadcastCol(values []float64, cols int) (*Grid, error) {
	g, err := New(len(values), cols)
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		row := g.data[i*cols : (i+1)*cols]
		for j := range row {
			row[j] = v
		}
	}

	return g, nil
}

// BroadcastRow builds a rows-by-len(values) Grid where every row is a copy
// of values. This is the shape of per-channel quantities (wavelength,
// wavelength spread) viewed across positions.
func BroadcastRow(values []float64, rows int) (*Grid, error) {
	g, err := New(rows, len(values))
	if err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		copy(g.data[i*len(values):(i+1)*len(values)], values)
	}

	return g, nil
}

// Rows returns the number of scan positions.
func (g *Grid) Rows() int { return g.r }

// Cols returns the number of detector channels.
func (g *Grid) Cols() int { return g.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (g *Grid) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= g.r {
		return 0, gridErrorf(method, row, col, ErrOutOfRange)
	}
	if col < 0 || col >= g.c {
		return 0, gridErrorf(method, row, col, ErrOutOfRange)
	}

	return row*g.c + col, nil
}

// At retrieves the element at (row, col).
func (g *Grid) At(row, col int) (float64, error) {
	idx, err := g.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return g.data[idx], nil
}

// Set assigns value v at (row, col).
func (g *Grid) Set(row, col int, v float64) error {
	idx, err := g.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	g.data[idx] = v

	return nil
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) ([]float64, error) {
	if i < 0 || i >= g.r {
		return nil, gridErrorf("Row", i, 0, ErrOutOfRange)
	}

	out := make([]float64, g.c)
	copy(out, g.data[i*g.c:(i+1)*g.c])

	return out, nil
}

// Flatten returns a copy of all elements in row-major order, the order the
// rebinning engine consumes (position-major, channel-minor).
// Complexity: O(r*c).
func (g *Grid) Flatten() []float64 {
	out := make([]float64, len(g.data))
	copy(out, g.data)

	return out
}

// Clone returns a deep copy of the Grid.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.data))
	copy(data, g.data)

	return &Grid{r: g.r, c: g.c, data: data}
}
