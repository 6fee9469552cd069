package engine

// Board is a square grid of cells stored row-major.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard creates a size×size board of empty cells.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// Size returns the board edge length.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.size && c.Y >= 0 && c.Y < b.size
}

// Get returns the cell at c. Out-of-bounds coordinates read as empty.
func (b *Board) Get(c Coord) Cell {
	if !b.InBounds(c) {
		return EmptyCell()
	}
	return b.cells[c.Y*b.size+c.X]
}

// Set stores a cell at c. Out-of-bounds coordinates are ignored.
func (b *Board) Set(c Coord, cell Cell) {
	if !b.InBounds(c) {
		return
	}
	b.cells[c.Y*b.size+c.X] = cell
}

// Swap exchanges the cells at a and b.
func (b *Board) Swap(a, o Coord) {
	ca, co := b.Get(a), b.Get(o)
	b.Set(a, co)
	b.Set(o, ca)
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{size: b.size, cells: make([]Cell, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether two boards have the same size and cells.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.size != o.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of cells of the given kind.
func (b *Board) Count(k Kind) int {
	n := 0
	for _, c := range b.cells {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// HasEmpty reports whether any cell is empty.
func (b *Board) HasEmpty() bool {
	return b.Count(KindEmpty) > 0
}

// HasPowerUp reports whether any cell holds a power-up.
func (b *Board) HasPowerUp() bool {
	for _, c := range b.cells {
		if c.IsPowerUp() {
			return true
		}
	}
	return false
}

// Rows returns a copy of the cells as a slice of rows.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.size)
	for y := range b.size {
		rows[y] = make([]Cell, b.size)
		copy(rows[y], b.cells[y*b.size:(y+1)*b.size])
	}
	return rows
}

// applyGravity compacts each column downward, preserving relative order and
// leaving empty cells at the top.
func (b *Board) applyGravity() {
	for x := range b.size {
		write := b.size - 1
		for y := b.size - 1; y >= 0; y-- {
			cell := b.Get(C(x, y))
			if cell.IsEmpty() {
				continue
			}
			if write != y {
				b.Set(C(x, write), cell)
				b.Set(C(x, y), EmptyCell())
			}
			write--
		}
	}
}

// refill replaces every empty cell with a random colored tile.
func (b *Board) refill(rng ColorSource, palette int) {
	for i, c := range b.cells {
		if c.IsEmpty() {
			b.cells[i] = Colored(Color(rng.Intn(palette)))
		}
	}
}
