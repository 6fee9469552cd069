package engine

// findSwap returns the first adjacent pair of plain tiles, scanning
// right and down neighbors in row-major order, whose exchange forms a match.
// The board is left unchanged.
func findSwap(b *Board) (Move, bool) {
	n := b.Size()
	for y := range n {
		for x := range n {
			a := C(x, y)
			if !b.Get(a).IsColored() {
				continue
			}
			for _, o := range []Coord{C(x+1, y), C(x, y+1)} {
				if !b.InBounds(o) || !b.Get(o).IsColored() {
					continue
				}
				b.Swap(a, o)
				matched := hasMatch(b)
				b.Swap(a, o)
				if matched {
					return Move{A: a, B: o}, true
				}
			}
		}
	}
	return Move{}, false
}

// findPowerUp returns the first power-up in row-major order.
func findPowerUp(b *Board) (Coord, bool) {
	for y := range b.Size() {
		for x := range b.Size() {
			if b.Get(C(x, y)).IsPowerUp() {
				return C(x, y), true
			}
		}
	}
	return Coord{}, false
}

// IsDeadlocked reports whether b has no power-up and no swap that forms a match.
func IsDeadlocked(b *Board) bool {
	if b.HasPowerUp() {
		return false
	}
	_, ok := findSwap(b)
	return !ok
}

func (e *Engine) hasLegalMove() bool {
	return !IsDeadlocked(e.board)
}
