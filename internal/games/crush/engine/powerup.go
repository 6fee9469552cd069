package engine

// footprint returns the 3×3 area centered on c, clamped to the board.
func footprint(b *Board, c Coord) []Coord {
	var out []Coord
	for y := c.Y - 1; y <= c.Y+1; y++ {
		for x := c.X - 1; x <= c.X+1; x++ {
			if p := C(x, y); b.InBounds(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// detonate explodes the bomb at p and every bomb caught in a blast, one at a
// time in queue order. Each bomb explodes once, centered on its own cell, and
// gets its own event and frame; a cell is scored only by the first blast that
// clears it. A color-clear caught in a blast is destroyed without triggering.
func (e *Engine) detonate(res *Result, p Coord) {
	queue := []Coord{p}
	exploded := map[Coord]bool{p: true}

	for len(queue) > 0 {
		bomb := queue[0]
		queue = queue[1:]
		n := 0
		for _, c := range footprint(e.board, bomb) {
			cell := e.board.Get(c)
			if cell.Kind == KindBomb && !exploded[c] {
				exploded[c] = true
				queue = append(queue, c)
			}
			if !cell.IsEmpty() {
				n++
			}
			e.board.Set(c, EmptyCell())
		}

		points := n * e.opts.Points.Bomb
		res.Events = append(res.Events, Event{
			Kind:   EventBombExploded,
			At:     bomb,
			Cells:  n,
			Points: points,
		})
		e.addScore(res, points)
		e.snapshot(res, FrameExploded)
	}
}

// clearColor removes every tile of the target color plus the power-up itself.
func (e *Engine) clearColor(res *Result, p Coord, target Color) {
	e.board.Set(p, EmptyCell())
	n := 1
	for y := range e.board.Size() {
		for x := range e.board.Size() {
			c := C(x, y)
			if cell := e.board.Get(c); cell.IsColored() && cell.Color == target {
				e.board.Set(c, EmptyCell())
				n++
			}
		}
	}

	points := n * e.opts.Points.ColorClear
	res.Events = append(res.Events, Event{
		Kind:   EventColorCleared,
		At:     p,
		Color:  target,
		Cells:  n,
		Points: points,
	})
	e.addScore(res, points)
	e.snapshot(res, FrameCleared)
}
