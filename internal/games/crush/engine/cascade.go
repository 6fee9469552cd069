package engine

// cascade repeats clear, gravity and refill until the board has no match
// groups. groups, when non-nil, are the matches already found for the first
// pass. The loop is capped at MaxCascadePasses; hitting the cap leaves a full
// board that may still contain matches.
func (e *Engine) cascade(res *Result, groups []MatchGroup) {
	for pass := 0; ; pass++ {
		if groups == nil {
			groups = FindMatches(e.board)
		}
		if len(groups) == 0 {
			return
		}
		if pass >= e.opts.MaxCascadePasses {
			e.log.Warn("cascade pass limit reached", "passes", pass, "pending_groups", len(groups))
			return
		}
		e.clearGroups(res, groups)
		e.collapse(res)
		groups = nil
	}
}

// clearGroups removes one pass of matches. A 4-run leaves a bomb at its
// middle cell; a run of 5 or more leaves a color-clear bound to the run's
// color. When two groups spawn on the same cell the later group wins.
func (e *Engine) clearGroups(res *Result, groups []MatchGroup) {
	spawns := make(map[Coord]Cell)
	var order []Coord
	for _, g := range groups {
		var spawn Cell
		switch {
		case g.Size() >= 5:
			spawn = ColorClear(g.Color)
		case g.Size() == 4:
			spawn = Bomb()
		default:
			continue
		}
		at := g.Middle()
		if _, ok := spawns[at]; !ok {
			order = append(order, at)
		}
		spawns[at] = spawn
	}

	cells := matchedCells(groups)
	for _, c := range cells {
		if p, ok := spawns[c]; ok {
			e.board.Set(c, p)
			continue
		}
		e.board.Set(c, EmptyCell())
	}

	e.matches += len(groups)
	points := len(cells) * e.opts.Points.Match * e.level
	res.Events = append(res.Events, Event{
		Kind:   EventMatch,
		Groups: len(groups),
		Cells:  len(cells),
		Points: points,
	})
	for _, at := range order {
		p := spawns[at]
		res.Events = append(res.Events, Event{
			Kind:    EventPowerUpCreated,
			At:      at,
			PowerUp: p.Kind,
			Color:   p.Color,
		})
	}

	e.addScore(res, points)
	e.snapshot(res, FrameCleared)
}

// collapse applies gravity and refill, then records the full board.
func (e *Engine) collapse(res *Result) {
	e.board.applyGravity()
	e.board.refill(e.rng, e.opts.Palette)
	e.snapshot(res, FrameRefilled)
}
