package eval

import (
	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
)

// tipBoard is one timeline's present-facing board, paired with whether
// that timeline currently counts toward the active window (spec.md §3).
type tipBoard struct {
	L      coords.L
	Active bool
	Board  *board.Board
}

// tipBoards returns every timeline's tip board (its LastBoard), the
// board evaluators actually score — a timeline's history never
// re-contributes material or position once superseded.
func tipBoards(pg *game.PartialGame) []tipBoard {
	info := pg.Info()
	out := make([]tipBoard, 0, len(info.TimelinesWhite)+len(info.TimelinesBlack))
	collect := func(l coords.L, ti game.TimelineInfo) {
		b, ok := pg.Board(l, ti.LastBoard)
		if !ok {
			return
		}
		out = append(out, tipBoard{L: l, Active: info.IsActive(l), Board: b})
	}
	for i, ti := range info.TimelinesWhite {
		collect(coords.L(i), ti)
	}
	for i, ti := range info.TimelinesBlack {
		collect(-coords.L(i+1), ti)
	}
	return out
}
