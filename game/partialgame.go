/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package game

import (
	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
)

// PartialGame is an immutable, copy-on-write overlay of new boards atop
// a base Game (or atop a parent PartialGame). Search nodes each carry
// their own PartialGame; none is ever mutated after construction, and
// each overlay holds only a forward reference to its parent — never a
// back-pointer into the chain that created it.
type PartialGame struct {
	parent    *PartialGame
	base      *Game
	newBoards map[boardKey]*board.Board
	info      GameInfo
}

// NoPartialGame returns the identity overlay over g: a PartialGame with
// no new boards of its own, reading through entirely to g.
func NoPartialGame(g *Game) *PartialGame {
	return &PartialGame{base: g, info: g.info}
}

// Info returns this overlay's timeline registry and derived present
// state, which may differ from its base's once new boards have been
// layered on.
func (pg *PartialGame) Info() GameInfo { return pg.info }

// Base returns the Game this overlay chain ultimately reads through to.
func (pg *PartialGame) Base() *Game {
	if pg.base != nil {
		return pg.base
	}
	return pg.parent.Base()
}

// Board returns the board at (l, t), checking this overlay, then every
// ancestor overlay, then finally the base Game.
func (pg *PartialGame) Board(l coords.L, t coords.Time) (*board.Board, bool) {
	key := boardKey{l, t}
	if b, ok := pg.newBoards[key]; ok {
		return b, true
	}
	if pg.parent != nil {
		return pg.parent.Board(l, t)
	}
	if pg.base != nil {
		return pg.base.Board(l, t)
	}
	return nil, false
}

// Get returns the tile at c, or Void if no overlay in the chain nor the
// base game has a board at c's (L, T).
func (pg *PartialGame) Get(c coords.Coords) coords.Tile {
	b, ok := pg.Board(c.L, c.T)
	if !ok {
		return coords.VoidTile
	}
	return b.GetCoords(c)
}

// BoardEnPassant returns the en passant target square of the board at
// (l, t), if that board exists and has one. Satisfies movegen.View.
func (pg *PartialGame) BoardEnPassant(l coords.L, t coords.Time) (coords.Coords, bool) {
	b, ok := pg.Board(l, t)
	if !ok {
		return coords.Coords{}, false
	}
	return b.EnPassant()
}

// WithBoard returns a new PartialGame that is pg plus one more board
// layered on top, with info.LastBoard/Present updated for the affected
// timeline. pg itself is never mutated.
func (pg *PartialGame) WithBoard(b *board.Board) *PartialGame {
	child := &PartialGame{
		parent:    pg,
		newBoards: map[boardKey]*board.Board{{b.L(), b.T()}: b},
		info:      pg.info,
	}
	ti, ok := child.info.timelineOf(b.L())
	if !ok {
		ti = TimelineInfo{Index: b.L(), FirstBoard: b.T(), LastBoard: b.T()}
	} else {
		if b.T() > ti.LastBoard {
			ti.LastBoard = b.T()
		}
		if b.T() < ti.FirstBoard {
			ti.FirstBoard = b.T()
		}
	}
	child.info.setTimelineOf(b.L(), ti)
	child.info.recomputePresent()
	return child
}

// NextFreeTimeline returns the next unused timeline index for the given
// color as of this overlay, so a branching move created earlier in the
// same turn is already accounted for.
func (pg *PartialGame) NextFreeTimeline(white bool) coords.L {
	return pg.info.NextFreeTimeline(white)
}

// WithEmergesFrom returns a new PartialGame with timeline l's
// EmergesFrom set, used when a branching move mints a new timeline.
func (pg *PartialGame) WithEmergesFrom(l coords.L, from EmergesFrom) *PartialGame {
	child := &PartialGame{parent: pg, info: pg.info}
	ti, ok := child.info.timelineOf(l)
	if !ok {
		ti = TimelineInfo{Index: l}
	}
	ti.EmergesFrom = &from
	child.info.setTimelineOf(l, ti)
	return child
}

// chainBoards walks the overlay chain from oldest to newest, collecting
// every new board introduced along the way. Later overlays win on key
// collisions (there should be none in practice: each overlay mints
// distinct (L,T) keys).
func (pg *PartialGame) chainBoards(into map[boardKey]*board.Board) {
	if pg.parent != nil {
		pg.parent.chainBoards(into)
	}
	for k, b := range pg.newBoards {
		into[k] = b
	}
}

// Flatten produces a new Game whose board map holds every base board
// plus every overlay board in this chain (later overlays win). The map
// is new; the boards themselves are shared with the base and the
// overlays, not copied.
func (pg *PartialGame) Flatten() *Game {
	base := pg.Base()
	out := &Game{info: pg.info, boards: make(map[boardKey]*board.Board, len(base.boards))}
	for k, b := range base.boards {
		out.boards[k] = b
	}
	overlaid := make(map[boardKey]*board.Board)
	pg.chainBoards(overlaid)
	for k, b := range overlaid {
		out.boards[k] = b
	}
	return out
}

// Equal reports whether two PartialGames, once flattened, describe
// structurally identical sets of boards.
func (pg *PartialGame) Equal(other *PartialGame) bool {
	a, b := pg.Flatten(), other.Flatten()
	if len(a.boards) != len(b.boards) {
		return false
	}
	for k, ba := range a.boards {
		bb, ok := b.boards[k]
		if !ok || !ba.Equal(bb) {
			return false
		}
	}
	return true
}
