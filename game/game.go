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

// Package game holds the multiverse registry (Game), its per-timeline
// bookkeeping (TimelineInfo, GameInfo) and the immutable copy-on-write
// overlay used during search (PartialGame).
package game

import (
	"fmt"

	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
)

// EmergesFrom names the (timeline, time) a branching timeline split off
// from. Nil on the handful of root timelines present from the start.
type EmergesFrom struct {
	L coords.L
	T coords.Time
}

// TimelineInfo tracks one timeline's extent: the board indices a Game
// actually has entries for. Boards on a timeline always form the
// contiguous range [FirstBoard, LastBoard].
type TimelineInfo struct {
	Index       coords.L
	EmergesFrom *EmergesFrom
	FirstBoard  coords.Time
	LastBoard   coords.Time
}

// GameInfo is the registry of timelines and the derived present/
// active-player state, shared (by value) between a Game and every
// PartialGame overlaid on it.
type GameInfo struct {
	W, H          int
	EvenTimelines bool
	ActivePlayer  bool // true = white to move

	// TimelinesWhite is ordered by ascending L (0, 1, 2, ...).
	TimelinesWhite []TimelineInfo
	// TimelinesBlack is ordered by descending L (-1, -2, ...).
	TimelinesBlack []TimelineInfo

	Present coords.Time
}

func (gi GameInfo) timelineOf(l coords.L) (TimelineInfo, bool) {
	if l >= 0 {
		idx := int(l)
		if idx < len(gi.TimelinesWhite) {
			return gi.TimelinesWhite[idx], true
		}
		return TimelineInfo{}, false
	}
	idx := int(-l) - 1
	if idx < len(gi.TimelinesBlack) {
		return gi.TimelinesBlack[idx], true
	}
	return TimelineInfo{}, false
}

func (gi *GameInfo) setTimelineOf(l coords.L, ti TimelineInfo) {
	if l >= 0 {
		idx := int(l)
		for len(gi.TimelinesWhite) <= idx {
			gi.TimelinesWhite = append(gi.TimelinesWhite, TimelineInfo{Index: coords.L(len(gi.TimelinesWhite))})
		}
		gi.TimelinesWhite[idx] = ti
		return
	}
	idx := int(-l) - 1
	for len(gi.TimelinesBlack) <= idx {
		gi.TimelinesBlack = append(gi.TimelinesBlack, TimelineInfo{Index: -coords.L(len(gi.TimelinesBlack) + 1)})
	}
	gi.TimelinesBlack[idx] = ti
}

// activeRadius implements the spec's informal activity rule: a timeline
// is active iff it lies within ±(1 + inactiveCount) of the origin, where
// inactiveCount grows symmetrically with the smaller side's branch count.
// Not grounded on original_source (which does not implement multi-
// timeline activity in the retrieved sources) — this is a direct, literal
// reading of spec.md §3's "active timeline" invariant, documented as a
// Design Note resolution in DESIGN.md.
func (gi GameInfo) activeRadius() int {
	extraWhite := len(gi.TimelinesWhite) - 1
	if extraWhite < 0 {
		extraWhite = 0
	}
	extraBlack := len(gi.TimelinesBlack)
	minExtra := extraWhite
	if extraBlack < minExtra {
		minExtra = extraBlack
	}
	return 1 + minExtra
}

// IsActive reports whether the timeline at L currently contributes to
// the present and to legality.
func (gi GameInfo) IsActive(l coords.L) bool {
	radius := gi.activeRadius()
	if l >= 0 {
		return int(l) <= radius
	}
	return int(-l) <= radius
}

// TimelineInfo returns the registry entry for timeline l, if it exists.
func (gi GameInfo) TimelineInfo(l coords.L) (TimelineInfo, bool) {
	return gi.timelineOf(l)
}

// NextFreeTimeline returns the next unused timeline index for the given
// color, computed from this GameInfo alone (so a PartialGame mid-turn
// can mint a new timeline without consulting its base Game).
func (gi GameInfo) NextFreeTimeline(white bool) coords.L {
	if white {
		return coords.L(len(gi.TimelinesWhite))
	}
	return -coords.L(len(gi.TimelinesBlack) + 1)
}

// EachActiveBoard calls f once for every (L, T) pair naming the tip
// board of every currently-active timeline.
func (gi GameInfo) EachActiveBoard(f func(l coords.L, t coords.Time)) {
	for i, ti := range gi.TimelinesWhite {
		l := coords.L(i)
		if gi.IsActive(l) {
			f(l, ti.LastBoard)
		}
	}
	for i, ti := range gi.TimelinesBlack {
		l := -coords.L(i + 1)
		if gi.IsActive(l) {
			f(l, ti.LastBoard)
		}
	}
}

// recomputePresent derives Present and ActivePlayer from the active
// timelines' LastBoard values, per spec.md §3: present is the minimum
// LastBoard across active timelines, and active_player flips each time
// present advances.
func (gi *GameInfo) recomputePresent() {
	first := true
	var min coords.Time
	for i, ti := range gi.TimelinesWhite {
		if !gi.IsActive(coords.L(i)) {
			continue
		}
		if first || ti.LastBoard < min {
			min = ti.LastBoard
			first = false
		}
	}
	for i, ti := range gi.TimelinesBlack {
		l := -coords.L(i + 1)
		if !gi.IsActive(l) {
			continue
		}
		if first || ti.LastBoard < min {
			min = ti.LastBoard
			first = false
		}
	}
	if first {
		return
	}
	advanced := min > gi.Present
	gi.Present = min
	if advanced {
		gi.ActivePlayer = !gi.ActivePlayer
	}
}

type boardKey struct {
	L coords.L
	T coords.Time
}

// Game is the full multiverse: every board that has ever existed, plus
// the timeline registry describing how they connect.
type Game struct {
	info   GameInfo
	boards map[boardKey]*board.Board
}

// New creates an empty Game of the given board dimensions with no
// timelines yet; the first InsertBoard call establishes timeline 0.
func New(w, h int, evenTimelines bool, whiteToMove bool) *Game {
	return &Game{
		info: GameInfo{
			W: w, H: h,
			EvenTimelines: evenTimelines,
			ActivePlayer:  whiteToMove,
		},
		boards: make(map[boardKey]*board.Board),
	}
}

// Info returns the game's timeline registry and derived present state.
func (g *Game) Info() GameInfo { return g.info }

// Get returns the tile at c, or Void if c names a board the game has no
// entry for.
func (g *Game) Get(c coords.Coords) coords.Tile {
	b, ok := g.Board(c.L, c.T)
	if !ok {
		return coords.VoidTile
	}
	return b.GetCoords(c)
}

// Board returns the board at (l, t), if the game has one.
func (g *Game) Board(l coords.L, t coords.Time) (*board.Board, bool) {
	b, ok := g.boards[boardKey{l, t}]
	return b, ok
}

// BoardEnPassant returns the en passant target square of the board at
// (l, t), if that board exists and has one. Satisfies movegen.View.
func (g *Game) BoardEnPassant(l coords.L, t coords.Time) (coords.Coords, bool) {
	b, ok := g.Board(l, t)
	if !ok {
		return coords.Coords{}, false
	}
	return b.EnPassant()
}

// TimelineInfo returns the registry entry for timeline l, if it exists.
func (g *Game) TimelineInfo(l coords.L) (TimelineInfo, bool) {
	return g.info.timelineOf(l)
}

// InsertBoard adds b to the game, asserting that (b.L(), b.T()) is not
// already occupied. It extends or creates the timeline's entry,
// padding gaps with empty placeholder TimelineInfo entries exactly as
// a forward-walking JSON/PGN import would when a referenced layer
// doesn't exist yet (see importers/json and importers/pgn).
func (g *Game) InsertBoard(b *board.Board) error {
	key := boardKey{b.L(), b.T()}
	if _, exists := g.boards[key]; exists {
		return fmt.Errorf("game: board already present at L=%d T=%d", b.L(), b.T())
	}
	g.boards[key] = b

	ti, ok := g.info.timelineOf(b.L())
	if !ok {
		ti = TimelineInfo{Index: b.L(), FirstBoard: b.T(), LastBoard: b.T()}
	} else {
		if b.T() < ti.FirstBoard {
			ti.FirstBoard = b.T()
		}
		if b.T() > ti.LastBoard {
			ti.LastBoard = b.T()
		}
	}
	g.info.setTimelineOf(b.L(), ti)
	g.info.recomputePresent()
	return nil
}

// SetEmergesFrom records where timeline l branched from. Called by the
// moveset composer when a branching move mints a new timeline.
func (g *Game) SetEmergesFrom(l coords.L, from EmergesFrom) {
	ti, ok := g.info.timelineOf(l)
	if !ok {
		ti = TimelineInfo{Index: l}
	}
	ti.EmergesFrom = &from
	g.info.setTimelineOf(l, ti)
}

// NextFreeTimeline returns the next unused timeline index for the given
// color: the first free non-negative L for white, the first free
// negative L for black.
func (g *Game) NextFreeTimeline(white bool) coords.L {
	return g.info.NextFreeTimeline(white)
}

// Boards returns every board currently in the game. The returned slice
// has no defined order.
func (g *Game) Boards() []*board.Board {
	out := make([]*board.Board, 0, len(g.boards))
	for _, b := range g.boards {
		out = append(out, b)
	}
	return out
}
