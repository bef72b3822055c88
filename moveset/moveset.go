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

// Package moveset composes one move per present board into a single
// legal half-turn, applies it to produce a successor PartialGame, and
// enforces the five coverage/advancement rules that make a Moveset
// legal to submit. Collection shape grounded on moveslice.MoveSlice.
package moveset

import (
	"fmt"
	"strings"

	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
	"github.com/avli/ply5d/movegen"
)

// Move is a single board's contribution to a Moveset. PromoteInto is the
// Design Notes' resolution of spec.md §9's promotion open question: the
// source grammar parses a promotion piece letter but never threads it
// through to the move constructor; here it is an explicit, first-class
// field applied by Apply.
type Move struct {
	From, To    coords.Coords
	Kind        movegen.MoveKind
	PromoteInto *coords.PieceKind
}

// FromGenerated lifts a pseudo-legal movegen.Move into a moveset.Move
// with no promotion choice attached.
func FromGenerated(m movegen.Move) Move {
	return Move{From: m.From, To: m.To, Kind: m.Kind}
}

func (m Move) String() string {
	if m.PromoteInto != nil {
		return fmt.Sprintf("%s-%s=%s", m.From, m.To, *m.PromoteInto)
	}
	return fmt.Sprintf("%s-%s", m.From, m.To)
}

// Moveset is an ordered set of Moves, one per own board at the present.
// Modeled as a typed slice with helper methods, the same facade shape as
// the teacher's moveslice.MoveSlice.
type Moveset []Move

// PushBack appends a move.
func (ms *Moveset) PushBack(m Move) {
	*ms = append(*ms, m)
}

// ForEach calls f once per index in order.
func (ms Moveset) ForEach(f func(index int)) {
	for i := range ms {
		f(i)
	}
}

// Filter keeps only the moves for which f returns true, reusing the
// underlying array.
func (ms *Moveset) Filter(f func(index int) bool) {
	b := (*ms)[:0]
	for i, m := range *ms {
		if f(i) {
			b = append(b, m)
		}
	}
	*ms = b
}

// String renders the moveset as a bracketed, comma-separated list.
func (ms Moveset) String() string {
	var sb strings.Builder
	sb.WriteString("Moveset[")
	for i, m := range ms {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// BoardBelongsToMover reports whether a board at time t, on the
// present's own-board parity rule (spec.md §3), belongs to the player
// to move.
func BoardBelongsToMover(whiteToMove bool, t coords.Time) bool {
	return (t%2 == 0) == whiteToMove
}

type boardKey struct {
	L coords.L
	T coords.Time
}

// Validate enforces spec.md §4.4's five Moveset rules: one move per own
// active board at the present T, an existing destination board for every
// move, no duplicate source boards, and full coverage (every own active
// board at the present must appear exactly once). Rules 3-5, which describe how application advances the
// present, are enforced structurally by Apply/GenerateSuccessor rather
// than checked here.
func (ms Moveset) Validate(pg *game.PartialGame) error {
	info := pg.Info()
	seen := make(map[boardKey]bool, len(ms))
	for _, mv := range ms {
		key := boardKey{mv.From.L, mv.From.T}
		if seen[key] {
			return fmt.Errorf("moveset: duplicate source board %v", mv.From)
		}
		seen[key] = true

		ti, ok := info.TimelineInfo(mv.From.L)
		if !ok || ti.LastBoard != mv.From.T {
			return fmt.Errorf("moveset: source board %v is not at its timeline's present T", mv.From)
		}
		if !info.IsActive(mv.From.L) {
			return fmt.Errorf("moveset: source board %v is on an inactive timeline", mv.From)
		}
		if !BoardBelongsToMover(info.ActivePlayer, mv.From.T) {
			return fmt.Errorf("moveset: source board %v does not belong to the player to move", mv.From)
		}
		b, ok := pg.Board(mv.From.L, mv.From.T)
		if !ok {
			return fmt.Errorf("moveset: no board at source %v", mv.From)
		}
		if !b.Get(mv.From.X, mv.From.Y).IsPiece() {
			return fmt.Errorf("moveset: no piece at source %v", mv.From)
		}
		if _, ok := pg.Board(mv.To.L, mv.To.T); !ok {
			return fmt.Errorf("moveset: no board at destination %v", mv.To)
		}
	}

	var missing []boardKey
	info.EachActiveBoard(func(l coords.L, t coords.Time) {
		if !BoardBelongsToMover(info.ActivePlayer, t) {
			return
		}
		if !seen[boardKey{l, t}] {
			missing = append(missing, boardKey{l, t})
		}
	})
	if len(missing) > 0 {
		return fmt.Errorf("moveset: missing a move for own board(s) %v", missing)
	}
	return nil
}

// backRankPromotion applies PromoteInto, or (absent an explicit choice)
// auto-queens a pawn/brawn that reaches the mover's far rank — the
// behavior the source regex grammar parses but never wires up (see
// package doc and spec.md §9).
func backRankPromotion(p coords.Piece, mv Move, boardHeight int) coords.Piece {
	if !p.Kind.IsPawnlike() {
		return p
	}
	farRank := coords.Physical(boardHeight - 1)
	if p.White {
		if mv.To.Y != farRank {
			return p
		}
	} else {
		if mv.To.Y != 0 {
			return p
		}
	}
	if mv.PromoteInto != nil {
		p.Kind = *mv.PromoteInto
		return p
	}
	p.Kind = coords.Queen
	return p
}

func isDoubleYStep(mover coords.Piece, mv Move) (coords.Physical, bool) {
	if !mover.Kind.IsPawnlike() {
		return 0, false
	}
	if mv.From.L != mv.To.L || mv.From.T != mv.To.T || mv.From.X != mv.To.X {
		return 0, false
	}
	dy := int(mv.To.Y) - int(mv.From.Y)
	if dy == 2 || dy == -2 {
		return mv.From.Y + coords.Physical(dy/2), true
	}
	return 0, false
}

// Apply applies a single move atop pg, returning the successor overlay.
// Spatial moves (same L, T) mutate one board's next T; superphysical
// moves (ΔL ≠ 0 or ΔT ≠ 0) mutate both the source board's next T and the
// destination timeline's next T, spawning a new timeline when the
// destination lands in an existing timeline's past (spec.md §4.4 rule 4).
func Apply(pg *game.PartialGame, mv Move) (*game.PartialGame, error) {
	srcBoard, ok := pg.Board(mv.From.L, mv.From.T)
	if !ok {
		return nil, fmt.Errorf("moveset: no board at source %v", mv.From)
	}
	mover, ok := srcBoard.Get(mv.From.X, mv.From.Y).Piece()
	if !ok {
		return nil, fmt.Errorf("moveset: no piece at source %v", mv.From)
	}
	mover.Moved = true

	spatial := mv.From.L == mv.To.L && mv.From.T == mv.To.T

	if spatial {
		next := srcBoard.CloneAt(srcBoard.L(), srcBoard.T()+1)
		next.ClearEnPassant()
		if mv.Kind == movegen.EnPassant {
			next.Set(mv.To.X, mv.From.Y, coords.BlankTile)
		}
		next.Set(mv.From.X, mv.From.Y, coords.BlankTile)
		next.Set(mv.To.X, mv.To.Y, coords.PieceTile(backRankPromotion(mover, mv, next.Height())))
		if y, ok := isDoubleYStep(mover, mv); ok {
			next.SetEnPassant(mv.To.X, y)
		}
		return pg.WithBoard(next), nil
	}

	destBoard, ok := pg.Board(mv.To.L, mv.To.T)
	if !ok {
		return nil, fmt.Errorf("moveset: no board at destination %v", mv.To)
	}

	destL := mv.To.L
	_, branching := pg.Board(mv.To.L, mv.To.T+1)
	if branching {
		destL = pg.NextFreeTimeline(mover.White)
	}

	nextDest := destBoard.CloneAt(destL, mv.To.T+1)
	nextDest.ClearEnPassant()
	nextDest.Set(mv.To.X, mv.To.Y, coords.PieceTile(backRankPromotion(mover, mv, nextDest.Height())))
	// WithBoard registers a new timeline starting at the minted board's T,
	// so its origin is recorded only afterwards.
	pg = pg.WithBoard(nextDest)
	if branching {
		pg = pg.WithEmergesFrom(destL, game.EmergesFrom{L: mv.To.L, T: mv.To.T})
	}

	nextSrc := srcBoard.CloneAt(srcBoard.L(), srcBoard.T()+1)
	nextSrc.ClearEnPassant()
	nextSrc.Set(mv.From.X, mv.From.Y, coords.BlankTile)
	pg = pg.WithBoard(nextSrc)

	return pg, nil
}

// GenerateSuccessor validates ms and applies each of its moves in turn,
// producing the successor PartialGame (the source's
// generate_partial_game).
func GenerateSuccessor(pg *game.PartialGame, ms Moveset) (*game.PartialGame, error) {
	if err := ms.Validate(pg); err != nil {
		return nil, err
	}
	out := pg
	var err error
	for _, mv := range ms {
		out, err = Apply(out, mv)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
