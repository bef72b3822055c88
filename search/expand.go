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

package search

import (
	"github.com/avli/ply5d/check"
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
	"github.com/avli/ply5d/movegen"
	"github.com/avli/ply5d/moveset"
)

// Successor pairs a legal Moveset with the PartialGame it produces.
type Successor struct {
	Moveset moveset.Moveset
	PG      *game.PartialGame
}

// LegalSuccessors enumerates every legal Moveset reachable from pg: one
// candidate move is drawn from each of the mover's own active boards,
// combined via cartesian product (the Moveset composer's "one move per
// present board" rule, spec.md §4.4), applied, and kept only if it
// doesn't leave the mover's own royal capturable (package check).
//
// This is the search engine's own legal-move enumeration rather than a
// teacher analog: the teacher searches a single board's move list
// (internal/movegen.Movegen); a multiverse turn is instead the
// cartesian product of one board's move list per active board, which
// has no single-board counterpart to ground on.
func LegalSuccessors(pg *game.PartialGame) []Successor {
	info := pg.Info()
	white := info.ActivePlayer

	type ownBoard struct {
		l coords.L
		t coords.Time
	}
	var own []ownBoard
	info.EachActiveBoard(func(l coords.L, t coords.Time) {
		if moveset.BoardBelongsToMover(white, t) {
			own = append(own, ownBoard{l, t})
		}
	})
	if len(own) == 0 {
		return nil
	}

	perBoard := make([][]moveset.Move, len(own))
	for i, ob := range own {
		b, ok := pg.Board(ob.l, ob.t)
		if !ok {
			return nil
		}
		var moves []moveset.Move
		for _, pp := range b.Pieces() {
			if pp.Piece.White != white {
				continue
			}
			for _, m := range movegen.GenerateMoves(pg, movegen.PiecePosition{Piece: pp.Piece, Coords: pp.Coords}) {
				moves = append(moves, moveset.FromGenerated(m))
			}
		}
		if len(moves) == 0 {
			// a board with no legal move for its own piece(s) can never
			// be covered, so no complete Moveset exists at all.
			return nil
		}
		perBoard[i] = moves
	}

	var out []Successor
	for _, combo := range cartesianMoves(perBoard) {
		ms := make(moveset.Moveset, len(combo))
		copy(ms, combo)
		child, err := moveset.GenerateSuccessor(pg, ms)
		if err != nil {
			continue
		}
		if check.IsIllegal(child) {
			continue
		}
		out = append(out, Successor{Moveset: ms, PG: child})
	}
	return out
}

// cartesianMoves returns the cartesian product of lists, each inner
// slice drawing exactly one element from the corresponding input list.
func cartesianMoves(lists [][]moveset.Move) [][]moveset.Move {
	if len(lists) == 0 {
		return [][]moveset.Move{{}}
	}
	rest := cartesianMoves(lists[1:])
	out := make([][]moveset.Move, 0, len(lists[0])*len(rest))
	for _, m := range lists[0] {
		for _, r := range rest {
			combo := make([]moveset.Move, 0, len(r)+1)
			combo = append(combo, m)
			combo = append(combo, r...)
			out = append(out, combo)
		}
	}
	return out
}
