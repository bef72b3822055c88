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

// Package check implements legality: whether a position leaves a side's
// royal piece capturable. Grounded on the teacher's check-detection
// idiom in position.go (IsAttacked/HasCheck's "sweep every opponent
// pseudo-move looking for a royal capture"), generalized from a single
// board to "any present board".
//
// IsMate takes the "does a legal moveset exist" flag as a parameter
// instead of computing it, so this L6 package never needs to import
// package search, whose LegalSuccessors enumerates legal movesets and
// itself imports check to filter candidates — avoiding an import cycle
// while keeping the three predicates spec.md §4.5 describes together in
// one place.
package check

import (
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
	"github.com/avli/ply5d/movegen"
)

func royalCapturable(pg *game.PartialGame, victimWhite bool) bool {
	info := pg.Info()
	capturable := false
	info.EachActiveBoard(func(l coords.L, t coords.Time) {
		if capturable {
			return
		}
		b, ok := pg.Board(l, t)
		if !ok {
			return
		}
		for _, pp := range b.Pieces() {
			if pp.Piece.White == victimWhite {
				continue
			}
			for _, mv := range movegen.GenerateMoves(pg, movegen.PiecePosition{Piece: pp.Piece, Coords: pp.Coords}) {
				if mv.Kind != movegen.Capture {
					continue
				}
				target, ok := pg.Board(mv.To.L, mv.To.T)
				if !ok {
					continue
				}
				if tp, ok := target.Get(mv.To.X, mv.To.Y).Piece(); ok && tp.Kind.IsRoyal() && tp.White == victimWhite {
					capturable = true
					return
				}
			}
		}
	})
	return capturable
}

// IsIllegal reports whether, in pg (the state just reached after
// applying a candidate moveset), the side that just moved has left its
// own royal piece capturable by the side now to move.
func IsIllegal(pg *game.PartialGame) bool {
	moverWhite := !pg.Info().ActivePlayer
	return royalCapturable(pg, moverWhite)
}

// IsInCheck reports whether the side currently to move has a royal piece
// attacked right now, before any move of theirs is considered.
func IsInCheck(pg *game.PartialGame) bool {
	return royalCapturable(pg, pg.Info().ActivePlayer)
}

// IsMate reports whether the side to move is in check and whether the
// position is terminal (no legal moveset exists, hasLegalMoveset=false).
// The caller distinguishes checkmate from stalemate by combining the two:
// inCheck && mated is checkmate, !inCheck && mated is stalemate.
// hasLegalMoveset should come from search.LegalSuccessors returning none —
// see package doc for why it isn't computed here.
func IsMate(pg *game.PartialGame, hasLegalMoveset bool) (inCheck, mated bool) {
	inCheck = IsInCheck(pg)
	mated = !hasLegalMoveset
	return inCheck, mated
}
