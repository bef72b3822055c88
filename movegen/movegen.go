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

// Package movegen enumerates pseudo-legal moves for a single piece: the
// physically-reachable destinations for that piece on its own board, or
// across timelines/time, not accounting for whether the move leaves the
// mover's own royal capturable (see package check for that).
//
// Three generator families, directly grounded on
// original_source/lib/prelude/gen/piece.rs: PawnIter (Pawn, Brawn),
// RangingPieceIter (Rook, Bishop, Unicorn, Dragon, Princess, Queen,
// RoyalQueen) and OneStepPieceIter (Knight, King, CommonKing).
//
// Castling is deferred: Piece.Moved round-trips through import so a
// future castle generator has what it needs, but this package does not
// emit castling moves (see spec.md §9's open question on the absent
// castle-move source).
package movegen

import "github.com/avli/ply5d/coords"

// View is the read side of a Game or PartialGame: enough to look up a
// tile by full 4D coordinate and to inspect the en passant mark of the
// board hosting a particular (L, T). Both *game.Game and
// *game.PartialGame satisfy it.
type View interface {
	Get(coords.Coords) coords.Tile
	BoardEnPassant(l coords.L, t coords.Time) (coords.Coords, bool)
}

// PiecePosition pairs a piece with the coordinate it occupies, the unit
// of work the move generator operates on.
type PiecePosition struct {
	Piece  coords.Piece
	Coords coords.Coords
}

// MoveKind distinguishes how a pseudo-legal move reaches its
// destination.
type MoveKind uint8

const (
	Quiet MoveKind = iota
	Capture
	EnPassant
)

func (k MoveKind) String() string {
	switch k {
	case Capture:
		return "Capture"
	case EnPassant:
		return "EnPassant"
	default:
		return "Quiet"
	}
}

// Move is a single pseudo-legal move: a source and destination
// coordinate (possibly on different boards) plus how the destination
// square is occupied.
type Move struct {
	From, To coords.Coords
	Kind     MoveKind
}

// GenerateMoves enumerates every pseudo-legal move for pp on the given
// view. The result is a plain slice rather than a lazy sequence: a
// single piece's move count is small and bounded, unlike the
// combinatorial moveset-level Cartesian product built by
// search.LegalSuccessors.
func GenerateMoves(view View, pp PiecePosition) []Move {
	switch pp.Piece.Kind {
	case coords.Pawn, coords.Brawn:
		return pawnMoves(view, pp)
	case coords.Knight:
		return oneStepMoves(view, pp, knightDirs)
	case coords.King, coords.CommonKing:
		return oneStepMoves(view, pp, queenDirs)
	case coords.Rook:
		return rangingMoves(view, pp, rookDirs)
	case coords.Bishop:
		return rangingMoves(view, pp, bishopDirs)
	case coords.Unicorn:
		return rangingMoves(view, pp, unicornDirs)
	case coords.Dragon:
		return rangingMoves(view, pp, dragonDirs)
	case coords.Princess:
		return rangingMoves(view, pp, princessDirs)
	case coords.Queen, coords.RoyalQueen:
		return rangingMoves(view, pp, queenDirs)
	default:
		return nil
	}
}

// ValidateMove reports whether mv is among pp's pseudo-legal moves, by
// re-enumerating and searching for an equal (From, To, Kind) triple —
// the reference behavior spec.md §4.3 requires of any faster validator.
func ValidateMove(view View, pp PiecePosition, mv Move) bool {
	for _, m := range GenerateMoves(view, pp) {
		if m.From == mv.From && m.To == mv.To && m.Kind == mv.Kind {
			return true
		}
	}
	return false
}

func rangingMoves(view View, pp PiecePosition, dirs []direction) []Move {
	var moves []Move
	for _, d := range dirs {
		for dist := 1; ; dist++ {
			to := pp.Coords.Scale([4]int(d), dist)
			tile := view.Get(to)
			if tile.IsVoid() {
				break
			}
			if tile.IsBlank() {
				moves = append(moves, Move{From: pp.Coords, To: to, Kind: Quiet})
				continue
			}
			p, _ := tile.Piece()
			if p.White == pp.Piece.White {
				break
			}
			moves = append(moves, Move{From: pp.Coords, To: to, Kind: Capture})
			break
		}
	}
	return moves
}

func oneStepMoves(view View, pp PiecePosition, dirs []direction) []Move {
	var moves []Move
	for _, d := range dirs {
		to := pp.Coords.Scale([4]int(d), 1)
		tile := view.Get(to)
		if tile.IsVoid() {
			continue
		}
		if tile.IsBlank() {
			moves = append(moves, Move{From: pp.Coords, To: to, Kind: Quiet})
			continue
		}
		p, _ := tile.Piece()
		if p.White != pp.Piece.White {
			moves = append(moves, Move{From: pp.Coords, To: to, Kind: Capture})
		}
	}
	return moves
}

func doubled(c coords.Coords) coords.Coords {
	return coords.Coords{L: c.L * 2, T: c.T * 2, X: c.X * 2, Y: c.Y * 2}
}

func pawnMoves(view View, pp PiecePosition) []Move {
	white := pp.Piece.White
	forward := func(delta coords.Coords) coords.Coords {
		if white {
			return pp.Coords.Add(delta)
		}
		return pp.Coords.Sub(delta)
	}

	var moves []Move

	for _, delta := range [2]coords.Coords{{Y: 1}, {T: 1}} {
		to := forward(delta)
		if !view.Get(to).IsBlank() {
			continue
		}
		moves = append(moves, Move{From: pp.Coords, To: to, Kind: Quiet})
		if !pp.Piece.Moved {
			to2 := forward(doubled(delta))
			if view.Get(to2).IsBlank() {
				moves = append(moves, Move{From: pp.Coords, To: to2, Kind: Quiet})
			}
		}
	}

	captures := []coords.Coords{
		{X: 1, Y: 1}, {X: -1, Y: 1},
		{L: 1, T: 1}, {L: -1, T: 1},
	}
	if pp.Piece.Kind == coords.Brawn {
		captures = append(captures,
			coords.Coords{L: -1, Y: 1},
			coords.Coords{T: 1, Y: 1},
			coords.Coords{T: 1, X: 1},
			coords.Coords{T: 1, X: -1},
		)
	}

	for _, delta := range captures {
		to := forward(delta)
		tile := view.Get(to)
		if tile.IsPiece() {
			p, _ := tile.Piece()
			if p.White != white {
				moves = append(moves, Move{From: pp.Coords, To: to, Kind: Capture})
			}
			continue
		}
		if !pp.Piece.Kind.CanEnpassant() {
			continue
		}
		if ep, ok := view.BoardEnPassant(to.L, to.T); ok && ep.X == to.X && ep.Y == to.Y {
			moves = append(moves, Move{From: pp.Coords, To: to, Kind: EnPassant})
		}
	}

	return moves
}
