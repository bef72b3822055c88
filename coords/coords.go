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

// Package coords holds the coordinate and piece primitives of the
// multiverse data model: physical squares, superphysical timeline/time
// indices and the piece kinds that move across them.
package coords

import "fmt"

// Physical is a single physical coordinate (X or Y) on a board. Boards in
// this variant are usually 8x8 but the type allows larger/smaller boards.
type Physical int8

// Time is the superphysical half-move index. White plays on even T,
// black on odd T (or vice versa depending on a board's timeline), and
// every half-move played advances T by one.
type Time int32

// L is the timeline index. Non-negative values are white-originated
// timelines (0, 1, 2, ...); negative values are black-originated
// timelines (-1, -2, ...).
type L int32

// Coords is a full 4D coordinate: timeline, time, and the two physical
// axes of a board.
type Coords struct {
	L L
	T Time
	X Physical
	Y Physical
}

// New builds a Coords value from its four components.
func New(l L, t Time, x, y Physical) Coords {
	return Coords{L: l, T: t, X: x, Y: y}
}

// NonPhysical returns the (L, T) pair identifying the board this
// coordinate lives on.
func (c Coords) NonPhysical() (L, Time) {
	return c.L, c.T
}

// Physical2 returns the (X, Y) pair of this coordinate.
func (c Coords) Physical2() (Physical, Physical) {
	return c.X, c.Y
}

// Add returns the coordinate-wise sum of two coordinates.
func (c Coords) Add(o Coords) Coords {
	return Coords{c.L + o.L, c.T + o.T, c.X + o.X, c.Y + o.Y}
}

// Sub returns the coordinate-wise difference of two coordinates.
func (c Coords) Sub(o Coords) Coords {
	return Coords{c.L - o.L, c.T - o.T, c.X - o.X, c.Y - o.Y}
}

// Scale multiplies every axis of a generator tuple by n and adds it to c.
// Used by ranging-piece move generation to walk a direction vector out to
// increasing distances.
func (c Coords) Scale(gen [4]int, n int) Coords {
	return Coords{
		L: c.L + L(gen[0]*n),
		T: c.T + Time(gen[1]*n),
		X: c.X + Physical(gen[2]*n),
		Y: c.Y + Physical(gen[3]*n),
	}
}

// String implements fmt.Stringer, rendering a coordinate as "(L,T,X,Y)".
func (c Coords) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", c.L, c.T, c.X, c.Y)
}

// PieceKind enumerates the supported piece kinds.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Brawn
	Knight
	Rook
	Bishop
	Unicorn
	Dragon
	Queen
	King
	Princess
	CommonKing
	RoyalQueen
)

var pieceKindNames = [...]string{
	"Pawn", "Brawn", "Knight", "Rook", "Bishop", "Unicorn",
	"Dragon", "Queen", "King", "Princess", "CommonKing", "RoyalQueen",
}

// String implements fmt.Stringer.
func (k PieceKind) String() string {
	if int(k) < len(pieceKindNames) {
		return pieceKindNames[k]
	}
	return "Unknown"
}

// IsRoyal reports whether a piece of this kind loses the game when
// captured.
func (k PieceKind) IsRoyal() bool {
	return k == King || k == RoyalQueen
}

// IsPawnlike reports whether a piece moves using the pawn/brawn move
// rules (forward step, kickstart, diagonal captures, en passant).
func (k PieceKind) IsPawnlike() bool {
	return k == Pawn || k == Brawn
}

// CanCastle reports whether a piece of this kind can be the castling
// king. Castling generation itself is deferred (see movegen's package
// doc); the flag is still tracked so imported games round-trip.
func (k PieceKind) CanCastle() bool {
	return k == King
}

// CanEnpassant reports whether a piece of this kind can capture en
// passant.
func (k PieceKind) CanEnpassant() bool {
	return k.IsPawnlike()
}

// CanKickstart reports whether a piece of this kind may move two squares
// forward on its first move.
func (k PieceKind) CanKickstart() bool {
	return k.IsPawnlike()
}

// Piece is a single piece occupying a tile.
type Piece struct {
	Kind  PieceKind
	White bool
	Moved bool
}

// NewPiece constructs a Piece.
func NewPiece(kind PieceKind, white, moved bool) Piece {
	return Piece{Kind: kind, White: white, Moved: moved}
}

// String implements fmt.Stringer.
func (p Piece) String() string {
	color := "b"
	if p.White {
		color = "w"
	}
	return fmt.Sprintf("%s%s", color, p.Kind)
}

// Tile is a single square on a board: either a piece, an empty (Blank)
// square, or Void (off-board or belonging to a board that doesn't exist).
type Tile struct {
	kind  tileKind
	piece Piece
}

type tileKind uint8

const (
	tileVoid tileKind = iota
	tileBlank
	tilePiece
)

// VoidTile is the zero-information, never-a-member-of-a-valid-board tile.
var VoidTile = Tile{kind: tileVoid}

// BlankTile is an empty, in-bounds square.
var BlankTile = Tile{kind: tileBlank}

// PieceTile wraps a piece into a Tile.
func PieceTile(p Piece) Tile {
	return Tile{kind: tilePiece, piece: p}
}

// IsVoid reports whether the tile is Void.
func (t Tile) IsVoid() bool { return t.kind == tileVoid }

// IsBlank reports whether the tile is an empty in-bounds square.
func (t Tile) IsBlank() bool { return t.kind == tileBlank }

// IsPiece reports whether the tile holds a piece.
func (t Tile) IsPiece() bool { return t.kind == tilePiece }

// Piece returns the tile's piece and true, or the zero Piece and false if
// the tile isn't a piece.
func (t Tile) Piece() (Piece, bool) {
	if t.kind != tilePiece {
		return Piece{}, false
	}
	return t.piece, true
}

// IsPieceOfColor reports whether the tile holds a piece of the given
// color.
func (t Tile) IsPieceOfColor(white bool) bool {
	return t.kind == tilePiece && t.piece.White == white
}

// String implements fmt.Stringer.
func (t Tile) String() string {
	switch t.kind {
	case tileVoid:
		return "Void"
	case tileBlank:
		return "."
	default:
		return t.piece.String()
	}
}
