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

// Package board holds a single physical chessboard: one (L, T) slice of
// the multiverse. It owns the tile grid and a bitboard cache kept in sync
// on every mutation, generalized from a fixed 8x8 uint64 to an arbitrary
// width/height so non-standard board dimensions from imported games still
// get O(1) occupancy queries.
package board

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/avli/ply5d/assert"
	"github.com/avli/ply5d/coords"
)

// Board is one physical board living at a given (L, T) superphysical
// position. Boards are value-semantics: Clone is an explicit, full copy
// and nothing is shared between a board and its clone.
type Board struct {
	l coords.L
	t coords.Time

	w, h int
	tiles []coords.Tile

	enPassant   coords.Coords
	hasEnPassant bool

	white    bits
	black    bits
	royal    [2]bits
	byKind   [2][numKinds]bits
	occupied bits
}

const numKinds = int(coords.RoyalQueen) + 1

// New builds an empty (all-Blank) board of the given dimensions at the
// given superphysical position.
func New(l coords.L, t coords.Time, w, h int) *Board {
	b := &Board{l: l, t: t, w: w, h: h}
	b.tiles = make([]coords.Tile, w*h)
	for i := range b.tiles {
		b.tiles[i] = coords.BlankTile
	}
	b.white = newBits(w * h)
	b.black = newBits(w * h)
	b.occupied = newBits(w * h)
	for c := 0; c < 2; c++ {
		b.royal[c] = newBits(w * h)
		for k := 0; k < numKinds; k++ {
			b.byKind[c][k] = newBits(w * h)
		}
	}
	return b
}

// L returns the timeline this board belongs to.
func (b *Board) L() coords.L { return b.l }

// T returns the superphysical time index of this board.
func (b *Board) T() coords.Time { return b.t }

// Width returns the board's X extent.
func (b *Board) Width() int { return b.w }

// Height returns the board's Y extent.
func (b *Board) Height() int { return b.h }

func (b *Board) inBounds(x, y coords.Physical) bool {
	return x >= 0 && int(x) < b.w && y >= 0 && int(y) < b.h
}

func (b *Board) index(x, y coords.Physical) int {
	return int(y)*b.w + int(x)
}

// Get returns the tile at (x, y). Out-of-range coordinates return
// coords.VoidTile rather than panicking, so callers scanning a move
// generator's direction vectors never need a separate bounds check.
func (b *Board) Get(x, y coords.Physical) coords.Tile {
	if !b.inBounds(x, y) {
		return coords.VoidTile
	}
	return b.tiles[b.index(x, y)]
}

// GetCoords is Get taking a full coords.Coords, ignoring its L/T fields.
func (b *Board) GetCoords(c coords.Coords) coords.Tile {
	return b.Get(c.X, c.Y)
}

// Set places a tile at (x, y), updating the bitboard cache. Setting a
// tile outside the board's bounds is a caller error and panics, mirroring
// the teacher's own "don't silently ignore an impossible write" stance.
func (b *Board) Set(x, y coords.Physical, tile coords.Tile) {
	if !b.inBounds(x, y) {
		panic(fmt.Sprintf("board: Set(%d,%d) out of bounds for %dx%d board", x, y, b.w, b.h))
	}
	if assert.DEBUG {
		assert.Assert(!tile.IsVoid(), "board: Set(%d,%d) would place Void inside a %dx%d board", x, y, b.w, b.h)
	}
	idx := b.index(x, y)
	old := b.tiles[idx]
	if old.IsPiece() {
		p, _ := old.Piece()
		b.clearBit(idx, p)
	}
	b.tiles[idx] = tile
	if tile.IsPiece() {
		p, _ := tile.Piece()
		b.setBit(idx, p)
	}
}

func (b *Board) colorIndex(white bool) int {
	if white {
		return 0
	}
	return 1
}

func (b *Board) setBit(idx int, p coords.Piece) {
	b.occupied.set(idx)
	c := b.colorIndex(p.White)
	if p.White {
		b.white.set(idx)
	} else {
		b.black.set(idx)
	}
	b.byKind[c][p.Kind].set(idx)
	if p.Kind.IsRoyal() {
		b.royal[c].set(idx)
	}
}

func (b *Board) clearBit(idx int, p coords.Piece) {
	b.occupied.clear(idx)
	c := b.colorIndex(p.White)
	if p.White {
		b.white.clear(idx)
	} else {
		b.black.clear(idx)
	}
	b.byKind[c][p.Kind].clear(idx)
	if p.Kind.IsRoyal() {
		b.royal[c].clear(idx)
	}
}

// Occupied reports whether the square (x, y) holds a piece of the given
// kind and color, answered from the bitboard cache. Out-of-range squares
// report false.
func (b *Board) Occupied(x, y coords.Physical, white bool, kind coords.PieceKind) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return b.byKind[b.colorIndex(white)][kind].test(b.index(x, y))
}

// HasRoyal reports whether the given color still has a royal piece (King
// or RoyalQueen) present on this board.
func (b *Board) HasRoyal(white bool) bool {
	return b.royal[b.colorIndex(white)].any()
}

// RoyalSquares returns the physical coordinates of every royal piece of
// the given color on this board, usually zero or one square.
func (b *Board) RoyalSquares(white bool) []coords.Coords {
	var out []coords.Coords
	bs := b.royal[b.colorIndex(white)]
	for i := 0; i < b.w*b.h; i++ {
		if bs.test(i) {
			out = append(out, coords.New(b.l, b.t, coords.Physical(i%b.w), coords.Physical(i/b.w)))
		}
	}
	return out
}

// Pieces returns every (Coords, Piece) pair present on the board, in
// row-major order. The returned Coords carry this board's L and T.
func (b *Board) Pieces() []PiecePosition {
	var out []PiecePosition
	for i, tile := range b.tiles {
		if p, ok := tile.Piece(); ok {
			x, y := coords.Physical(i%b.w), coords.Physical(i/b.w)
			out = append(out, PiecePosition{Coords: coords.New(b.l, b.t, x, y), Piece: p})
		}
	}
	return out
}

// PiecePosition pairs a piece with the coordinate it occupies.
type PiecePosition struct {
	Coords coords.Coords
	Piece  coords.Piece
}

// SetEnPassant marks (x, y) as capturable en passant on this board. A
// board has at most one en passant target, matching the rule that only
// the immediately preceding move can create one.
func (b *Board) SetEnPassant(x, y coords.Physical) {
	b.enPassant = coords.New(b.l, b.t, x, y)
	b.hasEnPassant = true
}

// ClearEnPassant removes this board's en passant mark, if any.
func (b *Board) ClearEnPassant() {
	b.hasEnPassant = false
}

// EnPassant returns the board's en passant target square, if any.
func (b *Board) EnPassant() (coords.Coords, bool) {
	return b.enPassant, b.hasEnPassant
}

// CloneAt returns a deep copy of the board re-addressed to (l, t). Used
// by the moveset composer to mint a board's successor at an advanced T,
// or at a newly created timeline, without disturbing the original.
func (b *Board) CloneAt(l coords.L, t coords.Time) *Board {
	c := b.Clone()
	c.l = l
	c.t = t
	return c
}

// Clone returns a deep, fully independent copy of the board.
func (b *Board) Clone() *Board {
	clone := &Board{
		l: b.l, t: b.t, w: b.w, h: b.h,
		enPassant: b.enPassant, hasEnPassant: b.hasEnPassant,
	}
	clone.tiles = make([]coords.Tile, len(b.tiles))
	copy(clone.tiles, b.tiles)
	clone.white = b.white.clone()
	clone.black = b.black.clone()
	clone.occupied = b.occupied.clone()
	for c := 0; c < 2; c++ {
		clone.royal[c] = b.royal[c].clone()
		for k := 0; k < numKinds; k++ {
			clone.byKind[c][k] = b.byKind[c][k].clone()
		}
	}
	return clone
}

// Equal reports whether two boards have identical dimensions, tiles and
// en passant state. Superphysical position (L, T) is not compared, not
// even inside the en passant mark: this is a content equality check
// (PartialGame.Equal compares flattened games with it), not an identity
// check.
func (b *Board) Equal(o *Board) bool {
	if b.w != o.w || b.h != o.h {
		return false
	}
	if b.hasEnPassant != o.hasEnPassant {
		return false
	}
	if b.hasEnPassant && (b.enPassant.X != o.enPassant.X || b.enPassant.Y != o.enPassant.Y) {
		return false
	}
	for i := range b.tiles {
		if b.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a digest of the board's dimensions, tiles and en
// passant mark. It is a dedup hint only: a fast, usually-unique
// fingerprint for skipping comparisons of boards that plainly differ;
// neither the search pool nor the importers call it. Equal boards always hash equal; a hash collision is not
// proof of equality and is never treated as one (Equal is still the only
// correctness check).
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt(buf[:], b.w)
	h.Write(buf[:4])
	putInt(buf[:], b.h)
	h.Write(buf[:4])
	for _, tile := range b.tiles {
		if p, ok := tile.Piece(); ok {
			var flag byte = 1
			if p.White {
				flag |= 2
			}
			if p.Moved {
				flag |= 4
			}
			h.Write([]byte{flag, byte(p.Kind)})
		} else if tile.IsVoid() {
			h.Write([]byte{0xff, 0xff})
		} else {
			h.Write([]byte{0, 0})
		}
	}
	if b.hasEnPassant {
		putInt(buf[:], int(b.enPassant.X))
		h.Write(buf[:4])
		putInt(buf[:], int(b.enPassant.Y))
		h.Write(buf[:4])
	}
	return h.Sum64()
}

func putInt(buf []byte, v int) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
}

// String renders the board as a rank-by-rank grid, rank H-1 first, for
// readable test failures and debug logging.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Board L=%d T=%d %dx%d\n", b.l, b.t, b.w, b.h)
	for y := b.h - 1; y >= 0; y-- {
		for x := 0; x < b.w; x++ {
			sb.WriteString(b.Get(coords.Physical(x), coords.Physical(y)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
