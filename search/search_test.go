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
	"testing"
	"time"

	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/eval"
	"github.com/avli/ply5d/game"
)

func newSingleBoardGame(whiteToMove bool) (*game.Game, *board.Board) {
	g := game.New(8, 8, false, whiteToMove)
	b := board.New(0, 0, 8, 8)
	if err := g.InsertBoard(b); err != nil {
		panic(err)
	}
	return g, b
}

func TestLegalSuccessorsEnumeratesRookMoves(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	pg := game.NoPartialGame(g)

	succ := LegalSuccessors(pg)
	if len(succ) != 14 {
		t.Fatalf("expected a centrally-placed rook to have 14 destinations, got %d", len(succ))
	}
}

func TestLegalSuccessorsEmptyWhenNoOwnPieces(t *testing.T) {
	g, _ := newSingleBoardGame(true)
	pg := game.NoPartialGame(g)

	if succ := LegalSuccessors(pg); succ != nil {
		t.Fatalf("expected no successors on an empty board, got %d", len(succ))
	}
}

func TestLegalSuccessorsExcludesMovesThatLeaveOwnKingCapturable(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(4, 0, coords.PieceTile(coords.NewPiece(coords.King, true, true)))
	b.Set(4, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	b.Set(4, 7, coords.PieceTile(coords.NewPiece(coords.Rook, false, false)))
	pg := game.NoPartialGame(g)

	succ := LegalSuccessors(pg)
	for _, s := range succ {
		for _, mv := range s.Moveset {
			if mv.From.X == 4 && mv.From.Y == 3 && mv.To.X != 4 {
				t.Fatalf("pinned rook must not be allowed to step off the file: %v", mv)
			}
		}
	}
}

func TestIddfsBlScheduleReturnsNoMoveOnEmptyBoard(t *testing.T) {
	g, _ := newSingleBoardGame(true)
	opts := DefaultOptions()
	opts.MaxDuration = 50 * time.Millisecond
	_, _, ok := IddfsBlSchedule(g, opts, eval.NewPieceValues())
	if ok {
		t.Fatal("expected no legal move to be found on an empty board")
	}
}

func TestIddfsBlSchedulePrefersCapturingQueen(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(0, 0, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	b.Set(0, 7, coords.PieceTile(coords.NewPiece(coords.Queen, false, false)))
	b.Set(7, 7, coords.PieceTile(coords.NewPiece(coords.Pawn, false, false)))

	opts := DefaultOptions()
	opts.MaxDuration = 200 * time.Millisecond
	opts.NThreads = 2

	best, _, ok := IddfsBlSchedule(g, opts, eval.NewPieceValues())
	if !ok {
		t.Fatal("expected a legal move to be found")
	}
	found := false
	for _, mv := range best.Path[0] {
		if mv.To.X == 0 && mv.To.Y == 7 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the engine to capture the undefended queen, got %v", best.Path)
	}
}

func TestIddfsBlScheduleArgsFindsMove(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))

	_, _, ok := IddfsBlScheduleArgs(g, 4, 50*time.Millisecond, eval.NewPieceValues(), 8, 64, 2)
	if !ok {
		t.Fatal("expected the deprecated positional wrapper to find a move")
	}
}

func TestPoolEvictsWorstWhenFull(t *testing.T) {
	p := NewPool(2)
	low := &Node{Score: 1, Mover: true}
	mid := &Node{Score: 5, Mover: true}
	high := &Node{Score: 9, Mover: true}

	p.Put(low)
	p.Put(mid)
	p.Put(high)

	if p.Len() != 2 {
		t.Fatalf("expected pool to stay at capacity 2, got %d", p.Len())
	}
	if p.Stats.Evictions != 1 {
		t.Fatalf("expected exactly one eviction, got %d", p.Stats.Evictions)
	}
	best := p.PopBest(2)
	if best[0] != high || best[1] != mid {
		t.Fatalf("expected the worst node (low) to have been evicted, got %v, %v", best[0].Score, best[1].Score)
	}
}

func TestPoolRejectsWorseThanFullPool(t *testing.T) {
	p := NewPool(1)
	p.Put(&Node{Score: 5, Mover: true})
	p.Put(&Node{Score: 1, Mover: true})
	if p.Stats.Rejected != 1 {
		t.Fatalf("expected the worse node to be rejected, got stats %+v", p.Stats)
	}
}

func TestElapsedFilterStopsAfterDuration(t *testing.T) {
	i := 0
	next := func() (int, bool) {
		i++
		return i, true
	}
	f := NewElapsedFilter(next, func(int) bool { return true }, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if _, ok := f.Next(); ok {
		t.Fatal("expected the elapsed filter to have already expired")
	}
}

func TestElapsedFilterSkipsRejectedItems(t *testing.T) {
	items := []int{1, 2, 3, 4}
	idx := 0
	next := func() (int, bool) {
		if idx >= len(items) {
			return 0, false
		}
		v := items[idx]
		idx++
		return v, true
	}
	f := NewElapsedFilter(next, func(v int) bool { return v%2 == 0 }, time.Second)
	v, ok := f.Next()
	if !ok || v != 2 {
		t.Fatalf("expected the first even item (2), got %d, %v", v, ok)
	}
}

func TestSigmaFilterBudgetsConditionTime(t *testing.T) {
	next := func() (int, bool) { return 1, true }
	condition := func(int) bool {
		time.Sleep(5 * time.Millisecond)
		return false
	}
	f := NewSigmaFilter(next, condition, 12*time.Millisecond)
	if _, ok := f.Next(); ok {
		t.Fatal("expected no item to satisfy the always-false condition")
	}
}
