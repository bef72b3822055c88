package check

import (
	"testing"

	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
)

func setupGame(whiteToMove bool) (*game.Game, *game.PartialGame) {
	g := game.New(8, 8, false, whiteToMove)
	b := board.New(0, 0, 8, 8)
	if err := g.InsertBoard(b); err != nil {
		panic(err)
	}
	return g, game.NoPartialGame(g)
}

func TestNotInCheckOnEmptyBoard(t *testing.T) {
	_, pg := setupGame(true)
	if IsInCheck(pg) {
		t.Fatal("an empty board should never be in check")
	}
}

func TestInCheckWhenRookAttacksKing(t *testing.T) {
	g, _ := setupGame(true)
	b, _ := g.Board(0, 0)
	b.Set(4, 0, coords.PieceTile(coords.NewPiece(coords.King, true, false)))
	b.Set(4, 7, coords.PieceTile(coords.NewPiece(coords.Rook, false, false)))
	pg := game.NoPartialGame(g)
	if !IsInCheck(pg) {
		t.Fatal("expected white king on an open file with a black rook to be in check")
	}
}

func TestNotInCheckWhenBlocked(t *testing.T) {
	g, _ := setupGame(true)
	b, _ := g.Board(0, 0)
	b.Set(4, 0, coords.PieceTile(coords.NewPiece(coords.King, true, false)))
	b.Set(4, 7, coords.PieceTile(coords.NewPiece(coords.Rook, false, false)))
	b.Set(4, 3, coords.PieceTile(coords.NewPiece(coords.Pawn, true, false)))
	pg := game.NoPartialGame(g)
	if IsInCheck(pg) {
		t.Fatal("a blocking piece should prevent check")
	}
}

func TestIsMateDistinguishesStalemateAndCheckmate(t *testing.T) {
	_, pg := setupGame(true)
	inCheck, mated := IsMate(pg, false)
	if inCheck {
		t.Fatal("empty board should not report check")
	}
	if !mated {
		t.Fatal("hasLegalMoveset=false should report mated=true (stalemate here, since inCheck=false)")
	}
}
