package movegen

import (
	"testing"

	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
)

func singleBoardGame(w, h int) *game.Game {
	g := game.New(w, h, false, true)
	if err := g.InsertBoard(board.New(0, 0, w, h)); err != nil {
		panic(err)
	}
	return g
}

func TestRawGeneratorCardinalities(t *testing.T) {
	cases := map[coords.PieceKind]int{
		coords.Knight:  12,
		coords.Rook:    4,
		coords.Bishop:  6,
		coords.Unicorn: 4,
		coords.Dragon:  1,
	}
	for kind, want := range cases {
		if got := RawGeneratorCount(kind); got != want {
			t.Errorf("%v: RawGeneratorCount = %d, want %d", kind, got, want)
		}
	}
}

func TestEmptyRookAtCenterYields14(t *testing.T) {
	g := singleBoardGame(8, 8)
	pp := PiecePosition{
		Piece:  coords.NewPiece(coords.Rook, true, false),
		Coords: coords.New(0, 0, 3, 3),
	}
	moves := GenerateMoves(g, pp)
	if len(moves) != 14 {
		t.Fatalf("expected 14 rook moves from center of an empty 8x8 board, got %d", len(moves))
	}
}

func TestRookStopsAtOwnPiece(t *testing.T) {
	g := singleBoardGame(8, 8)
	b, _ := g.Board(0, 0)
	b.Set(3, 5, coords.PieceTile(coords.NewPiece(coords.Pawn, true, false)))
	pp := PiecePosition{
		Piece:  coords.NewPiece(coords.Rook, true, false),
		Coords: coords.New(0, 0, 3, 3),
	}
	moves := GenerateMoves(g, pp)
	for _, m := range moves {
		if m.To.X == 3 && m.To.Y >= 5 {
			t.Fatalf("rook should not see past its own piece at (3,5), got move to %v", m.To)
		}
	}
}

func TestRookCapturesEnemyAndStops(t *testing.T) {
	g := singleBoardGame(8, 8)
	b, _ := g.Board(0, 0)
	b.Set(3, 5, coords.PieceTile(coords.NewPiece(coords.Pawn, false, false)))
	pp := PiecePosition{
		Piece:  coords.NewPiece(coords.Rook, true, false),
		Coords: coords.New(0, 0, 3, 3),
	}
	moves := GenerateMoves(g, pp)
	sawCapture := false
	for _, m := range moves {
		if m.To.X == 3 && m.To.Y == 5 {
			sawCapture = true
			if m.Kind != Capture {
				t.Fatalf("expected Capture kind at enemy square, got %v", m.Kind)
			}
		}
		if m.To.X == 3 && m.To.Y > 5 {
			t.Fatalf("rook should not see past a captured enemy piece, got move to %v", m.To)
		}
	}
	if !sawCapture {
		t.Fatal("expected a capture move onto the enemy pawn's square")
	}
}

func TestKnightNeverGeneratesNegativeXFromEdge(t *testing.T) {
	g := singleBoardGame(8, 8)
	pp := PiecePosition{
		Piece:  coords.NewPiece(coords.Knight, true, false),
		Coords: coords.New(0, 0, 0, 0),
	}
	for _, m := range GenerateMoves(g, pp) {
		if m.To.L == pp.Coords.L && m.To.T == pp.Coords.T && m.To.X < 0 {
			t.Fatalf("piece at X=0 must never generate a same-board negative X destination, got %v", m.To)
		}
	}
}

func TestPawnKickstartDisabledOnceMoved(t *testing.T) {
	g := singleBoardGame(8, 8)
	b, _ := g.Board(0, 0)
	b.Set(4, 1, coords.PieceTile(coords.NewPiece(coords.Pawn, true, true)))
	pp := PiecePosition{Piece: coords.NewPiece(coords.Pawn, true, true), Coords: coords.New(0, 0, 4, 1)}
	moves := GenerateMoves(g, pp)
	for _, m := range moves {
		if m.To.Y == 3 {
			t.Fatal("moved pawn should not be able to kickstart two squares")
		}
	}
}

func TestPawnKickstartAvailableWhenUnmoved(t *testing.T) {
	g := singleBoardGame(8, 8)
	b, _ := g.Board(0, 0)
	b.Set(4, 1, coords.PieceTile(coords.NewPiece(coords.Pawn, true, false)))
	pp := PiecePosition{Piece: coords.NewPiece(coords.Pawn, true, false), Coords: coords.New(0, 0, 4, 1)}
	moves := GenerateMoves(g, pp)
	sawKickstart := false
	for _, m := range moves {
		if m.To.Y == 3 && m.To.X == 4 {
			sawKickstart = true
		}
	}
	if !sawKickstart {
		t.Fatal("expected unmoved pawn to have a kickstart move available")
	}
}

func TestValidateMoveAgreesWithGenerator(t *testing.T) {
	g := singleBoardGame(8, 8)
	pp := PiecePosition{
		Piece:  coords.NewPiece(coords.Bishop, true, false),
		Coords: coords.New(0, 0, 3, 3),
	}
	moves := GenerateMoves(g, pp)
	if len(moves) == 0 {
		t.Fatal("expected bishop to have moves from center of empty board")
	}
	for _, m := range moves {
		if !ValidateMove(g, pp, m) {
			t.Fatalf("ValidateMove rejected a move returned by GenerateMoves: %+v", m)
		}
	}
	bogus := Move{From: pp.Coords, To: coords.New(9, 9, 9, 9), Kind: Quiet}
	if ValidateMove(g, pp, bogus) {
		t.Fatal("ValidateMove accepted a move the generator would never produce")
	}
}
