package moveset

import (
	"testing"

	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
	"github.com/avli/ply5d/movegen"
)

func newSingleBoardGame(whiteToMove bool) (*game.Game, *board.Board) {
	g := game.New(8, 8, false, whiteToMove)
	b := board.New(0, 0, 8, 8)
	if err := g.InsertBoard(b); err != nil {
		panic(err)
	}
	return g, b
}

func TestValidateRejectsMissingCoverage(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	pg := game.NoPartialGame(g)
	var ms Moveset
	if err := ms.Validate(pg); err == nil {
		t.Fatal("expected an empty moveset to be rejected for missing coverage of the one active board")
	}
}

func TestValidateRejectsDuplicateSourceBoard(t *testing.T) {
	g, _ := newSingleBoardGame(true)
	pg := game.NoPartialGame(g)
	ms := Moveset{
		{From: coords.New(0, 0, 3, 3), To: coords.New(0, 0, 3, 4), Kind: movegen.Quiet},
		{From: coords.New(0, 0, 3, 3), To: coords.New(0, 0, 3, 5), Kind: movegen.Quiet},
	}
	if err := ms.Validate(pg); err == nil {
		t.Fatal("expected duplicate source board to be rejected")
	}
}

func TestValidateAcceptsFullCoverage(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	pg := game.NoPartialGame(g)
	ms := Moveset{{From: coords.New(0, 0, 3, 3), To: coords.New(0, 0, 3, 6), Kind: movegen.Quiet}}
	if err := ms.Validate(pg); err != nil {
		t.Fatalf("expected full coverage moveset to validate, got %v", err)
	}
}

func TestApplySpatialQuietMoveAdvancesBoard(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	pg := game.NoPartialGame(g)
	mv := Move{From: coords.New(0, 0, 3, 3), To: coords.New(0, 0, 3, 6), Kind: movegen.Quiet}

	next, err := Apply(pg, mv)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	nb, ok := next.Board(0, 1)
	if !ok {
		t.Fatal("expected a successor board at T=1")
	}
	if !nb.Get(3, 6).IsPieceOfColor(true) {
		t.Fatal("expected the rook to land on its destination square")
	}
	if nb.Get(3, 3).IsPiece() {
		t.Fatal("expected the source square to be empty after the move")
	}
	if orig, _ := pg.Board(0, 0); !orig.Get(3, 3).IsPiece() {
		t.Fatal("Apply must not mutate the original board")
	}
}

func TestApplyPromotionAutoQueens(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(4, 6, coords.PieceTile(coords.NewPiece(coords.Pawn, true, true)))
	pg := game.NoPartialGame(g)
	mv := Move{From: coords.New(0, 0, 4, 6), To: coords.New(0, 0, 4, 7), Kind: movegen.Quiet}

	next, err := Apply(pg, mv)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	nb, _ := next.Board(0, 1)
	p, ok := nb.Get(4, 7).Piece()
	if !ok || p.Kind != coords.Queen {
		t.Fatalf("expected auto-queen on reaching the far rank, got %+v", p)
	}
}

func TestApplyExplicitPromotionChoice(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(4, 6, coords.PieceTile(coords.NewPiece(coords.Pawn, true, true)))
	pg := game.NoPartialGame(g)
	knight := coords.Knight
	mv := Move{From: coords.New(0, 0, 4, 6), To: coords.New(0, 0, 4, 7), Kind: movegen.Quiet, PromoteInto: &knight}

	next, err := Apply(pg, mv)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	nb, _ := next.Board(0, 1)
	p, _ := nb.Get(4, 7).Piece()
	if p.Kind != coords.Knight {
		t.Fatalf("expected explicit promotion choice to be honored, got %v", p.Kind)
	}
}

func TestApplyDoubleStepSetsEnPassantTarget(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(4, 1, coords.PieceTile(coords.NewPiece(coords.Pawn, true, false)))
	pg := game.NoPartialGame(g)
	mv := Move{From: coords.New(0, 0, 4, 1), To: coords.New(0, 0, 4, 3), Kind: movegen.Quiet}

	next, err := Apply(pg, mv)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	nb, _ := next.Board(0, 1)
	target, ok := nb.EnPassant()
	if !ok {
		t.Fatal("expected a double pawn step to leave an en passant target")
	}
	if target.X != 4 || target.Y != 2 {
		t.Fatalf("unexpected en passant target %v", target)
	}
}

func TestApplyEnPassantCaptureRemovesPassedPawn(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(4, 4, coords.PieceTile(coords.NewPiece(coords.Pawn, true, true)))
	b.Set(3, 4, coords.PieceTile(coords.NewPiece(coords.Pawn, false, true)))
	b.SetEnPassant(3, 5)
	pg := game.NoPartialGame(g)
	mv := Move{From: coords.New(0, 0, 4, 4), To: coords.New(0, 0, 3, 5), Kind: movegen.EnPassant}

	next, err := Apply(pg, mv)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	nb, _ := next.Board(0, 1)
	if nb.Get(3, 4).IsPiece() {
		t.Fatal("expected the passed black pawn to be captured")
	}
	if !nb.Get(3, 5).IsPieceOfColor(true) {
		t.Fatal("expected the white pawn to land on the en passant target square")
	}
}

func TestApplyBranchingMoveMintsNewTimeline(t *testing.T) {
	g := game.New(8, 8, false, true)
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(g.InsertBoard(board.New(0, 0, 8, 8)))
	must(g.InsertBoard(board.New(0, 1, 8, 8)))
	src := board.New(1, 0, 8, 8)
	src.Set(0, 0, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	must(g.InsertBoard(src))

	pg := game.NoPartialGame(g)
	mv := Move{From: coords.New(1, 0, 0, 0), To: coords.New(0, 0, 0, 0), Kind: movegen.Quiet}

	next, err := Apply(pg, mv)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	ti, ok := next.Info().TimelineInfo(2)
	if !ok {
		t.Fatal("expected a new timeline (index 2) to be minted")
	}
	if ti.EmergesFrom == nil || ti.EmergesFrom.L != 0 || ti.EmergesFrom.T != 0 {
		t.Fatalf("expected the new timeline to record where it branched from, got %+v", ti.EmergesFrom)
	}
	destBoard, ok := next.Board(2, 1)
	if !ok {
		t.Fatal("expected a destination board on the new timeline")
	}
	if !destBoard.Get(0, 0).IsPieceOfColor(true) {
		t.Fatal("expected the rook to have landed on the new timeline's board")
	}
	srcNext, ok := next.Board(1, 1)
	if !ok {
		t.Fatal("expected a successor board on the source timeline")
	}
	if srcNext.Get(0, 0).IsPiece() {
		t.Fatal("expected the source square to be vacated")
	}
}

func TestGenerateSuccessorAdvancesPresent(t *testing.T) {
	g, b := newSingleBoardGame(true)
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	pg := game.NoPartialGame(g)
	before := pg.Info().Present

	ms := Moveset{{From: coords.New(0, 0, 3, 3), To: coords.New(0, 0, 3, 6), Kind: movegen.Quiet}}
	next, err := GenerateSuccessor(pg, ms)
	if err != nil {
		t.Fatalf("GenerateSuccessor failed: %v", err)
	}
	if next.Info().Present <= before {
		t.Fatalf("expected present to advance, before=%d after=%d", before, next.Info().Present)
	}
	if next.Info().ActivePlayer == pg.Info().ActivePlayer {
		t.Fatal("expected active player to flip once present advances")
	}
}
