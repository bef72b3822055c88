package eval

import (
	"testing"

	"github.com/avli/ply5d/board"
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
)

func singleBoardGame() (*game.Game, *board.Board) {
	g := game.New(8, 8, false, true)
	b := board.New(0, 0, 8, 8)
	if err := g.InsertBoard(b); err != nil {
		panic(err)
	}
	return g, b
}

func TestPieceValuesFavorsMaterialAdvantage(t *testing.T) {
	g, b := singleBoardGame()
	b.Set(0, 0, coords.PieceTile(coords.NewPiece(coords.Queen, true, false)))
	b.Set(7, 7, coords.PieceTile(coords.NewPiece(coords.Rook, false, false)))
	pg := game.NoPartialGame(g)

	score := NewPieceValues().Evaluate(g, pg)
	if score <= 0 {
		t.Fatalf("expected a white queen vs. black rook to favor white, got %v", score)
	}
}

func TestPieceValuesDiscountsInactiveTimelines(t *testing.T) {
	g := game.New(8, 8, false, true)
	b0 := board.New(0, 0, 8, 8)
	b0.Set(0, 0, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	if err := g.InsertBoard(b0); err != nil {
		t.Fatal(err)
	}
	pg := game.NoPartialGame(g)
	pv := PieceValues{Weights: DefaultPieceWeights, InactiveMultiplier: 0.5}
	full := pv.Evaluate(g, pg)
	if full != DefaultPieceWeights[coords.Rook] {
		t.Fatalf("expected the active lone timeline to score at full weight, got %v", full)
	}

	// With white timelines 0, 1 and 2 and no black branch the active
	// radius is 1, so timeline 2 is inactive and its rook counts at half
	// weight.
	if err := g.InsertBoard(board.New(1, 0, 8, 8)); err != nil {
		t.Fatal(err)
	}
	b2 := board.New(2, 0, 8, 8)
	b2.Set(0, 0, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	if err := g.InsertBoard(b2); err != nil {
		t.Fatal(err)
	}
	discounted := pv.Evaluate(g, game.NoPartialGame(g))
	if want := DefaultPieceWeights[coords.Rook] * 1.5; discounted != want {
		t.Fatalf("expected the inactive timeline's rook at half weight, got %v want %v", discounted, want)
	}
}

func TestSumAddsComponentScores(t *testing.T) {
	g, b := singleBoardGame()
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Pawn, true, true)))
	pg := game.NoPartialGame(g)

	sum := Sum{NewPieceValues(), NewPawnProgression()}
	want := NewPieceValues().Evaluate(g, pg) + NewPawnProgression().Evaluate(g, pg)
	got := sum.Evaluate(g, pg)
	if got != want {
		t.Fatalf("expected Sum to add its components, got %v want %v", got, want)
	}
}

func TestKingSafetySymmetricPositionsCancelOut(t *testing.T) {
	g, b := singleBoardGame()
	// (1,1) and (6,6) are point-symmetric about the board's center, so
	// each king sees the same number of in-bounds empty neighbors.
	b.Set(1, 1, coords.PieceTile(coords.NewPiece(coords.King, true, false)))
	b.Set(6, 6, coords.PieceTile(coords.NewPiece(coords.King, false, false)))
	pg := game.NoPartialGame(g)

	score := NewKingSafety().Evaluate(g, pg)
	if score != 0 {
		t.Fatalf("expected two symmetrically exposed lone kings to cancel out, got %v", score)
	}
}

func TestKingSafetyPenalizesMoreExposedKing(t *testing.T) {
	g, b := singleBoardGame()
	// (4,4) is central (more empty neighbors); (0,0) is cornered (fewer).
	b.Set(4, 4, coords.PieceTile(coords.NewPiece(coords.King, true, false)))
	b.Set(0, 0, coords.PieceTile(coords.NewPiece(coords.King, false, false)))
	pg := game.NoPartialGame(g)

	score := NewKingSafety().Evaluate(g, pg)
	if score >= 0 {
		t.Fatalf("expected white's more centrally exposed king to score negatively for white, got %v", score)
	}
}

func TestTimelineAdvantageRewardsMoreActiveTimelines(t *testing.T) {
	g := game.New(8, 8, false, true)
	if err := g.InsertBoard(board.New(0, 0, 8, 8)); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertBoard(board.New(1, 0, 8, 8)); err != nil {
		t.Fatal(err)
	}
	pg := game.NoPartialGame(g)
	ta := NewTimelineAdvantage()
	if score := ta.Evaluate(g, pg); score <= 0 {
		t.Fatalf("expected white's extra timeline to score positively, got %v", score)
	}
}

func TestPawnProgressionRewardsAdvancedPawn(t *testing.T) {
	g, b := singleBoardGame()
	b.Set(0, 1, coords.PieceTile(coords.NewPiece(coords.Pawn, true, true)))
	pg1 := game.NoPartialGame(g)
	back := NewPawnProgression().Evaluate(g, pg1)

	g2, b2 := singleBoardGame()
	b2.Set(0, 6, coords.PieceTile(coords.NewPiece(coords.Pawn, true, true)))
	pg2 := game.NoPartialGame(g2)
	advanced := NewPawnProgression().Evaluate(g2, pg2)

	if advanced <= back {
		t.Fatalf("expected a more advanced pawn to score higher: advanced=%v back=%v", advanced, back)
	}
}

func TestDeepenFallsBackToLeafAtZeroDepth(t *testing.T) {
	g, b := singleBoardGame()
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	pg := game.NoPartialGame(g)

	leaf := NewPieceValues()
	d := Deepen{Leaf: leaf, Depth: 0}
	if got, want := d.Evaluate(g, pg), leaf.Evaluate(g, pg); got != want {
		t.Fatalf("expected Depth=0 to fall back to the leaf evaluator, got %v want %v", got, want)
	}
}

func TestDeepenPicksBestChildForMover(t *testing.T) {
	g, b := singleBoardGame()
	b.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Rook, true, false)))
	pg := game.NoPartialGame(g)

	leaf := NewPieceValues()
	good := game.NoPartialGame(g) // stands in for a child where white gains material
	bad, badBoard := singleBoardGame()
	badBoard.Set(3, 3, coords.PieceTile(coords.NewPiece(coords.Pawn, true, false)))
	badPg := game.NoPartialGame(bad)

	d := Deepen{
		Leaf:  leaf,
		Depth: 1,
		Expand: func(g *game.Game, pg *game.PartialGame) []*game.PartialGame {
			return []*game.PartialGame{badPg, good}
		},
	}
	got := d.Evaluate(g, pg)
	want := leaf.Evaluate(g, good)
	if got != want {
		t.Fatalf("expected Deepen to pick the higher-scoring child for white to move, got %v want %v", got, want)
	}
}
