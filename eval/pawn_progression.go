package eval

import (
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
)

// PawnProgression rewards pawns and brawns for how far they have
// advanced — grounded on the teacher's PSQT pawn-advancement idea
// (evaluator/pawns.go scores pawns more highly the closer they get to
// promotion) generalized to this variant's extra forward axis: a pawn
// earns PerRank for every physical rank advanced and PerTimeStep for
// every half-move its timeline has lived through, since moving forward
// in T is "forward" for a pawn exactly as moving forward in Y is.
type PawnProgression struct {
	PerRank     float32
	PerTimeStep float32
}

// NewPawnProgression returns a PawnProgression weighted at 2 centipawns
// per rank and 1 per elapsed half-move, a conservative fraction of the
// teacher's MobilityBonus-scale per-square bonuses.
func NewPawnProgression() PawnProgression {
	return PawnProgression{PerRank: 2, PerTimeStep: 1}
}

func (pp PawnProgression) rankScore(height int, white bool, y coords.Physical) float32 {
	if white {
		return float32(y)
	}
	return float32(height-1) - float32(y)
}

// Evaluate returns white's progression score minus black's.
func (pp PawnProgression) Evaluate(g *game.Game, pg *game.PartialGame) float32 {
	info := pg.Info()
	var total float32
	for _, tb := range tipBoards(pg) {
		height := tb.Board.Height()
		ti, _ := info.TimelineInfo(tb.L)
		for _, piece := range tb.Board.Pieces() {
			if !piece.Piece.Kind.IsPawnlike() {
				continue
			}
			rank := pp.rankScore(height, piece.Piece.White, piece.Coords.Y)
			elapsed := float32(piece.Coords.T - ti.FirstBoard)
			score := pp.PerRank*rank + pp.PerTimeStep*elapsed
			if piece.Piece.White {
				total += score
			} else {
				total -= score
			}
		}
	}
	return total
}
