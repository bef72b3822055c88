package eval

import (
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
)

// DefaultPieceWeights are the stock per-kind material values, scaled from
// conventional chess piece values and extended to this variant's extra
// kinds by rough mobility (a Unicorn/Dragon move across an extra axis
// pair the same way a Bishop moves across X/Y).
var DefaultPieceWeights = map[coords.PieceKind]float32{
	coords.Pawn:       1,
	coords.Brawn:      1,
	coords.Knight:     3,
	coords.Bishop:     3,
	coords.Rook:       5,
	coords.Unicorn:    5,
	coords.Dragon:     7,
	coords.Queen:      9,
	coords.Princess:   6,
	coords.King:       0,
	coords.CommonKing: 0,
	coords.RoyalQueen: 0,
}

// PieceValues is a weighted material count, grounded on the teacher's
// position.Material(White)-position.Material(Black) term
// (evaluator/evaluator.go's material method) generalized across every
// timeline's tip board. InactiveMultiplier scales the contribution of
// boards outside the active window (spec.md §4.6), the same way the
// teacher's gamePhaseFactor scales positional terms by game phase.
type PieceValues struct {
	Weights            map[coords.PieceKind]float32
	InactiveMultiplier float32
}

// NewPieceValues returns a PieceValues using DefaultPieceWeights and an
// InactiveMultiplier of 0.5.
func NewPieceValues() PieceValues {
	return PieceValues{Weights: DefaultPieceWeights, InactiveMultiplier: 0.5}
}

// Evaluate returns the white-minus-black weighted material sum.
func (p PieceValues) Evaluate(g *game.Game, pg *game.PartialGame) float32 {
	weights := p.Weights
	if weights == nil {
		weights = DefaultPieceWeights
	}
	var total float32
	for _, tb := range tipBoards(pg) {
		scale := float32(1)
		if !tb.Active {
			scale = p.InactiveMultiplier
		}
		for _, pp := range tb.Board.Pieces() {
			w := weights[pp.Piece.Kind] * scale
			if pp.Piece.White {
				total += w
			} else {
				total -= w
			}
		}
	}
	return total
}
