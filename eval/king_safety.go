package eval

import (
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
	"github.com/avli/ply5d/movegen"
)

// KingSafety penalizes exposed royal pieces: EmptyAdjacentMalus per
// empty square and EnemyAdjacentMalus per enemy-occupied square along
// the orthogonal/diagonal/knight lines around each royal, plus
// ExtraRoyalMalus for every royal a side has beyond its first (more
// royal squares to keep safe, per spec's "additional penalty per extra
// royal beyond one"). Exposure is measured by re-using movegen as if the
// royal were a King (for the orthogonal/diagonal lines) and a Knight
// (for the knight lines) standing on its square — the generated Quiet
// moves are the empty-adjacent squares, the Capture moves the
// enemy-adjacent ones. Grounded on the teacher's king-safety/mobility
// evaluation shape (evalconfig.go's KingDangerMalus/KingDefenderBonus),
// generalized across the 4 axes.
type KingSafety struct {
	EmptyAdjacentMalus float32
	EnemyAdjacentMalus float32
	ExtraRoyalMalus    float32
}

// NewKingSafety returns a KingSafety with the stock teacher-scaled
// weights (KingDangerMalus/KingDefenderBonus order of magnitude).
func NewKingSafety() KingSafety {
	return KingSafety{EmptyAdjacentMalus: 1, EnemyAdjacentMalus: 3, ExtraRoyalMalus: 15}
}

func (k KingSafety) exposure(pg *game.PartialGame, at coords.Coords, white bool) float32 {
	king := movegen.PiecePosition{Piece: coords.NewPiece(coords.King, white, true), Coords: at}
	knight := movegen.PiecePosition{Piece: coords.NewPiece(coords.Knight, white, true), Coords: at}
	var malus float32
	for _, mv := range movegen.GenerateMoves(pg, king) {
		if mv.Kind == movegen.Capture {
			malus += k.EnemyAdjacentMalus
		} else {
			malus += k.EmptyAdjacentMalus
		}
	}
	for _, mv := range movegen.GenerateMoves(pg, knight) {
		if mv.Kind == movegen.Capture {
			malus += k.EnemyAdjacentMalus
		} else {
			malus += k.EmptyAdjacentMalus
		}
	}
	return malus
}

// Evaluate returns white's exposure penalty subtracted from black's,
// i.e. positive when black's royals are more exposed than white's.
func (k KingSafety) Evaluate(g *game.Game, pg *game.PartialGame) float32 {
	var whiteMalus, blackMalus float32
	var whiteRoyals, blackRoyals int
	for _, tb := range tipBoards(pg) {
		for _, pp := range tb.Board.Pieces() {
			if !pp.Piece.Kind.IsRoyal() {
				continue
			}
			if pp.Piece.White {
				whiteRoyals++
				whiteMalus += k.exposure(pg, pp.Coords, true)
			} else {
				blackRoyals++
				blackMalus += k.exposure(pg, pp.Coords, false)
			}
		}
	}
	if whiteRoyals > 1 {
		whiteMalus += float32(whiteRoyals-1) * k.ExtraRoyalMalus
	}
	if blackRoyals > 1 {
		blackMalus += float32(blackRoyals-1) * k.ExtraRoyalMalus
	}
	return blackMalus - whiteMalus
}
