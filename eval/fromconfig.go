package eval

import "github.com/avli/ply5d/config"

// FromConfig builds a Sum from config.Settings.Eval's toggles and
// weights, the way the teacher's own Evaluate method selects and scales
// its terms from config.Settings.Eval's Use*/bonus fields. Call
// config.Setup before this so the config file (if any) has already
// overridden the compiled-in defaults.
func FromConfig() Sum {
	e := config.Settings.Eval
	var sum Sum
	if e.UsePieceValues {
		sum = append(sum, PieceValues{
			Weights:            DefaultPieceWeights,
			InactiveMultiplier: float32(e.InactiveMultiplier),
		})
	}
	if e.UseKingSafety {
		sum = append(sum, KingSafety{
			EmptyAdjacentMalus: float32(e.EmptyAdjacentMalus),
			EnemyAdjacentMalus: float32(e.EnemyAdjacentMalus),
			ExtraRoyalMalus:    float32(e.ExtraRoyalMalus),
		})
	}
	if e.UsePawnProgression {
		sum = append(sum, PawnProgression{
			PerRank:     float32(e.PerRank),
			PerTimeStep: float32(e.PerTimeStep),
		})
	}
	if e.UseTimelineAdvantage {
		sum = append(sum, TimelineAdvantage{PerExtraTimeline: float32(e.PerExtraTimeline)})
	}
	return sum
}
