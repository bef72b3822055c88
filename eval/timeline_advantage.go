package eval

import (
	"github.com/avli/ply5d/coords"
	"github.com/avli/ply5d/game"
)

// TimelineAdvantage rewards having more active timelines than the
// opponent — spec-only, no teacher analog, grounded directly on
// game.GameInfo's active-timeline accounting (IsActive/TimelinesWhite/
// TimelinesBlack).
type TimelineAdvantage struct {
	PerExtraTimeline float32
}

// NewTimelineAdvantage returns a TimelineAdvantage weighted at 10
// centipawns per extra active timeline, the same order of magnitude as
// the teacher's other per-unit bonuses (evalconfig.go's *Bonus fields).
func NewTimelineAdvantage() TimelineAdvantage {
	return TimelineAdvantage{PerExtraTimeline: 10}
}

// Evaluate returns PerExtraTimeline times (white's active timeline count
// minus black's).
func (ta TimelineAdvantage) Evaluate(g *game.Game, pg *game.PartialGame) float32 {
	info := pg.Info()
	var white, black int
	for i := range info.TimelinesWhite {
		if info.IsActive(coords.L(i)) {
			white++
		}
	}
	for i := range info.TimelinesBlack {
		if info.IsActive(-coords.L(i + 1)) {
			black++
		}
	}
	return ta.PerExtraTimeline * float32(white-black)
}
