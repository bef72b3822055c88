package eval

import "github.com/avli/ply5d/game"

// Deepen is a recursive mini-search evaluator: it expands a node a
// bounded number of plies and minimaxes Leaf's scores back up, rather
// than scoring the position directly. Grounded on the teacher's own
// iterative-deepening recursion shape (search's depth-bounded
// expand-then-backpropagate loop), reduced to a plain ply-bounded
// recursion here since the wall-clock deadline budget belongs to the
// top-level search, not to a leaf evaluator it calls into many times
// per node.
//
// Expand is injected rather than imported from package search: search
// depends on eval for the Evaluator interface, so eval importing search
// back would cycle. Package search does not construct a Deepen itself;
// whoever builds one supplies Expand.
type Deepen struct {
	Leaf     Evaluator
	Expand   func(g *game.Game, pg *game.PartialGame) []*game.PartialGame
	Depth    int
	NoneMult float32
}

// Evaluate returns Leaf's score at the position Depth plies down the
// principal variation, minimaxed across intervening plies (white
// maximizes, black minimizes, matching the "positive favors white"
// convention every Evaluator shares). A node with no legal replies at
// all is scored directly by Leaf, scaled by NoneMult (0 defaults to 1),
// per spec's "none_mult scales plies that produced no legal reply".
func (d Deepen) Evaluate(g *game.Game, pg *game.PartialGame) float32 {
	if d.Depth <= 0 || d.Expand == nil {
		return d.Leaf.Evaluate(g, pg)
	}
	children := d.Expand(g, pg)
	if len(children) == 0 {
		mult := d.NoneMult
		if mult == 0 {
			mult = 1
		}
		return d.Leaf.Evaluate(g, pg) * mult
	}

	next := Deepen{Leaf: d.Leaf, Expand: d.Expand, Depth: d.Depth - 1, NoneMult: d.NoneMult}
	whiteToMove := pg.Info().ActivePlayer
	best := next.Evaluate(g, children[0])
	for _, child := range children[1:] {
		v := next.Evaluate(g, child)
		if whiteToMove {
			if v > best {
				best = v
			}
		} else if v < best {
			best = v
		}
	}
	return best
}
