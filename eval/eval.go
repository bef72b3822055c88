/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package eval scores a position. The teacher ties evaluation to a single
// Evaluator struct with fixed material/positional terms
// (evaluator/evaluator.go); here Evaluator is a pluggable interface so the
// stock heuristics below can be combined, weighted, and swapped by a
// caller the way the teacher's config toggles (UseMobility, UseKingEval,
// ...) select terms, without a god struct carrying every flag.
package eval

import "github.com/avli/ply5d/game"

// Evaluator scores a position from white's perspective: positive favors
// white, negative favors black. g is the underlying multiverse registry
// (for timeline bookkeeping); pg is the PartialGame overlay actually
// being scored.
type Evaluator interface {
	Evaluate(g *game.Game, pg *game.PartialGame) float32
}

// Sum composes evaluators by addition, mirroring spec's "evaluators
// compose by addition" rule and the teacher's Evaluate method summing
// material() + positional() terms.
type Sum []Evaluator

// Evaluate returns the sum of every member evaluator's score.
func (s Sum) Evaluate(g *game.Game, pg *game.PartialGame) float32 {
	var total float32
	for _, e := range s {
		total += e.Evaluate(g, pg)
	}
	return total
}
