/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
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

package config

// evalConfiguration toggles and weights the stock Evaluators that
// eval.FromConfig composes into a Sum: each Use* flag decides whether a
// term is included at all, the same role the teacher's UseMobility/
// UseKingEval/UseAdvancedPieceEval toggles play for its own Evaluate
// method's terms.
type evalConfiguration struct {
	UsePieceValues     bool
	InactiveMultiplier float64

	UseKingSafety      bool
	EmptyAdjacentMalus float64
	EnemyAdjacentMalus float64
	ExtraRoyalMalus    float64

	UsePawnProgression bool
	PerRank            float64
	PerTimeStep        float64

	UseTimelineAdvantage bool
	PerExtraTimeline     float64
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Eval.UsePieceValues = true
	Settings.Eval.InactiveMultiplier = 0.5

	Settings.Eval.UseKingSafety = true
	Settings.Eval.EmptyAdjacentMalus = 1
	Settings.Eval.EnemyAdjacentMalus = 3
	Settings.Eval.ExtraRoyalMalus = 15

	Settings.Eval.UsePawnProgression = true
	Settings.Eval.PerRank = 2
	Settings.Eval.PerTimeStep = 1

	Settings.Eval.UseTimelineAdvantage = true
	Settings.Eval.PerExtraTimeline = 10
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupEval() {

}
