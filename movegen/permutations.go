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

package movegen

import "github.com/avli/ply5d/coords"

// direction is a generator tuple in (L, T, X, Y) axis order, matching
// coords.Coords.Scale's own axis convention.
type direction [4]int

// distinctPermutations returns every distinct arrangement of vals across
// the 4 axis positions. Unlike a plain factorial permutation, repeated
// values (e.g. the three zeros in (2,1,0,0)) are only emitted once.
func distinctPermutations(vals [4]int) []direction {
	used := [4]bool{}
	var cur direction
	seen := map[direction]bool{}
	var out []direction
	var rec func(pos int)
	rec = func(pos int) {
		if pos == 4 {
			if !seen[cur] {
				seen[cur] = true
				cp := cur
				out = append(out, cp)
			}
			return
		}
		for i := 0; i < 4; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			cur[pos] = vals[i]
			rec(pos + 1)
			used[i] = false
		}
	}
	rec(0)
	return out
}

// expandSigns multiplies out every sign combination on the non-zero axes
// of each raw generator, the same combinatorial step the original
// lazy_static! PERMUTATIONS table performs once at load time.
func expandSigns(raws []direction) []direction {
	var out []direction
	for _, r := range raws {
		var nonzero []int
		for i, v := range r {
			if v != 0 {
				nonzero = append(nonzero, i)
			}
		}
		n := len(nonzero)
		for mask := 0; mask < (1 << n); mask++ {
			cp := r
			for bit, idx := range nonzero {
				if mask&(1<<bit) != 0 {
					cp[idx] = -cp[idx]
				}
			}
			out = append(out, cp)
		}
	}
	return out
}

func concat(groups ...[]direction) []direction {
	var out []direction
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Raw generator multisets, one per spec.md §4.3's table. Exposed (as
// lengths) via RawGeneratorCount for the permutation-cardinality
// property test; the package itself only ever consumes the expanded,
// sign-multiplied direction sets below.
var (
	knightRaw   = distinctPermutations([4]int{2, 1, 0, 0})
	rookRaw     = distinctPermutations([4]int{1, 0, 0, 0})
	bishopRaw   = distinctPermutations([4]int{1, 1, 0, 0})
	unicornRaw  = distinctPermutations([4]int{1, 1, 1, 0})
	dragonRaw   = distinctPermutations([4]int{1, 1, 1, 1})
)

// Built once at package load, never mutated afterward — the Go analogue
// of the source's lazy_static! PERMUTATIONS table and this corpus's own
// package-level precomputed attack tables (internal/types/magic.go).
var (
	knightDirs   = expandSigns(knightRaw)
	rookDirs     = expandSigns(rookRaw)
	bishopDirs   = expandSigns(bishopRaw)
	unicornDirs  = expandSigns(unicornRaw)
	dragonDirs   = expandSigns(dragonRaw)
	princessDirs = concat(rookDirs, bishopDirs)
	queenDirs    = concat(rookDirs, bishopDirs, unicornDirs, dragonDirs)
)

// RawGeneratorCount returns the number of distinct (pre-sign-expansion)
// generator tuples for the five base ranging/one-step kinds, i.e. the
// "cardinality count" of spec.md §8's property test. Kinds without their
// own raw generator set (Queen, King, Princess, ...) return 0.
func RawGeneratorCount(kind coords.PieceKind) int {
	switch kind {
	case coords.Knight:
		return len(knightRaw)
	case coords.Rook:
		return len(rookRaw)
	case coords.Bishop:
		return len(bishopRaw)
	case coords.Unicorn:
		return len(unicornRaw)
	case coords.Dragon:
		return len(dragonRaw)
	default:
		return 0
	}
}
