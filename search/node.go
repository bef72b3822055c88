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

package search

import (
	"github.com/avli/ply5d/game"
	"github.com/avli/ply5d/moveset"
)

// Node is one point in the search tree: the PartialGame reached by
// playing Path from the root, its evaluator score, and the expansion
// that produced it (if any).
type Node struct {
	Path     []moveset.Moveset
	PG       *game.PartialGame
	Score    float32
	Mover    bool // true = white to move at this node
	Parent   *Node
	Children []*Node
	expanded bool
}

// orientedScore returns Score from the perspective of whoever moves at
// this node: unchanged for white, negated for black. Two nodes
// belonging to different movers compare meaningfully on this scale,
// which is how the pool ranks frontier nodes regardless of whose turn
// it is (the negamax convention spec.md §4.7 calls for, applied to
// ranking as well as back-propagation).
func (n *Node) orientedScore() float32 {
	if n.Mover {
		return n.Score
	}
	return -n.Score
}

// backpropagate recomputes Score from Children (minimax: white mover
// picks the highest child Score, black the lowest) and walks the
// recomputation up through every ancestor, stopping early once a
// parent's Score doesn't change.
func (n *Node) backpropagate() {
	for cur := n; cur != nil; cur = cur.Parent {
		if len(cur.Children) == 0 {
			continue
		}
		best := cur.Children[0].Score
		for _, c := range cur.Children[1:] {
			if cur.Mover {
				if c.Score > best {
					best = c.Score
				}
			} else if c.Score < best {
				best = c.Score
			}
		}
		if best == cur.Score && cur != n {
			return
		}
		cur.Score = best
	}
}

// bestChild returns the child with the best orientedScore as measured
// from n's own perspective (n.Mover), or nil if n has no children.
func (n *Node) bestChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	best := n.Children[0]
	for _, c := range n.Children[1:] {
		if n.Mover {
			if c.Score > best.Score {
				best = c
			}
		} else if c.Score < best.Score {
			best = c
		}
	}
	return best
}
