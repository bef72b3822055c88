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
	"fmt"
	"sort"
	"sync"
)

// PoolStats mirrors transpositiontable.TtStats' shape (put/hit/miss/
// eviction counters), adapted to a bounded frontier rather than a hash
// table: there is no "collision" concept here, but puts, evictions, and
// rejections (a full pool whose worst entry still beats the newcomer)
// are the same kind of bookkeeping.
type PoolStats struct {
	Puts      uint64
	Evictions uint64
	Rejected  uint64
}

// Pool is a fixed-capacity collection of frontier Nodes, structurally
// adapted from transpositiontable.TtTable (internal/transpositiontable/
// tt.go): same shape (fixed backing capacity, a Stats counter block, a
// String() report) but keyed by best-orientedScore eviction instead of
// hash-slot replacement-by-depth, since spec.md calls for a size-bounded
// frontier of nodes, not a transposition cache (see DESIGN.md's Non-goal
// note). Unlike TtTable, Pool guards its own state with the mutex below,
// so its methods may be called from several goroutines; IddfsBlSchedule
// itself calls Put and PopBest only from its scheduling goroutine, after
// an iteration's expansion workers have finished.
type Pool struct {
	mu       sync.Mutex
	nodes    []*Node
	capacity int
	Stats    PoolStats
}

// NewPool creates an empty Pool with room for capacity nodes.
func NewPool(capacity int) *Pool {
	return &Pool{nodes: make([]*Node, 0, capacity), capacity: capacity}
}

// Put inserts n into the pool. If the pool is full, n is kept only if
// its orientedScore beats the pool's current worst entry, which is then
// evicted; otherwise n is rejected.
func (p *Pool) Put(n *Node) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Stats.Puts++
	if len(p.nodes) < p.capacity {
		p.nodes = append(p.nodes, n)
		return
	}
	worstIdx := 0
	worst := p.nodes[0].orientedScore()
	for i, existing := range p.nodes[1:] {
		if s := existing.orientedScore(); s < worst {
			worst = s
			worstIdx = i + 1
		}
	}
	if n.orientedScore() <= worst {
		p.Stats.Rejected++
		return
	}
	p.Stats.Evictions++
	p.nodes[worstIdx] = n
}

// PopBest removes and returns up to k of the pool's best-scoring nodes
// (by orientedScore, descending).
func (p *Pool) PopBest(k int) []*Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	sort.Slice(p.nodes, func(i, j int) bool {
		return p.nodes[i].orientedScore() > p.nodes[j].orientedScore()
	})
	if k > len(p.nodes) {
		k = len(p.nodes)
	}
	out := append([]*Node(nil), p.nodes[:k]...)
	p.nodes = p.nodes[k:]
	return out
}

// Len returns the number of nodes currently held.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.nodes)
}

// String reports the pool's fill level and put/eviction/rejection
// counts, the same kind of summary TtTable.String() prints.
func (p *Pool) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("Pool: size %d/%d puts %d evictions %d rejected %d",
		len(p.nodes), p.capacity, p.Stats.Puts, p.Stats.Evictions, p.Stats.Rejected)
}
