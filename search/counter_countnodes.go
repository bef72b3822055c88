// +build countnodes

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

import "sync/atomic"

// nodeCounter counts Nodes created during a search, for diagnosing how
// pruning/expansion settings affect tree size (built only with -tags
// countnodes, since the atomic add costs real time on every node
// otherwise).
type nodeCounter struct {
	n uint64
}

func (c *nodeCounter) add(delta uint64) {
	atomic.AddUint64(&c.n, delta)
}

// Count returns the number of Nodes created since the process started
// (or since the last Reset).
func (c *nodeCounter) Count() uint64 {
	return atomic.LoadUint64(&c.n)
}

// Reset zeroes the counter.
func (c *nodeCounter) Reset() {
	atomic.StoreUint64(&c.n, 0)
}

// CountNodes returns the number of search Nodes created since startup
// or the last reset. Only meaningful in a -tags countnodes build.
func CountNodes() uint64 { return countNodes.Count() }

// ResetNodeCount zeroes the global node counter.
func ResetNodeCount() { countNodes.Reset() }
