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

// Package search implements the best-leaf IDDFS scheduler: a pool of
// frontier nodes is repeatedly expanded in parallel, best children are
// kept and inserted back into the pool, and minimax scores are
// back-propagated toward the root until a deadline elapses or the pool
// stabilizes.
package search

import "time"

// Options configures a single IddfsBlSchedule run. Picked over the
// source's positional-argument form, kept as IddfsBlScheduleArgs (see DESIGN.md's
// Open Question resolution) for the same reason the teacher favors
// struct-based config over long parameter lists elsewhere
// (config.searchConfiguration): it is easier to extend without breaking
// every call site.
type Options struct {
	// NThreads bounds how many nodes are expanded concurrently.
	NThreads int
	// PoolSize is how many of the pool's best nodes are popped for
	// expansion on each iteration.
	PoolSize int
	// MaxPoolSize bounds the frontier pool's total capacity.
	MaxPoolSize int
	// MaxBranches bounds how many of a node's children are kept.
	MaxBranches int
	// MaxDuration is the wall-clock budget for the whole schedule. Zero
	// means "run until the pool stabilizes", with no time limit.
	MaxDuration time.Duration
	// Approx permits keeping the first MaxBranches children encountered
	// instead of exhaustively scoring and ranking every legal moveset.
	Approx bool
}

// DefaultOptions returns a conservative, single-process-friendly
// Options value.
func DefaultOptions() Options {
	return Options{
		NThreads:    4,
		PoolSize:    8,
		MaxPoolSize: 256,
		MaxBranches: 8,
		MaxDuration: 5 * time.Second,
	}
}
