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

import "time"

// ElapsedFilter is a Go iterator-shaped adapter grounded on
// original_source/lib/prelude/time.rs's TimedFilter: it measures elapsed
// wall-clock time since the first call to Next and stops yielding once
// that exceeds Duration, regardless of how long Condition itself takes.
type ElapsedFilter[T any] struct {
	next      func() (T, bool)
	condition func(T) bool
	duration  time.Duration
	start     time.Time
	started   bool
}

// NewElapsedFilter wraps next with a deadline: Next keeps pulling from
// next and testing condition until either next is exhausted, duration
// has elapsed since the first Next call, or condition accepts an item.
func NewElapsedFilter[T any](next func() (T, bool), condition func(T) bool, duration time.Duration) *ElapsedFilter[T] {
	return &ElapsedFilter[T]{next: next, condition: condition, duration: duration}
}

// Next returns the next item accepted by condition, or false once the
// deadline has elapsed or next is exhausted.
func (f *ElapsedFilter[T]) Next() (T, bool) {
	if !f.started {
		f.start = time.Now()
		f.started = true
	}
	for {
		var zero T
		if time.Since(f.start) > f.duration {
			return zero, false
		}
		item, ok := f.next()
		if !ok {
			return zero, false
		}
		if f.condition(item) {
			return item, true
		}
	}
}

// SigmaFilter is a Go iterator-shaped adapter grounded on
// original_source/lib/prelude/time.rs's SigmaFilter: it measures only
// the cumulative time spent inside Condition across all calls, ignoring
// how much real time passes between them.
type SigmaFilter[T any] struct {
	next      func() (T, bool)
	condition func(T) bool
	duration  time.Duration
	sigma     time.Duration
}

// NewSigmaFilter wraps next with a CPU-time budget spent evaluating
// condition.
func NewSigmaFilter[T any](next func() (T, bool), condition func(T) bool, duration time.Duration) *SigmaFilter[T] {
	return &SigmaFilter[T]{next: next, condition: condition, duration: duration}
}

// Next returns the next item accepted by condition, or false once the
// accumulated condition time has exceeded the budget or next is
// exhausted.
func (f *SigmaFilter[T]) Next() (T, bool) {
	for {
		var zero T
		if f.sigma > f.duration {
			return zero, false
		}
		item, ok := f.next()
		if !ok {
			return zero, false
		}
		start := time.Now()
		accepted := f.condition(item)
		f.sigma += time.Since(start)
		if accepted {
			return item, true
		}
	}
}
