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

package board

import stdbits "math/bits"

// bits is a width-parameterized bitboard: the teacher's internal bitboard
// type is a single fixed uint64 for an 8x8 board; this generalizes it to
// ceil(w*h/64) words so imported boards of arbitrary size still get
// constant-word occupancy tests.
type bits []uint64

func newBits(n int) bits {
	return make(bits, (n+63)/64)
}

func (b bits) test(i int) bool {
	return b[i/64]&(uint64(1)<<(uint(i)%64)) != 0
}

func (b bits) set(i int) {
	b[i/64] |= uint64(1) << (uint(i) % 64)
}

func (b bits) clear(i int) {
	b[i/64] &^= uint64(1) << (uint(i) % 64)
}

func (b bits) any() bool {
	for _, w := range b {
		if w != 0 {
			return true
		}
	}
	return false
}

func (b bits) popCount() int {
	n := 0
	for _, w := range b {
		n += stdbits.OnesCount64(w)
	}
	return n
}

func (b bits) clone() bits {
	c := make(bits, len(b))
	copy(c, b)
	return c
}
