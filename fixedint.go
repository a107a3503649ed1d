// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"math/big"
	"math/bits"
)

const wordBytes = bits.UintSize / 8

// fixedIntSize returns the number of words needed to hold numBits bits.
func fixedIntSize(numBits int) int {
	numBytes := (numBits + 7) >> 3
	return (numBytes + wordBytes - 1) / wordBytes
}

// fixedInt is a non-negative integer of fixed width, least significant word
// first. The arithmetic, comparison and selection methods run in time that
// only depends on the width, never on the values. Operands must have the
// same width, mixing widths panics.
type fixedInt []uint

func (z fixedInt) mustMatch(x ...fixedInt) {
	for _, v := range x {
		if len(v) != len(z) {
			panic("size mismatch")
		}
	}
}

// add sets z = x + y and returns the carry.
func (z fixedInt) add(x, y fixedInt) uint {
	z.mustMatch(x, y)
	var c uint
	for i := range x {
		z[i], c = addW(x[i], y[i], c)
	}
	return c
}

// sub sets z = x - y and returns the borrow.
func (z fixedInt) sub(x, y fixedInt) uint {
	z.mustMatch(x, y)
	var c uint
	for i := range x {
		z[i], c = subW(x[i], y[i], c)
	}
	return c
}

// addMod sets z = x + y mod n, with x, y < n.
func (z fixedInt) addMod(x, y, n fixedInt) {
	z.mustMatch(x, y, n)
	tmp := make(fixedInt, len(x))
	c1 := z.add(x, y)
	c2 := tmp.sub(z, n)
	if c1&^c2 == 1 {
		panic("can not happen")
	}
	// keep the unreduced sum only if it did not overflow and subtracting n
	// borrowed
	z.choose(c1^c2, z, tmp)
}

// choose sets z to x if v is 1 and to y if v is 0.
func (z fixedInt) choose(v uint, x, y fixedInt) {
	z.mustMatch(x, y)
	for i := range x {
		z[i] = selectW(v, x[i], y[i])
	}
}

// less returns 1 if z < y and 0 otherwise.
func (z fixedInt) less(y fixedInt) uint {
	z.mustMatch(y)
	undecided := uint(1)
	isLess := uint(0)
	for i := len(z) - 1; i >= 0; i-- {
		less1 := lessW(z[i], y[i])
		less2 := lessW(y[i], z[i])

		notEqual := less1 | less2
		isLess = selectW(undecided&notEqual, less1, isLess)
		undecided &^= notEqual
	}
	return isLess
}

// isZero returns 1 if z is zero and 0 otherwise.
func (z fixedInt) isZero() uint {
	var acc uint
	for _, w := range z {
		acc |= w
	}
	return ((acc | -acc) >> (bits.UintSize - 1)) ^ 1
}

func (z fixedInt) setZero() {
	for i := range z {
		z[i] = 0
	}
}

// setBytes sets z to the big-endian value in buf. buf must fit into z.
func (z fixedInt) setBytes(buf []byte) {
	if len(buf) > len(z)*wordBytes {
		panic("size mismatch")
	}
	z.setZero()
	for i := range buf {
		b := buf[len(buf)-1-i]
		z[i/wordBytes] |= uint(b) << (8 * uint(i%wordBytes))
	}
}

// bytes returns z as a big-endian byte slice of the full width.
func (z fixedInt) bytes() []byte {
	r := make([]byte, len(z)*wordBytes)
	i := len(r) - 1
	for _, w := range z {
		for s := uint(0); s < bits.UintSize; s += 8 {
			r[i] = uint8(w >> s)
			i--
		}
	}
	return r
}

func (z fixedInt) big() *big.Int {
	return new(big.Int).SetBytes(z.bytes())
}

// selectW returns a if v is 1 and b if v is 0.
func selectW(v, a, b uint) uint {
	return ^(v-1)&a | (v-1)&b
}

// lessEqW returns 1 if a <= b and 0 if a > b.
func lessEqW(a, b uint) uint {
	msbA := (a >> (bits.UintSize - 1)) & 1
	msbB := (b >> (bits.UintSize - 1)) & 1
	remA := a &^ (1 << (bits.UintSize - 1))
	remB := b &^ (1 << (bits.UintSize - 1))
	less := ((remA - remB - 1) >> (bits.UintSize - 1)) & 1
	return selectW((msbA^msbB)&1, msbB, less)
}

// lessW returns 1 if a < b and 0 if a >= b.
func lessW(a, b uint) uint {
	return lessEqW(b, a) ^ 1
}

// z1<<_W + z0 = a+b+c, with c == 0 or 1
func addW(a, b, c uint) (z0, z1 uint) {
	bc := b + c
	z0 = a + bc
	z1 = lessW(z0, a) | lessW(bc, b)
	return
}

// z1<<_W + z0 = a-b-c, with c == 0 or 1
func subW(a, b, c uint) (z0, z1 uint) {
	bc := b + c
	z0 = a - bc
	z1 = lessW(a, z0) | lessW(bc, b)
	return
}
