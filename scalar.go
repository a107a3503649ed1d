// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// ScalarMult returns n*p.
//
// The identity is returned right away if p is the identity or n is a
// multiple of the curve order. A negative n multiplies -p by |n|. The
// double-and-add loop branches on every bit of n and therefore leaks the
// scalar through timing; see ScalarMultBlind.
func (c *Curve) ScalarMult(n *big.Int, p Point) (Point, error) {
	if n == nil {
		return Point{}, errors.New("missing scalar")
	}
	if err := c.checkPoints(p); err != nil {
		return Point{}, err
	}
	if p.IsInfinity() || n.Sign() == 0 {
		return Point{}, nil
	}
	if c.n != nil && new(big.Int).Mod(n, c.n).Sign() == 0 {
		return Point{}, nil
	}

	addend := p
	if n.Sign() < 0 {
		addend = c.negate(p)
	}
	k := new(big.Int).Abs(n)
	defer wipeInt(k)

	var err error
	result := Infinity()
	for i, last := 0, k.BitLen()-1; i <= last; i++ {
		if k.Bit(i) == 1 {
			if result, err = c.add(result, addend); err != nil {
				return Point{}, errors.Wrap(err, "failed to add")
			}
		}
		if i == last {
			break
		}
		if addend, err = c.add(addend, addend); err != nil {
			return Point{}, errors.Wrap(err, "failed to double")
		}
	}
	return result, nil
}

// ScalarBaseMult returns n*G.
func (c *Curve) ScalarBaseMult(n *big.Int) (Point, error) {
	return c.ScalarMult(n, c.g)
}

// ScalarMultBlind is similar to ScalarMult, but it splits n into two random
// looking shares and adds the two partial products afterwards. The result
// equals n*p for all p in the subgroup generated by G.
func (c *Curve) ScalarMultBlind(n *big.Int, p Point, rand io.Reader) (Point, error) {
	if c.n == nil {
		return Point{}, ErrNoOrder
	}
	if n == nil {
		return Point{}, errors.New("missing scalar")
	}

	k1, k2, err := blindScalar(n, c.n, rand)
	if err != nil {
		return Point{}, errors.Wrap(err, "failed to blind scalar")
	}
	defer wipeInt(k1)
	defer wipeInt(k2)

	p1, err := c.ScalarMult(k1, p)
	if err != nil {
		return Point{}, err
	}
	p2, err := c.ScalarMult(k2, p)
	if err != nil {
		return Point{}, err
	}
	return c.Add(p1, p2)
}
