// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	one   = big.NewInt(1)
	three = big.NewInt(3)
)

// InverseMod returns the x in [0, m) for which k*x = 1 mod m.
//
// k is reduced into [0, m) first, so negative values are accepted. The
// inverse is computed with the iterative extended Euclidean algorithm. If k
// is a multiple of m, ErrDivisionByZero is returned. If k and m share a
// factor, ErrNoInverse is returned.
func InverseMod(k, m *big.Int) (*big.Int, error) {
	if k == nil || m == nil || m.Cmp(one) <= 0 {
		return nil, errors.Wrapf(ErrNoInverse, "invalid modulus %v", m)
	}

	a := new(big.Int).Mod(k, m)
	if a.Sign() == 0 {
		return nil, ErrDivisionByZero
	}

	oldR, r := a, new(big.Int).Set(m)
	oldS, s := big.NewInt(1), new(big.Int)
	q, tmp := new(big.Int), new(big.Int)
	for r.Sign() != 0 {
		q.Quo(oldR, r)

		oldR.Sub(oldR, tmp.Mul(q, r))
		oldR, r = r, oldR

		oldS.Sub(oldS, tmp.Mul(q, s))
		oldS, s = s, oldS
	}

	// oldR is gcd(k, m), oldS its Bezout coefficient for k.
	if oldR.Cmp(one) != 0 {
		return nil, errors.Wrapf(ErrNoInverse, "gcd(%v, %v) = %v", a, m, oldR)
	}
	return oldS.Mod(oldS, m), nil
}
