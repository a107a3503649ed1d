// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"crypto/elliptic"
	"math/big"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// CurveParams describes a short Weierstrass curve y² = x³ + ax + b together
// with a base point G of order N.
//
// If P is nil the curve is defined over the rational numbers and all
// arithmetic is exact. Such curves are useful for experiments but are not
// suitable for cryptography.
type CurveParams struct {
	Name   string
	A, B   *big.Int
	P      *big.Int // field modulus, nil for rational arithmetic
	N      *big.Int // order of G, optional for rational curves
	Gx, Gy *big.Int
}

// Curve is a validated short Weierstrass curve. A Curve is immutable and may
// be shared between goroutines.
type Curve struct {
	params CurveParams
	a, b   *big.Rat
	p, n   *big.Int
	g      Point
}

// NewCurve validates params and returns the corresponding curve. For prime
// field curves A and B are reduced modulo P, P and N must be prime and N must
// be the order of the base point. Over the rationals N is optional and not
// checked.
func NewCurve(params CurveParams) (*Curve, error) {
	if params.A == nil || params.B == nil || params.Gx == nil || params.Gy == nil {
		return nil, errors.Wrap(ErrInvalidCurve, "missing coefficient or base point")
	}
	if params.N != nil && params.N.Cmp(one) <= 0 {
		return nil, errors.Wrapf(ErrInvalidCurve, "invalid order %v", params.N)
	}

	c := &Curve{params: params.copy()}
	if c.params.Name == "" {
		c.params.Name = "custom"
	}
	if params.P != nil {
		if params.P.Cmp(three) <= 0 || !params.P.ProbablyPrime(20) {
			return nil, errors.Wrapf(ErrInvalidCurve, "invalid modulus %v", params.P)
		}
		if params.N == nil {
			return nil, errors.Wrap(ErrInvalidCurve, "prime field curve without order")
		}
		c.p = c.params.P
		c.params.A.Mod(c.params.A, c.p)
		c.params.B.Mod(c.params.B, c.p)
	}
	c.n = c.params.N
	c.a = new(big.Rat).SetInt(c.params.A)
	c.b = new(big.Rat).SetInt(c.params.B)

	if c.singular() {
		return nil, errors.Wrap(ErrInvalidCurve, "singular curve")
	}

	g, err := c.NewPoint(c.params.Gx, c.params.Gy)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base point")
	}
	c.g = g

	if c.p != nil {
		if err := c.checkOrder(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// checkOrder verifies that N is a prime with N*G = O, which makes it the
// order of G. N*G is computed as (N-1)*G = -G since ScalarMult short cuts
// multiples of N.
func (c *Curve) checkOrder() error {
	if !c.n.ProbablyPrime(20) {
		return errors.Wrapf(ErrInvalidCurve, "order %v is not prime", c.n)
	}
	q, err := c.ScalarMult(new(big.Int).Sub(c.n, one), c.g)
	if err != nil {
		return errors.Wrap(err, "failed to check base point order")
	}
	if !q.Equal(c.negate(c.g)) {
		return errors.Wrapf(ErrInvalidCurve, "base point does not have order %v", c.n)
	}
	return nil
}

// singular reports whether 4a³ + 27b² vanishes.
func (c *Curve) singular() bool {
	a3 := c.fmul(c.fmul(c.a, c.a), c.a)
	b2 := c.fmul(c.b, c.b)
	d := c.fadd(c.fmul(big.NewRat(4, 1), a3), c.fmul(big.NewRat(27, 1), b2))
	return d.Sign() == 0
}

func (p CurveParams) copy() CurveParams {
	cp := func(x *big.Int) *big.Int {
		if x == nil {
			return nil
		}
		return new(big.Int).Set(x)
	}
	return CurveParams{
		Name: p.Name,
		A:    cp(p.A),
		B:    cp(p.B),
		P:    cp(p.P),
		N:    cp(p.N),
		Gx:   cp(p.Gx),
		Gy:   cp(p.Gy),
	}
}

// Params returns a copy of the curve parameters.
func (c *Curve) Params() CurveParams {
	return c.params.copy()
}

// Name returns the name of the curve.
func (c *Curve) Name() string {
	return c.params.Name
}

// Order returns the order of the base point or nil if it is unknown.
func (c *Curve) Order() *big.Int {
	if c.n == nil {
		return nil
	}
	return new(big.Int).Set(c.n)
}

// Prime returns the field modulus or nil for rational curves.
func (c *Curve) Prime() *big.Int {
	if c.p == nil {
		return nil
	}
	return new(big.Int).Set(c.p)
}

// Generator returns the base point G.
func (c *Curve) Generator() Point {
	return c.g
}

// BitSize returns the bit length of the field modulus, 0 for rational curves.
func (c *Curve) BitSize() int {
	if c.p == nil {
		return 0
	}
	return c.p.BitLen()
}

// ByteSize returns the number of bytes needed to encode a field element.
func (c *Curve) ByteSize() int {
	return (c.BitSize() + 7) >> 3
}

// Equal reports whether both curves have identical parameters. Names are
// ignored.
func (c *Curve) Equal(o *Curve) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return bigEqual(c.p, o.p) &&
		bigEqual(c.n, o.n) &&
		c.a.Cmp(o.a) == 0 &&
		c.b.Cmp(o.b) == 0 &&
		c.g.Equal(o.g)
}

func bigEqual(x, y *big.Int) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.Cmp(y) == 0
}

// The field helpers below never modify their arguments. For prime field
// curves every value is an integer in [0, p).

func (c *Curve) reduce(z *big.Rat) *big.Rat {
	if c.p == nil {
		return z
	}
	num := z.Num()
	num.Mod(num, c.p)
	return z
}

func (c *Curve) fadd(x, y *big.Rat) *big.Rat {
	return c.reduce(new(big.Rat).Add(x, y))
}

func (c *Curve) fsub(x, y *big.Rat) *big.Rat {
	return c.reduce(new(big.Rat).Sub(x, y))
}

func (c *Curve) fmul(x, y *big.Rat) *big.Rat {
	return c.reduce(new(big.Rat).Mul(x, y))
}

func (c *Curve) fneg(x *big.Rat) *big.Rat {
	return c.reduce(new(big.Rat).Neg(x))
}

func (c *Curve) fquo(x, y *big.Rat) (*big.Rat, error) {
	if c.p == nil {
		if y.Sign() == 0 {
			return nil, ErrDivisionByZero
		}
		return new(big.Rat).Quo(x, y), nil
	}
	inv, err := InverseMod(y.Num(), c.p)
	if err != nil {
		return nil, err
	}
	return c.fmul(x, new(big.Rat).SetInt(inv)), nil
}

// polynomial returns x³ + ax + b.
func (c *Curve) polynomial(x *big.Rat) *big.Rat {
	x3 := c.fmul(c.fmul(x, x), x)
	return c.fadd(c.fadd(x3, c.fmul(c.a, x)), c.b)
}

// fromHex converts the passed hex string into a big integer pointer and will
// panic if there is an error. This is only provided for the hard-coded
// constants so errors in the source code can be detected.
func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

var (
	secp256k1Once  sync.Once
	secp256k1Curve *Curve

	p256Once  sync.Once
	p256Curve *Curve

	toy17Once  sync.Once
	toy17Curve *Curve
)

func mustCurve(params CurveParams) *Curve {
	c, err := NewCurve(params)
	if err != nil {
		panic(errors.Wrapf(err, "invalid preset %q", params.Name).Error())
	}
	return c
}

// Secp256k1 returns the secp256k1 curve as defined in SEC 2, section 2.4.1.
func Secp256k1() *Curve {
	secp256k1Once.Do(func() {
		secp256k1Curve = mustCurve(CurveParams{
			Name: "secp256k1",
			A:    big.NewInt(0),
			B:    big.NewInt(7),
			P:    fromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
			N:    fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
			Gx:   fromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
			Gy:   fromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
		})
	})
	return secp256k1Curve
}

// P256 returns the NIST P-256 curve. The parameters are taken from
// crypto/elliptic, which implies a = -3.
func P256() *Curve {
	p256Once.Do(func() {
		params := elliptic.P256().Params()
		p256Curve = mustCurve(CurveParams{
			Name: params.Name,
			A:    new(big.Int).Sub(params.P, three),
			B:    params.B,
			P:    params.P,
			N:    params.N,
			Gx:   params.Gx,
			Gy:   params.Gy,
		})
	})
	return p256Curve
}

// Toy17 returns the curve y² = x³ + 2x + 2 over F₁₇ with base point (5, 1)
// of order 19. It is far too small for any real use.
func Toy17() *Curve {
	toy17Once.Do(func() {
		toy17Curve = mustCurve(CurveParams{
			Name: "toy17",
			A:    big.NewInt(2),
			B:    big.NewInt(2),
			P:    big.NewInt(17),
			N:    big.NewInt(19),
			Gx:   big.NewInt(5),
			Gy:   big.NewInt(1),
		})
	})
	return toy17Curve
}

var presets = map[string]func() *Curve{
	"secp256k1": Secp256k1,
	"p-256":     P256,
	"p256":      P256,
	"toy17":     Toy17,
}

// CurveByName returns the preset curve with the given name. The lookup is
// case insensitive.
func CurveByName(name string) (*Curve, error) {
	fn, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidCurve, "unknown curve %q", name)
	}
	return fn(), nil
}
