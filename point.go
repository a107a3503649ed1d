// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

var (
	ratTwo   = big.NewRat(2, 1)
	ratThree = big.NewRat(3, 1)
)

// Point is an element of a curve group: either the point at infinity or an
// affine pair (x, y). The zero value is the point at infinity.
//
// Points are immutable values. Finite points can only be obtained from a
// Curve, which guarantees that they satisfy its equation.
type Point struct {
	x, y *big.Rat
}

// Infinity returns the identity element.
func Infinity() Point {
	return Point{}
}

// IsInfinity reports whether p is the identity element.
func (p Point) IsInfinity() bool {
	return p.x == nil
}

// X returns the x coordinate. It returns nil for the point at infinity and
// for points of rational curves whose coordinate is not an integer.
func (p Point) X() *big.Int {
	return ratToInt(p.x)
}

// Y returns the y coordinate, see X.
func (p Point) Y() *big.Int {
	return ratToInt(p.y)
}

// XRat returns the x coordinate as a rational number or nil for the point at
// infinity.
func (p Point) XRat() *big.Rat {
	if p.x == nil {
		return nil
	}
	return new(big.Rat).Set(p.x)
}

// YRat returns the y coordinate as a rational number, see XRat.
func (p Point) YRat() *big.Rat {
	if p.y == nil {
		return nil
	}
	return new(big.Rat).Set(p.y)
}

func isNatural(r *big.Rat) bool {
	return r.IsInt() && r.Sign() >= 0
}

func ratToInt(r *big.Rat) *big.Int {
	if r == nil || !r.IsInt() {
		return nil
	}
	return new(big.Int).Set(r.Num())
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// String formats p as a pair of hex numbers. Coordinates that are not
// non-negative integers are formatted as fractions.
func (p Point) String() string {
	switch {
	case p.IsInfinity():
		return "infinity"
	case isNatural(p.x) && isNatural(p.y):
		return fmt.Sprintf("(0x%x, 0x%x)", p.x.Num(), p.y.Num())
	default:
		return fmt.Sprintf("(%s, %s)", p.x.RatString(), p.y.RatString())
	}
}

// NewPoint returns the point (x, y). For prime field curves both coordinates
// must be in [0, p). ErrInvalidPoint is returned if the point does not lie on
// the curve.
func (c *Curve) NewPoint(x, y *big.Int) (Point, error) {
	if x == nil || y == nil {
		return Point{}, errors.Wrap(ErrInvalidPoint, "missing coordinate")
	}
	return c.newPoint(new(big.Rat).SetInt(x), new(big.Rat).SetInt(y))
}

// NewRationalPoint returns the point (x, y) of a rational curve.
func (c *Curve) NewRationalPoint(x, y *big.Rat) (Point, error) {
	if x == nil || y == nil {
		return Point{}, errors.Wrap(ErrInvalidPoint, "missing coordinate")
	}
	if c.p != nil {
		return Point{}, errors.Wrap(ErrInvalidPoint, "rational coordinates on a prime field curve")
	}
	return c.newPoint(new(big.Rat).Set(x), new(big.Rat).Set(y))
}

func (c *Curve) newPoint(x, y *big.Rat) (Point, error) {
	p := Point{x: x, y: y}
	if !c.IsOnCurve(p) {
		return Point{}, errors.Wrapf(ErrInvalidPoint, "%v on %s", p, c.params.Name)
	}
	return p, nil
}

// inField reports whether r is an integer in [0, p).
func (c *Curve) inField(r *big.Rat) bool {
	return isNatural(r) && r.Num().Cmp(c.p) < 0
}

// IsOnCurve reports whether p is the point at infinity or satisfies
// y² = x³ + ax + b.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	if p.y == nil {
		return false
	}
	if c.p != nil && (!c.inField(p.x) || !c.inField(p.y)) {
		return false
	}
	return c.fmul(p.y, p.y).Cmp(c.polynomial(p.x)) == 0
}

func (c *Curve) checkPoints(points ...Point) error {
	for _, p := range points {
		if !c.IsOnCurve(p) {
			return errors.Wrapf(ErrInvalidPoint, "%v on %s", p, c.params.Name)
		}
	}
	return nil
}

// Add returns p + q.
func (c *Curve) Add(p, q Point) (Point, error) {
	if err := c.checkPoints(p, q); err != nil {
		return Point{}, err
	}
	r, err := c.add(p, q)
	if err != nil {
		return Point{}, err
	}
	if err := c.checkPoints(r); err != nil {
		return Point{}, errors.Wrap(err, "group law produced an invalid point")
	}
	return r, nil
}

// Double returns p + p.
func (c *Curve) Double(p Point) (Point, error) {
	return c.Add(p, p)
}

// Negate returns -p.
func (c *Curve) Negate(p Point) (Point, error) {
	if err := c.checkPoints(p); err != nil {
		return Point{}, err
	}
	return c.negate(p), nil
}

func (c *Curve) negate(p Point) Point {
	if p.IsInfinity() {
		return p
	}
	return Point{x: p.x, y: c.fneg(p.y)}
}

// add implements the chord-and-tangent rule for points known to be on the
// curve.
func (c *Curve) add(p, q Point) (Point, error) {
	if p.IsInfinity() {
		return q, nil
	}
	if q.IsInfinity() {
		return p, nil
	}

	var m *big.Rat
	var err error
	if p.x.Cmp(q.x) == 0 {
		// q = -p, including the points of order two where p = -p.
		if p.y.Cmp(q.y) != 0 || p.y.Sign() == 0 {
			return Point{}, nil
		}
		// tangent slope (3x² + a) / 2y
		num := c.fadd(c.fmul(ratThree, c.fmul(p.x, p.x)), c.a)
		m, err = c.fquo(num, c.fmul(ratTwo, p.y))
	} else {
		m, err = c.fquo(c.fsub(p.y, q.y), c.fsub(p.x, q.x))
	}
	if err != nil {
		return Point{}, errors.Wrap(err, "failed to compute slope")
	}

	rx := c.fsub(c.fsub(c.fmul(m, m), p.x), q.x)
	ry := c.fneg(c.fadd(p.y, c.fmul(m, c.fsub(rx, p.x))))
	return Point{x: rx, y: ry}, nil
}

// Marshal encodes a finite point of a prime field curve in the uncompressed
// form of SEC 1, section 2.3.3.
func (c *Curve) Marshal(p Point) ([]byte, error) {
	if c.p == nil {
		return nil, ErrNoModulus
	}
	if err := c.checkPoints(p); err != nil {
		return nil, err
	}
	if p.IsInfinity() {
		return nil, errors.Wrap(ErrPointAtInfinity, "failed to marshal point")
	}

	size := c.ByteSize()
	out := make([]byte, 1+2*size)
	out[0] = 4
	p.x.Num().FillBytes(out[1 : 1+size])
	p.y.Num().FillBytes(out[1+size:])
	return out, nil
}

// Unmarshal decodes a point encoded by Marshal.
func (c *Curve) Unmarshal(data []byte) (Point, error) {
	if c.p == nil {
		return Point{}, ErrNoModulus
	}
	size := c.ByteSize()
	if len(data) != 1+2*size {
		return Point{}, errors.Wrapf(ErrInvalidPoint, "invalid encoding length %d", len(data))
	}
	if data[0] != 4 {
		return Point{}, errors.Wrapf(ErrInvalidPoint, "unsupported encoding prefix %#x", data[0])
	}
	x := new(big.Int).SetBytes(data[1 : 1+size])
	y := new(big.Int).SetBytes(data[1+size:])
	return c.NewPoint(x, y)
}
