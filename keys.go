// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// PublicKey is a finite point on a curve.
type PublicKey struct {
	curve *Curve
	point Point
}

// NewPublicKey returns the public key for the point p. The point must be a
// finite point of c.
func NewPublicKey(c *Curve, p Point) (*PublicKey, error) {
	if err := c.checkPoints(p); err != nil {
		return nil, err
	}
	if p.IsInfinity() {
		return nil, errors.Wrap(ErrPointAtInfinity, "invalid public key")
	}
	return &PublicKey{curve: c, point: p}, nil
}

// Curve returns the curve of the key.
func (k *PublicKey) Curve() *Curve {
	return k.curve
}

// Point returns the public point.
func (k *PublicKey) Point() Point {
	return k.point
}

// Validate checks that the key lies in the subgroup generated by G, i.e.
// that N*Q is the identity. Neither NewPublicKey nor DeriveSharedSecret
// perform this check.
func (k *PublicKey) Validate() error {
	c := k.curve
	if c.n == nil {
		return ErrNoOrder
	}
	// N*Q via N-1 to avoid the short cut for multiples of the order:
	// (N-1)*Q = -Q holds exactly for the members of the subgroup.
	q, err := c.ScalarMult(new(big.Int).Sub(c.n, one), k.point)
	if err != nil {
		return errors.Wrap(err, "failed to validate public key")
	}
	if !q.Equal(c.negate(k.point)) {
		return errors.Wrap(ErrInvalidPoint, "public key is not in the subgroup of the base point")
	}
	return nil
}

// String formats the public point in hex.
func (k *PublicKey) String() string {
	return k.point.String()
}

// PrivateKey is a scalar d in [1, N-1] together with the public key d*G.
type PrivateKey struct {
	PublicKey
	d *big.Int
}

// GenerateKey returns a new key pair. The private scalar is read from rand,
// which must return random data.
func GenerateKey(c *Curve, rand io.Reader) (*PrivateKey, error) {
	d, err := RandomScalar(c, rand)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}
	return newPrivateKey(c, d)
}

// NewPrivateKey returns the key pair for the scalar d, which must be in
// [1, N-1].
func NewPrivateKey(c *Curve, d *big.Int) (*PrivateKey, error) {
	if c.n == nil {
		return nil, ErrNoOrder
	}
	if d == nil || d.Sign() <= 0 || d.Cmp(c.n) >= 0 {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "scalar out of range")
	}
	return newPrivateKey(c, new(big.Int).Set(d))
}

func newPrivateKey(c *Curve, d *big.Int) (*PrivateKey, error) {
	q, err := c.ScalarBaseMult(d)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute public key")
	}
	pub, err := NewPublicKey(c, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute public key")
	}
	return &PrivateKey{PublicKey: *pub, d: d}, nil
}

// D returns a copy of the private scalar.
func (k *PrivateKey) D() *big.Int {
	return new(big.Int).Set(k.d)
}

// Public returns the public half of the key pair.
func (k *PrivateKey) Public() *PublicKey {
	return &k.PublicKey
}

// Wipe overrides the private scalar with zeros. The key must not be used
// afterwards.
func (k *PrivateKey) Wipe() {
	wipeInt(k.d)
}
