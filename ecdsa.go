// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"crypto/sha512"
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// Signature is an ECDSA signature.
type Signature struct {
	R, S *big.Int
}

// String formats the signature as a pair of hex numbers.
func (sig *Signature) String() string {
	return fmt.Sprintf("(0x%x, 0x%x)", sig.R, sig.S)
}

// HashMessage returns the SHA-512 digest of message as an integer, keeping
// only its most significant bits so that it is no longer than the curve
// order. Leading zero bits of the digest do not count, so digests starting
// with a zero bit keep bits that a plain cut after bitlen(N) bits would drop.
func HashMessage(c *Curve, message []byte) *big.Int {
	digest := sha512.Sum512(message)
	z := new(big.Int).SetBytes(digest[:])
	if c.n == nil {
		return z
	}
	if shift := z.BitLen() - c.n.BitLen(); shift > 0 {
		z.Rsh(z, uint(shift))
	}
	return z
}

func signingCurve(c *Curve) error {
	if c.p == nil {
		return ErrNoModulus
	}
	if c.n == nil {
		return ErrNoOrder
	}
	return nil
}

// maxSignAttempts bounds the number of nonces Sign draws. On a curve of
// reasonable size a nonce is rejected with negligible probability.
const maxSignAttempts = 64

// Sign signs message with priv. Nonces are read from rand, which must return
// random data; a nonce that yields r = 0 or s = 0 is discarded and a new one
// is drawn, up to maxSignAttempts times.
func Sign(rand io.Reader, priv *PrivateKey, message []byte) (*Signature, error) {
	if priv == nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "missing key")
	}
	c := priv.curve
	if err := signingCurve(c); err != nil {
		return nil, err
	}
	z := HashMessage(c, message)

	for i := 0; i < maxSignAttempts; i++ {
		r, s, err := signWithNonce(c, priv.d, z, rand)
		if err != nil {
			return nil, err
		}
		if r.Sign() != 0 && s.Sign() != 0 {
			return &Signature{R: r, S: s}, nil
		}
	}
	return nil, errors.Errorf("failed to find a usable nonce in %d attempts", maxSignAttempts)
}

// signWithNonce computes r = (k*G).x mod n and s = (z + r*d) / k mod n for a
// fresh nonce k. Either value may be zero, both are zero if k*G is the
// identity.
func signWithNonce(c *Curve, d, z *big.Int, rand io.Reader) (*big.Int, *big.Int, error) {
	k, err := RandomScalar(c, rand)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate nonce")
	}
	defer wipeInt(k)

	kG, err := c.ScalarBaseMult(k)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to compute nonce point")
	}
	if kG.IsInfinity() {
		return new(big.Int), new(big.Int), nil
	}
	r := new(big.Int).Mod(kG.X(), c.n)
	if r.Sign() == 0 {
		return r, r, nil
	}

	kInv, err := InverseMod(k, c.n)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to invert nonce")
	}
	defer wipeInt(kInv)

	s := new(big.Int).Mul(r, d)
	s.Add(s, z)
	s.Mul(s, kInv)
	s.Mod(s, c.n)
	return r, s, nil
}

// Verify reports whether sig is a valid signature of message by pub. A
// signature that does not match returns false and no error. Signatures with
// components outside of [1, N-1] are rejected with ErrInvalidSignature.
func Verify(pub *PublicKey, message []byte, sig *Signature) (bool, error) {
	if pub == nil {
		return false, errors.Wrap(ErrInvalidPoint, "missing public key")
	}
	c := pub.curve
	if err := signingCurve(c); err != nil {
		return false, err
	}
	if sig == nil || !c.inScalarRange(sig.R) || !c.inScalarRange(sig.S) {
		return false, errors.Wrap(ErrInvalidSignature, "signature component out of range")
	}

	z := HashMessage(c, message)
	w, err := InverseMod(sig.S, c.n)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidSignature, "failed to invert s: %v", err)
	}
	u1 := new(big.Int).Mul(z, w)
	u1.Mod(u1, c.n)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, c.n)

	p1, err := c.ScalarBaseMult(u1)
	if err != nil {
		return false, errors.Wrap(err, "failed to verify signature")
	}
	p2, err := c.ScalarMult(u2, pub.point)
	if err != nil {
		return false, errors.Wrap(err, "failed to verify signature")
	}
	sum, err := c.Add(p1, p2)
	if err != nil {
		return false, errors.Wrap(err, "failed to verify signature")
	}
	if sum.IsInfinity() {
		return false, nil
	}

	x := sum.X()
	x.Mod(x, c.n)
	return x.Cmp(sig.R) == 0, nil
}

func (c *Curve) inScalarRange(k *big.Int) bool {
	return k != nil && k.Sign() > 0 && k.Cmp(c.n) < 0
}
