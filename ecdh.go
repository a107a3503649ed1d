// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"io"

	"github.com/pkg/errors"
)

// DeriveSharedSecret computes the ECDH shared secret d*Q from the own private
// key and the public key of the other party. Both parties obtain the same
// point since d1*(d2*G) = d2*(d1*G).
//
// The peer key is known to be on the curve, but it is not checked to be in
// the subgroup generated by G. Call PublicKey.Validate on untrusted keys of
// curves with a cofactor other than one.
func DeriveSharedSecret(priv *PrivateKey, peer *PublicKey) (Point, error) {
	c, err := agreementCurve(priv, peer)
	if err != nil {
		return Point{}, err
	}
	s, err := c.ScalarMult(priv.d, peer.point)
	if err != nil {
		return Point{}, errors.Wrap(err, "failed to derive shared secret")
	}
	return checkSecret(s)
}

// DeriveSharedSecretBlind is like DeriveSharedSecret but blinds the private
// scalar with randomness from rand before multiplying. See ScalarMultBlind.
func DeriveSharedSecretBlind(priv *PrivateKey, peer *PublicKey, rand io.Reader) (Point, error) {
	c, err := agreementCurve(priv, peer)
	if err != nil {
		return Point{}, err
	}
	s, err := c.ScalarMultBlind(priv.d, peer.point, rand)
	if err != nil {
		return Point{}, errors.Wrap(err, "failed to derive shared secret")
	}
	return checkSecret(s)
}

func agreementCurve(priv *PrivateKey, peer *PublicKey) (*Curve, error) {
	if priv == nil || peer == nil {
		return nil, errors.New("missing key")
	}
	if !priv.curve.Equal(peer.curve) {
		return nil, errors.Wrapf(ErrInvalidCurve, "keys of %s and %s", priv.curve.Name(), peer.curve.Name())
	}
	return priv.curve, nil
}

func checkSecret(s Point) (Point, error) {
	if s.IsInfinity() {
		return Point{}, errors.Wrap(ErrPointAtInfinity, "failed to generate shared secret")
	}
	return s, nil
}
