// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import "github.com/pkg/errors"

var (
	// ErrInvalidPoint is returned when a point does not satisfy the curve
	// equation of the curve it is used with.
	ErrInvalidPoint = errors.New("point is not on the curve")

	// ErrPointAtInfinity is returned when an operation produced the identity
	// element where a finite point is required.
	ErrPointAtInfinity = errors.New("point at infinity")

	// ErrDivisionByZero is returned when the inverse of zero is requested.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNoInverse is returned when k and the modulus are not coprime.
	ErrNoInverse = errors.New("no modular inverse exists")

	// ErrInvalidSignature is returned by Verify for malformed signatures.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidCurve is returned for unusable curve parameters and for
	// operations mixing keys of different curves.
	ErrInvalidCurve = errors.New("invalid curve parameters")

	// ErrInvalidPrivateKey is returned for private scalars outside [1, N-1].
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrNoModulus is returned when an operation needs a prime field but the
	// curve is defined over the rationals.
	ErrNoModulus = errors.New("curve has no prime modulus")

	// ErrNoOrder is returned when an operation needs the group order but the
	// curve has none.
	ErrNoOrder = errors.New("curve has no group order")
)
