// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

// Package ecc implements the group law of short Weierstrass curves
// y² = x³ + ax + b and the ECDH and ECDSA protocols on top of it.
//
// Curves are built from arbitrary parameters with NewCurve or taken from the
// presets (Secp256k1, P256, Toy17). Points are immutable values that can only
// be obtained from a curve, so a finite point always satisfies the equation
// of the curve that created it. Every operation re-checks its operands and
// reports a violation as ErrInvalidPoint instead of panicking.
//
// All randomness is passed in as an io.Reader. Use crypto/rand.Reader in
// production; tests may pass deterministic readers to obtain reproducible
// keys, nonces and signatures. Readers shared by several goroutines must be
// safe for concurrent use, see NewLockedReader.
//
// The arithmetic works on affine coordinates with math/big and is NOT
// constant time: scalar multiplication branches on the bits of the scalar.
// DeriveSharedSecretBlind and ScalarMultBlind split the private scalar into
// two random shares to make the timing independent of the key, at the cost
// of a second scalar multiplication.
//
// A curve without a prime modulus is defined over the rational numbers and
// uses exact arithmetic. It supports the group law and scalar
// multiplication, which makes it useful to illustrate the geometry of the
// chord-and-tangent rule, but it cannot be used for ECDSA.
//
// Please see SEC 1 (https://www.secg.org/sec1-v2.pdf) and SEC 2
// (https://www.secg.org/sec2-v2.pdf) for more details.
package ecc
