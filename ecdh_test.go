// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ECDHTestSuite struct {
	Curve *Curve
	suite.Suite

	alice *PrivateKey
	bob   *PrivateKey
}

func (s *ECDHTestSuite) SetupTest() {
	s.alice = s.generateKey("alice")
	s.bob = s.generateKey("bob")
}

func (s *ECDHTestSuite) generateKey(name string) *PrivateKey {
	priv, err := GenerateKey(s.Curve, rand.Reader)
	s.Require().NoErrorf(err, "failed to create key %q", name)
	return priv
}

func (s *ECDHTestSuite) TestSymmetric() {
	aliceSecret, err := DeriveSharedSecret(s.alice, s.bob.Public())
	s.NoError(err, "failed to derive secret for alice")

	bobSecret, err := DeriveSharedSecret(s.bob, s.alice.Public())
	s.NoError(err, "failed to derive secret for bob")

	s.EqualPoint(aliceSecret, bobSecret)

	d := new(big.Int).Mul(s.alice.D(), s.bob.D())
	want, err := s.Curve.ScalarBaseMult(d)
	s.Require().NoError(err)
	s.EqualPoint(want, aliceSecret)
}

func (s *ECDHTestSuite) TestBlinded() {
	aliceSecret, err := DeriveSharedSecret(s.alice, s.bob.Public())
	s.NoError(err, "failed to derive simple secret for alice")

	aliceBlind, err := DeriveSharedSecretBlind(s.alice, s.bob.Public(), rand.Reader)
	s.NoError(err, "failed to derive blinded secret for alice")

	bobBlind, err := DeriveSharedSecretBlind(s.bob, s.alice.Public(), rand.Reader)
	s.NoError(err, "failed to derive blinded secret for bob")

	s.EqualPoint(aliceSecret, aliceBlind)
	s.EqualPoint(aliceSecret, bobBlind)
}

func (s *ECDHTestSuite) TestCurveMismatch() {
	other := Secp256k1()
	if s.Curve.Equal(other) {
		other = P256()
	}
	eve, err := GenerateKey(other, rand.Reader)
	s.Require().NoError(err)

	_, err = DeriveSharedSecret(s.alice, eve.Public())
	s.ErrorIs(err, ErrInvalidCurve)
	_, err = DeriveSharedSecretBlind(s.alice, eve.Public(), rand.Reader)
	s.ErrorIs(err, ErrInvalidCurve)
	_, err = DeriveSharedSecret(nil, eve.Public())
	s.Error(err)
}

func (s *ECDHTestSuite) EqualPoint(expected, actual Point) {
	s.T().Helper()
	s.Equal(expected.String(), actual.String(), "points are not equal")
}

func TestECDHToy17(t *testing.T) {
	suite.Run(t, &ECDHTestSuite{Curve: Toy17()})
}

func TestECDHSecp256k1(t *testing.T) {
	suite.Run(t, &ECDHTestSuite{Curve: Secp256k1()})
}

func TestECDHP256(t *testing.T) {
	suite.Run(t, &ECDHTestSuite{Curve: P256()})
}

func TestECDHSmallSubgroupPeer(t *testing.T) {
	c := cofactorCurve(t)
	// (16, 0) has order two, so it is not rejected by NewPublicKey but leaks
	// the parity of the private scalar.
	p, err := c.NewPoint(big.NewInt(16), big.NewInt(0))
	require.NoError(t, err)
	peer, err := NewPublicKey(c, p)
	require.NoError(t, err)

	even, err := NewPrivateKey(c, big.NewInt(4))
	require.NoError(t, err)
	_, err = DeriveSharedSecret(even, peer)
	require.ErrorIs(t, err, ErrPointAtInfinity)

	odd, err := NewPrivateKey(c, big.NewInt(3))
	require.NoError(t, err)
	secret, err := DeriveSharedSecret(odd, peer)
	require.NoError(t, err)
	require.True(t, secret.Equal(p))

	require.ErrorIs(t, peer.Validate(), ErrInvalidPoint)
}
