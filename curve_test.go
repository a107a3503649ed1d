// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toyParams() CurveParams {
	return CurveParams{
		Name: "toy",
		A:    big.NewInt(2),
		B:    big.NewInt(2),
		P:    big.NewInt(17),
		N:    big.NewInt(19),
		Gx:   big.NewInt(5),
		Gy:   big.NewInt(1),
	}
}

func TestNewCurve(t *testing.T) {
	c, err := NewCurve(toyParams())
	require.NoError(t, err)
	assert.Equal(t, "toy", c.Name())
	assert.Equal(t, 5, c.BitSize())
	assert.Equal(t, 1, c.ByteSize())
	assert.True(t, c.Equal(Toy17()), "names must not matter")
	assert.False(t, c.Equal(Secp256k1()))
	assert.False(t, c.Equal(nil))
}

func TestNewCurveReducesCoefficients(t *testing.T) {
	params := toyParams()
	params.A = big.NewInt(2 + 17)
	params.B = big.NewInt(2 - 17)
	c, err := NewCurve(params)
	require.NoError(t, err)
	assert.True(t, c.Equal(Toy17()))
	assert.Equal(t, int64(2), c.Params().A.Int64())
	assert.Equal(t, int64(2), c.Params().B.Int64())
}

func TestNewCurveCopiesParams(t *testing.T) {
	params := toyParams()
	c, err := NewCurve(params)
	require.NoError(t, err)

	params.N.SetInt64(23)
	params.Gx.SetInt64(6)
	assert.Equal(t, int64(19), c.Order().Int64())
	assert.Equal(t, int64(5), c.Generator().X().Int64())

	c.Order().SetInt64(1)
	c.Prime().SetInt64(1)
	c.Params().A.SetInt64(1)
	assert.Equal(t, int64(19), c.Order().Int64())
	assert.Equal(t, int64(17), c.Prime().Int64())
	assert.Equal(t, int64(2), c.Params().A.Int64())
}

func TestNewCurveErrors(t *testing.T) {
	tests := map[string]func(p *CurveParams){
		"missing a":         func(p *CurveParams) { p.A = nil },
		"missing gy":        func(p *CurveParams) { p.Gy = nil },
		"missing order":     func(p *CurveParams) { p.N = nil },
		"order too small":   func(p *CurveParams) { p.N = big.NewInt(1) },
		"modulus too small": func(p *CurveParams) { p.P = big.NewInt(3) },
		"singular":          func(p *CurveParams) { p.A, p.B = big.NewInt(0), big.NewInt(0) },
		"composite modulus": func(p *CurveParams) { p.P = big.NewInt(15) },
		"composite order":   func(p *CurveParams) { p.N = big.NewInt(38) },
		"wrong order":       func(p *CurveParams) { p.N = big.NewInt(23) },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			params := toyParams()
			mutate(&params)
			_, err := NewCurve(params)
			assert.ErrorIs(t, err, ErrInvalidCurve)
		})
	}

	params := toyParams()
	params.Gy = big.NewInt(2)
	_, err := NewCurve(params)
	assert.ErrorIs(t, err, ErrInvalidPoint, "base point off the curve")
}

func TestNewCurveOrderTwo(t *testing.T) {
	c, err := NewCurve(CurveParams{
		A:  big.NewInt(1),
		B:  big.NewInt(5),
		P:  big.NewInt(23),
		N:  big.NewInt(2),
		Gx: big.NewInt(16),
		Gy: big.NewInt(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "custom", c.Name())
	q, err := c.Double(c.Generator())
	require.NoError(t, err)
	assert.True(t, q.IsInfinity())
}

func TestPresets(t *testing.T) {
	for _, c := range []*Curve{Secp256k1(), P256(), Toy17()} {
		assert.True(t, c.IsOnCurve(c.Generator()), c.Name())
		assert.Same(t, c, mustPreset(t, c.Name()), "presets are shared")
	}

	assert.Equal(t, 256, Secp256k1().BitSize())
	assert.Equal(t, 32, Secp256k1().ByteSize())
	assert.Equal(t, int64(7), Secp256k1().Params().B.Int64())
	assert.Equal(t, "P-256", P256().Name())
}

func mustPreset(t *testing.T, name string) *Curve {
	c, err := CurveByName(name)
	require.NoError(t, err)
	return c
}

func TestCurveByName(t *testing.T) {
	assert.Same(t, Secp256k1(), mustPreset(t, "SECP256K1"))
	assert.Same(t, P256(), mustPreset(t, "p256"))

	_, err := CurveByName("curve25519")
	assert.ErrorIs(t, err, ErrInvalidCurve)
}

func TestRationalCurveParams(t *testing.T) {
	c := corbellini(t)
	assert.Nil(t, c.Prime())
	assert.Nil(t, c.Order())
	assert.Equal(t, 0, c.BitSize())
	assert.Equal(t, "corbellini", c.Name())
}
