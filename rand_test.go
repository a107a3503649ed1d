// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"bytes"
	"crypto/rand"
	"io"
	"math/big"
	mrand "math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomScalarRange(t *testing.T) {
	c := Toy17()
	rnd := mrand.New(mrand.NewSource(5))
	seen := make(map[int64]bool)
	for i := 0; i < 2000; i++ {
		k, err := RandomScalar(c, rnd)
		require.NoError(t, err)
		require.True(t, c.inScalarRange(k), "scalar %v out of range", k)
		seen[k.Int64()] = true
	}
	assert.Len(t, seen, 18, "every scalar in [1, 18] must be drawn")
}

func TestRandomScalarRejects(t *testing.T) {
	c := Toy17()
	// 0xff masks to 31, then 0 and 19 are rejected before 18 is accepted
	k, err := RandomScalar(c, bytes.NewReader([]byte{0xff, 0, 19, 18}))
	require.NoError(t, err)
	assert.Equal(t, int64(18), k.Int64())

	_, err = RandomScalar(c, bytes.NewReader([]byte{0, 19}))
	assert.ErrorIs(t, err, io.EOF)

	_, err = RandomScalar(corbellini(t), rand.Reader)
	assert.ErrorIs(t, err, ErrNoOrder)
}

func TestRandomScalarLarge(t *testing.T) {
	for _, c := range []*Curve{Secp256k1(), P256()} {
		for i := 0; i < 32; i++ {
			k, err := RandomScalar(c, rand.Reader)
			require.NoError(t, err)
			assert.True(t, c.inScalarRange(k), c.Name())
		}
	}
}

func TestBlindScalar(t *testing.T) {
	rnd := mrand.New(mrand.NewSource(11))
	for _, c := range []*Curve{Toy17(), Secp256k1(), P256()} {
		n := c.Order()
		for i := 0; i < 32; i++ {
			k, err := RandomScalar(c, rnd)
			require.NoError(t, err)

			k1, k2, err := blindScalar(k, n, rnd)
			require.NoError(t, err)
			assert.True(t, k1.Cmp(n) < 0, "blinded scalar must be reduced")
			assert.True(t, k2.Sign() > 0 && k2.Cmp(n) < 0, "blind must be in [1, N-1]")

			sum := new(big.Int).Add(k1, k2)
			sum.Mod(sum, n)
			assert.Equal(t, k.Text(16), sum.Text(16), "%s: shares must add up to k", c.Name())
		}
	}

	_, _, err := blindScalar(big.NewInt(3), big.NewInt(19), bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestLockedReader(t *testing.T) {
	data := make([]byte, 64*256)
	for i := range data {
		data[i] = byte(i)
	}
	r := NewLockedReader(bytes.NewReader(data))

	var wg sync.WaitGroup
	chunks := make([][]byte, 64)
	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := make([]byte, 256)
			_, err := io.ReadFull(r, buf)
			assert.NoError(t, err)
			chunks[i] = buf
		}(i)
	}
	wg.Wait()

	// every read consumed one whole chunk of the stream
	for _, buf := range chunks {
		assert.Equal(t, data[:256], buf)
	}
}

func TestWipe(t *testing.T) {
	x := fromHex("1122334455667788990011223344556677889900")
	wipeInt(x)
	for _, w := range x.Bits() {
		assert.Zero(t, w)
	}
	wipeInt(nil)

	b := []byte{1, 2, 3}
	wipeBytes(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}
