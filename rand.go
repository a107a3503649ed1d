// Copyright (c) 2017 mgIT GmbH. All rights reserved.
// Distributed under the Apache License. See LICENSE for details.

package ecc

import (
	"io"
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

var genMask = []byte{0xff, 0x1, 0x3, 0x7, 0xf, 0x1f, 0x3f, 0x7f}

// RandomScalar returns a scalar drawn uniformly from [1, N-1] using the given
// reader, which must return random data. Candidates are drawn with the bit
// length of N and rejected if they are zero or not less than N.
func RandomScalar(c *Curve, rand io.Reader) (*big.Int, error) {
	if c.n == nil {
		return nil, ErrNoOrder
	}
	buf, err := randomScalarBytes(c.n, rand)
	if err != nil {
		return nil, err
	}
	defer wipeBytes(buf)
	return new(big.Int).SetBytes(buf), nil
}

func randomScalarBytes(n *big.Int, rand io.Reader) ([]byte, error) {
	numBits := n.BitLen()
	numBytes := (numBits + 7) >> 3
	constN := make(fixedInt, fixedIntSize(numBits))
	constN.setBytes(n.Bytes())

	buf := make([]byte, numBytes)
	tmp := make(fixedInt, len(constN))
	defer tmp.setZero()

	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, errors.Wrap(err, "failed to generate random data")
		}

		// We have to mask off any excess bits in the case that the size of the
		// order is not a whole number of bytes.
		buf[0] &= genMask[numBits%8]

		tmp.setBytes(buf)
		if tmp.less(constN)&^tmp.isZero() == 1 {
			return buf, nil
		}
	}
}

// blindScalar splits k into the pair (k+b, n-b) mod n for a random blind b,
// so that k*P = (k+b)*P + (n-b)*P for every P of order n.
func blindScalar(k, n *big.Int, rand io.Reader) (*big.Int, *big.Int, error) {
	numBytes := (n.BitLen() + 7) >> 3
	constN := make(fixedInt, fixedIntSize(8*numBytes))
	constN.setBytes(n.Bytes())

	kBytes := new(big.Int).Mod(k, n).Bytes()
	defer wipeBytes(kBytes)

	blindBytes, err := randomScalarBytes(n, rand)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to generate blind")
	}
	defer wipeBytes(blindBytes)

	blind := make(fixedInt, len(constN))
	defer blind.setZero()
	blind.setBytes(blindBytes)

	kNew := make(fixedInt, len(constN))
	defer kNew.setZero()
	kNew.setBytes(kBytes)
	kNew.addMod(kNew, blind, constN)

	blind.sub(constN, blind)

	return kNew.big(), blind.big(), nil
}

// NewLockedReader returns a reader that serializes calls to r. It allows a
// single deterministic source to be shared by concurrent signers. The reader
// from crypto/rand does not need it.
func NewLockedReader(r io.Reader) io.Reader {
	return &lockedReader{r: r}
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

// wipeInt overrides the internal array of a big.Int with zeros.
func wipeInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
}

// wipeBytes overrides the internal byte array with zeros.
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
