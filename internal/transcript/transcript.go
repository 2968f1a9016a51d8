// Package transcript implements a Fiat-Shamir transcript: a
// sponge-flavored, append-only absorber of byte spans, Points, and
// Scalars, producing a SHA3-256 digest. The Keccak permutation itself
// is delegated to golang.org/x/crypto/sha3 rather than hand-rolled.
package transcript

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/mixerr"
)

// DigestSize is the fixed byte length of a Transcript digest.
const DigestSize = 32

// Digest is a 32-byte SHA3-256 output.
type Digest [DigestSize]byte

// Transcript absorbs statement material in a fixed order and produces
// Fiat-Shamir challenges from it. Prover and verifier each own an
// independent Transcript; they yield identical challenges as long as
// both absorb the same bytes in the same order.
//
// Each absorbed span is length-prefixed so that Update([]byte("a")),
// Update([]byte("bc")) cannot be confused with Update([]byte("ab")),
// Update([]byte("c")) — a framing detail the interactive protocol
// description leaves implicit.
type Transcript struct {
	buf []byte
}

// New starts an empty transcript.
func New() *Transcript { return &Transcript{} }

// Clone returns an independent copy of t. Mutating the clone never
// affects t, and vice versa.
func (t *Transcript) Clone() *Transcript {
	buf := make([]byte, len(t.buf))
	copy(buf, t.buf)
	return &Transcript{buf: buf}
}

// UpdateBytes absorbs an arbitrary byte span.
func (t *Transcript) UpdateBytes(b []byte) *Transcript {
	var lenPrefix [8]byte
	binary.BigEndian.PutUint64(lenPrefix[:], uint64(len(b)))
	t.buf = append(t.buf, lenPrefix[:]...)
	t.buf = append(t.buf, b...)
	return t
}

// UpdatePoint absorbs a Point's fixed-width encoding.
func (t *Transcript) UpdatePoint(p curve.Point) *Transcript {
	return t.UpdateBytes(p.Bytes())
}

// UpdateScalar absorbs a Scalar's fixed-width encoding.
func (t *Transcript) UpdateScalar(s curve.Scalar) *Transcript {
	b := s.Bytes()
	return t.UpdateBytes(b[:])
}

// Finalize squeezes a 32-byte digest out of everything absorbed so
// far, and leaves the transcript usable: the squeezed digest itself is
// folded back into the absorbed state, so a second Finalize call
// returns a different digest — that of the post-finalize state — never
// the same value twice in a row. This lets the test suite detect
// accidental transcript reuse.
func (t *Transcript) Finalize() Digest {
	d := sha3.Sum256(t.buf)
	t.buf = append(t.buf, d[:]...)
	return Digest(d)
}

// ScalarFromHash finalizes a throwaway clone of t (leaving t itself
// untouched) and reduces the resulting digest into F_q via big-endian
// read modulo q. Callers must only invoke it once all statement
// material relevant to the challenge has been absorbed into t.
func ScalarFromHash(t *Transcript) curve.Scalar {
	d := t.Clone().Finalize()
	s, err := curve.ScalarFromBytes(d[:])
	if err != nil {
		// d is exactly ScalarSize bytes by construction; ScalarFromBytes
		// only fails on a length mismatch, which cannot happen here.
		panic(mixerr.ErrCodec)
	}
	return s
}
