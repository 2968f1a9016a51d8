// Package commitment implements the Pedersen vector commitment scheme:
// a key (G_1,...,G_n, H) and C = Commit(ck, r, m) = sum(m_i * G_i) + r*H.
// Binding holds under DLOG in the group; hiding is perfect.
package commitment

import (
	"fmt"

	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/mixerr"
)

// Key holds a commitment key of size n: n message generators plus one
// blinding generator H. It is immutable once created and may be shared
// between prover and verifier.
type Key struct {
	G []curve.Point
	H curve.Point
}

// Size returns the number of message coordinates the key supports.
func (k Key) Size() int { return len(k.G) }

// CreateKey deterministically derives a commitment key of the given
// size by hashing a domain-separated label per generator, so that any
// party can recompute and verify the key independently: no party
// retains a discrete-log trapdoor over any generator.
func CreateKey(size int) (Key, error) {
	if size <= 0 {
		return Key{}, fmt.Errorf("%w: commitment key size must be > 0, got %d", mixerr.ErrInvalidArgument, size)
	}
	ck := Key{
		G: make([]curve.Point, size),
		H: curve.HashToPoint("shuffle-argument/commit-key/H"),
	}
	for i := range ck.G {
		ck.G[i] = curve.HashToPoint(fmt.Sprintf("shuffle-argument/commit-key/G/%d", i))
	}
	return ck, nil
}

// CommitmentAndRandomness bundles a commitment value with the
// randomness used to open it.
type CommitmentAndRandomness struct {
	C curve.Point
	R curve.Scalar
}

// Commit returns sum(m_i*G_i) + r*H. Coordinates of m beyond len(m) are
// treated as zero; len(m) must not exceed the key's size.
func Commit(ck Key, r curve.Scalar, m []curve.Scalar) (curve.Point, error) {
	if len(m) > ck.Size() {
		return curve.Point{}, fmt.Errorf("%w: message length %d exceeds commitment key size %d", mixerr.ErrInvalidArgument, len(m), ck.Size())
	}
	c := curve.Identity()
	for i, mi := range m {
		c = c.Add(ck.G[i].Mul(mi))
	}
	c = c.Add(ck.H.Mul(r))
	return c, nil
}

// CommitRandom samples r uniformly and returns (Commit(ck, r, m), r).
func CommitRandom(ck Key, m []curve.Scalar) (CommitmentAndRandomness, error) {
	r := curve.RandomScalar()
	c, err := Commit(ck, r, m)
	if err != nil {
		return CommitmentAndRandomness{}, err
	}
	return CommitmentAndRandomness{C: c, R: r}, nil
}

// CheckCommitment reports whether C == Commit(ck, r, m).
func CheckCommitment(ck Key, c curve.Point, r curve.Scalar, m []curve.Scalar) bool {
	expected, err := Commit(ck, r, m)
	if err != nil {
		return false
	}
	return expected.Equal(c)
}

// CommitConstant returns a commitment to the constant vector (s,s,...,s)
// of length n with zero randomness, i.e. sum(G_1..G_n)*s. n must not
// exceed ck.Size(); it need not equal it, since a commitment key may be
// sized for the largest batch a Shuffler expects to see and reused for
// smaller ones. Used by the shuffle verifier to recompute C_z without
// any witness.
func CommitConstant(ck Key, s curve.Scalar, n int) curve.Point {
	c := curve.Identity()
	for _, g := range ck.G[:n] {
		c = c.Add(g.Mul(s))
	}
	return c
}
