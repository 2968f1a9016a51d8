// Package product implements the product argument: a proof that a
// committed vector a_1,...,a_n multiplies out to a public value b,
// i.e. knowledge of a and r such that Prod(a_i) == b and
// C == Commit(ck, r, a).
package product

import (
	"fmt"

	"github.com/mixnet-shuffle/shuffle/internal/commitment"
	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/mixerr"
	"github.com/mixnet-shuffle/shuffle/internal/transcript"
)

// Statement is "C commits to a vector whose entries multiply to B".
type Statement struct {
	C curve.Point
	B curve.Scalar
}

// Proof is a non-interactive product argument transcript.
type Proof struct {
	C0, C1, C2 curve.Point
	As, Bs     []curve.Scalar
	R, S       curve.Scalar
}

func challenge(tr *transcript.Transcript, c0, c1, c2 curve.Point) curve.Scalar {
	tr.UpdatePoint(c0).UpdatePoint(c1).UpdatePoint(c2)
	return transcript.ScalarFromHash(tr)
}

// Prove creates a product argument for statement, given the witness
// vector a (the committed messages) and r (the commitment randomness).
func Prove(ck commitment.Key, tr *transcript.Transcript, statement Statement, a []curve.Scalar, r curve.Scalar) (Proof, error) {
	n := len(a)
	if n < 2 {
		return Proof{}, fmt.Errorf("%w: product argument requires n >= 2, got %d", mixerr.ErrInvalidArgument, n)
	}
	if ck.Size() < n {
		return Proof{}, fmt.Errorf("%w: commitment key size %d is smaller than n=%d", mixerr.ErrInvalidArgument, ck.Size(), n)
	}

	// Running-product vector: b_i = a_1 * ... * a_i.
	b := make([]curve.Scalar, n)
	b[0] = a[0]
	for i := 1; i < n; i++ {
		b[i] = a[i].Mul(b[i-1])
	}

	d := make([]curve.Scalar, n)
	e := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		d[i] = curve.RandomScalar()
		e[i] = curve.RandomScalar()
	}
	e[0] = d[0]
	e[n-1] = curve.ZeroScalar()

	sd := make([]curve.Scalar, n-1)
	bd := make([]curve.Scalar, n-1)
	for i := 0; i < n-1; i++ {
		sd[i] = e[i].Neg().Mul(d[i+1])
		bd[i] = e[i+1].Sub(a[i+1].Mul(e[i])).Sub(b[i].Mul(d[i+1]))
	}

	cr0, err := commitment.CommitRandom(ck, d)
	if err != nil {
		return Proof{}, err
	}
	cr1, err := commitment.CommitRandom(ck, sd)
	if err != nil {
		return Proof{}, err
	}
	cr2, err := commitment.CommitRandom(ck, bd)
	if err != nil {
		return Proof{}, err
	}

	c := challenge(tr, cr0.C, cr1.C, cr2.C)

	aBar := make([]curve.Scalar, n)
	bBar := make([]curve.Scalar, n)
	for i := 0; i < n; i++ {
		aBar[i] = c.Mul(a[i]).Add(d[i])
		bBar[i] = c.Mul(b[i]).Add(e[i])
	}

	rResp := c.Mul(r).Add(cr0.R)
	sResp := c.Mul(cr2.R).Add(cr1.R)

	return Proof{C0: cr0.C, C1: cr1.C, C2: cr2.C, As: aBar, Bs: bBar, R: rResp, S: sResp}, nil
}

// Verify reports whether proof is valid for statement. It never
// returns an error: any malformed or algebraically inconsistent proof
// simply fails to verify.
func Verify(ck commitment.Key, tr *transcript.Transcript, statement Statement, proof Proof) bool {
	n := len(proof.As)
	if n < 2 || len(proof.Bs) != n || ck.Size() < n {
		return false
	}

	c := challenge(tr, proof.C0, proof.C1, proof.C2)

	lhs0 := statement.C.Mul(c).Add(proof.C0)
	lhs1 := proof.C2.Mul(c).Add(proof.C1)

	rhs0 := curve.Identity()
	rhs1 := curve.Identity()

	i := 0
	for ; i < n-2; i++ {
		gi := ck.G[i]
		rhs0 = rhs0.Add(gi.Mul(proof.As[i]))
		term := c.Mul(proof.Bs[i+1]).Sub(proof.Bs[i].Mul(proof.As[i+1]))
		rhs1 = rhs1.Add(gi.Mul(term))
	}
	rhs0 = rhs0.Add(ck.G[i].Mul(proof.As[i]))
	cSquared := c.Mul(c)
	lastTerm := cSquared.Mul(statement.B).Sub(proof.Bs[i].Mul(proof.As[i+1]))
	rhs1 = rhs1.Add(ck.G[i].Mul(lastTerm))
	i++
	rhs0 = rhs0.Add(ck.G[i].Mul(proof.As[i]))

	okLhs0 := lhs0.Equal(rhs0.Add(ck.H.Mul(proof.R)))
	okLhs1 := lhs1.Equal(rhs1.Add(ck.H.Mul(proof.S)))
	return okLhs0 && okLhs1
}
