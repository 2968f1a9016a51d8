// Package multiexp implements the multi-exponentiation argument: a
// proof that a ciphertext E is Encrypt(pk, O, rho) plus a linear
// combination Sum(a_i * E_i) of other ciphertexts, where a is exactly
// the vector committed to by C.
package multiexp

import (
	"fmt"

	"github.com/mixnet-shuffle/shuffle/internal/commitment"
	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/elgamal"
	"github.com/mixnet-shuffle/shuffle/internal/mixerr"
	"github.com/mixnet-shuffle/shuffle/internal/transcript"
)

// Statement is "E == Encrypt(pk, O, rho) + Dot(a, Es), C == Commit(ck, r, a)".
type Statement struct {
	Es []elgamal.Ctxt
	E  elgamal.Ctxt
	C  curve.Point
}

// Proof is a non-interactive multi-exponentiation argument transcript.
// Beta and RBeta are returned in the clear: hiding rests on the
// randomness of Tau and the a0 mask, not on keeping Beta secret.
type Proof struct {
	C0, C1 curve.Point
	E      elgamal.Ctxt
	A      []curve.Scalar
	R      curve.Scalar
	Beta   curve.Scalar
	RBeta  curve.Scalar
	T      curve.Scalar
}

func absorbStatement(tr *transcript.Transcript, s Statement) {
	tr.UpdatePoint(s.E.U).UpdatePoint(s.E.V).UpdatePoint(s.C)
	for _, c := range s.Es {
		tr.UpdatePoint(c.U).UpdatePoint(c.V)
	}
}

func challenge(tr *transcript.Transcript, s Statement, c0, c1 curve.Point, e elgamal.Ctxt) curve.Scalar {
	absorbStatement(tr, s)
	tr.UpdatePoint(c0).UpdatePoint(c1).UpdatePoint(e.U).UpdatePoint(e.V)
	return transcript.ScalarFromHash(tr)
}

// Prove creates a multi-exponentiation argument for statement, given
// the witness vector a, its commitment randomness r, and the
// encryption randomness rho used to build statement.E.
func Prove(ck commitment.Key, pk elgamal.PublicKey, tr *transcript.Transcript, statement Statement, a []curve.Scalar, r, rho curve.Scalar) (Proof, error) {
	n := len(a)
	if n == 0 || len(statement.Es) != n {
		return Proof{}, fmt.Errorf("%w: multi-exponentiation argument requires len(a) == len(Es) > 0", mixerr.ErrInvalidArgument)
	}
	if ck.Size() < n {
		return Proof{}, fmt.Errorf("%w: commitment key size %d smaller than n=%d", mixerr.ErrInvalidArgument, ck.Size(), n)
	}

	a0 := make([]curve.Scalar, n)
	for i := range a0 {
		a0[i] = curve.RandomScalar()
	}
	cr0, err := commitment.CommitRandom(ck, a0)
	if err != nil {
		return Proof{}, err
	}

	beta := curve.RandomScalar()
	rBeta := curve.RandomScalar()
	cBeta, err := commitment.Commit(ck, rBeta, []curve.Scalar{beta})
	if err != nil {
		return Proof{}, err
	}

	tau := curve.RandomScalar()
	betaG := curve.MulBase(beta)
	dotA0Es, err := elgamal.Dot(a0, statement.Es)
	if err != nil {
		return Proof{}, err
	}
	e0 := elgamal.Add(elgamal.Encrypt(pk, betaG, tau), dotA0Es)

	c := challenge(tr, statement, cr0.C, cBeta, e0)

	aBar := make([]curve.Scalar, n)
	for i := range aBar {
		aBar[i] = a0[i].Add(a[i].Mul(c))
	}
	rBar := cr0.R.Add(r.Mul(c))
	tBar := tau.Add(rho.Mul(c))

	return Proof{C0: cr0.C, C1: cBeta, E: e0, A: aBar, R: rBar, Beta: beta, RBeta: rBeta, T: tBar}, nil
}

// Verify reports whether proof is valid for statement.
func Verify(ck commitment.Key, pk elgamal.PublicKey, tr *transcript.Transcript, statement Statement, proof Proof) bool {
	n := len(proof.A)
	if n == 0 || len(statement.Es) != n || ck.Size() < n {
		return false
	}

	c := challenge(tr, statement, proof.C0, proof.C1, proof.E)

	lhsC := proof.C0.Add(statement.C.Mul(c))
	rhsC, err := commitment.Commit(ck, proof.R, proof.A)
	if err != nil {
		return false
	}
	if !lhsC.Equal(rhsC) {
		return false
	}

	lhsE := elgamal.Add(proof.E, elgamal.Multiply(c, statement.E))
	dotAEs, err := elgamal.Dot(proof.A, statement.Es)
	if err != nil {
		return false
	}
	rhsE := elgamal.Add(elgamal.Encrypt(pk, curve.MulBase(proof.Beta), proof.T), dotAEs)
	return lhsE.Equal(rhsE)
}
