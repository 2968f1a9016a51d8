// Package sigma implements the DLog and DLogEq Fiat-Shamir arguments:
// standard Schnorr-style identification schemes made non-interactive
// via a shared Transcript. Neither argument is used inside the
// shuffle argument directly, but they share its transcript idiom and
// are part of the public contract.
package sigma

import (
	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/transcript"
)

// DLogStatement is "I know x such that x*B == P".
type DLogStatement struct {
	B curve.Point
	P curve.Point
}

// DLogProof is the proof for a DLogStatement.
type DLogProof struct {
	T curve.Point
	R curve.Scalar
}

func dlogChallenge(tr *transcript.Transcript, b, p, t curve.Point) curve.Scalar {
	tr.UpdatePoint(b).UpdatePoint(p).UpdatePoint(t)
	return transcript.ScalarFromHash(tr)
}

// ProveDLog creates a proof of knowledge of the witness w such that
// w*statement.B == statement.P.
func ProveDLog(statement DLogStatement, tr *transcript.Transcript, w curve.Scalar) DLogProof {
	v := curve.RandomScalar()
	t := statement.B.Mul(v)
	c := dlogChallenge(tr, statement.B, statement.P, t)
	r := v.Sub(c.Mul(w))
	return DLogProof{T: t, R: r}
}

// VerifyDLog reports whether proof is valid for statement.
func VerifyDLog(statement DLogStatement, tr *transcript.Transcript, proof DLogProof) bool {
	c := dlogChallenge(tr, statement.B, statement.P, proof.T)
	lhs := statement.P.Mul(c).Add(statement.B.Mul(proof.R))
	return lhs.Equal(proof.T)
}

// DLogEqStatement is "I know x such that x*G == A and x*H == B".
type DLogEqStatement struct {
	G curve.Point
	A curve.Point
	H curve.Point
	B curve.Point
}

// DLogEqProof is the proof for a DLogEqStatement.
type DLogEqProof struct {
	T curve.Point
	K curve.Point
	R curve.Scalar
}

func dlogEqChallenge(tr *transcript.Transcript, g, a, h, b, t, k curve.Point) curve.Scalar {
	tr.UpdatePoint(g).UpdatePoint(a).UpdatePoint(h).UpdatePoint(b).UpdatePoint(t).UpdatePoint(k)
	return transcript.ScalarFromHash(tr)
}

// ProveDLogEq creates a proof of knowledge of the shared witness w
// such that w*statement.G == statement.A and w*statement.H == statement.B.
func ProveDLogEq(statement DLogEqStatement, tr *transcript.Transcript, w curve.Scalar) DLogEqProof {
	v := curve.RandomScalar()
	t := statement.G.Mul(v)
	k := statement.H.Mul(v)
	c := dlogEqChallenge(tr, statement.G, statement.A, statement.H, statement.B, t, k)
	r := v.Sub(c.Mul(w))
	return DLogEqProof{T: t, K: k, R: r}
}

// VerifyDLogEq reports whether proof is valid for statement.
func VerifyDLogEq(statement DLogEqStatement, tr *transcript.Transcript, proof DLogEqProof) bool {
	c := dlogEqChallenge(tr, statement.G, statement.A, statement.H, statement.B, proof.T, proof.K)
	rG := statement.G.Mul(proof.R)
	rH := statement.H.Mul(proof.R)
	tMinuscA := proof.T.Sub(statement.A.Mul(c))
	kMinuscB := proof.K.Sub(statement.B.Mul(c))
	return rG.Equal(tMinuscA) && rH.Equal(kMinuscB)
}
