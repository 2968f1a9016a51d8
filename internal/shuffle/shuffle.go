// Package shuffle implements the shuffle argument: given a vector of
// ElGamal ciphertexts, produce a permutation of re-randomizations of
// them plus a non-interactive proof of that fact, composed from a
// product argument and a multi-exponentiation argument over a shared
// Fiat-Shamir transcript.
package shuffle

import (
	"fmt"

	"github.com/mixnet-shuffle/shuffle/internal/commitment"
	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/elgamal"
	"github.com/mixnet-shuffle/shuffle/internal/mixerr"
	"github.com/mixnet-shuffle/shuffle/internal/multiexp"
	"github.com/mixnet-shuffle/shuffle/internal/prg"
	"github.com/mixnet-shuffle/shuffle/internal/product"
	"github.com/mixnet-shuffle/shuffle/internal/transcript"
)

// Permutation is a bijection on [0,n), stored as the sequence of
// source indices: Permutation[i] is the source index that lands at
// position i.
type Permutation []int

// CreatePermutation samples a uniform permutation of the given size by
// Fisher-Yates, drawing each swap index from p.
func CreatePermutation(size int, p *prg.PRG) Permutation {
	if size == 0 {
		return Permutation{}
	}
	perm := make(Permutation, size)
	for i := range perm {
		perm[i] = i
	}
	for i := size - 1; i >= 0; i-- {
		j := int(p.NextWord() % uint64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func permuteCtxt(es []elgamal.Ctxt, p Permutation) []elgamal.Ctxt {
	out := make([]elgamal.Ctxt, len(es))
	for i, idx := range p {
		out[i] = es[idx]
	}
	return out
}

func permuteScalar(s []curve.Scalar, p Permutation) []curve.Scalar {
	out := make([]curve.Scalar, len(s))
	for i, idx := range p {
		out[i] = s[idx]
	}
	return out
}

func permutationAsScalars(p Permutation) []curve.Scalar {
	out := make([]curve.Scalar, len(p))
	for i, v := range p {
		out[i] = curve.ScalarFromUint64(uint64(v))
	}
	return out
}

// expSuccessive computes {x, x^2, ..., x^n}.
func expSuccessive(x curve.Scalar, n int) []curve.Scalar {
	out := make([]curve.Scalar, n)
	out[0] = x
	for i := 1; i < n; i++ {
		out[i] = out[i-1].Mul(x)
	}
	return out
}

func negateInnerProduct(a, b []curve.Scalar) curve.Scalar {
	acc := curve.ZeroScalar()
	for i := range a {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc.Neg()
}

// Proof bundles the permuted, re-randomized ciphertexts and the two
// sub-arguments that prove they are a permutation of
// re-randomizations of the statement's input ciphertexts.
type Proof struct {
	Permuted []elgamal.Ctxt
	Ca       curve.Point
	Cb       curve.Point
	Product  product.Proof
	MultiExp multiexp.Proof
}

// Shuffler orchestrates one shuffle+proof round and its verifier. It
// owns a PRG (serial use only, not safe for concurrent Shuffle calls)
// and the ElGamal public key the ciphertexts are encrypted under.
type Shuffler struct {
	ck  commitment.Key
	pk  elgamal.PublicKey
	prg *prg.PRG
}

// New builds a Shuffler. ck must support at least as many coordinates
// as any ciphertext vector later passed to Shuffle or VerifyShuffle.
func New(ck commitment.Key, pk elgamal.PublicKey, p *prg.PRG) *Shuffler {
	return &Shuffler{ck: ck, pk: pk, prg: p}
}

func challenge1(tr *transcript.Transcript, es, pEs []elgamal.Ctxt, ca curve.Point) curve.Scalar {
	for _, e := range es {
		tr.UpdatePoint(e.U).UpdatePoint(e.V)
	}
	for _, e := range pEs {
		tr.UpdatePoint(e.U).UpdatePoint(e.V)
	}
	tr.UpdatePoint(ca)
	return transcript.ScalarFromHash(tr)
}

func challenge2(tr *transcript.Transcript, x curve.Scalar, cb curve.Point) curve.Scalar {
	tr.UpdateScalar(x).UpdatePoint(cb)
	return transcript.ScalarFromHash(tr)
}

func challenge3(tr *transcript.Transcript, y curve.Scalar) curve.Scalar {
	tr.UpdateScalar(y)
	return transcript.ScalarFromHash(tr)
}

// Shuffle produces a permutation of re-randomizations of es, along
// with a proof of that fact, absorbing/deriving challenges from tr.
func (s *Shuffler) Shuffle(es []elgamal.Ctxt, tr *transcript.Transcript) (Proof, error) {
	n := len(es)
	if n < 2 {
		return Proof{}, fmt.Errorf("%w: shuffle requires at least 2 ciphertexts, got %d", mixerr.ErrInvalidArgument, n)
	}
	if s.ck.Size() < n {
		return Proof{}, fmt.Errorf("%w: commitment key size %d smaller than n=%d", mixerr.ErrInvalidArgument, s.ck.Size(), n)
	}

	perm := CreatePermutation(n, s.prg)

	rho := make([]curve.Scalar, n)
	for i := range rho {
		rho[i] = curve.RandomScalar()
	}
	permutedInput := permuteCtxt(es, perm)
	pEs := make([]elgamal.Ctxt, n)
	for i := range pEs {
		pEs[i] = elgamal.Rerandomize(s.pk, permutedInput[i], rho[i])
	}

	a := permutationAsScalars(perm)
	ca, err := commitment.CommitRandom(s.ck, a)
	if err != nil {
		return Proof{}, err
	}

	x := challenge1(tr, es, pEs, ca.C)

	xexp := expSuccessive(x, n)
	b := permuteScalar(xexp, perm)
	cb, err := commitment.CommitRandom(s.ck, b)
	if err != nil {
		return Proof{}, err
	}

	y := challenge2(tr, x, cb.C)
	z := challenge3(tr, y)

	d := make([]curve.Scalar, n)
	var prodVal curve.Scalar
	for i := 0; i < n; i++ {
		d[i] = y.Mul(a[i]).Add(b[i]).Sub(z)
		if i == 0 {
			prodVal = d[0]
		} else {
			prodVal = prodVal.Mul(d[i])
		}
	}
	t := y.Mul(ca.R).Add(cb.R)
	cdz, err := commitment.Commit(s.ck, t, d)
	if err != nil {
		return Proof{}, err
	}

	productProof, err := product.Prove(s.ck, tr, product.Statement{C: cdz, B: prodVal}, d, t)
	if err != nil {
		return Proof{}, err
	}

	rhoHat := negateInnerProduct(rho, b)
	dotB, err := elgamal.Dot(b, pEs)
	if err != nil {
		return Proof{}, err
	}
	ex := elgamal.Add(elgamal.Encrypt(s.pk, curve.Identity(), rhoHat), dotB)

	multiExpProof, err := multiexp.Prove(s.ck, s.pk, tr, multiexp.Statement{Es: pEs, E: ex, C: cb.C}, b, cb.R, rhoHat)
	if err != nil {
		return Proof{}, err
	}

	return Proof{Permuted: pEs, Ca: ca.C, Cb: cb.C, Product: productProof, MultiExp: multiExpProof}, nil
}

// VerifyShuffle reports whether proof is a valid shuffle of es.
func (s *Shuffler) VerifyShuffle(es []elgamal.Ctxt, proof Proof, tr *transcript.Transcript) bool {
	n := len(es)
	if n < 2 || len(proof.Permuted) != n || s.ck.Size() < n {
		return false
	}

	x := challenge1(tr, es, proof.Permuted, proof.Ca)
	y := challenge2(tr, x, proof.Cb)
	z := challenge3(tr, y)

	cz := commitment.CommitConstant(s.ck, z.Neg(), n)
	cd := proof.Ca.Mul(y).Add(proof.Cb)
	cdz := cd.Add(cz)

	xexp := make([]curve.Scalar, n)
	xexp[0] = x
	prodVal := x.Sub(z)
	for i := 1; i < n; i++ {
		xexp[i] = xexp[i-1].Mul(x)
		term := curve.ScalarFromUint64(uint64(i)).Mul(y).Add(xexp[i]).Sub(z)
		prodVal = prodVal.Mul(term)
	}

	if !product.Verify(s.ck, tr, product.Statement{C: cdz, B: prodVal}, proof.Product) {
		return false
	}

	ex, err := elgamal.Dot(xexp, es)
	if err != nil {
		return false
	}

	return multiexp.Verify(s.ck, s.pk, tr, multiexp.Statement{Es: proof.Permuted, E: ex, C: proof.Cb}, proof.MultiExp)
}
