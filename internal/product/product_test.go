package product

import (
	"testing"

	"github.com/mixnet-shuffle/shuffle/internal/commitment"
	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/transcript"
)

func productOf(a []curve.Scalar) curve.Scalar {
	acc := a[0]
	for i := 1; i < len(a); i++ {
		acc = acc.Mul(a[i])
	}
	return acc
}

func TestProveVerifyRoundTrip(t *testing.T) {
	ck, err := commitment.CreateKey(5)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	a := make([]curve.Scalar, 5)
	for i := range a {
		a[i] = curve.ScalarFromUint64(uint64(i + 2))
	}
	r := curve.RandomScalar()
	c, err := commitment.Commit(ck, r, a)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	b := productOf(a)
	statement := Statement{C: c, B: b}

	proof, err := Prove(ck, transcript.New(), statement, a, r)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !Verify(ck, transcript.New(), statement, proof) {
		t.Fatal("valid product argument failed to verify")
	}
}

func TestProveRejectsShortVector(t *testing.T) {
	ck, err := commitment.CreateKey(5)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	a := []curve.Scalar{curve.ScalarFromUint64(1)}
	if _, err := Prove(ck, transcript.New(), Statement{}, a, curve.RandomScalar()); err == nil {
		t.Fatal("expected error for a vector of length 1")
	}
}

func TestProveRejectsUndersizedKey(t *testing.T) {
	ck, err := commitment.CreateKey(2)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	a := []curve.Scalar{curve.ScalarFromUint64(1), curve.ScalarFromUint64(2), curve.ScalarFromUint64(3)}
	if _, err := Prove(ck, transcript.New(), Statement{}, a, curve.RandomScalar()); err == nil {
		t.Fatal("expected error for a commitment key smaller than the witness")
	}
}

func TestVerifyRejectsWrongProduct(t *testing.T) {
	ck, err := commitment.CreateKey(4)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	a := []curve.Scalar{curve.ScalarFromUint64(2), curve.ScalarFromUint64(3), curve.ScalarFromUint64(4), curve.ScalarFromUint64(5)}
	r := curve.RandomScalar()
	c, err := commitment.Commit(ck, r, a)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	wrongB := productOf(a).Add(curve.ScalarFromUint64(1))
	statement := Statement{C: c, B: wrongB}

	proof, err := Prove(ck, transcript.New(), Statement{C: c, B: productOf(a)}, a, r)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if Verify(ck, transcript.New(), statement, proof) {
		t.Fatal("product argument verified against a tampered public product")
	}
}

func TestProveVerifyRoundTripAtScale(t *testing.T) {
	const n = 100
	ck, err := commitment.CreateKey(n)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	a := make([]curve.Scalar, n)
	for i := range a {
		a[i] = curve.RandomScalar()
	}
	r := curve.RandomScalar()
	c, err := commitment.Commit(ck, r, a)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	statement := Statement{C: c, B: productOf(a)}

	proof, err := Prove(ck, transcript.New(), statement, a, r)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !Verify(ck, transcript.New(), statement, proof) {
		t.Fatal("valid n=100 product argument failed to verify")
	}

	perturbed := make([]curve.Scalar, n)
	copy(perturbed, a)
	perturbed[n/2] = perturbed[n/2].Add(curve.ScalarFromUint64(1))
	perturbedProof, err := Prove(ck, transcript.New(), statement, perturbed, r)
	if err != nil {
		t.Fatalf("Prove with perturbed witness: %v", err)
	}
	if Verify(ck, transcript.New(), statement, perturbedProof) {
		t.Fatal("product argument verified a proof built from a witness not matching its own commitment")
	}
}

func TestVerifyRejectsMismatchedTranscript(t *testing.T) {
	ck, err := commitment.CreateKey(3)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	a := []curve.Scalar{curve.ScalarFromUint64(2), curve.ScalarFromUint64(3), curve.ScalarFromUint64(4)}
	r := curve.RandomScalar()
	c, err := commitment.Commit(ck, r, a)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	statement := Statement{C: c, B: productOf(a)}

	proof, err := Prove(ck, transcript.New(), statement, a, r)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifierTr := transcript.New()
	verifierTr.UpdateBytes([]byte("some other absorbed statement"))
	if Verify(ck, verifierTr, statement, proof) {
		t.Fatal("product argument verified with a mismatched transcript prefix")
	}
}
