package multiexp

import (
	"testing"

	"github.com/mixnet-shuffle/shuffle/internal/commitment"
	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/elgamal"
	"github.com/mixnet-shuffle/shuffle/internal/transcript"
)

func buildStatement(t *testing.T, ck commitment.Key, pk elgamal.PublicKey, n int) (Statement, []curve.Scalar, curve.Scalar, curve.Scalar) {
	t.Helper()
	a := make([]curve.Scalar, n)
	es := make([]elgamal.Ctxt, n)
	for i := range a {
		a[i] = curve.RandomScalar()
		es[i] = elgamal.EncryptRandom(pk, curve.RandomPoint())
	}
	r := curve.RandomScalar()
	c, err := commitment.Commit(ck, r, a)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	rho := curve.RandomScalar()
	dot, err := elgamal.Dot(a, es)
	if err != nil {
		t.Fatalf("Dot: %v", err)
	}
	e := elgamal.Add(elgamal.Encrypt(pk, curve.Identity(), rho), dot)
	return Statement{Es: es, E: e, C: c}, a, r, rho
}

func TestProveVerifyRoundTrip(t *testing.T) {
	ck, err := commitment.CreateKey(4)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	_, pk := elgamal.GenerateKey()
	statement, a, r, rho := buildStatement(t, ck, pk, 4)

	proof, err := Prove(ck, pk, transcript.New(), statement, a, r, rho)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !Verify(ck, pk, transcript.New(), statement, proof) {
		t.Fatal("valid multi-exponentiation argument failed to verify")
	}
}

func TestProveRejectsLengthMismatch(t *testing.T) {
	ck, err := commitment.CreateKey(4)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	_, pk := elgamal.GenerateKey()
	a := []curve.Scalar{curve.RandomScalar(), curve.RandomScalar()}
	es := []elgamal.Ctxt{elgamal.EncryptRandom(pk, curve.RandomPoint())}
	if _, err := Prove(ck, pk, transcript.New(), Statement{Es: es}, a, curve.RandomScalar(), curve.RandomScalar()); err == nil {
		t.Fatal("expected error for len(a) != len(Es)")
	}
}

func TestProveVerifyRoundTripAtScale(t *testing.T) {
	const n = 100
	ck, err := commitment.CreateKey(n)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	_, pk := elgamal.GenerateKey()
	statement, a, r, rho := buildStatement(t, ck, pk, n)

	proof, err := Prove(ck, pk, transcript.New(), statement, a, r, rho)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !Verify(ck, pk, transcript.New(), statement, proof) {
		t.Fatal("valid n=100 multi-exponentiation argument failed to verify")
	}

	tampered := statement
	tampered.E = elgamal.Add(statement.E, elgamal.EncryptRandom(pk, curve.Generator()))
	if Verify(ck, pk, transcript.New(), tampered, proof) {
		t.Fatal("multi-exponentiation argument verified after replacing E with E plus a fresh encryption of g")
	}
}

func TestVerifyRejectsTamperedStatement(t *testing.T) {
	ck, err := commitment.CreateKey(3)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	_, pk := elgamal.GenerateKey()
	statement, a, r, rho := buildStatement(t, ck, pk, 3)

	proof, err := Prove(ck, pk, transcript.New(), statement, a, r, rho)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	tampered := statement
	tampered.E = elgamal.Add(statement.E, elgamal.EncryptRandom(pk, curve.Generator()))
	if Verify(ck, pk, transcript.New(), tampered, proof) {
		t.Fatal("multi-exponentiation argument verified against a tampered statement")
	}
}
