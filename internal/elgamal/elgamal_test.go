package elgamal

import (
	"testing"

	"github.com/mixnet-shuffle/shuffle/internal/curve"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	sk, pk := GenerateKey()
	m := curve.RandomPoint()
	c := EncryptRandom(pk, m)
	got := Decrypt(sk, c)
	if !got.Equal(m) {
		t.Fatal("Decrypt(Encrypt(m)) != m")
	}
}

func TestPublicKeyForMatchesGenerateKey(t *testing.T) {
	sk, pk := GenerateKey()
	if !PublicKeyFor(sk).Point().Equal(pk.Point()) {
		t.Fatal("PublicKeyFor(sk) != pk returned alongside sk by GenerateKey")
	}
}

func TestAddIsHomomorphic(t *testing.T) {
	sk, pk := GenerateKey()
	m1 := curve.RandomPoint()
	m2 := curve.RandomPoint()
	c1 := Encrypt(pk, m1, curve.RandomScalar())
	c2 := Encrypt(pk, m2, curve.RandomScalar())
	sum := Add(c1, c2)

	got := Decrypt(sk, sum)
	if !got.Equal(m1.Add(m2)) {
		t.Fatal("Decrypt(Add(Encrypt(m1), Encrypt(m2))) != m1 + m2")
	}
}

func TestMultiplyScalesPlaintext(t *testing.T) {
	sk, pk := GenerateKey()
	m := curve.RandomPoint()
	c := Encrypt(pk, m, curve.RandomScalar())
	s := curve.ScalarFromUint64(5)
	scaled := Multiply(s, c)
	got := Decrypt(sk, scaled)
	if !got.Equal(m.Mul(s)) {
		t.Fatal("Decrypt(Multiply(s, Encrypt(m))) != s*m")
	}
}

func TestDotRejectsEmptyAndMismatchedLengths(t *testing.T) {
	_, pk := GenerateKey()
	c := EncryptRandom(pk, curve.RandomPoint())
	if _, err := Dot(nil, nil); err == nil {
		t.Fatal("expected error for empty Dot inputs")
	}
	if _, err := Dot([]curve.Scalar{curve.ScalarFromUint64(1)}, []Ctxt{c, c}); err == nil {
		t.Fatal("expected error for mismatched Dot lengths")
	}
}

func TestDotMatchesRepeatedAddMultiply(t *testing.T) {
	_, pk := GenerateKey()
	n := 4
	a := make([]curve.Scalar, n)
	es := make([]Ctxt, n)
	for i := 0; i < n; i++ {
		a[i] = curve.RandomScalar()
		es[i] = EncryptRandom(pk, curve.RandomPoint())
	}
	dot, err := Dot(a, es)
	if err != nil {
		t.Fatalf("Dot: %v", err)
	}

	acc := Multiply(a[0], es[0])
	for i := 1; i < n; i++ {
		acc = Add(acc, Multiply(a[i], es[i]))
	}
	if !dot.Equal(acc) {
		t.Fatal("Dot did not match manual accumulation")
	}
}

func TestRerandomizePreservesPlaintext(t *testing.T) {
	sk, pk := GenerateKey()
	m := curve.RandomPoint()
	c := EncryptRandom(pk, m)
	r := Rerandomize(pk, c, curve.RandomScalar())
	if c.Equal(r) {
		t.Fatal("Rerandomize returned an unchanged ciphertext")
	}
	if !Decrypt(sk, r).Equal(m) {
		t.Fatal("Rerandomize changed the plaintext")
	}
}
