// Package elgamal implements the additive ElGamal cryptosystem over
// the curve group: (U,V) = (r*g, M + r*pk), with componentwise group
// addition giving a homomorphism over the message.
package elgamal

import (
	"fmt"

	"github.com/mixnet-shuffle/shuffle/internal/curve"
	"github.com/mixnet-shuffle/shuffle/internal/mixerr"
)

// SecretKey is a uniformly sampled scalar.
type SecretKey struct{ sk curve.Scalar }

// PublicKey is pk = sk*g.
type PublicKey struct{ pk curve.Point }

// Ctxt is an ElGamal ciphertext (U,V).
type Ctxt struct {
	U curve.Point
	V curve.Point
}

// GenerateKey samples a fresh secret key and its matching public key.
func GenerateKey() (SecretKey, PublicKey) {
	sk := curve.RandomScalar()
	return SecretKey{sk: sk}, PublicKey{pk: curve.MulBase(sk)}
}

// PublicKeyFor derives the public key matching a secret key.
func PublicKeyFor(sk SecretKey) PublicKey {
	return PublicKey{pk: curve.MulBase(sk.sk)}
}

// Point exposes the raw group element of a public key, e.g. to absorb
// it into a transcript or to build a commitment generator from it.
func (pk PublicKey) Point() curve.Point { return pk.pk }

// Encrypt returns (r*g, m + r*pk) for the given randomness r.
func Encrypt(pk PublicKey, m curve.Point, r curve.Scalar) Ctxt {
	return Ctxt{
		U: curve.MulBase(r),
		V: m.Add(pk.pk.Mul(r)),
	}
}

// EncryptRandom samples r uniformly and calls Encrypt.
func EncryptRandom(pk PublicKey, m curve.Point) Ctxt {
	return Encrypt(pk, m, curve.RandomScalar())
}

// Decrypt recovers the plaintext group element V - sk*U.
func Decrypt(sk SecretKey, c Ctxt) curve.Point {
	return c.V.Sub(c.U.Mul(sk.sk))
}

// Add returns the componentwise sum of two ciphertexts, which
// decrypts to the sum of their plaintexts.
func Add(a, b Ctxt) Ctxt {
	return Ctxt{U: a.U.Add(b.U), V: a.V.Add(b.V)}
}

// Multiply returns the componentwise scalar multiple of a ciphertext,
// which decrypts to the scalar multiple of its plaintext.
func Multiply(s curve.Scalar, c Ctxt) Ctxt {
	return Ctxt{U: c.U.Mul(s), V: c.V.Mul(s)}
}

// Dot computes sum(a_i * E_i) over |a| == |E| >= 1.
func Dot(a []curve.Scalar, e []Ctxt) (Ctxt, error) {
	if len(a) == 0 || len(e) == 0 {
		return Ctxt{}, fmt.Errorf("%w: Dot requires at least one element", mixerr.ErrInvalidArgument)
	}
	if len(a) != len(e) {
		return Ctxt{}, fmt.Errorf("%w: Dot length mismatch: %d scalars, %d ciphertexts", mixerr.ErrInvalidArgument, len(a), len(e))
	}
	acc := Multiply(a[0], e[0])
	for i := 1; i < len(a); i++ {
		acc = Add(acc, Multiply(a[i], e[i]))
	}
	return acc, nil
}

// Rerandomize returns Add(Encrypt(pk, identity, r), c) for a fresh r,
// re-randomizing c without changing its plaintext.
func Rerandomize(pk PublicKey, c Ctxt, r curve.Scalar) Ctxt {
	return Add(Encrypt(pk, curve.Identity(), r), c)
}

// Equal reports whether two ciphertexts are componentwise equal.
func (c Ctxt) Equal(o Ctxt) bool { return c.U.Equal(o.U) && c.V.Equal(o.V) }
