// Package curve is the thin wrapper around the group/field primitives
// the shuffle argument is built on. It fixes the group to ristretto255,
// exposed through github.com/cloudflare/circl/group, and narrows its
// general-purpose Element/Scalar interfaces down to the two concrete
// value types the rest of this module speaks: Scalar and Point.
//
// Byte encodings are fixed-width: a Scalar is 32 bytes, and a Point is
// 1 (infinity flag) + 32 bytes. circl encodes Scalars little-endian
// internally; Scalar.Bytes/ScalarFromBytes below reverse that to the
// big-endian layout the wire format calls for. A Point's 32-byte body is
// circl's ristretto255 encoding, copied unchanged.
package curve

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sync"

	circlGroup "github.com/cloudflare/circl/group"
	"golang.org/x/crypto/sha3"

	"github.com/mixnet-shuffle/shuffle/internal/mixerr"
)

const (
	// ScalarSize is the fixed byte length of a Scalar encoding.
	ScalarSize = 32
	// infinityFlagSize is the single leading byte of a Point encoding
	// that records whether the point is the identity.
	infinityFlagSize = 1
)

var grp = circlGroup.Ristretto255

// pointSize is the fixed byte length of a Point encoding, i.e. the
// infinity flag plus circl's compressed ristretto255 encoding.
var pointSize = infinityFlagSize + func() int {
	enc, err := grp.Identity().MarshalBinary()
	if err != nil {
		panic("curve: ristretto255 identity failed to marshal")
	}
	return len(enc)
}()

// PointSize returns the fixed byte length of a Point encoding.
func PointSize() int { return pointSize }

var initOnce sync.Once
var initErr error

// CurveInit performs the one-time, process-wide initialization of the
// curve and hash primitives. It must be called before any Scalar or
// Point is created. It is idempotent: the first caller pays the cost
// (including the SHA3-256 self-test below), and every subsequent call
// just replays the first result.
func CurveInit() error {
	initOnce.Do(func() {
		initErr = selfTestSHA3()
	})
	return initErr
}

// selfTestSHA3 checks the SHA3-256 backend against three standard
// test vectors (empty string, "abc", and 200 bytes of 0xA3), catching
// a broken byte-absorption path at startup rather than downstream in a
// transcript that silently produces wrong challenges.
func selfTestSHA3() error {
	vectors := []struct {
		input []byte
		want  string
	}{
		{[]byte(""), "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{[]byte("abc"), "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{bytes.Repeat([]byte{0xA3}, 200), "79f38adec5c20307a98ef76e8324afbfd46cfd81b22e3973c65fa1bd9de31787"},
	}
	for _, v := range vectors {
		sum := sha3.Sum256(v.input)
		if fmt.Sprintf("%x", sum) != v.want {
			return fmt.Errorf("%w: sha3-256 self-test failed for a %d-byte input", mixerr.ErrRuntime, len(v.input))
		}
	}
	return nil
}

// Scalar is an element of the ristretto255 scalar field F_q.
type Scalar struct {
	v circlGroup.Scalar
}

func newScalar() circlGroup.Scalar { return grp.NewScalar() }

// RandomScalar samples a uniform nonzero element of F_q.
func RandomScalar() Scalar {
	return Scalar{v: grp.RandomNonZeroScalar(rand.Reader)}
}

// ScalarFromUint64 lifts a small unsigned integer into F_q.
func ScalarFromUint64(x uint64) Scalar {
	s := newScalar()
	s.SetUint64(x)
	return Scalar{v: s}
}

// ZeroScalar returns the additive identity of F_q.
func ZeroScalar() Scalar { return Scalar{v: newScalar()} }

// Add returns a + b.
func (a Scalar) Add(b Scalar) Scalar {
	s := newScalar()
	s.Add(a.v, b.v)
	return Scalar{v: s}
}

// Sub returns a - b.
func (a Scalar) Sub(b Scalar) Scalar {
	s := newScalar()
	s.Sub(a.v, b.v)
	return Scalar{v: s}
}

// Mul returns a * b.
func (a Scalar) Mul(b Scalar) Scalar {
	s := newScalar()
	s.Mul(a.v, b.v)
	return Scalar{v: s}
}

// Neg returns -a.
func (a Scalar) Neg() Scalar {
	s := newScalar()
	s.Neg(a.v)
	return Scalar{v: s}
}

// IsZero reports whether a is the additive identity.
func (a Scalar) IsZero() bool { return a.v.IsZero() }

// Equal reports whether a == b.
func (a Scalar) Equal(b Scalar) bool { return a.v.IsEqual(b.v) }

// Bytes encodes a as 32 big-endian bytes.
func (a Scalar) Bytes() [ScalarSize]byte {
	le, err := a.v.MarshalBinary()
	if err != nil {
		panic("curve: scalar failed to marshal")
	}
	var out [ScalarSize]byte
	reverseInto(out[:], le)
	return out
}

// ScalarFromBytes decodes 32 big-endian bytes into a Scalar, reducing
// mod q as circl's UnmarshalBinary does internally.
func ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, fmt.Errorf("%w: scalar encoding must be %d bytes, got %d", mixerr.ErrCodec, ScalarSize, len(b))
	}
	le := make([]byte, ScalarSize)
	reverseInto(le, b)
	s := newScalar()
	if err := s.UnmarshalBinary(le); err != nil {
		return Scalar{}, fmt.Errorf("%w: %v", mixerr.ErrCodec, err)
	}
	return Scalar{v: s}, nil
}

// Point is an element of the ristretto255 group G, or its identity O.
type Point struct {
	v circlGroup.Element
}

func newElement() circlGroup.Element { return grp.NewElement() }

// Generator returns the group's fixed generator g.
func Generator() Point { return Point{v: grp.Generator()} }

// Identity returns the group's identity element O.
func Identity() Point { return Point{v: grp.Identity()} }

// RandomPoint samples a uniform element of G with unknown discrete log.
// Used only for commitment-key setup; no trapdoor is retained.
func RandomPoint() Point { return Point{v: grp.RandomElement(rand.Reader)} }

// HashToPoint deterministically, verifiably derives a group element
// with unknown discrete log from a domain-separated label. Used to
// build commitment-key generators without a trusted setup.
func HashToPoint(label string) Point {
	return Point{v: grp.HashToElement([]byte(label), []byte("shuffle-argument-ck"))}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	e := newElement()
	e.Add(p.v, q.v)
	return Point{v: e}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	neg := newElement()
	neg.Neg(q.v)
	e := newElement()
	e.Add(p.v, neg)
	return Point{v: e}
}

// Negate returns -p.
func (p Point) Negate() Point {
	e := newElement()
	e.Neg(p.v)
	return Point{v: e}
}

// Mul returns s*p.
func (p Point) Mul(s Scalar) Point {
	e := newElement()
	e.Mul(p.v, s.v)
	return Point{v: e}
}

// MulBase returns s*g, the scalar multiple of the group's generator.
func MulBase(s Scalar) Point {
	e := newElement()
	e.MulGen(s.v)
	return Point{v: e}
}

// Equal reports whether p == q.
func (p Point) Equal(q Point) bool { return p.v.IsEqual(q.v) }

// IsIdentity reports whether p is the group's identity element.
func (p Point) IsIdentity() bool { return p.v.IsIdentity() }

// Bytes encodes p with a leading 1-byte infinity flag (1 = identity, 0
// = an affine/compressed body follows).
func (p Point) Bytes() []byte {
	out := make([]byte, pointSize)
	if p.v.IsIdentity() {
		out[0] = 1
		return out
	}
	body, err := p.v.MarshalBinary()
	if err != nil {
		panic("curve: point failed to marshal")
	}
	out[0] = 0
	copy(out[1:], body)
	return out
}

// PointFromBytes decodes a Point produced by Bytes.
func PointFromBytes(b []byte) (Point, error) {
	if len(b) != pointSize {
		return Point{}, fmt.Errorf("%w: point encoding must be %d bytes, got %d", mixerr.ErrCodec, pointSize, len(b))
	}
	if b[0] == 1 {
		return Identity(), nil
	}
	if b[0] != 0 {
		return Point{}, fmt.Errorf("%w: invalid infinity flag byte %d", mixerr.ErrCodec, b[0])
	}
	e := newElement()
	if err := e.UnmarshalBinary(b[1:]); err != nil {
		return Point{}, fmt.Errorf("%w: %v", mixerr.ErrCodec, err)
	}
	return Point{v: e}, nil
}

func reverseInto(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = src[n-1-i]
	}
}
