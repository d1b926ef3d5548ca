// Package scalarfield implements the scalar field F_q that the inner-product
// argument is defined over: a prime-order field with the arithmetic,
// canonical encoding, and batch inversion the core needs from its scalar
// collaborator.
package scalarfield

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Field is a prime-order scalar field Z/qZ. Elements created from one Field
// must not be mixed with elements from another.
type Field struct {
	q       *big.Int
	byteLen int
}

// NewField returns the field Z/qZ. Its canonical encoding width
// (SCALAR_BYTES) is the byte length of q, at least 1.
func NewField(q *big.Int) *Field {
	byteLen := (q.BitLen() + 7) / 8
	if byteLen == 0 {
		byteLen = 1
	}
	return &Field{q: new(big.Int).Set(q), byteLen: byteLen}
}

// ScalarBytes returns SCALAR_BYTES for this field.
func (f *Field) ScalarBytes() int { return f.byteLen }

// Order returns q.
func (f *Field) Order() *big.Int { return new(big.Int).Set(f.q) }

// Zero returns the additive identity.
func (f *Field) Zero() Scalar { return Scalar{f: f, v: big.NewInt(0)} }

// FromUint64 returns u reduced into the field.
func (f *Field) FromUint64(u uint64) Scalar {
	return Scalar{f: f, v: new(big.Int).Mod(new(big.Int).SetUint64(u), f.q)}
}

// FromBigInt reduces x into the field.
func (f *Field) FromBigInt(x *big.Int) Scalar {
	return Scalar{f: f, v: new(big.Int).Mod(x, f.q)}
}

// Random returns a uniformly sampled scalar.
func (f *Field) Random() Scalar {
	v, err := rand.Int(rand.Reader, f.q)
	if err != nil {
		panic(fmt.Sprintf("scalarfield: random: %v", err))
	}
	return Scalar{f: f, v: v}
}

// FromBytesModOrder decodes a big-endian byte slice of any length, reducing
// it modulo q. Inputs need not be canonical.
func (f *Field) FromBytesModOrder(b []byte) Scalar {
	return Scalar{f: f, v: new(big.Int).Mod(new(big.Int).SetBytes(b), f.q)}
}

// Scalar is an element of a Field.
type Scalar struct {
	f *Field
	v *big.Int
}

func (s Scalar) field() *Field {
	if s.f == nil {
		panic("scalarfield: use of zero-value Scalar")
	}
	return s.f
}

// Add returns s + o.
func (s Scalar) Add(o Scalar) Scalar {
	f := s.field()
	return Scalar{f: f, v: new(big.Int).Mod(new(big.Int).Add(s.v, o.v), f.q)}
}

// Sub returns s - o.
func (s Scalar) Sub(o Scalar) Scalar {
	f := s.field()
	return Scalar{f: f, v: new(big.Int).Mod(new(big.Int).Sub(s.v, o.v), f.q)}
}

// Mul returns s * o.
func (s Scalar) Mul(o Scalar) Scalar {
	f := s.field()
	return Scalar{f: f, v: new(big.Int).Mod(new(big.Int).Mul(s.v, o.v), f.q)}
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	f := s.field()
	return Scalar{f: f, v: new(big.Int).Mod(new(big.Int).Neg(s.v), f.q)}
}

// Inverse returns s^-1. Panics if s is zero; challenges squeezed from the
// transcript are non-zero with overwhelming probability, so no special
// case is handled here.
func (s Scalar) Inverse() Scalar {
	f := s.field()
	if s.v.Sign() == 0 {
		panic("scalarfield: inverse of zero")
	}
	return Scalar{f: f, v: new(big.Int).ModInverse(s.v, f.q)}
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool { return s.v.Sign() == 0 }

// Equal reports whether s and o represent the same field element.
func (s Scalar) Equal(o Scalar) bool { return s.v.Cmp(o.v) == 0 }

// BigInt returns the canonical (0 <= x < q) representative of s.
func (s Scalar) BigInt() *big.Int { return new(big.Int).Set(s.v) }

// ToBytes encodes s as a fixed-width big-endian byte slice of length
// Field.ScalarBytes().
func (s Scalar) ToBytes() []byte {
	f := s.field()
	buf := make([]byte, f.byteLen)
	s.v.FillBytes(buf)
	return buf
}

// String renders the decimal value of s, for debugging and transcript
// absorption of auxiliary values.
func (s Scalar) String() string {
	return s.v.String()
}

// BatchInverse inverts every element of xs in place using Montgomery's
// trick: a single modular inversion instead of len(xs). Panics if any
// element is zero, per the same "assumed non-zero with overwhelming
// probability" convention as Inverse.
func BatchInverse(xs []Scalar) {
	n := len(xs)
	if n == 0 {
		return
	}
	f := xs[0].field()

	// prefix[i] = xs[0] * xs[1] * ... * xs[i-1]; prefix[0] = 1.
	prefix := make([]*big.Int, n+1)
	prefix[0] = big.NewInt(1)
	for i := 0; i < n; i++ {
		prefix[i+1] = new(big.Int).Mod(new(big.Int).Mul(prefix[i], xs[i].v), f.q)
	}

	inv := new(big.Int).ModInverse(prefix[n], f.q)
	if inv == nil {
		panic("scalarfield: batch inverse of a zero element")
	}

	for i := n - 1; i >= 0; i-- {
		xs[i].v, inv = new(big.Int).Mod(new(big.Int).Mul(inv, prefix[i]), f.q),
			new(big.Int).Mod(new(big.Int).Mul(inv, xs[i].v), f.q)
	}
}
