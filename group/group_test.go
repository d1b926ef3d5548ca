package group

import (
	"math/big"
	"testing"
)

var allGroups = []Group{
	Ristretto255(),
	P256(),
	P384(),
}

func TestGroup(t *testing.T) {
	const testTimes = 1 << 6
	for _, g := range allGroups {
		g := g
		t.Run(g.Name()+"/Negate", func(tt *testing.T) { testNegate(tt, testTimes, g) })
		t.Run(g.Name()+"/Order", func(tt *testing.T) { testOrder(tt, testTimes, g) })
		t.Run(g.Name()+"/Set", func(tt *testing.T) { testSet(tt, g) })
		t.Run(g.Name()+"/Scale", func(tt *testing.T) { testScale(tt, g) })
		t.Run(g.Name()+"/BinaryRoundTrip", func(tt *testing.T) { testBinaryRoundTrip(tt, testTimes, g) })
		t.Run(g.Name()+"/JSONRoundTrip", func(tt *testing.T) { testJSONRoundTrip(tt, g) })
		t.Run(g.Name()+"/PointBytes", func(tt *testing.T) { testPointBytes(tt, g) })
	}
}

func testNegate(t *testing.T, testTimes int, g Group) {
	Q := g.Element()
	for i := 0; i < testTimes; i++ {
		P := g.Random()
		Q.Set(P)
		Q.Subtract(Q, P)
		if !Q.IsIdentity() {
			t.Error("P - P is not the identity")
		}
	}
}

func testOrder(t *testing.T, testTimes int, g Group) {
	I := g.Identity()
	Q := g.Element()
	minusOne := big.NewInt(-1)
	for i := 0; i < testTimes; i++ {
		P := g.Random()
		Q.Scale(P, minusOne)
		Q.Add(Q, P)
		if !Q.IsEqual(I) {
			t.Error("-P + P is not the identity")
		}
	}
}

func testSet(t *testing.T, g Group) {
	P := g.Random()
	Q := g.Element()
	Q.Set(P)
	if !Q.IsEqual(P) {
		t.Error("Set did not produce an equal element")
	}
}

func testScale(t *testing.T, g Group) {
	doubled := g.Element().BaseScale(big.NewInt(2))
	added := g.Element().Add(g.Generator(), g.Generator())
	if !doubled.IsEqual(added) {
		t.Error("2*G != G+G")
	}

	tripledByScale := g.Element().BaseScale(big.NewInt(3))
	tripledByAdd := g.Element().Add(doubled, g.Generator())
	if !tripledByScale.IsEqual(tripledByAdd) {
		t.Error("3*G != 2*G+G")
	}
}

func testBinaryRoundTrip(t *testing.T, testTimes int, g Group) {
	for i := 0; i < testTimes; i++ {
		P := g.Random()
		b, err := P.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary: %v", err)
		}
		if len(b) != g.PointBytes() {
			t.Fatalf("MarshalBinary length = %d, want %d", len(b), g.PointBytes())
		}
		Q := g.Element()
		if err := Q.UnmarshalBinary(b); err != nil {
			t.Fatalf("UnmarshalBinary: %v", err)
		}
		if !Q.IsEqual(P) {
			t.Error("binary round trip did not recover the original element")
		}
	}
}

func testJSONRoundTrip(t *testing.T, g Group) {
	P := g.Random()
	b, err := P.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	Q := g.Element()
	if err := Q.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !Q.IsEqual(P) {
		t.Error("JSON round trip did not recover the original element")
	}
}

func testPointBytes(t *testing.T, g Group) {
	if g.PointBytes() <= 0 {
		t.Fatalf("PointBytes = %d, want > 0", g.PointBytes())
	}
}

func TestUnmarshalBinaryRejectsGarbage(t *testing.T) {
	for _, g := range allGroups {
		garbage := make([]byte, g.PointBytes())
		for i := range garbage {
			garbage[i] = 0xff
		}
		Q := g.Element()
		if Q.UnmarshalBinary(garbage) == nil {
			t.Errorf("%s: UnmarshalBinary accepted an all-0xff encoding", g.Name())
		}
	}
}
