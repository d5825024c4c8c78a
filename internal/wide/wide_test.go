package wide

import "testing"

func TestF32x4Ops(t *testing.T) {
	a := F32x4{1, 2, 3, 4}
	b := F32x4{0.5, 0.5, 2, 0}

	if got := a.Add(b); got != (F32x4{1.5, 2.5, 5, 4}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Mul(b); got != (F32x4{0.5, 1, 6, 0}) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Scale(2); got != (F32x4{2, 4, 6, 8}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.MulAdd(b, F32x4{1, 1, 1, 1}); got != (F32x4{1.5, 2, 7, 1}) {
		t.Errorf("MulAdd = %v", got)
	}
	if got := (F32x4{-1, 0.5, 2, 1}).Clamp(0, 1); got != (F32x4{0, 0.5, 1, 1}) {
		t.Errorf("Clamp = %v", got)
	}
}

func TestSplats(t *testing.T) {
	for _, v := range Splat4(3) {
		if v != 3 {
			t.Fatalf("Splat4 = %v", Splat4(3))
		}
	}
	for _, v := range Splat8(7) {
		if v != 7 {
			t.Fatalf("Splat8 = %v", Splat8(7))
		}
	}
	for _, v := range SplatU16(9) {
		if v != 9 {
			t.Fatalf("SplatU16 = %v", SplatU16(9))
		}
	}
}

func TestF32x8MulAdd(t *testing.T) {
	v := Splat8(2)
	got := v.MulAdd(Splat8(0.5), Splat8(1))
	for _, x := range got {
		if x != 2 {
			t.Fatalf("MulAdd = %v, want all 2", got)
		}
	}
}

func TestU16x16BytesRoundTrip(t *testing.T) {
	src := make([]uint8, 16)
	for i := range src {
		src[i] = uint8(i * 16)
	}
	v := LoadBytes(src)
	dst := make([]uint8, 16)
	v.StoreBytes(dst)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("byte %d: got %d, want %d", i, dst[i], src[i])
		}
	}
}

func TestMulDiv255(t *testing.T) {
	// The shift approximation must stay within one unit of true division
	// for every pair of 8-bit inputs, and be exact at the endpoints.
	for a := 0; a <= 255; a++ {
		for b := 0; b <= 255; b++ {
			got := float64(SplatU16(uint16(a)).MulDiv255(SplatU16(uint16(b)))[0])
			exact := float64(a*b) / 255
			d := got - exact
			if d < 0 {
				d = -d
			}
			if d >= 1 {
				t.Fatalf("MulDiv255(%d, %d) = %g, exact %g", a, b, got, exact)
			}
		}
	}
	for _, a := range []uint16{0, 17, 128, 255} {
		if got := SplatU16(a).MulDiv255(SplatU16(255))[0]; got != a {
			t.Fatalf("MulDiv255(%d, 255) = %d, want %d", a, got, a)
		}
		if got := SplatU16(a).MulDiv255(SplatU16(0))[0]; got != 0 {
			t.Fatalf("MulDiv255(%d, 0) = %d, want 0", a, got)
		}
	}
}

func TestU16x16InvClamp(t *testing.T) {
	v := SplatU16(200)
	if got := v.Inv(); got[0] != 55 {
		t.Errorf("Inv(200) = %d, want 55", got[0])
	}
	if got := SplatU16(300).Clamp(255); got[0] != 255 {
		t.Errorf("Clamp(300) = %d, want 255", got[0])
	}
}
