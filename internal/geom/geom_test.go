package geom

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	v := Vec3{1, 2, 3}
	u := Vec3{4, -2, 0.5}

	if got := v.Add(u); got != (Vec3{5, 0, 3.5}) {
		t.Errorf("Add = %+v", got)
	}
	if got := v.Sub(u); got != (Vec3{-3, 4, 2.5}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := v.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := v.Mul(u); got != (Vec3{4, -4, 1.5}) {
		t.Errorf("Mul = %+v", got)
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(Vec3{0, 10, -5}, Vec3{2, 4, 6})
	if b.Min != (Vec3{-1, 8, -8}) || b.Max != (Vec3{1, 12, -2}) {
		t.Errorf("BoxAround = %+v", b)
	}
	if got := b.Center(); got != (Vec3{0, 10, -5}) {
		t.Errorf("Center = %+v", got)
	}
	if got := b.Size(); got != (Vec3{2, 4, 6}) {
		t.Errorf("Size = %+v", got)
	}
}

func TestBoxContains(t *testing.T) {
	b := Box{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	tests := []struct {
		name string
		p    Vec3
		want bool
	}{
		{"center", Vec3{0, 0, 0}, true},
		{"corner", Vec3{1, 1, 1}, true},
		{"face", Vec3{-1, 0, 0}, true},
		{"outside x", Vec3{1.01, 0, 0}, false},
		{"outside z", Vec3{0, 0, -2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoxIntersects(t *testing.T) {
	base := Box{Min: Vec3{0, 0, 0}, Max: Vec3{2, 2, 2}}
	tests := []struct {
		name string
		o    Box
		want bool
	}{
		{"identical", base, true},
		{"contained", Box{Min: Vec3{0.5, 0.5, 0.5}, Max: Vec3{1, 1, 1}}, true},
		{"touching faces", Box{Min: Vec3{2, 0, 0}, Max: Vec3{3, 2, 2}}, true},
		{"disjoint x", Box{Min: Vec3{2.1, 0, 0}, Max: Vec3{3, 2, 2}}, false},
		{"overlap x only", Box{Min: Vec3{1, 3, 3}, Max: Vec3{3, 4, 4}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.o); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.o.Intersects(base); got != tt.want {
				t.Errorf("Intersects (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 6, 0); got != 2 {
		t.Errorf("Lerp f=0 = %g", got)
	}
	if got := Lerp(2, 6, 1); got != 6 {
		t.Errorf("Lerp f=1 = %g", got)
	}
	if got := Lerp(2, 6, 0.25); got != 3 {
		t.Errorf("Lerp f=0.25 = %g", got)
	}
	if got := Lerp(2, 6, 1.5); got != 8 {
		t.Errorf("Lerp extrapolation = %g", got)
	}
}

func TestLerpVec3(t *testing.T) {
	a := Vec3{0, 10, -4}
	b := Vec3{2, 20, 4}
	got := LerpVec3(a, b, 0.5)
	want := Vec3{1, 15, 0}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || math.Abs(got.Z-want.Z) > 1e-12 {
		t.Errorf("LerpVec3 = %+v, want %+v", got, want)
	}
}
