package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("NormalizeAngle(%v)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestRandInt_Inclusive(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := randInt(r, 3, 6)
		if v < 3 || v > 6 {
			t.Fatalf("randInt out of range: %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected all of 3..6, saw %v", seen)
	}
}

func TestNewFood_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	glow := 0
	for i := 0; i < 2000; i++ {
		f := NewFood(r, 300, 200)
		if f.X != math.Trunc(f.X) || f.Y != math.Trunc(f.Y) || f.X > 300 || f.Y > 200 {
			t.Fatalf("food position (%v,%v)", f.X, f.Y)
		}
		if f.Glow {
			glow++
			if f.Value != 5 || f.Radius < 6 || f.Radius > 9 {
				t.Fatalf("special food=%+v", f)
			}
		} else if f.Value != 1 || f.Radius < 3 || f.Radius > 6 {
			t.Fatalf("normal food=%+v", f)
		}
	}
	if glow == 0 || glow > 250 {
		t.Fatalf("special food count=%d looks wrong for a 5%% chance", glow)
	}
}
