package direction

import "testing"

func TestTurnRight(t *testing.T) {
	cases := []struct{ from, want DP }{
		{Right, Down}, {Down, Left}, {Left, Up}, {Up, Right},
	}
	for _, tc := range cases {
		if got := tc.from.TurnRight(); got != tc.want {
			t.Errorf("%s.TurnRight() = %s, want %s", tc.from, got, tc.want)
		}
	}
}

func TestRotateClockwiseBy(t *testing.T) {
	cases := []struct {
		n    int
		want DP
	}{
		{0, Right}, {1, Down}, {2, Left}, {3, Up}, {4, Right},
		{5, Down}, {8, Right},
		{-1, Up}, {-2, Left}, {-3, Down}, {-4, Right}, {-8, Right},
	}
	for _, tc := range cases {
		if got := Right.RotateClockwiseBy(tc.n); got != tc.want {
			t.Errorf("Right.RotateClockwiseBy(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestDisplacement(t *testing.T) {
	cases := []struct {
		d          DP
		dRow, dCol int
	}{
		{Right, 0, 1}, {Down, 1, 0}, {Left, 0, -1}, {Up, -1, 0},
	}
	for _, tc := range cases {
		r, c := tc.d.Displacement()
		if r != tc.dRow || c != tc.dCol {
			t.Errorf("%s.Displacement() = (%d,%d), want (%d,%d)", tc.d, r, c, tc.dRow, tc.dCol)
		}
	}
}

func TestFlipBy(t *testing.T) {
	for n := -8; n <= 8; n++ {
		want := Left
		if n%2 != 0 {
			want = Right
		}
		if got := Left.FlipBy(n); got != want {
			t.Errorf("Left.FlipBy(%d) = %s, want %s", n, got, want)
		}
	}
}
