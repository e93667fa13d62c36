package command

import "testing"

func TestLookup(t *testing.T) {
	cases := []struct {
		hue, light int
		want       Command
	}{
		{0, 1, Push}, {0, 2, Pop},
		{1, 0, Add}, {1, 1, Subtract}, {1, 2, Multiply},
		{2, 0, Divide}, {2, 1, Mod}, {2, 2, Not},
		{3, 0, Greater}, {3, 1, Pointer}, {3, 2, Switch},
		{4, 0, Duplicate}, {4, 1, Roll}, {4, 2, InNumber},
		{5, 0, InChar}, {5, 1, OutNumber}, {5, 2, OutChar},
	}
	for _, tc := range cases {
		got, ok := Lookup(tc.hue, tc.light)
		if !ok || got != tc.want {
			t.Errorf("Lookup(%d, %d) = (%s, %v), want (%s, true)", tc.hue, tc.light, got, ok, tc.want)
		}
	}
}

func TestLookupSameBlock(t *testing.T) {
	if _, ok := Lookup(0, 0); ok {
		t.Error("Lookup(0, 0) named a command, want none")
	}
}
