package input

import (
	"strings"
	"testing"
)

func TestReadCharAndInteger(t *testing.T) {
	r := New(strings.NewReader(" he llo abc abc -100 15 a20   "))

	wantChars := []rune{'h', 'e', 'l', 'l', 'o'}
	for _, want := range wantChars {
		got, ok := r.ReadChar()
		if !ok || got != want {
			t.Fatalf("ReadChar() = (%q, %v), want (%q, true)", got, ok, want)
		}
	}

	// "abc" is not a valid integer; the token is consumed anyway, so each of
	// the two "abc" tokens costs one failed read.
	for i := 0; i < 2; i++ {
		if _, ok := r.ReadInteger(); ok {
			t.Fatal("ReadInteger() on \"abc\" succeeded, want failure")
		}
	}
	if n, ok := r.ReadInteger(); !ok || n != -100 {
		t.Fatalf("ReadInteger() = (%d, %v), want (-100, true)", n, ok)
	}
	if n, ok := r.ReadInteger(); !ok || n != 15 {
		t.Fatalf("ReadInteger() = (%d, %v), want (15, true)", n, ok)
	}
	if got, ok := r.ReadChar(); !ok || got != 'a' {
		t.Fatalf("ReadChar() = (%q, %v), want ('a', true)", got, ok)
	}
	if n, ok := r.ReadInteger(); !ok || n != 20 {
		t.Fatalf("ReadInteger() = (%d, %v), want (20, true)", n, ok)
	}
	if _, ok := r.ReadChar(); ok {
		t.Fatal("ReadChar() at EOF succeeded")
	}
	if _, ok := r.ReadInteger(); ok {
		t.Fatal("ReadInteger() at EOF succeeded")
	}
}

func TestEOFIsSticky(t *testing.T) {
	r := New(strings.NewReader(""))
	for i := 0; i < 3; i++ {
		if _, ok := r.ReadChar(); ok {
			t.Fatalf("iteration %d: ReadChar() on empty stream succeeded", i)
		}
	}
}

func TestReadCharUTF8(t *testing.T) {
	r := New(strings.NewReader("  日本語"))
	want := []rune{'日', '本', '語'}
	for _, w := range want {
		got, ok := r.ReadChar()
		if !ok || got != w {
			t.Fatalf("ReadChar() = (%q, %v), want (%q, true)", got, ok, w)
		}
	}
}
