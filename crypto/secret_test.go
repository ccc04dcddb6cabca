package crypto

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestConstantTimeEqual(t *testing.T) {
	for _, tc := range []struct {
		a, b []byte
	}{
		{nil, nil},
		{[]byte{}, nil},
		{[]byte{1}, []byte{1}},
		{[]byte{1}, []byte{2}},
		{[]byte{1, 2, 3}, []byte{1, 2}},
		{[]byte("symmetric key"), []byte("symmetric key")},
		{[]byte("symmetric key"), []byte("symmetric kez")},
		{[]byte{0x80, 0, 0}, []byte{0, 0, 0}},
	} {
		if got, want := ConstantTimeEqual(tc.a, tc.b), bytes.Equal(tc.a, tc.b); got != want {
			t.Errorf("ConstantTimeEqual(%x, %x) = %v, want %v", tc.a, tc.b, got, want)
		}
	}
}

func TestConstantTimeCompareCountsEveryByte(t *testing.T) {
	const size = 64
	ref := bytes.Repeat([]byte{0xaa}, size)

	_, base := constantTimeCompare(ref, ref)
	if base != size {
		t.Fatalf("Expect %d comparisons for equal inputs, got %d", size, base)
	}
	for pos := 0; pos < size; pos++ {
		other := append([]byte(nil), ref...)
		other[pos] ^= 0x01
		eq, n := constantTimeCompare(ref, other)
		if eq {
			t.Fatalf("Expect mismatch at position %d to be detected", pos)
		}
		if n != base {
			t.Fatalf("Mismatch at position %d: %d comparisons, expect %d", pos, n, base)
		}
	}
}

func TestConstantTimeCompareLengthMismatch(t *testing.T) {
	eq, n := constantTimeCompare([]byte{1, 2, 3}, []byte{1, 2})
	if eq || n != 0 {
		t.Fatalf("Expect early return on length mismatch, got eq=%v n=%d", eq, n)
	}
}

func TestSecretBufferWipe(t *testing.T) {
	s := SecretBufferFromBytes([]byte("0123456789abcdef"))
	if s.Len() != 16 {
		t.Fatal("Unexpected secret length", s.Len())
	}
	exposed := s.Expose()
	s.Wipe()
	if !bytes.Equal(exposed, make([]byte, 16)) {
		t.Fatal("Wipe didn't zero the backing array")
	}
}

func TestSecretBufferInit(t *testing.T) {
	s := NewSecretBuffer(func(b *[]byte) {
		*b = append(*b, "foo"...)
	})
	if !bytes.Equal(s.Expose(), []byte("foo")) {
		t.Fatal("Secret wasn't initialised in place")
	}
	if !s.Equal(SecretBufferFromBytes([]byte("foo"))) {
		t.Error("Expect equal secrets")
	}
	if s.Equal(SecretBufferFromBytes([]byte("fop"))) {
		t.Error("Expect different secrets")
	}
}

func TestSecretBufferRedacted(t *testing.T) {
	s := SecretBufferFromBytes([]byte("hunter2"))
	for _, format := range []string{"%v", "%+v", "%#v", "%s", "%x", "%q"} {
		out := fmt.Sprintf(format, s)
		if strings.Contains(out, "hunter2") || strings.Contains(out, "68756e74657232") {
			t.Errorf("Secret leaked through %s: %s", format, out)
		}
	}
}

func TestNilSecretBuffer(t *testing.T) {
	var s *SecretBuffer
	if s.Len() != 0 || s.Expose() != nil {
		t.Fatal("Expect empty nil buffer")
	}
	s.Wipe()
	if !s.Equal(SecretBufferFromBytes(nil)) {
		t.Error("Expect nil buffer to equal an empty buffer")
	}
}

func TestSecretBufferWipedWhenUnreachable(t *testing.T) {
	s := SecretBufferFromBytes([]byte("0123456789abcdef"))
	exposed := s.Expose()
	s = nil
	for i := 0; i < 100; i++ {
		runtime.GC()
		if bytes.Equal(exposed, make([]byte, 16)) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Unreachable secret was never wiped")
}

func TestSecretBufferEqualUnderCollection(t *testing.T) {
	secret := []byte("0123456789abcdef")
	for i := 0; i < 100; i++ {
		if !SecretBufferFromBytes(secret).Equal(SecretBufferFromBytes(secret)) {
			t.Fatal("Secret was wiped while being compared")
		}
		runtime.GC()
	}
}
