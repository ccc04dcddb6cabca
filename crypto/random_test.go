package crypto

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"
)

func TestNewRandomSecret(t *testing.T) {
	a, err := NewRandomSecret(32)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRandomSecret(32)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 32 || b.Len() != 32 {
		t.Fatal("Unexpected lengths", a.Len(), b.Len())
	}
	if a.Equal(b) {
		t.Error("Expect two random secrets to differ")
	}
}

func TestNewSecretFromShortReader(t *testing.T) {
	if _, err := newSecretFrom(bytes.NewReader([]byte{1, 2, 3}), 4); err == nil {
		t.Error("Expect an error for a short read")
	}
	errBroken := errors.New("broken")
	if _, err := newSecretFrom(iotest.ErrReader(errBroken), 4); !errors.Is(err, errBroken) {
		t.Error("Expect", errBroken, "got", err)
	}
	s, err := newSecretFrom(bytes.NewReader([]byte{1, 2, 3, 4}), 4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.Expose(), []byte{1, 2, 3, 4}) {
		t.Error("Unexpected secret", s.Expose())
	}
}
