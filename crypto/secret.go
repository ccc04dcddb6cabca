package crypto

import (
	"crypto/subtle"
	"fmt"
	"runtime"
)

const redacted = "[REDACTED]"

// A SecretBuffer holds sensitive key material.
// The backing array is zeroed by Wipe, and again by a runtime cleanup
// once the buffer becomes unreachable. A SecretBuffer never prints its
// content and can only be compared using Equal.
type SecretBuffer struct {
	b []byte
}

// NewSecretBuffer builds a SecretBuffer in place: init receives a pointer
// to the (empty) backing slice and is expected to fill it. Building the
// secret in place avoids leaving copies of it on the caller's side.
func NewSecretBuffer(init func(b *[]byte)) *SecretBuffer {
	s := &SecretBuffer{}
	if init != nil {
		init(&s.b)
	}
	runtime.AddCleanup(s, wipe, s.b)
	return s
}

// SecretBufferFromBytes copies b into a new SecretBuffer.
// The caller remains responsible for wiping b.
func SecretBufferFromBytes(b []byte) *SecretBuffer {
	return NewSecretBuffer(func(buf *[]byte) {
		*buf = append(make([]byte, 0, len(b)), b...)
	})
}

// Expose returns the secret bytes. The returned slice aliases the
// buffer and must not be modified or retained. The cleanup wipes it once
// s is unreachable, so callers keep s alive with runtime.KeepAlive until
// they are done with the bytes.
func (s *SecretBuffer) Expose() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// Len returns the length of the secret.
func (s *SecretBuffer) Len() int {
	if s == nil {
		return 0
	}
	return len(s.b)
}

// Wipe zeroes the secret. The buffer keeps its length.
func (s *SecretBuffer) Wipe() {
	if s == nil {
		return
	}
	wipe(s.b)
}

// Equal reports whether s and other hold the same secret,
// in time independent of the secret's content.
func (s *SecretBuffer) Equal(other *SecretBuffer) bool {
	eq := ConstantTimeEqual(s.Expose(), other.Expose())
	runtime.KeepAlive(s)
	runtime.KeepAlive(other)
	return eq
}

func (s *SecretBuffer) String() string {
	return redacted
}

// GoString implements fmt.GoStringer so that %#v stays redacted.
func (s *SecretBuffer) GoString() string {
	return "crypto.SecretBuffer{" + redacted + "}"
}

// Format implements fmt.Formatter: every verb prints the redacted form.
func (s *SecretBuffer) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		fmt.Fprint(f, s.GoString())
		return
	}
	fmt.Fprint(f, redacted)
}

func wipe(b []byte) {
	clear(b)
}

// ConstantTimeEqual reports whether a and b are equal.
// If their lengths differ it returns false immediately, so the length
// of a secret is not hidden. Otherwise every byte pair is compared
// without early exit, so the running time does not depend on the
// position of the first differing byte.
func ConstantTimeEqual(a, b []byte) bool {
	eq, _ := constantTimeCompare(a, b)
	return eq
}

// constantTimeCompare is ConstantTimeEqual which additionally returns the
// number of byte pairs it compared.
func constantTimeCompare(a, b []byte) (bool, int) {
	if len(a) != len(b) {
		return false, 0
	}
	var acc byte
	n := 0
	for i := range a {
		acc |= a[i] ^ b[i]
		n++
	}
	return subtle.ConstantTimeByteEq(acc, 0) == 1, n
}
