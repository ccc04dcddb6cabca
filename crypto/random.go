package crypto

import (
	"crypto/rand"
	"io"
)

// NewRandomSecret returns a SecretBuffer holding n bytes read from
// the system's secure random source. The bytes are read directly into
// the buffer.
func NewRandomSecret(n int) (*SecretBuffer, error) {
	return newSecretFrom(rand.Reader, n)
}

func newSecretFrom(r io.Reader, n int) (*SecretBuffer, error) {
	var err error
	s := NewSecretBuffer(func(b *[]byte) {
		*b = make([]byte, n)
		_, err = io.ReadFull(r, *b)
	})
	if err != nil {
		s.Wipe()
		return nil, err
	}
	return s, nil
}
