package protocol

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fedi-e2ee/pkd-go/crypto"
)

// A SymmetricKey decrypts one Encrypted field of a message.
// Keys travel next to the ciphertext they unlock, but are not kept in
// the directory's persisted state.
//
// SymmetricKey is not comparable with ==; use Equal, which runs in
// constant time. Formatting never prints the key.
type SymmetricKey struct {
	_      [0]func() // not comparable
	secret *crypto.SecretBuffer
}

var errEmptySymmetricKey = errors.New("empty symmetric key")

// NewSymmetricKey builds a key in place; init fills the backing slice.
func NewSymmetricKey(init func(b *[]byte)) SymmetricKey {
	return SymmetricKey{secret: crypto.NewSecretBuffer(init)}
}

// SymmetricKeyFromBytes copies b into a new key.
func SymmetricKeyFromBytes(b []byte) SymmetricKey {
	return SymmetricKey{secret: crypto.SecretBufferFromBytes(b)}
}

// GenerateSymmetricKey returns a new random key of n bytes.
func GenerateSymmetricKey(n int) (SymmetricKey, error) {
	secret, err := crypto.NewRandomSecret(n)
	if err != nil {
		return SymmetricKey{}, err
	}
	return SymmetricKey{secret: secret}, nil
}

// Expose returns the key bytes. The returned slice must not be modified
// or retained, and is only valid while k is reachable: callers keep k
// alive with runtime.KeepAlive until they are done with them.
func (k SymmetricKey) Expose() []byte {
	return k.secret.Expose()
}

// Len returns the key length in bytes.
func (k SymmetricKey) Len() int {
	return k.secret.Len()
}

// Wipe zeroes the key bytes.
func (k SymmetricKey) Wipe() {
	k.secret.Wipe()
}

// Equal compares k and other in constant time.
func (k SymmetricKey) Equal(other SymmetricKey) bool {
	return k.secret.Equal(other.secret)
}

// IsZero reports whether k holds no key.
func (k SymmetricKey) IsZero() bool {
	return k.secret == nil
}

func (k SymmetricKey) String() string {
	return "SymmetricKey(" + k.secret.String() + ")"
}

// GoString keeps %#v redacted.
func (k SymmetricKey) GoString() string {
	return "protocol.SymmetricKey{" + k.secret.String() + "}"
}

// Format prints the redacted form for every verb.
func (k SymmetricKey) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		fmt.Fprint(f, k.GoString())
		return
	}
	fmt.Fprint(f, k.String())
}

// MarshalJSON encodes k as a base64url JSON string.
// It returns ErrBadValue for the zero SymmetricKey.
func (k SymmetricKey) MarshalJSON() ([]byte, error) {
	if k.secret == nil {
		return nil, wrapError(ErrBadValue, errEmptySymmetricKey, "")
	}
	text := encodeBase64(k.secret.Expose())
	runtime.KeepAlive(k.secret)
	return encodeJSONString(text)
}

// UnmarshalJSON decodes k from a base64url JSON string.
func (k *SymmetricKey) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString(data)
	if err != nil {
		return err
	}
	b, err := decodeBase64(s)
	if err != nil {
		return err
	}
	*k = NewSymmetricKey(func(buf *[]byte) { *buf = b })
	return nil
}
