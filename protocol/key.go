package protocol

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/ed25519"
)

// A KeyAlgorithm names the cryptography protocol of a PublicKey.
// It is also the key's prefix in canonical text.
type KeyAlgorithm string

const (
	// Ed25519 keys are encoded as ed25519:<43 base64url characters>.
	Ed25519 KeyAlgorithm = "ed25519"

	ed25519EncodedLen = 43
)

// An Ed25519PublicKey is the raw 32-byte Ed25519 public key.
type Ed25519PublicKey [ed25519.PublicKeySize]byte

func (k Ed25519PublicKey) algorithm() KeyAlgorithm { return Ed25519 }
func (k Ed25519PublicKey) raw() []byte             { return k[:] }

var ed25519Codec = PrefixedCodec[Ed25519PublicKey]{
	Prefix:     string(Ed25519),
	Len:        ed25519.PublicKeySize,
	EncodedLen: ed25519EncodedLen,
	New: func(b []byte) (Ed25519PublicKey, error) {
		var k Ed25519PublicKey
		if len(b) != len(k) {
			return k, fmt.Errorf("ed25519 public key must be %d bytes (got %d)", len(k), len(b))
		}
		copy(k[:], b)
		return k, nil
	},
	Bytes: func(k Ed25519PublicKey) []byte { return k.raw() },
}

// publicKeyValue is implemented by each supported key variant.
type publicKeyValue interface {
	algorithm() KeyAlgorithm
	raw() []byte
}

// publicKeyDecoders maps each known prefix to its codec.
var publicKeyDecoders = map[string]func(string) (PublicKey, error){
	ed25519Codec.Prefix: publicKeyDecoder(ed25519Codec),
}

func publicKeyDecoder[V publicKeyValue](c PrefixedCodec[V]) func(string) (PublicKey, error) {
	return func(s string) (PublicKey, error) {
		v, err := c.Decode(s)
		if err != nil {
			return PublicKey{}, err
		}
		return PublicKey{v: v}, nil
	}
}

// A PublicKey is a tagged public key. PublicKeys are immutable and
// comparable; the zero value holds no key.
type PublicKey struct {
	v publicKeyValue
}

var errEmptyPublicKey = errors.New("empty public key")

// NewEd25519PublicKey wraps the raw 32-byte Ed25519 key k.
func NewEd25519PublicKey(k [ed25519.PublicKeySize]byte) PublicKey {
	return PublicKey{v: Ed25519PublicKey(k)}
}

// PublicKeyFromEd25519 wraps an ed25519.PublicKey.
// It returns ErrBadLength if pk isn't 32 bytes long.
func PublicKeyFromEd25519(pk ed25519.PublicKey) (PublicKey, error) {
	k, err := ed25519Codec.New(pk)
	if err != nil {
		return PublicKey{}, wrapError(ErrBadLength, err, "")
	}
	return PublicKey{v: k}, nil
}

// ParsePublicKey decodes the canonical text form of a public key.
func ParsePublicKey(s string) (PublicKey, error) {
	tag, _, err := splitTag(s)
	if err != nil {
		return PublicKey{}, err
	}
	decode, ok := publicKeyDecoders[tag]
	if !ok {
		return PublicKey{}, newError(ErrUnknownTag, "unknown public key tag %q", tag)
	}
	return decode(s)
}

// IsZero reports whether pk holds no key.
func (pk PublicKey) IsZero() bool {
	return pk.v == nil
}

// Algorithm returns the key's algorithm, or "" for the zero PublicKey.
func (pk PublicKey) Algorithm() KeyAlgorithm {
	if pk.IsZero() {
		return ""
	}
	return pk.v.algorithm()
}

// Bytes returns a copy of the raw key bytes.
func (pk PublicKey) Bytes() []byte {
	if pk.IsZero() {
		return nil
	}
	return append([]byte(nil), pk.v.raw()...)
}

// Ed25519 returns the key as an ed25519.PublicKey
// if it is an Ed25519 key.
func (pk PublicKey) Ed25519() (ed25519.PublicKey, bool) {
	k, ok := pk.v.(Ed25519PublicKey)
	if !ok {
		return nil, false
	}
	return ed25519.PublicKey(append([]byte(nil), k[:]...)), true
}

// String returns the canonical text form of pk.
func (pk PublicKey) String() string {
	switch k := pk.v.(type) {
	case Ed25519PublicKey:
		return ed25519Codec.Encode(k)
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	if pk.IsZero() {
		return nil, wrapError(ErrBadValue, errEmptyPublicKey, "")
	}
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	k, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*pk = k
	return nil
}

// MarshalJSON encodes pk as a JSON string.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	text, err := pk.MarshalText()
	if err != nil {
		return nil, err
	}
	return encodeJSONString(string(text))
}

// UnmarshalJSON decodes pk from a JSON string.
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString(data)
	if err != nil {
		return err
	}
	return pk.UnmarshalText([]byte(s))
}
