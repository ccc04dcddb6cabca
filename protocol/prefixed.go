// Defines the generic codec for tagged fixed-size binary values,
// encoded as PREFIX:BASE64URL.

package protocol

import (
	"encoding/base64"
	"strings"
)

// Separator splits a tagged value's prefix from its encoded bytes.
const Separator = ":"

var b64 = base64.RawURLEncoding.Strict()

// encodeBase64 returns the unpadded base64url encoding of b.
func encodeBase64(b []byte) string {
	return b64.EncodeToString(b)
}

// decodeBase64 decodes unpadded base64url text. Any character outside
// the base64url alphabet (including padding and line breaks) and
// non-zero trailing bits are rejected with ErrBadEncoding.
func decodeBase64(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if !isBase64URLChar(s[i]) {
			return nil, newError(ErrBadEncoding,
				"invalid base64url character at offset %d", i)
		}
	}
	b, err := b64.DecodeString(s)
	if err != nil {
		return nil, wrapError(ErrBadEncoding, err, "invalid base64url")
	}
	return b, nil
}

func isBase64URLChar(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '_'
}

// EncodedLen returns the length of the unpadded base64url encoding
// of n bytes.
func EncodedLen(n int) int {
	return b64.EncodedLen(n)
}

// A PrefixedCodec describes one tagged fixed-size value type V:
// its Prefix, the raw byte length Len, and the exact length EncodedLen
// of the encoded part. New builds a V from exactly Len bytes and Bytes
// returns them back.
//
// New tags are added by declaring new PrefixedCodec values.
type PrefixedCodec[V any] struct {
	Prefix     string
	Len        int
	EncodedLen int
	New        func(b []byte) (V, error)
	Bytes      func(v V) []byte
}

// Encode returns the canonical text form of v: Prefix:base64url(bytes).
func (c PrefixedCodec[V]) Encode(v V) string {
	return c.Prefix + Separator + encodeBase64(c.Bytes(v))
}

// Decode parses the canonical text form s. Only the exact canonical
// spelling is accepted: the encoded part must have exactly EncodedLen
// characters and decode to exactly Len bytes.
func (c PrefixedCodec[V]) Decode(s string) (V, error) {
	var zero V
	tag, rest, err := splitTag(s)
	if err != nil {
		return zero, err
	}
	if tag != c.Prefix {
		return zero, newError(ErrUnknownTag,
			"expected %q, found %q", c.Prefix, tag)
	}
	if len(rest) != c.EncodedLen {
		return zero, newError(ErrBadLength,
			"invalid encoded length, expected %d found %d", c.EncodedLen, len(rest))
	}
	b, err := decodeBase64(rest)
	if err != nil {
		return zero, err
	}
	if len(b) != c.Len {
		return zero, newError(ErrBadLength,
			"invalid length, expected %d found %d", c.Len, len(b))
	}
	v, err := c.New(b)
	if err != nil {
		return zero, wrapError(ErrBadValue, err, "cannot construct "+c.Prefix+" value")
	}
	return v, nil
}

// splitTag splits s once on the first separator.
func splitTag(s string) (tag, rest string, err error) {
	tag, rest, ok := strings.Cut(s, Separator)
	if !ok {
		return "", "", newError(ErrMissingSeparator, "expected %q", Separator)
	}
	return tag, rest, nil
}
