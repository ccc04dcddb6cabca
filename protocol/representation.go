// Defines the representations a message field can take.

package protocol

// representation enumerates the closed set of Kinds.
type representation int

const (
	plainRepr representation = iota + 1
	cipherRepr
	keyRepr
)

// A Kind selects how every sensitive field of a payload schema is
// represented. The set of Kinds is closed: PlainText, CipherText and
// KeyText are its only members.
type Kind interface {
	representation() representation
}

// PlainText keeps fields as their plaintext value.
type PlainText struct{}

// CipherText replaces each field by its ciphertext, Encrypted[P].
type CipherText struct{}

// KeyText replaces each field by the SymmetricKey which decrypts the
// matching CipherText field.
type KeyText struct{}

func (PlainText) representation() representation  { return plainRepr }
func (CipherText) representation() representation { return cipherRepr }
func (KeyText) representation() representation    { return keyRepr }

var (
	_ Kind = PlainText{}
	_ Kind = CipherText{}
	_ Kind = KeyText{}
)

// A Field is a value of plaintext type P in representation R:
// P itself for PlainText, an Encrypted[P] for CipherText, and a
// SymmetricKey for KeyText.
//
// A payload schema declares each of its fields once as a Field[R, P];
// instantiating the schema with CipherText and KeyText then yields
// a ciphertext shape and a key shape with the same members, so that
// every encrypted field has its decrypting key counterpart.
type Field[R Kind, P comparable] struct {
	plain  P
	cipher Encrypted[P]
	key    SymmetricKey
}

// Plain returns v as a plaintext field.
func Plain[P comparable](v P) Field[PlainText, P] {
	return Field[PlainText, P]{plain: v}
}

// Sealed returns c as a ciphertext field.
func Sealed[P comparable](c Encrypted[P]) Field[CipherText, P] {
	return Field[CipherText, P]{cipher: c}
}

// Keyed returns k as the key field for a ciphertext of a P.
func Keyed[P comparable](k SymmetricKey) Field[KeyText, P] {
	return Field[KeyText, P]{key: k}
}

// PlainValue returns the value of a plaintext field.
func PlainValue[P comparable](f Field[PlainText, P]) P {
	return f.plain
}

// Ciphertext returns the ciphertext of a ciphertext field.
func Ciphertext[P comparable](f Field[CipherText, P]) Encrypted[P] {
	return f.cipher
}

// KeyOf returns the key of a key field.
func KeyOf[P comparable](f Field[KeyText, P]) SymmetricKey {
	return f.key
}

func reprOf[R Kind]() representation {
	var r R
	return r.representation()
}

// Equal reports whether f and other hold the same value.
// Keys are compared in constant time.
func (f Field[R, P]) Equal(other Field[R, P]) bool {
	switch reprOf[R]() {
	case plainRepr:
		return f.plain == other.plain
	case cipherRepr:
		return f.cipher.Equal(other.cipher)
	default:
		return f.key.Equal(other.key)
	}
}

// MarshalJSON encodes the field according to its representation.
func (f Field[R, P]) MarshalJSON() ([]byte, error) {
	switch reprOf[R]() {
	case plainRepr:
		return marshalJSON(f.plain)
	case cipherRepr:
		return f.cipher.MarshalJSON()
	default:
		return f.key.MarshalJSON()
	}
}

// UnmarshalJSON decodes the field according to its representation.
func (f *Field[R, P]) UnmarshalJSON(data []byte) error {
	var out Field[R, P]
	var err error
	switch reprOf[R]() {
	case plainRepr:
		err = decodeValue(data, &out.plain)
	case cipherRepr:
		err = out.cipher.UnmarshalJSON(data)
	default:
		err = out.key.UnmarshalJSON(data)
	}
	if err != nil {
		return err
	}
	*f = out
	return nil
}

// equalOptional compares two optional fields.
func equalOptional[R Kind, P comparable](a, b *Field[R, P]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
