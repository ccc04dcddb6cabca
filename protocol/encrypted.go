package protocol

import "strings"

// Encrypted is a ciphertext whose plaintext is a value of type P.
// P only exists at compile time: it keeps, e.g., the ciphertext of an
// ActorID from being used where the ciphertext of a PublicKey is
// expected. P is never stored, compared or encoded, so two Encrypted
// values over the same bytes have the same wire form whatever their P.
//
// The wire form is the bare unpadded base64url encoding of the
// ciphertext. Decryption is the client's business.
type Encrypted[P any] struct {
	ciphertext string
}

// FromCiphertext wraps a copy of ciphertext.
func FromCiphertext[P any](ciphertext []byte) Encrypted[P] {
	return Encrypted[P]{ciphertext: string(ciphertext)}
}

// Bytes returns a copy of the ciphertext.
func (e Encrypted[P]) Bytes() []byte {
	return []byte(e.ciphertext)
}

// Len returns the length of the ciphertext in bytes.
func (e Encrypted[P]) Len() int {
	return len(e.ciphertext)
}

// Equal reports whether e and other hold the same ciphertext.
func (e Encrypted[P]) Equal(other Encrypted[P]) bool {
	return e.ciphertext == other.ciphertext
}

// Compare orders ciphertexts by their bytes.
func (e Encrypted[P]) Compare(other Encrypted[P]) int {
	return strings.Compare(e.ciphertext, other.ciphertext)
}

// String returns the wire form of e.
func (e Encrypted[P]) String() string {
	return encodeBase64([]byte(e.ciphertext))
}

// MarshalJSON encodes e as a base64url JSON string.
func (e Encrypted[P]) MarshalJSON() ([]byte, error) {
	return encodeJSONString(e.String())
}

// UnmarshalJSON decodes e from a base64url JSON string.
func (e *Encrypted[P]) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString(data)
	if err != nil {
		return err
	}
	b, err := decodeBase64(s)
	if err != nil {
		return err
	}
	e.ciphertext = string(b)
	return nil
}
