package protocol

import (
	"errors"
	"fmt"
)

const (
	// MerkleRootV1Prefix is the canonical prefix of version 1 roots.
	MerkleRootV1Prefix = "pkd-mr-v1"
	// MerkleRootSize is the size in bytes of a version 1 root.
	MerkleRootSize = 32

	merkleRootV1EncodedLen = 43
)

var merkleRootV1Codec = PrefixedCodec[MerkleRoot]{
	Prefix:     MerkleRootV1Prefix,
	Len:        MerkleRootSize,
	EncodedLen: merkleRootV1EncodedLen,
	New: func(b []byte) (MerkleRoot, error) {
		var r MerkleRoot
		if len(b) != len(r.digest) {
			return r, fmt.Errorf("merkle root must be %d bytes (got %d)", len(r.digest), len(b))
		}
		copy(r.digest[:], b)
		r.version = 1
		return r, nil
	},
	Bytes: func(r MerkleRoot) []byte { return r.digest[:] },
}

// A MerkleRoot is the digest summarizing a directory's committed state,
// tagged with its encoding version. MerkleRoots are produced by the
// directory's Merkle tree; this package only carries them.
// The zero value holds no root.
type MerkleRoot struct {
	version int
	digest  [MerkleRootSize]byte
}

var errEmptyMerkleRoot = errors.New("empty merkle root")

// NewMerkleRoot returns the version 1 root with the given digest.
func NewMerkleRoot(digest [MerkleRootSize]byte) MerkleRoot {
	return MerkleRoot{version: 1, digest: digest}
}

// ParseMerkleRoot decodes the canonical text form of a root.
func ParseMerkleRoot(s string) (MerkleRoot, error) {
	return merkleRootV1Codec.Decode(s)
}

// Version returns the root's encoding version, or 0 for the zero value.
func (r MerkleRoot) Version() int {
	return r.version
}

// Bytes returns a copy of the root's digest.
func (r MerkleRoot) Bytes() []byte {
	if r.version == 0 {
		return nil
	}
	return append([]byte(nil), r.digest[:]...)
}

// String returns the canonical text form of r.
func (r MerkleRoot) String() string {
	if r.version == 0 {
		return ""
	}
	return merkleRootV1Codec.Encode(r)
}

// MarshalText implements encoding.TextMarshaler.
func (r MerkleRoot) MarshalText() ([]byte, error) {
	if r.version == 0 {
		return nil, wrapError(ErrBadValue, errEmptyMerkleRoot, "")
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *MerkleRoot) UnmarshalText(text []byte) error {
	root, err := ParseMerkleRoot(string(text))
	if err != nil {
		return err
	}
	*r = root
	return nil
}

// MarshalJSON encodes r as a JSON string.
func (r MerkleRoot) MarshalJSON() ([]byte, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return encodeJSONString(string(text))
}

// UnmarshalJSON decodes r from a JSON string.
func (r *MerkleRoot) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString(data)
	if err != nil {
		return err
	}
	return r.UnmarshalText([]byte(s))
}
