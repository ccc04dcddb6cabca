package protocol

import (
	"crypto/rand"
	"runtime"
	"testing"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

// Canonical values used by tests across packages.
const (
	TestEd25519Key    = "ed25519:Tm2XBvb0mAb4ldVubCzvz0HMTczR8VGF44sv478VFLM"
	TestMerkleRoot    = "pkd-mr-v1:7TwKAbkiKCCQuCpDBV2GbkkkIDfMg2AmG7TMHqXBDJU"
	TestUnixTimestamp = 1700000000
)

// SealForTest encrypts the JSON encoding of v with XChaCha20-Poly1305
// under a fresh key, and returns the matching ciphertext and key fields.
func SealForTest[P comparable](t testing.TB, v P) (Field[CipherText, P], Field[KeyText, P]) {
	t.Helper()
	pt, err := marshalJSON(v)
	if err != nil {
		t.Fatal(err)
	}
	key, err := GenerateSymmetricKey(chacha20poly1305.KeySize)
	if err != nil {
		t.Fatal(err)
	}
	aead, err := chacha20poly1305.NewX(key.Expose())
	runtime.KeepAlive(key)
	if err != nil {
		t.Fatal(err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(pt)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		t.Fatal(err)
	}
	ct := aead.Seal(nonce, nonce, pt, nil)
	return Sealed(FromCiphertext[P](ct)), Keyed[P](key)
}

// OpenForTest decrypts a field sealed by SealForTest.
func OpenForTest[P comparable](t testing.TB, c Field[CipherText, P], k Field[KeyText, P]) P {
	t.Helper()
	var v P
	key := KeyOf(k)
	aead, err := chacha20poly1305.NewX(key.Expose())
	runtime.KeepAlive(key)
	if err != nil {
		t.Fatal(err)
	}
	ct := Ciphertext(c).Bytes()
	if len(ct) < aead.NonceSize() {
		t.Fatal("ciphertext too short")
	}
	pt, err := aead.Open(nil, ct[:aead.NonceSize()], ct[aead.NonceSize():], nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := decodeValue(pt, &v); err != nil {
		t.Fatal(err)
	}
	return v
}

// NewTestPublicKey returns the public key TestEd25519Key.
func NewTestPublicKey(t testing.TB) PublicKey {
	t.Helper()
	pk, err := ParsePublicKey(TestEd25519Key)
	if err != nil {
		t.Fatal(err)
	}
	return pk
}

// NewTestMerkleRoot returns the root TestMerkleRoot.
func NewTestMerkleRoot(t testing.TB) MerkleRoot {
	t.Helper()
	r, err := ParseMerkleRoot(TestMerkleRoot)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// NewTestTimestamp returns the Timestamp of TestUnixTimestamp.
func NewTestTimestamp() Timestamp {
	return TimestampFromTime(time.Unix(TestUnixTimestamp, 0))
}

// NewTestKeyAction returns a KeyAction for actor adding the test key.
func NewTestKeyAction(t testing.TB, actor ActorID) KeyAction {
	t.Helper()
	actorC, actorK := SealForTest(t, actor)
	pkC, pkK := SealForTest(t, NewTestPublicKey(t))
	return KeyAction{
		Message: NewTimestamped(NewTestTimestamp(), KeyFields[CipherText]{
			Actor: actorC, PublicKey: pkC,
		}),
		SymmetricKeys: KeyFields[KeyText]{Actor: actorK, PublicKey: pkK},
	}
}

// NewTestActions returns one action of each kind, in ActionNames order.
func NewTestActions(t testing.TB) []Action {
	t.Helper()
	const alice, bob = ActorID("https://alice.example/users/alice"), ActorID("https://bob.example/users/bob")
	ts := NewTestTimestamp()

	oldC, oldK := SealForTest(t, alice)
	newC, newK := SealForTest(t, bob)
	move := MoveIdentity{
		Message:       NewTimestamped(ts, MoveIdentityFields[CipherText]{OldActor: oldC, NewActor: newC}),
		SymmetricKeys: MoveIdentityFields[KeyText]{OldActor: oldK, NewActor: newK},
	}

	actorC, actorK := SealForTest(t, alice)
	opC, opK := SealForTest(t, ActorID("https://alice.example/users/admin"))
	otp := "12345678"
	burn := BurnDown{
		Message:       NewTimestamped(ts, BurnDownFields[CipherText]{Actor: actorC, Operator: opC}),
		OTP:           &otp,
		SymmetricKeys: BurnDownFields[KeyText]{Actor: actorK, Operator: opK},
	}

	fpC, fpK := SealForTest(t, alice)
	fp := FireproofAction{
		Message:       NewTimestamped(ts, FireproofFields[CipherText]{Actor: fpC}),
		SymmetricKeys: FireproofFields[KeyText]{Actor: fpK},
	}

	addActorC, addActorK := SealForTest(t, alice)
	dataC, dataK := SealForTest(t, NewAuxData([]byte("ssh-ed25519 AAAAC3Nza")))
	auxID := "aux-1"
	addAux := AddAuxData{
		Message: NewTimestamped(ts, AuxFields[AddAuxDataFields[CipherText]]{
			AuxType: "ssh-v2",
			AuxID:   &auxID,
			Inner:   AddAuxDataFields[CipherText]{Actor: addActorC, AuxData: dataC},
		}),
		SymmetricKeys: AddAuxDataFields[KeyText]{Actor: addActorK, AuxData: dataK},
	}

	revActorC, revActorK := SealForTest(t, alice)
	revAux := RevokeAuxData{
		Message: NewTimestamped(ts, AuxFields[RevokeAuxDataFields[CipherText]]{
			AuxType: "ssh-v2",
			AuxID:   &auxID,
			Inner:   RevokeAuxDataFields[CipherText]{Actor: revActorC},
		}),
		SymmetricKeys: RevokeAuxDataFields[KeyText]{Actor: revActorK},
	}

	checkpoint := Checkpoint{
		Message: NewTimestamped(ts, CheckpointFields{
			FromDirectory:   "https://pkd.alice.example/?page=1&limit=2",
			FromRoot:        NewTestMerkleRoot(t),
			FromPublicKey:   NewTestPublicKey(t),
			ToDirectory:     "https://pkd.bob.example",
			ToValidatedRoot: NewTestMerkleRoot(t),
		}),
	}

	return []Action{
		AddKey{NewTestKeyAction(t, alice)},
		RevokeKey{NewTestKeyAction(t, alice)},
		RevokeKeyThirdParty{RevocationToken: "dGhpcyBpcyBhIHJldm9jYXRpb24gdG9rZW4"},
		move,
		burn,
		Fireproof{fp},
		UndoFireproof{fp},
		addAux,
		revAux,
		checkpoint,
	}
}
