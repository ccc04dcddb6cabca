package protocol

import (
	"bytes"
	"testing"
)

func TestSealedFieldsMatchKeys(t *testing.T) {
	pk := NewTestPublicKey(t)
	actorC, actorK := SealForTest(t, ActorID("alice"))
	pkC, pkK := SealForTest(t, pk)

	if got := OpenForTest(t, actorC, actorK); got != "alice" {
		t.Error("Expect alice, got", got)
	}
	if got := OpenForTest(t, pkC, pkK); got != pk {
		t.Error("Expect", pk, "got", got)
	}
}

func TestKeyFieldsShapes(t *testing.T) {
	plain := KeyFields[PlainText]{
		Actor:     Plain(ActorID("alice")),
		PublicKey: Plain(NewTestPublicKey(t)),
	}
	b, err := marshalJSON(plain)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"actor":"alice","public-key":"` + TestEd25519Key + `"}`; string(b) != want {
		t.Errorf("Expect %s, got %s", want, b)
	}

	sealed := KeyFields[CipherText]{
		Actor:     Sealed(FromCiphertext[ActorID]([]byte{1, 2, 3})),
		PublicKey: Sealed(FromCiphertext[PublicKey]([]byte{4, 5, 6})),
	}
	b, err = marshalJSON(sealed)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"actor":"AQID","public-key":"BAUG"}`; string(b) != want {
		t.Errorf("Expect %s, got %s", want, b)
	}

	keys := KeyFields[KeyText]{
		Actor:     Keyed[ActorID](SymmetricKeyFromBytes([]byte{7, 8, 9})),
		PublicKey: Keyed[PublicKey](SymmetricKeyFromBytes([]byte{1, 2, 3})),
	}
	b, err = marshalJSON(keys)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"actor":"BwgJ","public-key":"AQID"}`; string(b) != want {
		t.Errorf("Expect %s, got %s", want, b)
	}

	var out KeyFields[KeyText]
	if err := out.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(keys) {
		t.Error("Keys don't round-trip")
	}
	if !bytes.Equal(KeyOf(out.Actor).Expose(), []byte{7, 8, 9}) {
		t.Error("Unexpected actor key")
	}
}

func TestPlainFieldValidatesValue(t *testing.T) {
	var out KeyFields[PlainText]
	err := out.UnmarshalJSON([]byte(`{"actor":"alice","public-key":"ed25519:AAAA"}`))
	if CodeOf(err) != ErrBadLength || FieldOf(err) != "public-key" {
		t.Error("Expect", ErrBadLength, "at public-key, got", err)
	}
	err = out.UnmarshalJSON([]byte(`{"actor":7,"public-key":"` + TestEd25519Key + `"}`))
	if CodeOf(err) != ErrBadValue || FieldOf(err) != "actor" {
		t.Error("Expect", ErrBadValue, "at actor, got", err)
	}
}

func TestRevokeAuxDataFieldsOptional(t *testing.T) {
	var out RevokeAuxDataFields[CipherText]
	for _, input := range []string{`{"actor":"AQID"}`, `{"actor":"AQID","aux-data":null}`} {
		if err := out.UnmarshalJSON([]byte(input)); err != nil {
			t.Fatal(input, err)
		}
		if out.AuxData != nil {
			t.Error("Expect no aux-data for", input)
		}
	}
	if err := out.UnmarshalJSON([]byte(`{"actor":"AQID","aux-data":"BAUG"}`)); err != nil {
		t.Fatal(err)
	}
	if out.AuxData == nil || !bytes.Equal(Ciphertext(*out.AuxData).Bytes(), []byte{4, 5, 6}) {
		t.Error("Unexpected aux-data", out.AuxData)
	}

	b, err := marshalJSON(RevokeAuxDataFields[CipherText]{Actor: out.Actor})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"actor":"AQID"}` {
		t.Error("Expect absent aux-data to be omitted, got", string(b))
	}
}

func TestAuxFieldsFlatten(t *testing.T) {
	id := "id-1"
	aux := AuxFields[AddAuxDataFields[PlainText]]{
		AuxType: "ssh-v2",
		AuxID:   &id,
		Inner: AddAuxDataFields[PlainText]{
			Actor:   Plain(ActorID("alice")),
			AuxData: Plain(NewAuxData([]byte{1, 2, 3})),
		},
	}
	b, err := marshalJSON(aux)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"aux-type":"ssh-v2","aux-id":"id-1","actor":"alice","aux-data":"AQID"}`
	if string(b) != want {
		t.Errorf("Expect %s, got %s", want, b)
	}

	var out AuxFields[AddAuxDataFields[PlainText]]
	if err := out.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if !equalAuxFields(out, aux, AddAuxDataFields[PlainText].Equal) {
		t.Error("Aux fields don't round-trip")
	}

	aux.AuxID = nil
	b, err = marshalJSON(aux)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"aux-type":"ssh-v2","actor":"alice","aux-data":"AQID"}`; string(b) != want {
		t.Errorf("Expect %s, got %s", want, b)
	}

	err = out.UnmarshalJSON([]byte(`{"actor":"alice","aux-data":"AQID"}`))
	if CodeOf(err) != ErrMissingField || FieldOf(err) != "aux-type" {
		t.Error("Expect", ErrMissingField, "at aux-type, got", err)
	}
}

func TestCheckpointFieldsStrict(t *testing.T) {
	valid := `{"from-directory":"https://a.example","from-root":"` + TestMerkleRoot +
		`","from-public-key":"` + TestEd25519Key + `","to-directory":"https://b.example","to-validated-root":"` +
		TestMerkleRoot + `"}`
	var out CheckpointFields
	if err := out.UnmarshalJSON([]byte(valid)); err != nil {
		t.Fatal(err)
	}
	if out.FromRoot != NewTestMerkleRoot(t) || out.FromPublicKey != NewTestPublicKey(t) {
		t.Error("Unexpected checkpoint", out)
	}

	err := out.UnmarshalJSON([]byte(`{"from-directory":"https://a.example","from-root":"` + TestEd25519Key + `"}`))
	if CodeOf(err) != ErrUnknownTag || FieldOf(err) != "from-root" {
		t.Error("Expect", ErrUnknownTag, "at from-root, got", err)
	}
}
