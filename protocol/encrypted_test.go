package protocol

import (
	"bytes"
	"testing"
)

func TestEncryptedWireFormIgnoresPlaintextType(t *testing.T) {
	a := FromCiphertext[ActorID]([]byte{1, 2, 3})
	b := FromCiphertext[PublicKey]([]byte{1, 2, 3})
	ja, err := a.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	jb, err := b.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(ja) != `"AQID"` || string(ja) != string(jb) {
		t.Error("Unexpected wire forms", string(ja), string(jb))
	}
}

func TestEncryptedIsImmutable(t *testing.T) {
	raw := []byte{1, 2, 3}
	e := FromCiphertext[ActorID](raw)
	raw[0] = 9
	if !bytes.Equal(e.Bytes(), []byte{1, 2, 3}) {
		t.Error("Encrypted aliases its input")
	}
	e.Bytes()[0] = 9
	if !bytes.Equal(e.Bytes(), []byte{1, 2, 3}) {
		t.Error("Encrypted aliases its output")
	}
	if e.Len() != 3 {
		t.Error("Expect length 3, got", e.Len())
	}
}

func TestEncryptedCompare(t *testing.T) {
	a := FromCiphertext[ActorID]([]byte{1, 2})
	b := FromCiphertext[ActorID]([]byte{1, 3})
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Error("Unexpected ordering")
	}
	if a.Equal(b) || !a.Equal(FromCiphertext[ActorID]([]byte{1, 2})) {
		t.Error("Unexpected equality")
	}
}

func TestEncryptedUnmarshal(t *testing.T) {
	var e Encrypted[ActorID]
	if err := e.UnmarshalJSON([]byte(`"AQID"`)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(e.Bytes(), []byte{1, 2, 3}) {
		t.Error("Unexpected ciphertext", e.Bytes())
	}
	for _, tc := range []struct {
		input string
		want  ErrorCode
	}{
		{`"AQID="`, ErrBadEncoding},
		{`"AQ+D"`, ErrBadEncoding},
		{`[1,2,3]`, ErrBadValue},
		{`"AQID`, ErrBadEncoding},
	} {
		if err := e.UnmarshalJSON([]byte(tc.input)); CodeOf(err) != tc.want {
			t.Errorf("%s: expect %v, got %v", tc.input, tc.want, err)
		}
	}
}
