// Defines the payload schemas carried by the PKD actions. Each schema
// is declared once over a representation Kind; actions use its
// CipherText shape as the message and its KeyText shape as the keys.

package protocol

// An ActorID is the canonical id of a fediverse actor.
type ActorID string

// UnmarshalJSON decodes id from a JSON string.
func (id *ActorID) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString(data)
	if err != nil {
		return err
	}
	*id = ActorID(s)
	return nil
}

// AuxData is the opaque content of an auxiliary data record.
// It holds bytes and is encoded as base64url text.
type AuxData string

// NewAuxData returns a copy of b as AuxData.
func NewAuxData(b []byte) AuxData {
	return AuxData(b)
}

// Bytes returns a copy of the data.
func (d AuxData) Bytes() []byte {
	return []byte(d)
}

// MarshalJSON encodes d as a base64url JSON string.
func (d AuxData) MarshalJSON() ([]byte, error) {
	return encodeJSONString(encodeBase64([]byte(d)))
}

// UnmarshalJSON decodes d from a base64url JSON string.
func (d *AuxData) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString(data)
	if err != nil {
		return err
	}
	b, err := decodeBase64(s)
	if err != nil {
		return err
	}
	*d = AuxData(b)
	return nil
}

// KeyFields are the fields of AddKey and RevokeKey.
type KeyFields[R Kind] struct {
	// Actor is the canonical id of the actor owning the key.
	Actor Field[R, ActorID] `json:"actor"`
	// PublicKey is the key to add or revoke.
	PublicKey Field[R, PublicKey] `json:"public-key"`
}

// Equal reports whether p and other hold the same fields.
func (p KeyFields[R]) Equal(other KeyFields[R]) bool {
	return p.Actor.Equal(other.Actor) && p.PublicKey.Equal(other.PublicKey)
}

// UnmarshalJSON strictly decodes p.
func (p *KeyFields[R]) UnmarshalJSON(data []byte) error {
	var out KeyFields[R]
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "actor", &out.Actor); err != nil {
			return err
		}
		return requiredField(o, "public-key", &out.PublicKey)
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// MoveIdentityFields are the fields of MoveIdentity.
type MoveIdentityFields[R Kind] struct {
	// OldActor is the actor being moved.
	OldActor Field[R, ActorID] `json:"old-actor"`
	// NewActor is its new id.
	NewActor Field[R, ActorID] `json:"new-actor"`
}

// Equal reports whether p and other hold the same fields.
func (p MoveIdentityFields[R]) Equal(other MoveIdentityFields[R]) bool {
	return p.OldActor.Equal(other.OldActor) && p.NewActor.Equal(other.NewActor)
}

// UnmarshalJSON strictly decodes p.
func (p *MoveIdentityFields[R]) UnmarshalJSON(data []byte) error {
	var out MoveIdentityFields[R]
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "old-actor", &out.OldActor); err != nil {
			return err
		}
		return requiredField(o, "new-actor", &out.NewActor)
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// BurnDownFields are the fields of BurnDown.
type BurnDownFields[R Kind] struct {
	// Actor is the actor whose keys are burned down.
	Actor Field[R, ActorID] `json:"actor"`
	// Operator is the instance operator issuing the BurnDown
	// on the actor's behalf.
	Operator Field[R, ActorID] `json:"operator"`
}

// Equal reports whether p and other hold the same fields.
func (p BurnDownFields[R]) Equal(other BurnDownFields[R]) bool {
	return p.Actor.Equal(other.Actor) && p.Operator.Equal(other.Operator)
}

// UnmarshalJSON strictly decodes p.
func (p *BurnDownFields[R]) UnmarshalJSON(data []byte) error {
	var out BurnDownFields[R]
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "actor", &out.Actor); err != nil {
			return err
		}
		return requiredField(o, "operator", &out.Operator)
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// FireproofFields are the fields of Fireproof and UndoFireproof.
type FireproofFields[R Kind] struct {
	Actor Field[R, ActorID] `json:"actor"`
}

// Equal reports whether p and other hold the same fields.
func (p FireproofFields[R]) Equal(other FireproofFields[R]) bool {
	return p.Actor.Equal(other.Actor)
}

// UnmarshalJSON strictly decodes p.
func (p *FireproofFields[R]) UnmarshalJSON(data []byte) error {
	var out FireproofFields[R]
	err := decodeObject(data, func(o *object) error {
		return requiredField(o, "actor", &out.Actor)
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// AddAuxDataFields are the sensitive fields of AddAuxData.
type AddAuxDataFields[R Kind] struct {
	Actor   Field[R, ActorID] `json:"actor"`
	AuxData Field[R, AuxData] `json:"aux-data"`
}

// Equal reports whether p and other hold the same fields.
func (p AddAuxDataFields[R]) Equal(other AddAuxDataFields[R]) bool {
	return p.Actor.Equal(other.Actor) && p.AuxData.Equal(other.AuxData)
}

// UnmarshalJSON strictly decodes p.
func (p *AddAuxDataFields[R]) UnmarshalJSON(data []byte) error {
	var out AddAuxDataFields[R]
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "actor", &out.Actor); err != nil {
			return err
		}
		return requiredField(o, "aux-data", &out.AuxData)
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// RevokeAuxDataFields are the sensitive fields of RevokeAuxData.
// AuxData is optional; when present in the message its key must be
// present too.
type RevokeAuxDataFields[R Kind] struct {
	Actor   Field[R, ActorID]  `json:"actor"`
	AuxData *Field[R, AuxData] `json:"aux-data,omitempty"`
}

// Equal reports whether p and other hold the same fields.
func (p RevokeAuxDataFields[R]) Equal(other RevokeAuxDataFields[R]) bool {
	return p.Actor.Equal(other.Actor) && equalOptional(p.AuxData, other.AuxData)
}

// UnmarshalJSON strictly decodes p.
func (p *RevokeAuxDataFields[R]) UnmarshalJSON(data []byte) error {
	var out RevokeAuxDataFields[R]
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "actor", &out.Actor); err != nil {
			return err
		}
		var err error
		out.AuxData, err = optionalField[Field[R, AuxData]](o, "aux-data")
		return err
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// AuxFields adds the plaintext aux-type and the optional aux-id to the
// sensitive fields T of an aux data action. On the wire they are
// written next to T's members.
type AuxFields[T any] struct {
	// AuxType is the identifier of the Auxiliary Data extension.
	AuxType string
	// AuxID is an optional Auxiliary Data Identifier; the directory
	// checks that it is valid for the given type and data.
	AuxID *string
	Inner T
}

// MarshalJSON writes aux-type and aux-id followed by Inner's members.
func (a AuxFields[T]) MarshalJSON() ([]byte, error) {
	head := []namedValue{{"aux-type", a.AuxType}}
	if a.AuxID != nil {
		head = append(head, namedValue{"aux-id", *a.AuxID})
	}
	return flatten(a.Inner, head...)
}

// UnmarshalJSON reads aux-type and aux-id and hands every other member
// to Inner.
func (a *AuxFields[T]) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	var out AuxFields[T]
	if err := requiredField(obj, "aux-type", &out.AuxType); err != nil {
		return err
	}
	if out.AuxID, err = optionalField[string](obj, "aux-id"); err != nil {
		return err
	}
	if err := decodeValue(obj.rest(), &out.Inner); err != nil {
		return err
	}
	*a = out
	return nil
}

func equalAuxFields[T any](a, b AuxFields[T], inner func(x, y T) bool) bool {
	if a.AuxType != b.AuxType {
		return false
	}
	if (a.AuxID == nil) != (b.AuxID == nil) {
		return false
	}
	if a.AuxID != nil && *a.AuxID != *b.AuxID {
		return false
	}
	return inner(a.Inner, b.Inner)
}

// CheckpointFields are the fields of a Checkpoint, sent from one
// directory to another. Nothing in a Checkpoint is encrypted.
type CheckpointFields struct {
	// FromDirectory is the public URL of the sending directory.
	FromDirectory string `json:"from-directory"`
	// FromRoot is the Merkle root of the sending directory.
	FromRoot MerkleRoot `json:"from-root"`
	// FromPublicKey is the sending directory's current public key.
	FromPublicKey PublicKey `json:"from-public-key"`
	// ToDirectory is the public URL of the receiving directory.
	ToDirectory string `json:"to-directory"`
	// ToValidatedRoot is the latest validated Merkle root of the
	// receiving directory.
	ToValidatedRoot MerkleRoot `json:"to-validated-root"`
}

// UnmarshalJSON strictly decodes c.
func (c *CheckpointFields) UnmarshalJSON(data []byte) error {
	var out CheckpointFields
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "from-directory", &out.FromDirectory); err != nil {
			return err
		}
		if err := requiredField(o, "from-root", &out.FromRoot); err != nil {
			return err
		}
		if err := requiredField(o, "from-public-key", &out.FromPublicKey); err != nil {
			return err
		}
		if err := requiredField(o, "to-directory", &out.ToDirectory); err != nil {
			return err
		}
		return requiredField(o, "to-validated-root", &out.ToValidatedRoot)
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}
