// Defines the PKD protocol messages and their canonical encoding.

package protocol

import "errors"

// An ActionName is the kebab-case name of a PKD operation, used as the
// value of the "action" discriminant on the wire.
type ActionName string

// The PKD operations.
const (
	ActionAddKey              ActionName = "add-key"
	ActionRevokeKey           ActionName = "revoke-key"
	ActionRevokeKeyThirdParty ActionName = "revoke-key-third-party"
	ActionMoveIdentity        ActionName = "move-identity"
	ActionBurnDown            ActionName = "burn-down"
	ActionFireproof           ActionName = "fireproof"
	ActionUndoFireproof       ActionName = "undo-fireproof"
	ActionAddAuxData          ActionName = "add-aux-data"
	ActionRevokeAuxData       ActionName = "revoke-aux-data"
	ActionCheckpoint          ActionName = "checkpoint"
)

// ActionField is the member name of the discriminant.
const ActionField = "action"

// An Action is one of the PKD protocol messages: AddKey, RevokeKey,
// RevokeKeyThirdParty, MoveIdentity, BurnDown, Fireproof,
// UndoFireproof, AddAuxData, RevokeAuxData or Checkpoint.
// The set is closed.
type Action interface {
	// Name returns the operation's wire name.
	Name() ActionName
	isAction()
}

var actionDecoders = map[ActionName]func([]byte) (Action, error){
	ActionAddKey:              decodeAction[AddKey],
	ActionRevokeKey:           decodeAction[RevokeKey],
	ActionRevokeKeyThirdParty: decodeAction[RevokeKeyThirdParty],
	ActionMoveIdentity:        decodeAction[MoveIdentity],
	ActionBurnDown:            decodeAction[BurnDown],
	ActionFireproof:           decodeAction[Fireproof],
	ActionUndoFireproof:       decodeAction[UndoFireproof],
	ActionAddAuxData:          decodeAction[AddAuxData],
	ActionRevokeAuxData:       decodeAction[RevokeAuxData],
	ActionCheckpoint:          decodeAction[Checkpoint],
}

// ActionNames returns the names of all PKD operations.
func ActionNames() []ActionName {
	return []ActionName{
		ActionAddKey, ActionRevokeKey, ActionRevokeKeyThirdParty,
		ActionMoveIdentity, ActionBurnDown, ActionFireproof,
		ActionUndoFireproof, ActionAddAuxData, ActionRevokeAuxData,
		ActionCheckpoint,
	}
}

// ParseActionName returns the ActionName s, or ErrUnknownActionTag.
func ParseActionName(s string) (ActionName, error) {
	name := ActionName(s)
	if _, ok := actionDecoders[name]; !ok {
		return "", &Error{Code: ErrUnknownActionTag, Field: ActionField,
			Msg: "unknown action " + s}
	}
	return name, nil
}

// validatable is implemented by actions with constraints spanning
// more than one member.
type validatable interface {
	validate() error
}

var errNilAction = errors.New("nil action")

// MarshalAction returns the canonical encoding of a: a single JSON
// object holding "action" followed by the action's members.
func MarshalAction(a Action) ([]byte, error) {
	if a == nil {
		return nil, wrapError(ErrBadValue, errNilAction, "")
	}
	if v, ok := a.(validatable); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	return flatten(a, namedValue{ActionField, a.Name()})
}

// ParseAction decodes and validates an encoded Action. Unknown or
// duplicated members, missing members and non-canonical values are
// rejected; the returned *Error names the offending member.
func ParseAction(data []byte) (Action, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	var tag string
	if err := requiredField(obj, ActionField, &tag); err != nil {
		return nil, err
	}
	name, err := ParseActionName(tag)
	if err != nil {
		return nil, err
	}
	a, err := actionDecoders[name](obj.rest())
	if err != nil {
		return nil, err
	}
	if v, ok := a.(validatable); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func decodeAction[A Action](data []byte) (Action, error) {
	var a A
	if err := decodeValue(data, &a); err != nil {
		return nil, err
	}
	return a, nil
}

// ActionsEqual reports whether a and b are the same action with the same
// content. Symmetric keys are compared in constant time.
func ActionsEqual(a, b Action) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case AddKey:
		y, ok := b.(AddKey)
		return ok && x.KeyAction.Equal(y.KeyAction)
	case RevokeKey:
		y, ok := b.(RevokeKey)
		return ok && x.KeyAction.Equal(y.KeyAction)
	case RevokeKeyThirdParty:
		y, ok := b.(RevokeKeyThirdParty)
		return ok && x == y
	case MoveIdentity:
		y, ok := b.(MoveIdentity)
		return ok && x.Equal(y)
	case BurnDown:
		y, ok := b.(BurnDown)
		return ok && x.Equal(y)
	case Fireproof:
		y, ok := b.(Fireproof)
		return ok && x.FireproofAction.Equal(y.FireproofAction)
	case UndoFireproof:
		y, ok := b.(UndoFireproof)
		return ok && x.FireproofAction.Equal(y.FireproofAction)
	case AddAuxData:
		y, ok := b.(AddAuxData)
		return ok && x.Equal(y)
	case RevokeAuxData:
		y, ok := b.(RevokeAuxData)
		return ok && x.Equal(y)
	case Checkpoint:
		y, ok := b.(Checkpoint)
		return ok && x == y
	}
	return false
}

// KeyAction is the content shared by AddKey and RevokeKey.
type KeyAction struct {
	// Message holds the encrypted actor and public key.
	Message Timestamped[KeyFields[CipherText]] `json:"message"`
	// SymmetricKeys holds the keys which decrypt Message.
	SymmetricKeys KeyFields[KeyText] `json:"symmetric-keys"`
}

// Equal reports whether a and other hold the same content.
func (a KeyAction) Equal(other KeyAction) bool {
	return a.Message.Time == other.Message.Time &&
		a.Message.Inner.Equal(other.Message.Inner) &&
		a.SymmetricKeys.Equal(other.SymmetricKeys)
}

// UnmarshalJSON strictly decodes a.
func (a *KeyAction) UnmarshalJSON(data []byte) error {
	var out KeyAction
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "message", &out.Message); err != nil {
			return err
		}
		return requiredField(o, "symmetric-keys", &out.SymmetricKeys)
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// AddKey adds a public key to an actor.
type AddKey struct{ KeyAction }

// RevokeKey revokes one of an actor's public keys.
type RevokeKey struct{ KeyAction }

// A RevocationToken is a compact token which a user can issue at any
// time to revoke an existing public key. It is self-contained.
type RevocationToken string

// UnmarshalJSON decodes t from a JSON string.
func (t *RevocationToken) UnmarshalJSON(data []byte) error {
	s, err := decodeJSONString(data)
	if err != nil {
		return err
	}
	*t = RevocationToken(s)
	return nil
}

// RevokeKeyThirdParty revokes a public key with a revocation token.
type RevokeKeyThirdParty struct {
	RevocationToken RevocationToken `json:"revocation-token"`
}

// UnmarshalJSON strictly decodes a.
func (a *RevokeKeyThirdParty) UnmarshalJSON(data []byte) error {
	var out RevokeKeyThirdParty
	err := decodeObject(data, func(o *object) error {
		return requiredField(o, "revocation-token", &out.RevocationToken)
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// MoveIdentity moves an actor's keys to a new actor id.
type MoveIdentity struct {
	Message       Timestamped[MoveIdentityFields[CipherText]] `json:"message"`
	SymmetricKeys MoveIdentityFields[KeyText]                 `json:"symmetric-keys"`
}

// Equal reports whether a and other hold the same content.
func (a MoveIdentity) Equal(other MoveIdentity) bool {
	return a.Message.Time == other.Message.Time &&
		a.Message.Inner.Equal(other.Message.Inner) &&
		a.SymmetricKeys.Equal(other.SymmetricKeys)
}

// UnmarshalJSON strictly decodes a.
func (a *MoveIdentity) UnmarshalJSON(data []byte) error {
	var out MoveIdentity
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "message", &out.Message); err != nil {
			return err
		}
		return requiredField(o, "symmetric-keys", &out.SymmetricKeys)
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// BurnDown is an emergency revocation of all of an actor's keys,
// issued by an instance operator.
type BurnDown struct {
	Message Timestamped[BurnDownFields[CipherText]] `json:"message"`
	// OTP is an optional one-time password.
	OTP           *string                 `json:"otp,omitempty"`
	SymmetricKeys BurnDownFields[KeyText] `json:"symmetric-keys"`
}

// Equal reports whether a and other hold the same content.
func (a BurnDown) Equal(other BurnDown) bool {
	if (a.OTP == nil) != (other.OTP == nil) ||
		a.OTP != nil && *a.OTP != *other.OTP {
		return false
	}
	return a.Message.Time == other.Message.Time &&
		a.Message.Inner.Equal(other.Message.Inner) &&
		a.SymmetricKeys.Equal(other.SymmetricKeys)
}

// UnmarshalJSON strictly decodes a.
func (a *BurnDown) UnmarshalJSON(data []byte) error {
	var out BurnDown
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "message", &out.Message); err != nil {
			return err
		}
		var err error
		if out.OTP, err = optionalField[string](o, "otp"); err != nil {
			return err
		}
		return requiredField(o, "symmetric-keys", &out.SymmetricKeys)
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// FireproofAction is the content shared by Fireproof and UndoFireproof.
type FireproofAction struct {
	Message       Timestamped[FireproofFields[CipherText]] `json:"message"`
	SymmetricKeys FireproofFields[KeyText]                 `json:"symmetric-keys"`
}

// Equal reports whether a and other hold the same content.
func (a FireproofAction) Equal(other FireproofAction) bool {
	return a.Message.Time == other.Message.Time &&
		a.Message.Inner.Equal(other.Message.Inner) &&
		a.SymmetricKeys.Equal(other.SymmetricKeys)
}

// UnmarshalJSON strictly decodes a.
func (a *FireproofAction) UnmarshalJSON(data []byte) error {
	var out FireproofAction
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "message", &out.Message); err != nil {
			return err
		}
		return requiredField(o, "symmetric-keys", &out.SymmetricKeys)
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// Fireproof protects an actor's keys from BurnDown.
type Fireproof struct{ FireproofAction }

// UndoFireproof removes the protection set by Fireproof.
type UndoFireproof struct{ FireproofAction }

// AddAuxData attaches auxiliary data to an actor.
type AddAuxData struct {
	Message       Timestamped[AuxFields[AddAuxDataFields[CipherText]]] `json:"message"`
	SymmetricKeys AddAuxDataFields[KeyText]                            `json:"symmetric-keys"`
}

// Equal reports whether a and other hold the same content.
func (a AddAuxData) Equal(other AddAuxData) bool {
	return a.Message.Time == other.Message.Time &&
		equalAuxFields(a.Message.Inner, other.Message.Inner, AddAuxDataFields[CipherText].Equal) &&
		a.SymmetricKeys.Equal(other.SymmetricKeys)
}

// UnmarshalJSON strictly decodes a.
func (a *AddAuxData) UnmarshalJSON(data []byte) error {
	var out AddAuxData
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "message", &out.Message); err != nil {
			return err
		}
		return requiredField(o, "symmetric-keys", &out.SymmetricKeys)
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// RevokeAuxData revokes auxiliary data attached to an actor.
type RevokeAuxData struct {
	Message       Timestamped[AuxFields[RevokeAuxDataFields[CipherText]]] `json:"message"`
	SymmetricKeys RevokeAuxDataFields[KeyText]                            `json:"symmetric-keys"`
}

// Equal reports whether a and other hold the same content.
func (a RevokeAuxData) Equal(other RevokeAuxData) bool {
	return a.Message.Time == other.Message.Time &&
		equalAuxFields(a.Message.Inner, other.Message.Inner, RevokeAuxDataFields[CipherText].Equal) &&
		a.SymmetricKeys.Equal(other.SymmetricKeys)
}

// UnmarshalJSON strictly decodes a.
func (a *RevokeAuxData) UnmarshalJSON(data []byte) error {
	var out RevokeAuxData
	err := decodeObject(data, func(o *object) error {
		if err := requiredField(o, "message", &out.Message); err != nil {
			return err
		}
		return requiredField(o, "symmetric-keys", &out.SymmetricKeys)
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// validate checks that the optional aux-data ciphertext and its key are
// either both present or both absent.
func (a RevokeAuxData) validate() error {
	sealed := a.Message.Inner.Inner.AuxData != nil
	keyed := a.SymmetricKeys.AuxData != nil
	switch {
	case sealed && !keyed:
		return &Error{Code: ErrMissingField, Field: "symmetric-keys.aux-data"}
	case keyed && !sealed:
		return &Error{Code: ErrUnexpectedField, Field: "symmetric-keys.aux-data"}
	}
	return nil
}

// Checkpoint is sent by one directory to another to cross-sign their
// Merkle roots.
type Checkpoint struct {
	Message Timestamped[CheckpointFields] `json:"message"`
}

// UnmarshalJSON strictly decodes a.
func (a *Checkpoint) UnmarshalJSON(data []byte) error {
	var out Checkpoint
	err := decodeObject(data, func(o *object) error {
		return requiredField(o, "message", &out.Message)
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

func (AddKey) Name() ActionName              { return ActionAddKey }
func (RevokeKey) Name() ActionName           { return ActionRevokeKey }
func (RevokeKeyThirdParty) Name() ActionName { return ActionRevokeKeyThirdParty }
func (MoveIdentity) Name() ActionName        { return ActionMoveIdentity }
func (BurnDown) Name() ActionName            { return ActionBurnDown }
func (Fireproof) Name() ActionName           { return ActionFireproof }
func (UndoFireproof) Name() ActionName       { return ActionUndoFireproof }
func (AddAuxData) Name() ActionName          { return ActionAddAuxData }
func (RevokeAuxData) Name() ActionName       { return ActionRevokeAuxData }
func (Checkpoint) Name() ActionName          { return ActionCheckpoint }

func (AddKey) isAction()              {}
func (RevokeKey) isAction()           {}
func (RevokeKeyThirdParty) isAction() {}
func (MoveIdentity) isAction()        {}
func (BurnDown) isAction()            {}
func (Fireproof) isAction()           {}
func (UndoFireproof) isAction()       {}
func (AddAuxData) isAction()          {}
func (RevokeAuxData) isAction()       {}
func (Checkpoint) isAction()          {}
