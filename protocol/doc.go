/*
Package protocol is a library for building compatible public key
directory (PKD) clients and servers for the fediverse.

protocol defines the typed messages exchanged with a PKD and their
canonical text encoding. It does no network I/O, storage, signing or
encryption: ciphertexts and Merkle roots are produced elsewhere and only
carried here.

# Prefixed Values

This module implements the codec for tagged fixed-size binary values,
written as PREFIX:BASE64URL without padding. Public keys (ed25519) and
Merkle roots (pkd-mr-v1) are encoded this way. Decoding accepts only the
exact canonical spelling.

# Encrypted Values and Keys

An Encrypted[P] is the ciphertext of a value of type P, encoded as bare
base64url. A SymmetricKey is the key which decrypts one such field; it
is compared in constant time, never printed, and wiped once unused.

# Representations

Every payload schema is declared once over a representation Kind. Its
CipherText shape is sent as the action's message and its KeyText shape,
with the same members, as the action's symmetric keys.

# Timestamp

This module defines the timestamp of a message and the envelope which
adds it next to the message's own members.

# Action

This module defines the PKD operations (AddKey, RevokeKey,
RevokeKeyThirdParty, MoveIdentity, BurnDown, Fireproof, UndoFireproof,
AddAuxData, RevokeAuxData and Checkpoint) and their encoding as a single
JSON object tagged by its "action" member. Decoding is strict: unknown,
duplicated and missing members are errors.

# Error

This module defines the error codes returned when a value is rejected,
and the Error type which names the offending member.
*/
package protocol
