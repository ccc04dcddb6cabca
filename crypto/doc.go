// Package crypto contains the handling of secret material used by
// the PKD wire schema:
//   - hold symmetric key bytes in a SecretBuffer which is zeroed when
//     it is released and never printed,
//   - compare secrets in constant time (ConstantTimeEqual),
//   - draw new random secrets (NewRandomSecret).
//
// This package performs no encryption, signing or hashing.
package crypto
