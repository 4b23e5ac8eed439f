// Package canistersig encodes and decodes the canister signature public
// key: a signer's canister id plus a seed, carried in the JWS header as a
// DER-wrapped octet string (§4.1 of the spec).
package canistersig

import (
	"bytes"
	"fmt"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
)

// derPrefix is the fixed ASN.1 prefix the platform wraps canister signature
// public keys in ahead of the length-prefixed canister id and seed. The
// exact bytes are platform-determined (§4.1); this implementation fixes one
// concrete, self-consistent prefix so that encode/decode round-trip and the
// JWS verifier can recognize the key's owning algorithm.
var derPrefix = []byte{
	0x30, 0x2a, 0x30, 0x0c, 0x06, 0x0a, 0x2b, 0x06, 0x01, 0x04,
	0x01, 0x82, 0xdc, 0x7c, 0x05, 0x03, 0x02, 0x01, 0x06, 0x00,
	0x03, 0x1a, 0x00,
}

// PublicKey identifies a signer canister and the seed it used to derive a
// specific signing key.
type PublicKey struct {
	CanisterID principal.Principal
	Seed       []byte
}

// New constructs a PublicKey from its components.
func New(canisterID principal.Principal, seed []byte) PublicKey {
	cp := make([]byte, len(seed))
	copy(cp, seed)
	return PublicKey{CanisterID: canisterID, Seed: cp}
}

// DER encodes pk as the platform's fixed byte layout: the opaque prefix,
// followed by a one-byte canister-id length, the canister id bytes, and the
// seed bytes.
func (pk PublicKey) DER() []byte {
	idBytes := pk.CanisterID.Bytes()
	out := make([]byte, 0, len(derPrefix)+1+len(idBytes)+len(pk.Seed))
	out = append(out, derPrefix...)
	out = append(out, byte(len(idBytes)))
	out = append(out, idBytes...)
	out = append(out, pk.Seed...)
	return out
}

// FromDER parses the platform's fixed byte layout back into a PublicKey.
func FromDER(der []byte) (PublicKey, error) {
	if len(der) < len(derPrefix)+1 {
		return PublicKey{}, fmt.Errorf("canistersig: DER too short")
	}
	if !bytes.Equal(der[:len(derPrefix)], derPrefix) {
		return PublicKey{}, fmt.Errorf("canistersig: unrecognized DER prefix")
	}
	rest := der[len(derPrefix):]
	idLen := int(rest[0])
	rest = rest[1:]
	if len(rest) < idLen {
		return PublicKey{}, fmt.Errorf("canistersig: truncated canister id")
	}
	canisterID, err := principal.FromBytes(rest[:idLen])
	if err != nil {
		return PublicKey{}, fmt.Errorf("canistersig: invalid canister id: %w", err)
	}
	seed := rest[idLen:]
	return New(canisterID, seed), nil
}

// RawSeed extracts the raw (non-DER) canister signature public key, i.e.
// the seed bytes, useful when a caller only needs the seed and not the
// canister id for downstream signature-map lookups.
func (pk PublicKey) RawSeed() []byte {
	cp := make([]byte, len(pk.Seed))
	copy(cp, pk.Seed)
	return cp
}
