// Package vcjws builds, assembles, and verifies the compact JWS used to
// carry a canister-signed verifiable credential (§4.1, §4.2, §4.5 of the
// spec). It deliberately avoids a general-purpose JOSE/JWT library for the
// credential JWS itself: the "IcCs" algorithm identifier is not a
// registered JOSE algorithm, and the signature is supplied externally
// (from the signer-service's signature map) rather than computed here.
package vcjws

import (
	"crypto/sha256"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/canistersig"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
)

// DomainTag is the 26-byte domain-separation tag prefixed (with its own
// one-byte length) to a signing input before hashing it for the signer
// service (§4.1, §6).
const DomainTag = "iccs_verifiable_credential"

// SigningInput deterministically assembles the bytes to be signed from a
// credential JWT and the signer's public key: base64url(header) + "." +
// base64url(credentialJWT).
func SigningInput(credentialJWT []byte, pk canistersig.PublicKey) ([]byte, error) {
	h := newHeader(principal.DID(pk.CanisterID), pk.DER())
	headerJSON, err := h.marshal()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, b64Len(len(headerJSON))+1+b64Len(len(credentialJWT)))
	out = append(out, encodeB64(headerJSON)...)
	out = append(out, '.')
	out = append(out, encodeB64(credentialJWT)...)
	return out, nil
}

func b64Len(n int) int {
	return (n*8 + 5) / 6
}

// SigningInputHash computes the domain-separated SHA-256 hash of
// signingInput, used when registering or looking up a signature in the
// signer service's signature map:
//
//	SHA-256( [len(DomainTag)] · DomainTag · signingInput )
func SigningInputHash(signingInput []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{byte(len(DomainTag))})
	h.Write([]byte(DomainTag))
	h.Write(signingInput)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ToJWS packages credentialJWT, a header built from pk, and sig into a
// compact JWS. The validity of sig is not checked here.
func ToJWS(credentialJWT []byte, pk canistersig.PublicKey, sig []byte) (string, error) {
	signingInput, err := SigningInput(credentialJWT, pk)
	if err != nil {
		return "", err
	}
	return SigningInputToJWS(signingInput, sig)
}

// SigningInputToJWS appends sig to a previously computed signingInput,
// without re-serializing the header or payload — the exact bytes of the
// signing input are reused so the final JWS reproduces the bytes that were
// actually signed.
func SigningInputToJWS(signingInput, sig []byte) (string, error) {
	out := make([]byte, 0, len(signingInput)+1+b64Len(len(sig)))
	out = append(out, signingInput...)
	out = append(out, '.')
	out = append(out, encodeB64(sig)...)
	return string(out), nil
}

// CanisterSigPKFromSigningInput extracts the canister signature public key
// embedded in the JWS header of a previously computed signing input.
func CanisterSigPKFromSigningInput(signingInput []byte) (canistersig.PublicKey, error) {
	headerRaw, _, err := splitSigningInput(signingInput)
	if err != nil {
		return canistersig.PublicKey{}, err
	}
	h, err := parseHeader(headerRaw)
	if err != nil {
		return canistersig.PublicKey{}, err
	}
	der, err := decodeB64(h.JWK.K)
	if err != nil {
		return canistersig.PublicKey{}, err
	}
	return canistersig.FromDER(der)
}
