package vcjws

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/dfinity/verifiable-credentials-sdk/internal/blsverify"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/canistersig"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcerrors"
)

// JWS is a parsed compact JWS: the decoded header and payload, the
// original (still base64url-encoded) signing input, and the decoded
// signature.
type JWS struct {
	Header       header
	Payload      []byte
	Signature    []byte
	SigningInput []byte
}

func splitSigningInput(signingInput []byte) (headerRaw, payloadRaw []byte, err error) {
	dot := bytes.IndexByte(signingInput, '.')
	if dot < 0 {
		return nil, nil, vcerrors.ErrInvalidSignature.WithMessage("malformed signing input")
	}
	headerRaw, err = decodeB64(string(signingInput[:dot]))
	if err != nil {
		return nil, nil, vcerrors.ErrInvalidSignature.WithMessage("invalid header encoding")
	}
	payloadRaw, err = decodeB64(string(signingInput[dot+1:]))
	if err != nil {
		return nil, nil, vcerrors.ErrInvalidSignature.WithMessage("invalid payload encoding")
	}
	return headerRaw, payloadRaw, nil
}

// Parse decodes a compact JWS (header.payload.signature). The signature
// segment may be empty, as produced for the unsigned (alg=none)
// presentation JWT.
func Parse(compact string) (*JWS, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 3 {
		return nil, vcerrors.ErrInvalidSignature.WithMessage("credential JWS parsing error")
	}
	headerRaw, err := decodeB64(parts[0])
	if err != nil {
		return nil, vcerrors.ErrInvalidSignature.WithMessage("credential JWS parsing error")
	}
	payloadRaw, err := decodeB64(parts[1])
	if err != nil {
		return nil, vcerrors.ErrInvalidSignature.WithMessage("credential JWS parsing error")
	}
	var sig []byte
	if parts[2] != "" {
		sig, err = decodeB64(parts[2])
		if err != nil {
			return nil, vcerrors.ErrInvalidSignature.WithMessage("credential JWS parsing error")
		}
	}
	h, err := parseHeader(headerRaw)
	if err != nil {
		return nil, vcerrors.ErrInvalidSignature.WithMessage("missing JWS header")
	}
	signingInput := []byte(parts[0] + "." + parts[1])
	return &JWS{Header: h, Payload: payloadRaw, Signature: sig, SigningInput: signingInput}, nil
}

// CanisterSigPKDER extracts the DER-encoded canister signature public key
// from the parsed JWS header, validating the alg/kty markers along the
// way (§4.5 step 2).
func (j *JWS) CanisterSigPKDER() ([]byte, error) {
	if j.Header.JWK.Alg != icCsAlg {
		return nil, vcerrors.ErrUnsupportedAlg.WithMessage("expected IcCs")
	}
	if j.Header.JWK.Kty != "oct" {
		return nil, vcerrors.ErrUnsupportedAlg.WithMessage("expected JWK of type oct")
	}
	if j.Header.JWK.K == "" {
		return nil, vcerrors.ErrKeyDecodingFailure.WithMessage("missing JWK in JWS header")
	}
	der, err := decodeB64(j.Header.JWK.K)
	if err != nil {
		return nil, vcerrors.ErrKeyDecodingFailure.WithMessage("invalid base64url encoding")
	}
	return der, nil
}

// claims is the minimal subset of JWT claims this package reads directly;
// callers needing the full "vc" payload work with the raw Payload bytes
// (see package claims).
type claims struct {
	Iss string `json:"iss"`
	Exp *int64 `json:"exp"`
	Sub string `json:"sub"`
}

// VerifyWithCanisterID cryptographically verifies credentialJWS and checks
// that it was signed by signingCanisterID, per §4.5. It does not perform
// semantic validation of iss/sub/content beyond the expiration check.
func VerifyWithCanisterID(
	credentialJWS string,
	signingCanisterID principal.Principal,
	rootPKRaw []byte,
	currentTimeNs int64,
	verifier blsverify.Verifier,
) (json.RawMessage, error) {
	jws, err := Parse(credentialJWS)
	if err != nil {
		return nil, err
	}

	pkDER, err := jws.CanisterSigPKDER()
	if err != nil {
		return nil, err
	}
	pk, err := canistersig.FromDER(pkDER)
	if err != nil {
		return nil, vcerrors.ErrKeyDecodingFailure.WithMessage("invalid canister sig public key: " + err.Error())
	}
	if !signingCanisterID.Equal(pk.CanisterID) {
		return nil, vcerrors.ErrInvalidSignature.WithMessage(
			"canister sig canister id does not match provided canister id: expected " +
				signingCanisterID.String() + ", got " + pk.CanisterID.String())
	}

	message := domainSeparatedMessage(jws.SigningInput)
	if err := verifier.VerifyCanisterSig(message, jws.Signature, pkDER, rootPKRaw); err != nil {
		return nil, vcerrors.ErrInvalidSignature.WithMessage("signature verification error: " + err.Error())
	}

	var c claims
	if err := json.Unmarshal(jws.Payload, &c); err != nil {
		return nil, vcerrors.ErrInvalidSignature.WithMessage("failed parsing JSON JWT claims")
	}
	if c.Exp == nil {
		return nil, vcerrors.ErrInvalidSignature.WithMessage("credential expired: missing expiration date")
	}
	expNs := *c.Exp * int64(time.Second)
	if expNs <= currentTimeNs {
		return nil, vcerrors.ErrInvalidSignature.WithMessage("credential expired")
	}

	return json.RawMessage(jws.Payload), nil
}

func domainSeparatedMessage(signingInput []byte) []byte {
	return DomainSeparatedMessage(signingInput)
}

// DomainSeparatedMessage prefixes signingInput with the one-byte domain-tag
// length and the domain tag itself, producing the exact bytes a canister
// signature is computed (and verified) over (§4.1). Exported so the issuer
// side can hand a witnessing collaborator the same bytes the verifier will
// later reconstruct.
func DomainSeparatedMessage(signingInput []byte) []byte {
	out := make([]byte, 0, 1+len(DomainTag)+len(signingInput))
	out = append(out, byte(len(DomainTag)))
	out = append(out, []byte(DomainTag)...)
	out = append(out, signingInput...)
	return out
}
