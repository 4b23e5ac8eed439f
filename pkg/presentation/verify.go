package presentation

import (
	"encoding/json"
	"strings"

	"github.com/dfinity/verifiable-credentials-sdk/internal/blsverify"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/claims"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/credential"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/specmatch"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcerrors"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcjws"
)

// FlowSigners identifies the two canister signers and origins a relying
// party expects a presentation's credentials to come from (§3 VcFlowSigners).
type FlowSigners struct {
	IICanisterID     principal.Principal
	IssuerCanisterID principal.Principal
	IIOrigin         string
	IssuerOrigin     string
}

type vpPayload struct {
	VP struct {
		VerifiableCredential []string `json:"verifiableCredential"`
	} `json:"vp"`
}

func decodeVPPayload(vpJWT string) ([]string, error) {
	parts := strings.Split(vpJWT, ".")
	if len(parts) != 3 {
		return nil, vcerrors.InvalidPresentation("malformed presentation JWT")
	}
	payloadRaw, err := b64.DecodeString(parts[1])
	if err != nil {
		return nil, vcerrors.InvalidPresentation("malformed presentation JWT payload")
	}
	var p vpPayload
	if err := json.Unmarshal(payloadRaw, &p); err != nil {
		return nil, vcerrors.InvalidPresentation("malformed presentation JWT payload")
	}
	if len(p.VP.VerifiableCredential) != 2 {
		return nil, vcerrors.InvalidPresentation("expected exactly two verifiable credentials")
	}
	return p.VP.VerifiableCredential, nil
}

// VerifyWithCanisterIDs runs the structural and cryptographic checks of
// §4.8: decodes the VP, verifies the id-alias VC against signers.IICanisterID
// (§4.7), verifies the requested VC against signers.IssuerCanisterID (§4.5),
// and checks that the requested VC's subject equals the id-alias.
func VerifyWithCanisterIDs(
	vpJWT string,
	effectiveSubject principal.Principal,
	effectiveOrigin string,
	signers FlowSigners,
	rootPKRaw []byte,
	nowNs int64,
	verifier blsverify.Verifier,
) (claims.AliasTuple, json.RawMessage, error) {
	credJWSs, err := decodeVPPayload(vpJWT)
	if err != nil {
		return claims.AliasTuple{}, nil, err
	}
	idAliasJWS, requestedJWS := credJWSs[0], credJWSs[1]

	alias, err := claims.VerifiedIDAliasFromJWS(
		idAliasJWS, effectiveSubject, effectiveOrigin, signers.IICanisterID, rootPKRaw, nowNs, verifier)
	if err != nil {
		return claims.AliasTuple{}, nil, vcerrors.InvalidIDAliasCredential(err)
	}

	requestedClaimsJSON, err := vcjws.VerifyWithCanisterID(requestedJWS, signers.IssuerCanisterID, rootPKRaw, nowNs, verifier)
	if err != nil {
		return claims.AliasTuple{}, nil, vcerrors.InvalidRequestedCredential(err)
	}

	requestedSubject, err := claims.ExtractSubject(requestedClaimsJSON)
	if err != nil {
		return claims.AliasTuple{}, nil, vcerrors.InvalidRequestedCredential(err)
	}
	if !requestedSubject.Equal(alias.IDAlias) {
		return claims.AliasTuple{}, nil, vcerrors.InvalidPresentation("subject does not match id_alias")
	}

	return alias, requestedClaimsJSON, nil
}

type issClaim struct {
	Iss string          `json:"iss"`
	VC  json.RawMessage `json:"vc"`
}

// ValidateAndMatchSpec extends VerifyWithCanisterIDs (§4.8) with the
// requested VC's issuer-origin check and spec match (§4.10).
func ValidateAndMatchSpec(
	vpJWT string,
	effectiveSubject principal.Principal,
	effectiveOrigin string,
	signers FlowSigners,
	rootPKRaw []byte,
	nowNs int64,
	verifier blsverify.Verifier,
	spec credential.Spec,
) (claims.AliasTuple, error) {
	alias, requestedClaimsJSON, err := VerifyWithCanisterIDs(
		vpJWT, effectiveSubject, effectiveOrigin, signers, rootPKRaw, nowNs, verifier)
	if err != nil {
		return claims.AliasTuple{}, err
	}

	var c issClaim
	if err := json.Unmarshal(requestedClaimsJSON, &c); err != nil {
		return claims.AliasTuple{}, vcerrors.InconsistentClaims("requested credential claims are not a JSON object")
	}
	if err := claims.Validate("iss", signers.IssuerOrigin, c.Iss); err != nil {
		return claims.AliasTuple{}, err
	}
	if err := specmatch.Validate(c.VC, spec); err != nil {
		return claims.AliasTuple{}, err
	}
	return alias, nil
}
