// Package claims implements the semantic checks over JWT claims: equality
// validation, subject/id-alias extraction, and the id-alias verification
// flow that ties a JWS to an AliasTuple (§4.6, §4.7 of the spec).
package claims

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dfinity/verifiable-credentials-sdk/internal/blsverify"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/origin"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcerrors"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcjws"
)

// IdentityProviderURL is the fixed issuer URL of id-alias VCs (§6).
const IdentityProviderURL = "https://identity.ic0.app/"

// AliasTuple is the unlinkability binding extracted from an id-alias VC:
// the RP-visible principal (IDDapp), its unlinkable per-issuer alias
// (IDAlias), and the derivation origin used to derive them.
type AliasTuple struct {
	IDAlias          principal.Principal
	IDDapp           principal.Principal
	DerivationOrigin string
}

// Validate compares actual against expected for a named claim, per
// validate_claim (§4.6): a plain lexical equality check.
func Validate(label, expected, actual string) error {
	if expected != actual {
		return vcerrors.InconsistentClaims(fmt.Sprintf("%s: expected %q, got %q", label, expected, actual))
	}
	return nil
}

// minimalClaims is the subset of top-level JWT claims this package reads.
type minimalClaims struct {
	Sub string          `json:"sub"`
	Iss string          `json:"iss"`
	VC  json.RawMessage `json:"vc"`
}

// ExtractSubject reads claims.sub, requiring the did:icp: prefix, and
// decodes it to a Principal (§4.6).
func ExtractSubject(claimsJSON []byte) (principal.Principal, error) {
	var c minimalClaims
	if err := json.Unmarshal(claimsJSON, &c); err != nil {
		return principal.Principal{}, vcerrors.InconsistentClaims("claims is not a JSON object")
	}
	if !strings.HasPrefix(c.Sub, principal.DIDPrefix) {
		return principal.Principal{}, vcerrors.InconsistentClaims("sub is missing the did:icp: prefix")
	}
	p, err := principal.FromDID(c.Sub)
	if err != nil {
		return principal.Principal{}, vcerrors.InconsistentClaims("sub does not decode to a principal: " + err.Error())
	}
	return p, nil
}

type vcCredentialSubject struct {
	CredentialSubject struct {
		InternetIdentityIdAlias *struct {
			HasIdAlias       string `json:"hasIdAlias"`
			DerivationOrigin string `json:"derivationOrigin"`
		} `json:"InternetIdentityIdAlias"`
	} `json:"credentialSubject"`
}

// ExtractIDAlias reads vc.credentialSubject.InternetIdentityIdAlias from
// claimsJSON and assembles an AliasTuple, with id_dapp taken from the
// already-extracted subject (§4.6).
func ExtractIDAlias(claimsJSON []byte, subject principal.Principal) (AliasTuple, error) {
	var c minimalClaims
	if err := json.Unmarshal(claimsJSON, &c); err != nil {
		return AliasTuple{}, vcerrors.InconsistentClaims("claims is not a JSON object")
	}
	if len(c.VC) == 0 {
		return AliasTuple{}, vcerrors.InconsistentClaims("missing vc claim")
	}
	var v vcCredentialSubject
	if err := json.Unmarshal(c.VC, &v); err != nil {
		return AliasTuple{}, vcerrors.InconsistentClaims("vc.credentialSubject is malformed")
	}
	if v.CredentialSubject.InternetIdentityIdAlias == nil {
		return AliasTuple{}, vcerrors.InconsistentClaims("missing InternetIdentityIdAlias")
	}
	alias := v.CredentialSubject.InternetIdentityIdAlias
	if alias.HasIdAlias == "" {
		return AliasTuple{}, vcerrors.InconsistentClaims("missing hasIdAlias")
	}
	idAlias, err := principal.FromText(alias.HasIdAlias)
	if err != nil {
		return AliasTuple{}, vcerrors.InconsistentClaims("hasIdAlias does not decode to a principal: " + err.Error())
	}
	return AliasTuple{
		IDAlias:          idAlias,
		IDDapp:           subject,
		DerivationOrigin: alias.DerivationOrigin,
	}, nil
}

// VerifiedIDAliasFromJWS runs the full id-alias verification flow (§4.7):
// JWS verification (§4.5), issuer URL check, alias-tuple extraction,
// subject-match check, and origin reconciliation (§4.9).
func VerifiedIDAliasFromJWS(
	jws string,
	expectedVCSubject principal.Principal,
	expectedDerivationOrigin string,
	signerCanisterID principal.Principal,
	rootPKRaw []byte,
	nowNs int64,
	verifier blsverify.Verifier,
) (AliasTuple, error) {
	claimsJSON, err := vcjws.VerifyWithCanisterID(jws, signerCanisterID, rootPKRaw, nowNs, verifier)
	if err != nil {
		return AliasTuple{}, err
	}

	var c minimalClaims
	if err := json.Unmarshal(claimsJSON, &c); err != nil {
		return AliasTuple{}, vcerrors.InconsistentClaims("claims is not a JSON object")
	}
	if err := Validate("iss", IdentityProviderURL, c.Iss); err != nil {
		return AliasTuple{}, err
	}

	subject, err := ExtractSubject(claimsJSON)
	if err != nil {
		return AliasTuple{}, err
	}
	alias, err := ExtractIDAlias(claimsJSON, subject)
	if err != nil {
		return AliasTuple{}, err
	}
	if !alias.IDDapp.Equal(expectedVCSubject) {
		return AliasTuple{}, vcerrors.InconsistentClaims("id_dapp does not match expected subject")
	}
	if !origin.MatchesExpected(signerCanisterID, expectedDerivationOrigin, alias.DerivationOrigin) {
		return AliasTuple{}, vcerrors.InconsistentClaims("derivation origin not in allowed set")
	}
	return alias, nil
}
