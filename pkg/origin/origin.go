// Package origin reconciles the legacy (ic0.app) and modern (icp0.io)
// canister subdomain forms an id-alias VC's derivation origin may carry,
// per §4.9 of the spec.
package origin

import (
	"fmt"
	"regexp"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
)

// MainnetIICanisterID is the mainnet identity-provider canister's principal
// text (§6).
const MainnetIICanisterID = "rdmx6-jaaaa-aaaaa-aaadq-cai"

var modernSubdomain = regexp.MustCompile(`^https://(?P<sub>[\w-]+(?:\.raw)?)\.icp0\.io$`)

// Allowed returns the set of derivation-origin strings an id-alias VC may
// carry given the RP's declared expectedOrigin and the id-alias signer's
// canister id (§4.9).
func Allowed(expectedOrigin string, signerCanisterID principal.Principal) map[string]struct{} {
	match := modernSubdomain.FindStringSubmatch(expectedOrigin)
	if match == nil {
		return map[string]struct{}{expectedOrigin: {}}
	}
	sub := match[1]
	legacy := fmt.Sprintf("https://%s.ic0.app", sub)

	if signerCanisterID.String() == MainnetIICanisterID {
		return map[string]struct{}{legacy: {}}
	}
	return map[string]struct{}{legacy: {}, expectedOrigin: {}}
}

// MatchesExpected reports whether aliasOrigin is a member of
// Allowed(expectedOrigin, signerCanisterID).
func MatchesExpected(signerCanisterID principal.Principal, expectedOrigin, aliasOrigin string) bool {
	_, ok := Allowed(expectedOrigin, signerCanisterID)[aliasOrigin]
	return ok
}
