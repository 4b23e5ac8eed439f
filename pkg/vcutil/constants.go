// Package vcutil gathers the bit-exact constants of §6 of the spec as a
// single convenient import for callers that just need the wire constants
// without pulling in each component. Most are re-exported from the
// packages that own them; CredentialExpirationPeriod and
// CredentialIDURLPrefix are declared here with the same values as their
// counterparts in internal/issuer.
package vcutil

import (
	"time"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/claims"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/origin"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcjws"
)

const (
	// IssuerURL is the fixed issuer URL of id-alias VCs.
	IssuerURL = claims.IdentityProviderURL

	// MainnetIICanisterID is the mainnet identity-provider canister's
	// principal text.
	MainnetIICanisterID = origin.MainnetIICanisterID

	// VCSigningInputDomainTag is the 26-ASCII-byte domain-separation tag.
	VCSigningInputDomainTag = vcjws.DomainTag

	// DIDICPPrefix is prepended to a principal's text form to make a DID.
	DIDICPPrefix = principal.DIDPrefix

	// CredentialExpirationPeriod is the fixed validity window of an issued
	// credential.
	CredentialExpirationPeriod = 15 * time.Minute
)

// CredentialIDURLPrefix is the fixed scheme/prefix of a credential-id URL.
const CredentialIDURLPrefix = "data:text/plain;charset=UTF-8,"
