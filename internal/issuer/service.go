// Package issuer implements the two-phase credential-issuance state
// machine (§4.12 of the spec): prepare_credential / get_credential backed
// by a process-wide signature map, plus the issuer's auxiliary consent
// and derivation-origin methods (§6).
package issuer

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/canistersig"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/claims"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/consent"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/credential"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/logger"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcerrors"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcjws"
)

// CredentialExpirationPeriod is the fixed validity window of an issued
// credential: 15 minutes (§6).
const CredentialExpirationPeriod = 15 * time.Minute

// Service is the issuer's exported surface: consent formatting, derivation
// origin passthrough, and the prepare/get credential state machine.
//
// PrepareCredential holds a single mutex over build → hash → witness →
// insert; the id_alias extraction before it reads only the request. No
// certified-data root is kept or updated. The signer platform itself gets
// this serialization for free as a single-threaded actor.
type Service struct {
	mu        sync.Mutex
	pk        canistersig.PublicKey
	issuerURL string
	sigMap    *SignatureMap
	signer    Signer
	log       *logger.Log
}

// NewService constructs a Service. signer stands in for the platform's
// asynchronous witnessing step (§5); see the Signer doc comment.
func NewService(pk canistersig.PublicKey, issuerURL string, signer Signer, log *logger.Log) *Service {
	if log == nil {
		log = logger.NewSimple("issuer")
	}
	return &Service{
		pk:        pk,
		issuerURL: issuerURL,
		sigMap:    NewSignatureMap(),
		signer:    signer,
		log:       log,
	}
}

// ConsentMessage renders the issuer's consent prompt for spec (§4.11, §6
// vc_consent_message).
func (s *Service) ConsentMessage(spec credential.Spec) string {
	return consent.Format(spec)
}

// DerivationOrigin echoes frontendHostname, per §6's identity-passthrough
// contract for derivation_origin.
func (s *Service) DerivationOrigin(frontendHostname string) string {
	return frontendHostname
}

// extractIDAliasUnverified reads the id_alias principal out of the
// client-supplied id-alias JWS without verifying its signature: trust is
// deferred to the relying party, per the spec's documented Open Question
// (§9) — a malicious caller can only induce issuance bound to an alias the
// RP will subsequently reject.
func extractIDAliasUnverified(signedIDAliasJWS string) (principal.Principal, error) {
	parsed, err := vcjws.Parse(signedIDAliasJWS)
	if err != nil {
		return principal.Principal{}, err
	}
	subject, err := claims.ExtractSubject(parsed.Payload)
	if err != nil {
		return principal.Principal{}, err
	}
	alias, err := claims.ExtractIDAlias(parsed.Payload, subject)
	if err != nil {
		return principal.Principal{}, err
	}
	return alias.IDAlias, nil
}

// PrepareCredential derives the id_alias from signedIDAliasJWS (unverified),
// builds the credential JWT for spec, computes its signing input and
// domain-separated hash, witnesses and registers the signature, and
// returns the credential JWT bytes as the opaque prepared_context (§4.12).
func (s *Service) PrepareCredential(signedIDAliasJWS string, spec credential.Spec, now time.Time) ([]byte, error) {
	reqID := uuid.NewString()

	subjectIDAlias, err := extractIDAliasUnverified(signedIDAliasJWS)
	if err != nil {
		return nil, vcerrors.ErrInternal.WithMessage("failed extracting id_alias: " + err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subjectDID := principal.DID(subjectIDAlias)
	credentialIDURL := CredentialID(s.issuerURL, now, subjectIDAlias)
	params := credential.Params{
		Spec:                 spec,
		SubjectID:            subjectDID,
		CredentialIDURL:      credentialIDURL,
		IssuerURL:            s.issuerURL,
		ExpirationTimestampS: now.Add(CredentialExpirationPeriod).Unix(),
	}

	credentialJWT, err := credential.BuildJWT(params, now)
	if err != nil {
		return nil, vcerrors.ErrInternal.WithMessage("failed building credential JWT: " + err.Error())
	}

	signingInput, err := vcjws.SigningInput(credentialJWT, s.pk)
	if err != nil {
		return nil, vcerrors.ErrInternal.WithMessage("failed building signing input: " + err.Error())
	}
	hash := vcjws.SigningInputHash(signingInput)

	sig, err := s.signer.Sign(vcjws.DomainSeparatedMessage(signingInput))
	if err != nil {
		return nil, vcerrors.ErrInternal.WithMessage("failed witnessing signature: " + err.Error())
	}
	s.sigMap.AddSignature(hash, sig)

	s.log.Debug("prepared credential", "req_id", reqID, "subject", subjectDID, "credential_type", spec.CredentialType)
	return credentialJWT, nil
}

// GetCredential looks up the signature registered for preparedContext (the
// credential JWT bytes returned by PrepareCredential) and assembles the
// compact JWS (§4.2). It is read-only and safe for concurrent use.
func (s *Service) GetCredential(preparedContext []byte) (string, error) {
	signingInput, err := vcjws.SigningInput(preparedContext, s.pk)
	if err != nil {
		return "", vcerrors.ErrInternal.WithMessage("failed rebuilding signing input: " + err.Error())
	}
	hash := vcjws.SigningInputHash(signingInput)

	sig, ok := s.sigMap.GetSignature(hash)
	if !ok {
		return "", vcerrors.ErrSignatureNotFound.WithMessage("no witnessed signature for this prepared context")
	}

	return vcjws.SigningInputToJWS(signingInput, sig)
}
