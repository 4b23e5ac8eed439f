package presentation

import (
	"encoding/json"
	"testing"

	"github.com/dfinity/verifiable-credentials-sdk/internal/blsverify"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/canistersig"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/credential"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcjws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCanister(t *testing.T, seed byte) principal.Principal {
	t.Helper()
	p, err := principal.FromBytes([]byte{seed, seed, seed, seed})
	require.NoError(t, err)
	return p
}

func buildIDAliasVC(t *testing.T, pk canistersig.PublicKey, subject, idAlias principal.Principal, origin string) string {
	t.Helper()
	payload := map[string]interface{}{
		"iss": "https://identity.ic0.app/",
		"exp": 2_000_000_000,
		"sub": principal.DID(subject),
		"vc": map[string]interface{}{
			"credentialSubject": map[string]interface{}{
				"InternetIdentityIdAlias": map[string]interface{}{
					"hasIdAlias":       idAlias.String(),
					"derivationOrigin": origin,
				},
			},
		},
	}
	raw := mustMarshal(t, payload)
	jws, err := vcjws.ToJWS(raw, pk, []byte("sig"))
	require.NoError(t, err)
	return jws
}

func buildRequestedVC(t *testing.T, pk canistersig.PublicKey, subject principal.Principal, issuerOrigin string) string {
	t.Helper()
	payload := map[string]interface{}{
		"iss": issuerOrigin,
		"exp": 2_000_000_000,
		"sub": principal.DID(subject),
		"vc": map[string]interface{}{
			"type":              []string{"VerifiableCredential", "VerifiedAge"},
			"credentialSubject": map[string]interface{}{"VerifiedAge": map[string]interface{}{"ageAtLeast": 18}},
		},
	}
	raw := mustMarshal(t, payload)
	jws, err := vcjws.ToJWS(raw, pk, []byte("sig"))
	require.NoError(t, err)
	return jws
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func acceptAllVerifier() blsverify.Verifier {
	return blsverify.VerifierFunc(func(message, signature, canisterSigPKDER, rootPKRaw []byte) error {
		return nil
	})
}

func TestBuildJWTThenVerifyWithCanisterIDsSucceeds(t *testing.T) {
	iiCanister := testCanister(t, 1)
	issuerCanister := testCanister(t, 2)
	iiPK := canistersig.New(iiCanister, []byte("ii-seed"))
	issuerPK := canistersig.New(issuerCanister, []byte("issuer-seed"))

	dapp := testCanister(t, 3)
	alias := testCanister(t, 4)
	holder := alias

	idAliasVC := buildIDAliasVC(t, iiPK, dapp, alias, "https://rp.example.ic0.app")
	requestedVC := buildRequestedVC(t, issuerPK, alias, "https://issuer.example/")

	vpJWT, err := BuildJWT(holder, idAliasVC, requestedVC)
	require.NoError(t, err)

	signers := FlowSigners{
		IICanisterID:     iiCanister,
		IssuerCanisterID: issuerCanister,
		IIOrigin:         "https://identity.ic0.app/",
		IssuerOrigin:     "https://issuer.example/",
	}

	gotAlias, requestedClaims, err := VerifyWithCanisterIDs(
		vpJWT, dapp, "https://rp.example.ic0.app", signers, []byte("root"), 1_000_000_000, acceptAllVerifier())
	require.NoError(t, err)
	assert.True(t, gotAlias.IDAlias.Equal(alias))
	assert.Contains(t, string(requestedClaims), "VerifiedAge")
}

func TestValidateAndMatchSpecSucceeds(t *testing.T) {
	iiCanister := testCanister(t, 1)
	issuerCanister := testCanister(t, 2)
	iiPK := canistersig.New(iiCanister, []byte("ii-seed"))
	issuerPK := canistersig.New(issuerCanister, []byte("issuer-seed"))

	dapp := testCanister(t, 3)
	alias := testCanister(t, 4)

	idAliasVC := buildIDAliasVC(t, iiPK, dapp, alias, "https://rp.example.ic0.app")
	requestedVC := buildRequestedVC(t, issuerPK, alias, "https://issuer.example/")
	vpJWT, err := BuildJWT(alias, idAliasVC, requestedVC)
	require.NoError(t, err)

	signers := FlowSigners{
		IICanisterID:     iiCanister,
		IssuerCanisterID: issuerCanister,
		IIOrigin:         "https://identity.ic0.app/",
		IssuerOrigin:     "https://issuer.example/",
	}
	spec := credential.Spec{
		CredentialType: "VerifiedAge",
		Arguments:      map[string]credential.ArgumentValue{"ageAtLeast": credential.IntArg(18)},
	}

	_, err = ValidateAndMatchSpec(
		vpJWT, dapp, "https://rp.example.ic0.app", signers, []byte("root"), 1_000_000_000, acceptAllVerifier(), spec)
	require.NoError(t, err)
}

func TestValidateAndMatchSpecFailsOnCredentialTypeMismatch(t *testing.T) {
	iiCanister := testCanister(t, 1)
	issuerCanister := testCanister(t, 2)
	iiPK := canistersig.New(iiCanister, []byte("ii-seed"))
	issuerPK := canistersig.New(issuerCanister, []byte("issuer-seed"))

	dapp := testCanister(t, 3)
	alias := testCanister(t, 4)

	idAliasVC := buildIDAliasVC(t, iiPK, dapp, alias, "https://rp.example.ic0.app")
	requestedVC := buildRequestedVC(t, issuerPK, alias, "https://issuer.example/")
	vpJWT, err := BuildJWT(alias, idAliasVC, requestedVC)
	require.NoError(t, err)

	signers := FlowSigners{
		IICanisterID:     iiCanister,
		IssuerCanisterID: issuerCanister,
		IIOrigin:         "https://identity.ic0.app/",
		IssuerOrigin:     "https://issuer.example/",
	}
	spec := credential.Spec{CredentialType: "NotSameCredential"}

	_, err = ValidateAndMatchSpec(
		vpJWT, dapp, "https://rp.example.ic0.app", signers, []byte("root"), 1_000_000_000, acceptAllVerifier(), spec)
	require.Error(t, err)
}

func TestVerifyWithCanisterIDsFailsOnThreeCredentials(t *testing.T) {
	payload := presentationPayload{
		Iss: "did:icp:aaaaa-aa",
		VP: vpClaim{
			Context:              "https://www.w3.org/2018/credentials/v1",
			Type:                 []string{"VerifiablePresentation"},
			VerifiableCredential: []string{"a", "b", "c"},
		},
	}
	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)
	malformed := b64.EncodeToString([]byte(unsignedHeader)) + "." + b64.EncodeToString(payloadJSON) + "."

	signers := FlowSigners{}
	_, _, err = VerifyWithCanisterIDs(malformed, principal.Principal{}, "", signers, nil, 0, acceptAllVerifier())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected exactly two verifiable credentials")
}
