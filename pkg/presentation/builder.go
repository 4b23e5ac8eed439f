// Package presentation assembles and verifies the two-credential
// verifiable presentation JWT (§4.4, §4.8 of the spec).
package presentation

import (
	"encoding/base64"
	"encoding/json"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
)

var b64 = base64.RawURLEncoding

const unsignedHeader = `{"alg":"none","typ":"JWT"}`

type vpClaim struct {
	Context             string   `json:"@context"`
	Type                []string `json:"type"`
	VerifiableCredential []string `json:"verifiableCredential"`
}

type presentationPayload struct {
	Iss string  `json:"iss"`
	VP  vpClaim `json:"vp"`
}

// BuildJWT constructs the unsigned VP-JWT (§4.4) bundling idAliasVCJWS and
// requestedVCJWS, issued by holder. The returned string ends in a trailing
// dot, i.e. an empty signature segment.
func BuildJWT(holder principal.Principal, idAliasVCJWS, requestedVCJWS string) (string, error) {
	payload := presentationPayload{
		Iss: principal.DID(holder),
		VP: vpClaim{
			Context:             "https://www.w3.org/2018/credentials/v1",
			Type:                []string{"VerifiablePresentation"},
			VerifiableCredential: []string{idAliasVCJWS, requestedVCJWS},
		},
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return b64.EncodeToString([]byte(unsignedHeader)) + "." + b64.EncodeToString(payloadJSON) + ".", nil
}
