package credential

import (
	"encoding/json"
	"time"
)

// Params carries the inputs to BuildJWT: a requested spec, the subject's
// DID, the credential-id URL, the issuing URL, and the expiry (§4.3).
type Params struct {
	Spec                 Spec
	SubjectID            string
	CredentialIDURL      string
	IssuerURL            string
	ExpirationTimestampS int64
}

// vcClaim is the "vc" object embedded in the credential JWT.
type vcClaim struct {
	Context           string                 `json:"@context"`
	Type              []string               `json:"type"`
	CredentialSubject map[string]interface{} `json:"credentialSubject"`
}

// BuildJWT constructs the unsigned credential JWT payload (§4.3). The
// returned bytes are the exact JSON that becomes part of the signing input:
// callers must treat them as opaque and never re-marshal them.
func BuildJWT(p Params, now time.Time) ([]byte, error) {
	args := make(map[string]interface{}, len(p.Spec.Arguments))
	for k, v := range p.Spec.Arguments {
		if v.IsInt() {
			args[k] = v.Int()
		} else {
			args[k] = v.String()
		}
	}

	subject := map[string]interface{}{
		"id":                 p.SubjectID,
		p.Spec.CredentialType: args,
	}

	payload := map[string]interface{}{
		"iss": p.IssuerURL,
		"nbf": now.Unix(),
		"jti": p.CredentialIDURL,
		"exp": p.ExpirationTimestampS,
		"sub": p.SubjectID,
		"vc": vcClaim{
			Context:           "https://www.w3.org/2018/credentials/v1",
			Type:              []string{"VerifiableCredential", p.Spec.CredentialType},
			CredentialSubject: subject,
		},
	}

	return json.Marshal(payload)
}
