// Package specmatch verifies that a credential's claims conform to a
// requested CredentialSpec, per §4.10 of the spec.
package specmatch

import (
	"encoding/json"
	"fmt"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/credential"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/vcerrors"
)

type vcShape struct {
	Type              []string                   `json:"type"`
	CredentialSubject map[string]json.RawMessage `json:"credentialSubject"`
}

// Validate checks vcClaims (the raw "vc" JSON object) against spec (§4.10):
// the type array must contain spec.CredentialType, and
// credentialSubject.<CredentialType> must exist as an object whose key set
// and values match spec.Arguments exactly.
func Validate(vcClaims json.RawMessage, spec credential.Spec) error {
	var vc vcShape
	if err := json.Unmarshal(vcClaims, &vc); err != nil {
		return vcerrors.InconsistentClaims("vc claim is not a well-formed credential object")
	}

	found := false
	for _, t := range vc.Type {
		if t == spec.CredentialType {
			found = true
			break
		}
	}
	if !found {
		return vcerrors.InconsistentClaims(fmt.Sprintf("vc.type does not contain %q", spec.CredentialType))
	}

	rawSubject, ok := vc.CredentialSubject[spec.CredentialType]
	if !ok {
		return vcerrors.InconsistentClaims(fmt.Sprintf("credentialSubject missing %q", spec.CredentialType))
	}
	var actual map[string]json.RawMessage
	if err := json.Unmarshal(rawSubject, &actual); err != nil || actual == nil {
		return vcerrors.InconsistentClaims(fmt.Sprintf("credentialSubject.%s is not an object", spec.CredentialType))
	}

	expectedArgs := spec.Arguments
	if len(actual) != len(expectedArgs) {
		return vcerrors.InconsistentClaims(fmt.Sprintf(
			"credentialSubject.%s has %d arguments, spec has %d", spec.CredentialType, len(actual), len(expectedArgs)))
	}
	for key, expected := range expectedArgs {
		rawActual, ok := actual[key]
		if !ok {
			return vcerrors.InconsistentClaims(fmt.Sprintf("credentialSubject.%s missing argument %q", spec.CredentialType, key))
		}
		if err := matchArgument(key, expected, rawActual); err != nil {
			return err
		}
	}
	return nil
}

func matchArgument(key string, expected credential.ArgumentValue, rawActual json.RawMessage) error {
	if expected.IsInt() {
		var actual int64
		if err := json.Unmarshal(rawActual, &actual); err != nil {
			return vcerrors.InconsistentClaims(fmt.Sprintf("argument %q expected an integer", key))
		}
		if actual != expected.Int() {
			return vcerrors.InconsistentClaims(fmt.Sprintf("argument %q: expected %d, got %d", key, expected.Int(), actual))
		}
		return nil
	}
	var actual string
	if err := json.Unmarshal(rawActual, &actual); err != nil {
		return vcerrors.InconsistentClaims(fmt.Sprintf("argument %q expected a string", key))
	}
	if actual != expected.String() {
		return vcerrors.InconsistentClaims(fmt.Sprintf("argument %q: expected %q, got %q", key, expected.String(), actual))
	}
	return nil
}
