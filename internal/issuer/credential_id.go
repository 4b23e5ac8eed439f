package issuer

import (
	"fmt"
	"time"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
)

// CredentialIDURLPrefix is the fixed scheme/prefix of a credential-id URL (§6).
const CredentialIDURLPrefix = "data:text/plain;charset=UTF-8,"

// CredentialID builds the credential-id URL for a credential issued by
// issuerURL to subject at now (§6).
func CredentialID(issuerURL string, now time.Time, subject principal.Principal) string {
	return fmt.Sprintf("%sissuer:%s,timestamp_ns:%d,subject:%s",
		CredentialIDURLPrefix, issuerURL, now.UnixNano(), subject.String())
}
