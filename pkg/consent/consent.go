// Package consent renders the issuer-side markdown consent message for a
// requested credential spec, per §4.11 of the spec.
package consent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/credential"
)

// Format renders spec as the markdown consent message. Argument ordering is
// left unspecified by the distilled spec (§9 Open Questions); this
// implementation iterates keys in sorted order to keep the rendering
// deterministic.
func Format(spec credential.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Credential Type\n%s\n## Arguments\n", spec.CredentialType)

	if len(spec.Arguments) == 0 {
		b.WriteString("None\n")
		return b.String()
	}

	keys := make([]string, 0, len(spec.Arguments))
	for k := range spec.Arguments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := spec.Arguments[k]
		var rendered string
		if v.IsInt() {
			rendered = fmt.Sprintf("%d", v.Int())
		} else {
			rendered = v.String()
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", k, rendered)
	}
	return b.String()
}
