package vcjws

import "encoding/base64"

// b64 is base64url without padding, used throughout JWS compact
// serialization: header/payload segments and the embedded JWK's "k".
var b64 = base64.RawURLEncoding

func encodeB64(b []byte) string {
	return b64.EncodeToString(b)
}

func decodeB64(s string) ([]byte, error) {
	return b64.DecodeString(s)
}
