package principal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripBytes(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01},
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x01, 0x01},
		{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
	}
	for _, raw := range cases {
		p, err := FromBytes(raw)
		require.NoError(t, err)

		text := p.String()
		parsed, err := FromText(text)
		require.NoError(t, err, "round-tripping %q", text)
		assert.True(t, p.Equal(parsed))
		assert.Equal(t, raw, parsed.Bytes())
	}
}

func TestFromBytesRejectsOversizedInput(t *testing.T) {
	_, err := FromBytes(make([]byte, MaxBytes+1))
	assert.Error(t, err)
}

func TestFromTextRejectsBadChecksum(t *testing.T) {
	p, err := FromBytes([]byte{0x01, 0x02, 0x03})
	require.NoError(t, err)

	text := p.String()
	// Flip the last character of the first group (part of the checksum).
	tampered := text[:4] + "b" + text[5:]
	_, err = FromText(tampered)
	assert.Error(t, err)
}

func TestDIDRoundTrip(t *testing.T) {
	p, err := FromBytes([]byte{0x07, 0x51, 0x02})
	require.NoError(t, err)

	did := DID(p)
	assert.Contains(t, did, DIDPrefix)

	parsed, err := FromDID(did)
	require.NoError(t, err)
	assert.True(t, p.Equal(parsed))
}

func TestFromDIDRejectsMissingPrefix(t *testing.T) {
	_, err := FromDID("not-a-did")
	assert.Error(t, err)
}
