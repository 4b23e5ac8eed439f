package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadValidConfig(t *testing.T) {
	data := []byte(`
canister_id: rdmx6-jaaaa-aaaaa-aaadq-cai
seed_hex: 2a2a2a2a
issuer_url: https://issuer.example/
production: true
`)
	cfg, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, "rdmx6-jaaaa-aaaaa-aaadq-cai", cfg.CanisterID)
	assert.True(t, cfg.Production)

	pk, err := cfg.CanisterSigPublicKey()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2a, 0x2a, 0x2a, 0x2a}, pk.Seed)
}

func TestLoadRejectsMissingFields(t *testing.T) {
	_, err := Load([]byte(`issuer_url: https://issuer.example/`))
	assert.Error(t, err)
}

func TestLoadRejectsNonHexSeed(t *testing.T) {
	data := []byte(`
canister_id: rdmx6-jaaaa-aaaaa-aaadq-cai
seed_hex: not-hex
issuer_url: https://issuer.example/
`)
	_, err := Load(data)
	assert.Error(t, err)
}
