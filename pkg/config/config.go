// Package config loads and validates the issuer's static configuration:
// its canister identity, seed, and issuer URL, following the teacher's
// yaml+validator config-loading convention.
package config

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dfinity/verifiable-credentials-sdk/pkg/canistersig"
	"github.com/dfinity/verifiable-credentials-sdk/pkg/principal"
)

// Issuer is the issuer service's static configuration.
type Issuer struct {
	// CanisterID is the issuer canister's principal text.
	CanisterID string `yaml:"canister_id" validate:"required"`

	// SeedHex is the issuer's canister signature seed, hex-encoded.
	SeedHex string `yaml:"seed_hex" validate:"required,hexadecimal"`

	// IssuerURL is the issuer's externally visible base URL.
	IssuerURL string `yaml:"issuer_url" validate:"required,url"`

	// Production selects the logger's production or development mode.
	Production bool `yaml:"production"`
}

// NewValidator builds a struct validator whose field names in error
// messages follow the yaml tag rather than the Go field name.
func NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v, nil
}

// Load parses and validates an Issuer configuration from YAML bytes.
func Load(data []byte) (*Issuer, error) {
	cfg := &Issuer{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed parsing YAML: %w", err)
	}

	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// CanisterSigPublicKey decodes the configured canister id and seed into a
// canistersig.PublicKey, ready to drive the issuer's signing-input builder.
func (i *Issuer) CanisterSigPublicKey() (canistersig.PublicKey, error) {
	canisterID, err := principal.FromText(i.CanisterID)
	if err != nil {
		return canistersig.PublicKey{}, fmt.Errorf("config: invalid canister_id: %w", err)
	}
	seed, err := hex.DecodeString(i.SeedHex)
	if err != nil {
		return canistersig.PublicKey{}, fmt.Errorf("config: invalid seed_hex: %w", err)
	}
	return canistersig.New(canisterID, seed), nil
}
