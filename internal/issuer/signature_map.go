package issuer

import (
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/jellydator/ttlcache/v3"
)

// signatureMapTTL bounds how long a registered signature hash remains
// witnessable before eviction; matches the 15-minute credential validity
// window (§5, §6).
const signatureMapTTL = 15 * time.Minute

// SignatureMap is the process-wide, TTL-bounded map from a domain-separated
// signing-input hash to its (eventually witnessed) signature, grounded on
// the ttlcache-backed request-object cache pattern used elsewhere in this
// codebase's teacher lineage (§5, §9 "Global signature map").
type SignatureMap struct {
	cache *ttlcache.Cache[[32]byte, []byte]
}

// NewSignatureMap constructs and starts a SignatureMap with the platform's
// credential validity window as its eviction TTL.
func NewSignatureMap() *SignatureMap {
	cache := ttlcache.New(
		ttlcache.WithTTL[[32]byte, []byte](signatureMapTTL),
	)
	go cache.Start()
	return &SignatureMap{cache: cache}
}

// AddSignature registers sig under hash, corresponding to the platform's
// add_signature(seed, hash) (§9); the seed is folded into hash by the
// caller since this map is scoped to one issuer.
func (m *SignatureMap) AddSignature(hash [32]byte, sig []byte) {
	m.cache.Set(hash, sig, ttlcache.DefaultTTL)
}

// GetSignature retrieves the signature registered for hash. ok is false if
// the entry is absent or has been evicted, corresponding to
// get_signature_as_cbor returning nothing (§9, §4.12).
func (m *SignatureMap) GetSignature(hash [32]byte) (sig []byte, ok bool) {
	item := m.cache.Get(hash)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// GetSignatureAsCBOR retrieves and CBOR-encodes the signature registered
// for hash, mirroring the signer platform's get_signature_as_cbor (§9);
// the candid/RPC envelope around this call is out of scope (§1), but the
// CBOR encoding of the returned signature bytes is not.
func (m *SignatureMap) GetSignatureAsCBOR(hash [32]byte) ([]byte, bool, error) {
	sig, ok := m.GetSignature(hash)
	if !ok {
		return nil, false, nil
	}
	encoded, err := cbor.Marshal(sig)
	if err != nil {
		return nil, false, err
	}
	return encoded, true, nil
}

// Stop stops the map's background eviction goroutine.
func (m *SignatureMap) Stop() {
	m.cache.Stop()
}
