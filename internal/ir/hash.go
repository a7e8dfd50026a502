package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefix for content-addressed module identity. Version suffix
// enables future algorithm migration.
const DomainModule = "tracelift/module/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ModuleHash computes the content-addressed identity of a printed module.
// Because printing is deterministic, the hash is stable across imports of
// structurally identical graphs.
func ModuleHash(printed []byte) string {
	return hashWithDomain(DomainModule, printed)
}
