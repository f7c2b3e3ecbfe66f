package registry

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainSource is the domain prefix for source-document hashing. The version
// suffix enables future algorithm migration.
const DomainSource = "limn/source/v1"

// SourceHash computes the content-addressed identity of a source document.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func SourceHash(data []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainSource))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
