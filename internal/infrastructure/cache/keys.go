package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns hex(sha256(input)[:8]), the key-hashing scheme spec.md
// §3/§4.6 mandates explicitly by name. sha256 is the one piece of this
// system legitimately grounded on the standard library alone — the spec
// names the exact algorithm, so substituting a third-party hash library
// would contradict the contract rather than fulfill it (see DESIGN.md).
func HashKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:8])
}
