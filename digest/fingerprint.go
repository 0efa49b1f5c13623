package digest

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint computes a short, non-authoritative structural digest of v,
// suitable for log lines and dedup hints. It is never consulted by the
// snapshot engine's equality logic — that logic is identity-only, per
// flux's "not hash-consed" guarantee. Two fingerprints matching is a hint,
// not a proof; two structurally equal trees built through different patch
// sequences may print differently here, and that is fine for a diagnostic.
func Fingerprint(v any) string {
	sum := blake2b.Sum256([]byte(fmt.Sprintf("%#v", v)))
	return fmt.Sprintf("%x", sum[:8])
}
