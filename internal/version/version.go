// Package version centralizes the versioning for the logical components of
// the platform.
//
// Component versions are baked into response cache keys: bumping a version
// here before deploying a change automatically invalidates every cached
// response produced by the old logic, without touching Redis by hand.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the logical parts of the
// application. Increment the relevant one before deploying a change to
// that component.
var ComponentVersions = struct {
	// Catalog covers the tool definitions: inputs, variants, models,
	// generation settings.
	Catalog string

	// Prompts covers the deployed template files and the substitution
	// logic that fills them.
	Prompts string
}{
	Catalog: "v1.0",
	Prompts: "v1.0",
}

// GenerateVersionedCacheKey builds a version-aware cache key from a prefix
// and an arbitrary payload (typically the canonical JSON of a request).
// The payload is hashed so keys stay fixed-length regardless of input size.
//
// Example output: "genstate:a1b2c3d4...:cvv1.0_pvv1.0"
func GenerateVersionedCacheKey(prefix, payload string) string {
	hasher := sha256.New()
	hasher.Write([]byte(payload))
	payloadHash := hex.EncodeToString(hasher.Sum(nil))

	versionString := fmt.Sprintf("cv%s_pv%s",
		ComponentVersions.Catalog,
		ComponentVersions.Prompts,
	)

	return fmt.Sprintf("%s:%s:%s", prefix, payloadHash, versionString)
}
