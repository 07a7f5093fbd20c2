package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The API deployment uses this so different projects sharing one Redis
// instance never see each other's cached artifacts.
//
// Example usage:
//
//	// Project-specific keys
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ManifestKey generates a prefixed key for manifest parse results.
func (k *ScopedKeyer) ManifestKey(data []byte) string {
	return k.prefix + k.inner.ManifestKey(data)
}

// DocumentKey generates a prefixed key for assembled documents.
func (k *ScopedKeyer) DocumentKey(manifestHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(manifestHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(documentHash, opts)
}
