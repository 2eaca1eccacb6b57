package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, so
// one backend can serve several deployments or tenants without key
// collisions.
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every
// generated key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// ResourceKey generates a prefixed resource key.
func (k *ScopedKeyer) ResourceKey(key string) string {
	return k.prefix + k.inner.ResourceKey(key)
}
