package cache

// ScopedKeyer prefixes every key of an inner keyer. The CLI scopes keys by
// release so that artifacts built by another version are never reused:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix to the keys of inner.
// A nil inner uses [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(markupHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(markupHash, opts)
}
