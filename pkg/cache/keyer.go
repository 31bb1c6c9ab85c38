package cache

import "slices"

// ArtifactKeyOpts are the render inputs that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Lines  []string // selected line names; order does not matter
	Format string
	Width  float64
	Height float64
	Style  string // hash of the styling options
}

// Keyer derives cache keys. Keys depend on the dataset hash so a changed
// CSV never serves a stale map.
type Keyer interface {
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
	GraphKey(datasetHash string, lines []string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<hash>" for a rendered output.
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	opts.Lines = sortedCopy(opts.Lines)
	return hashKey("artifact", datasetHash, opts)
}

// GraphKey returns "graph:<hash>" for a built graph document.
func (DefaultKeyer) GraphKey(datasetHash string, lines []string) string {
	return hashKey("graph", datasetHash, sortedCopy(lines))
}

func sortedCopy(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}

// ScopedKeyer prefixes every key of an inner Keyer, so several datasets or
// deployments can share one redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(datasetHash, opts)
}

func (k *ScopedKeyer) GraphKey(datasetHash string, lines []string) string {
	return k.prefix + k.inner.GraphKey(datasetHash, lines)
}
