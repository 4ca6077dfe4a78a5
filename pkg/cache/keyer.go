package cache

// Keyer builds cache keys for pipeline outputs.
type Keyer interface {
	// PlanKey keys a RenderPlan by the hash of its source text and the
	// layout options it was solved with.
	PlanKey(textHash string, opts any) string

	// ArtifactKey keys a rendered artifact by the hash of its plan JSON.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Engine     string  `json:"engine,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
	LineHeight float64 `json:"line_height,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlanKey returns "plan:<hash>".
func (DefaultKeyer) PlanKey(textHash string, opts any) string {
	return hashKey("plan", textHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, giving each tenant or
// environment its own namespace in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) PlanKey(textHash string, opts any) string {
	return k.prefix + k.inner.PlanKey(textHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}
