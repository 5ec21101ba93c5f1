package domain

// OptimizationProfile declares the admissible shape range of one network input.
type OptimizationProfile struct {
	Input string `msgpack:"input"`
	Min   Dims   `msgpack:"min"`
	Opt   Dims   `msgpack:"opt"`
	Max   Dims   `msgpack:"max"`
}

// Contains reports whether dims lie within the profile range.
func (p OptimizationProfile) Contains(dims Dims) bool {
	if len(dims) != len(p.Min) || len(dims) != len(p.Max) {
		return false
	}
	for i, v := range dims {
		if v < p.Min[i] || v > p.Max[i] {
			return false
		}
	}
	return true
}

// BuildConfig holds the compiler settings for one build.
type BuildConfig struct {
	// WorkspaceLimit caps the scratch memory, in bytes, any single tactic may use.
	WorkspaceLimit int64
	// TimingIterations is the number of timed runs averaged per candidate tactic.
	TimingIterations int
	// Profiles declares the shape ranges of dynamic inputs.
	Profiles []OptimizationProfile

	timingCache     *TimingCacheBlob
	timingCacheMode TimingCacheMode
}

// NewBuildConfig creates a config with the given workspace limit and one timing iteration.
func NewBuildConfig(workspaceLimit int64) *BuildConfig {
	return &BuildConfig{
		WorkspaceLimit:   workspaceLimit,
		TimingIterations: 1,
	}
}

// AddOptimizationProfile registers a shape range for an input.
func (c *BuildConfig) AddOptimizationProfile(p OptimizationProfile) {
	c.Profiles = append(c.Profiles, p)
}

// Profile returns the profile declared for the named input.
func (c *BuildConfig) Profile(input string) (OptimizationProfile, bool) {
	for _, p := range c.Profiles {
		if p.Input == input {
			return p, true
		}
	}
	return OptimizationProfile{}, false
}

// SetTimingCache attaches a timing cache to the build.
func (c *BuildConfig) SetTimingCache(blob TimingCacheBlob, mode TimingCacheMode) {
	c.timingCache = &blob
	c.timingCacheMode = mode
}

// TimingCache returns the attached timing cache, if any.
func (c *BuildConfig) TimingCache() (TimingCacheBlob, TimingCacheMode, bool) {
	if c.timingCache == nil {
		return TimingCacheBlob{}, TimingCacheShared, false
	}
	return *c.timingCache, c.timingCacheMode, true
}

// CompiledArtifact is a serialized plan produced by a compiler.
type CompiledArtifact struct {
	data []byte
}

// NewCompiledArtifact wraps serialized plan bytes. The slice is not copied.
func NewCompiledArtifact(b []byte) CompiledArtifact {
	return CompiledArtifact{data: b}
}

// Bytes returns the serialized plan. Callers must not modify it.
func (a CompiledArtifact) Bytes() []byte {
	return a.data
}

// Len returns the plan size in bytes.
func (a CompiledArtifact) Len() int {
	return len(a.data)
}

// TacticStats summarizes tactic selection during a build.
type TacticStats struct {
	// Layers is the number of layers compiled.
	Layers int
	// Timed is the number of layers that had more than one candidate tactic.
	Timed int
	// CacheHits is the number of timed layers resolved from the timing cache.
	CacheHits int
	// Benchmarked is the number of timed layers measured during this build.
	Benchmarked int
}

// CompileResult is the outcome of a successful build.
type CompileResult struct {
	Artifact CompiledArtifact
	// TimingCache is the updated cache. It is only meaningful when HasTimingCache is true.
	TimingCache    TimingCacheBlob
	HasTimingCache bool
	Stats          TacticStats
}
