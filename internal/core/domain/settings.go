package domain

import "path/filepath"

// Tracer backends selectable in the configuration.
const (
	TracerOTel     = "otel"
	TracerProgrock = "progrock"
	TracerNone     = "none"
)

// BatchRange is the min/opt/max batch size of the dynamic input dimension.
type BatchRange struct {
	Min int
	Opt int
	Max int
}

// Settings is the resolved runtime configuration.
type Settings struct {
	// Root is the directory the configuration was resolved against.
	Root string

	CacheDir  string
	CacheFile string
	// KeyedCache derives the cache file name from a fingerprint of network, config and device.
	KeyedCache bool

	PlanFile string

	Seed             uint64
	Batch            BatchRange
	WorkspaceLimit   int64
	TimingIterations int

	LogLevel string
	LogJSON  bool

	Tracer      string
	MetricsFile string
}

// DefaultSettings returns the settings used when no configuration file is present.
func DefaultSettings() Settings {
	return Settings{
		Root:             ".",
		CacheDir:         ".",
		CacheFile:        DefaultCacheFile,
		PlanFile:         DefaultPlanFile,
		Seed:             97,
		Batch:            BatchRange{Min: 1, Opt: 4, Max: 8},
		WorkspaceLimit:   6 << 30,
		TimingIterations: 1,
		LogLevel:         "info",
		Tracer:           TracerOTel,
	}
}

// Resolve returns p unchanged when absolute, otherwise joined to Root.
func (s Settings) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.Root, p)
}
