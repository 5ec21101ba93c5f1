package domain

import "time"

// Stage is a step of one cache-aware build invocation.
type Stage uint8

const (
	// StageIdle is the state before any work starts.
	StageIdle Stage = iota
	// StageCacheLookup reads the persisted timing cache.
	StageCacheLookup
	// StageCompiling runs the compiler.
	StageCompiling
	// StageCacheCapture persists the captured timing cache.
	StageCacheCapture
	// StageLoaded means the artifact was deserialized into an engine.
	StageLoaded
	// StageExecuted means one inference pass completed.
	StageExecuted
	// StageDone means the invocation finished.
	StageDone
)

var stageNames = [...]string{"idle", "cache-lookup", "compiling", "cache-capture", "loaded", "executed", "done"}

// String returns the stage name.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// LookupOutcome records what the cache lookup stage did.
type LookupOutcome uint8

const (
	// LookupDisabled means the build did not request a timing cache.
	LookupDisabled LookupOutcome = iota
	// LookupCold means no cache file existed and an empty cache was attached.
	LookupCold
	// LookupHit means a persisted cache was loaded and attached.
	LookupHit
	// LookupFailed means the cache file existed but could not be used.
	LookupFailed
)

// String returns the outcome name.
func (o LookupOutcome) String() string {
	switch o {
	case LookupDisabled:
		return "disabled"
	case LookupCold:
		return "cold"
	case LookupHit:
		return "hit"
	case LookupFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CaptureOutcome records what the cache capture stage did.
type CaptureOutcome uint8

const (
	// CaptureDisabled means the build did not request a timing cache.
	CaptureDisabled CaptureOutcome = iota
	// CaptureSkipped means a cache file already existed and was left untouched.
	CaptureSkipped
	// CaptureWritten means the captured cache was persisted.
	CaptureWritten
)

// String returns the outcome name.
func (o CaptureOutcome) String() string {
	switch o {
	case CaptureDisabled:
		return "disabled"
	case CaptureSkipped:
		return "skipped"
	case CaptureWritten:
		return "written"
	default:
		return "unknown"
	}
}

// BuildReport describes one cache-aware build invocation.
type BuildReport struct {
	UseCache  bool
	CacheKey  string
	Lookup    LookupOutcome
	Capture   CaptureOutcome
	Stage     Stage
	Elapsed   time.Duration
	CacheSize int
	Stats     TacticStats
	Artifact  CompiledArtifact
	Outputs   []HostTensor
}

// Output returns the named output tensor.
func (r *BuildReport) Output(name string) (HostTensor, bool) {
	for _, o := range r.Outputs {
		if o.Name == name {
			return o, true
		}
	}
	return HostTensor{}, false
}

// ElapsedMillis returns the compile time in fractional milliseconds.
func (r *BuildReport) ElapsedMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}
