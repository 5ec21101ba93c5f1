package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheReadFailed is returned when an existing timing cache file cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read timing cache")

	// ErrCacheEmpty is returned when an existing timing cache file holds no data.
	ErrCacheEmpty = zerr.New("timing cache file is empty")

	// ErrCacheWriteFailed is returned when a captured timing cache cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write timing cache")

	// ErrCacheExists is returned when a timing cache file is already present at the target path.
	ErrCacheExists = zerr.New("timing cache already exists")

	// ErrCachePurgeFailed is returned when stale timing cache files cannot be removed.
	ErrCachePurgeFailed = zerr.New("failed to remove timing cache files")

	// ErrArtifactWriteFailed is returned when the compiled plan cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write compiled plan")

	// ErrCompileFailed is returned when the compiler rejects the network or fails internally.
	ErrCompileFailed = zerr.New("failed to build serialized network")

	// ErrBuildFailed is returned by the driver when a build cannot complete.
	ErrBuildFailed = zerr.New("build failed")

	// ErrInvalidTimingCache is returned when a timing cache blob cannot be decoded.
	ErrInvalidTimingCache = zerr.New("invalid timing cache")

	// ErrTimingCacheMiss is returned in exclusive mode when a layer has no recorded timing.
	ErrTimingCacheMiss = zerr.New("timing cache has no entry for layer")

	// ErrWorkspaceExceeded is returned when no tactic for a layer fits the workspace limit.
	ErrWorkspaceExceeded = zerr.New("no tactic fits the workspace memory limit")

	// ErrNoOutputs is returned when a network has no marked outputs.
	ErrNoOutputs = zerr.New("network has no outputs")

	// ErrMissingProfile is returned when a dynamic input has no optimization profile.
	ErrMissingProfile = zerr.New("dynamic input has no optimization profile")

	// ErrInvalidProfile is returned when profile dimensions are inconsistent.
	ErrInvalidProfile = zerr.New("invalid optimization profile")

	// ErrInvalidShape is returned when tensor dimensions are incompatible with a layer.
	ErrInvalidShape = zerr.New("invalid tensor shape")

	// ErrInvalidWeights is returned when a weight buffer does not match the layer shape.
	ErrInvalidWeights = zerr.New("weight count does not match layer shape")

	// ErrUnknownTensor is returned when a layer references a tensor that is not defined.
	ErrUnknownTensor = zerr.New("unknown tensor")

	// ErrDuplicateTensor is returned when a tensor name is defined twice.
	ErrDuplicateTensor = zerr.New("duplicate tensor name")

	// ErrUnsupportedLayer is returned when no kernel implements a layer kind.
	ErrUnsupportedLayer = zerr.New("unsupported layer")

	// ErrUnknownTactic is returned when a plan names a tactic the runtime does not provide.
	ErrUnknownTactic = zerr.New("unknown tactic")

	// ErrPlanDecodeFailed is returned when a compiled plan cannot be decoded.
	ErrPlanDecodeFailed = zerr.New("failed to deserialize plan")

	// ErrPlanIncompatible is returned when a plan was built for another device or format version.
	ErrPlanIncompatible = zerr.New("plan is incompatible with this runtime")

	// ErrBindingNotFound is returned when a binding name is unknown.
	ErrBindingNotFound = zerr.New("binding not found")

	// ErrShapeOutOfProfile is returned when an input shape lies outside the optimization profile.
	ErrShapeOutOfProfile = zerr.New("input shape outside optimization profile")

	// ErrShapeNotSet is returned when executing before every dynamic input has a shape.
	ErrShapeNotSet = zerr.New("input shape not set")

	// ErrBindingCount is returned when the number of device buffers does not match the bindings.
	ErrBindingCount = zerr.New("device buffer count does not match bindings")

	// ErrExecutionFailed is returned when inference fails.
	ErrExecutionFailed = zerr.New("failed to execute inference")

	// ErrDeviceAllocFailed is returned when device memory cannot be allocated.
	ErrDeviceAllocFailed = zerr.New("failed to allocate device memory")

	// ErrInvalidDevicePtr is returned when a device pointer is unknown or already freed.
	ErrInvalidDevicePtr = zerr.New("invalid device pointer")

	// ErrCopySizeMismatch is returned when a copy does not match the device buffer size.
	ErrCopySizeMismatch = zerr.New("copy size does not match device buffer")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")
)
