package config

// File represents the structure of the temper.yaml configuration file.
// Every field is optional; absent values keep their defaults.
type File struct {
	Version   string        `yaml:"version"`
	Root      string        `yaml:"root"`
	Cache     *CacheDTO     `yaml:"cache"`
	Plan      *PlanDTO      `yaml:"plan"`
	Model     *ModelDTO     `yaml:"model"`
	Builder   *BuilderDTO   `yaml:"builder"`
	Log       *LogDTO       `yaml:"log"`
	Telemetry *TelemetryDTO `yaml:"telemetry"`
	Metrics   *MetricsDTO   `yaml:"metrics"`
}

// CacheDTO configures timing cache persistence.
type CacheDTO struct {
	Dir   *string `yaml:"dir"`
	File  *string `yaml:"file"`
	Keyed *bool   `yaml:"keyed"`
}

// PlanDTO configures where --save-plan writes.
type PlanDTO struct {
	File *string `yaml:"file"`
}

// ModelDTO configures the network definition.
type ModelDTO struct {
	Seed      *uint64   `yaml:"seed"`
	Batch     *BatchDTO `yaml:"batch"`
	Workspace *int64    `yaml:"workspace"`
}

// BatchDTO is the dynamic batch range of the optimization profile.
type BatchDTO struct {
	Min *int `yaml:"min"`
	Opt *int `yaml:"opt"`
	Max *int `yaml:"max"`
}

// BuilderDTO configures the compiler.
type BuilderDTO struct {
	TimingIterations *int `yaml:"timingIterations"`
}

// LogDTO configures logging.
type LogDTO struct {
	Level *string `yaml:"level"`
	JSON  *bool   `yaml:"json"`
}

// TelemetryDTO selects the tracing backend.
type TelemetryDTO struct {
	Tracer *string `yaml:"tracer"`
}

// MetricsDTO configures the Prometheus textfile export.
type MetricsDTO struct {
	File *string `yaml:"file"`
}
