// Package config provides the configuration loader for temper.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds temper.yaml in cwd or its parents and applies it over the defaults.
// Without a configuration file the defaults are resolved against cwd.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	settings.Root = filepath.Clean(cwd)

	configPath, ok := findConfiguration(cwd)
	if !ok {
		return settings, nil
	}
	l.Logger.Debug("using configuration " + configPath)

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return domain.Settings{}, zerr.With(err, "path", configPath)
	}

	settings.Root = resolveRoot(configPath, file.Root)
	apply(&settings, &file)

	if err := validate(settings); err != nil {
		return domain.Settings{}, zerr.With(err, "path", configPath)
	}
	if settings.LogJSON && settings.Tracer == domain.TracerProgrock {
		l.Logger.Warn("progrock output is not structured; consider telemetry.tracer: otel with log.json")
	}
	return settings, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

//nolint:cyclop // one branch per optional field
func apply(s *domain.Settings, f *File) {
	if c := f.Cache; c != nil {
		set(&s.CacheDir, c.Dir)
		set(&s.CacheFile, c.File)
		set(&s.KeyedCache, c.Keyed)
	}
	if p := f.Plan; p != nil {
		set(&s.PlanFile, p.File)
	}
	if m := f.Model; m != nil {
		set(&s.Seed, m.Seed)
		set(&s.WorkspaceLimit, m.Workspace)
		if b := m.Batch; b != nil {
			set(&s.Batch.Min, b.Min)
			set(&s.Batch.Opt, b.Opt)
			set(&s.Batch.Max, b.Max)
		}
	}
	if b := f.Builder; b != nil {
		set(&s.TimingIterations, b.TimingIterations)
	}
	if lg := f.Log; lg != nil {
		set(&s.LogLevel, lg.Level)
		set(&s.LogJSON, lg.JSON)
	}
	if t := f.Telemetry; t != nil {
		set(&s.Tracer, t.Tracer)
	}
	if m := f.Metrics; m != nil {
		set(&s.MetricsFile, m.File)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func validate(s domain.Settings) error {
	invalid := func(field string, value any) error {
		return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", field), "value", value)
	}

	b := s.Batch
	if b.Min < 1 || b.Min > b.Opt || b.Opt > b.Max {
		return invalid("model.batch", []int{b.Min, b.Opt, b.Max})
	}
	if s.WorkspaceLimit < 0 {
		return invalid("model.workspace", s.WorkspaceLimit)
	}
	if s.TimingIterations < 1 {
		return invalid("builder.timingIterations", s.TimingIterations)
	}
	if s.CacheFile == "" || filepath.Base(s.CacheFile) != s.CacheFile {
		return invalid("cache.file", s.CacheFile)
	}
	if filepath.Ext(s.CacheFile) != domain.CacheExt {
		return invalid("cache.file", s.CacheFile)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level", s.LogLevel)
	}
	switch s.Tracer {
	case domain.TracerOTel, domain.TracerProgrock, domain.TracerNone:
	default:
		return invalid("telemetry.tracer", s.Tracer)
	}
	return nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
