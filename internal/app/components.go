package app

import (
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings domain.Settings
}

// logConfigurer is implemented by loggers whose level and format can change after construction.
type logConfigurer interface {
	SetLevel(name string) error
	SetJSON(enable bool)
}

// configureLogger applies the logging settings when log supports it.
func configureLogger(log ports.Logger, settings domain.Settings) error {
	lc, ok := log.(logConfigurer)
	if !ok {
		return nil
	}
	lc.SetJSON(settings.LogJSON)
	return lc.SetLevel(settings.LogLevel)
}
