package ports

import "go.trai.ch/temper/internal/core/domain"

// ConfigLoader defines the interface for loading the configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves settings for the given working directory.
	// Defaults are returned when no configuration file is found.
	Load(cwd string) (domain.Settings, error)
}
