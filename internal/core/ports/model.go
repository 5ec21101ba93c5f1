package ports

import "go.trai.ch/temper/internal/core/domain"

// ModelDefinition builds the fixed network and its build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=model.go -destination=mocks/mock_model.go -package=mocks
type ModelDefinition interface {
	// Define constructs the network and a fresh build configuration.
	// Repeated calls return identical networks.
	Define() (*domain.Network, *domain.BuildConfig, error)

	// SampleInput returns the fixed input tensor used to validate an artifact.
	SampleInput() domain.HostTensor
}

// Fingerprinter derives an identity for a network, configuration and device.
type Fingerprinter interface {
	// Fingerprint returns a stable hex identity.
	Fingerprint(network *domain.Network, config *domain.BuildConfig, device domain.DeviceInfo) string
}
