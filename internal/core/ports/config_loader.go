package ports

import "go.trai.ch/smelt/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds smelt.yaml by walking up from cwd and resolves it.
	// Defaults rooted at cwd are returned when no file exists.
	Load(cwd string) (*domain.Config, error)
}
