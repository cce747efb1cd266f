package ports

import "go.trai.ch/smelt/internal/core/domain"

// SettingsLoader reads NAME=VALUE assignments from a settings file.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings_loader.go -destination=mocks/mock_settings_loader.go -package=mocks
type SettingsLoader interface {
	// Load returns the assignments in file order. A missing file yields no assignments.
	Load(path string) ([]domain.Assignment, error)
}
