package input

import "kashbill/internal/domain/entities"

type NavigationUseCase interface {
	Navigate(path string) error
	Current() entities.PageID
}

type LabUseCase interface {
	TriggerPad(id string) error
	Display(fallback string) string
	ActivePad() string
	ToggleEnvironment() bool
	EnvironmentOn() bool
}

type WorksUseCase interface {
	Categories() []string
	Filter(category string) ([]entities.Project, error)
}
