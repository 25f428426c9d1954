package application

import (
	"fmt"

	"go.uber.org/zap"

	"kashbill/internal/domain"
	"kashbill/internal/domain/entities"
	"kashbill/internal/ports/input"
)

var _ input.LabUseCase = (*LabService)(nil)

// LabService backs the sound lab page: pad triggers and environment layers.
type LabService struct {
	site    *entities.Site
	trigger *MomentaryTrigger
	logger  *zap.Logger
	envOn   bool
}

func NewLabService(site *entities.Site, trigger *MomentaryTrigger, logger *zap.Logger) *LabService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabService{
		site:    site,
		trigger: trigger,
		logger:  logger,
		envOn:   true,
	}
}

// TriggerPad flashes the pad and logs the playback intent. No audio is
// decoded or played.
func (s *LabService) TriggerPad(id string) error {
	pad, ok := s.site.Pad(id)
	if !ok {
		return fmt.Errorf("trigger %q: %w", id, domain.ErrPadNotFound)
	}
	s.trigger.Trigger(pad.ID)
	if pad.AudioSrc != "" {
		s.logger.Info("playing", zap.String("pad", pad.ID), zap.String("src", pad.AudioSrc))
	}
	return nil
}

// PadForKey returns the pad bound to a keyboard key.
func (s *LabService) PadForKey(key string) (entities.SoundPad, bool) {
	for _, p := range s.site.Pads {
		if p.Key != "" && p.Key == key {
			return p, true
		}
	}
	return entities.SoundPad{}, false
}

// ActivePad returns the id of the highlighted pad, or "".
func (s *LabService) ActivePad() string {
	return s.trigger.Active()
}

// Display is the LCD text: the active pad's label, or fallback.
func (s *LabService) Display(fallback string) string {
	if pad, ok := s.site.Pad(s.trigger.Active()); ok {
		return pad.Label
	}
	return fallback
}

func (s *LabService) ToggleEnvironment() bool {
	s.envOn = !s.envOn
	return s.envOn
}

func (s *LabService) EnvironmentOn() bool {
	return s.envOn
}
