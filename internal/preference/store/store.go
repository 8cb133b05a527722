package store

import (
	"sync"

	"go.uber.org/zap"

	"calvoro-backend/internal/preference/domain"
	"calvoro-backend/pkg/persist"
)

const snapshotKey = "calvoro_settings"

// UpdateInput is a shallow-merge update: nil fields are left untouched.
// OnboardingComplete is deliberately absent; only CompleteOnboarding can set
// it, which keeps the flag monotonic.
type UpdateInput struct {
	VoicePersona      *string
	ReminderIntensity *string
	DisplayName       *string
}

// PreferenceStore owns the user preferences. Every mutation writes a
// snapshot synchronously and best-effort.
type PreferenceStore struct {
	mu        sync.Mutex
	prefs     domain.Preferences
	snapshots persist.Store
	logger    *zap.Logger
}

func New(snapshots persist.Store, logger *zap.Logger) *PreferenceStore {
	return &PreferenceStore{
		prefs:     persist.LoadOr(snapshots, snapshotKey, domain.Defaults(), logger),
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *PreferenceStore) Get() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update shallow-merges the provided fields. No validation beyond type;
// always succeeds.
func (s *PreferenceStore) Update(in UpdateInput) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.VoicePersona != nil {
		s.prefs.VoicePersona = domain.VoicePersona(*in.VoicePersona)
	}
	if in.ReminderIntensity != nil {
		s.prefs.ReminderIntensity = domain.ReminderIntensity(*in.ReminderIntensity)
	}
	if in.DisplayName != nil {
		s.prefs.DisplayName = *in.DisplayName
	}
	s.snapshot()
	return s.prefs
}

// CompleteOnboarding sets the display name and the onboarding flag in one
// mutation.
func (s *PreferenceStore) CompleteOnboarding(displayName string) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs.DisplayName = displayName
	s.prefs.OnboardingComplete = true
	s.snapshot()
	return s.prefs
}

func (s *PreferenceStore) snapshot() {
	if err := s.snapshots.Save(snapshotKey, s.prefs); err != nil {
		s.logger.Warn("preference snapshot write failed", zap.Error(err))
	}
}
