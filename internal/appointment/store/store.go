package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"calvoro-backend/internal/appointment/domain"
	"calvoro-backend/pkg/persist"
)

const (
	snapshotKey  = "calvoro_events"
	defaultTitle = "New Appointment"
	defaultTime  = "12:00"
)

// CreateInput is the caller-supplied subset of appointment fields. Every
// field may be empty; defaults are applied by Create.
type CreateInput struct {
	Title       string
	Date        string
	Time        string
	Location    string
	Urgency     string
	Description string
}

// AppointmentStore owns the live appointment collection. Every mutation
// writes a snapshot through the persistence adapter synchronously and
// best-effort: a failed write is logged, never surfaced.
type AppointmentStore struct {
	mu        sync.Mutex
	items     []domain.Appointment
	snapshots persist.Store
	now       func() time.Time
	logger    *zap.Logger
}

func New(snapshots persist.Store, logger *zap.Logger) *AppointmentStore {
	return NewWithClock(snapshots, logger, time.Now)
}

// NewWithClock pins the clock used for date defaults. Tests use this.
func NewWithClock(snapshots persist.Store, logger *zap.Logger, now func() time.Time) *AppointmentStore {
	s := &AppointmentStore{
		snapshots: snapshots,
		now:       now,
		logger:    logger,
	}
	s.items = persist.LoadOr(snapshots, snapshotKey, seed(now()), logger)
	return s
}

// seed is the first-run collection: a single onboarding appointment on the
// current day so the timeline never starts empty.
func seed(now time.Time) []domain.Appointment {
	return []domain.Appointment{{
		ID:       "1",
		Title:    "Calvoro Onboarding",
		Date:     now.Format("2006-01-02"),
		Time:     "14:00",
		Location: "Calvoro App",
		Urgency:  domain.UrgencyHigh,
		Status:   domain.StatusUpcoming,
	}}
}

// Create applies field defaults, assigns a fresh id, forces status upcoming
// and the voice-input origin flag, appends and snapshots.
func (s *AppointmentStore) Create(in CreateInput) domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt := domain.Appointment{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Urgency:     domain.ParseUrgency(in.Urgency),
		Status:      domain.StatusUpcoming,
		Description: in.Description,
		VoiceInput:  true,
	}
	if appt.Title == "" {
		appt.Title = defaultTitle
	}
	if appt.Date == "" {
		appt.Date = s.now().Format("2006-01-02")
	}
	if appt.Time == "" {
		appt.Time = defaultTime
	}

	s.items = append(s.items, appt)
	s.snapshot()
	return appt
}

// ToggleStatus flips confirmed and upcoming. Unknown ids and appointments in
// the missed or rescheduled state are a silent no-op: the collection stays
// untouched and no snapshot is written. Returns whether a flip happened.
func (s *AppointmentStore) ToggleStatus(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		switch s.items[i].Status {
		case domain.StatusUpcoming:
			s.items[i].Status = domain.StatusConfirmed
		case domain.StatusConfirmed:
			s.items[i].Status = domain.StatusUpcoming
		default:
			return false
		}
		s.snapshot()
		return true
	}
	return false
}

// Get returns a copy of the appointment with the given id.
func (s *AppointmentStore) Get(id string) (domain.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.items {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Appointment{}, false
}

// List returns the full collection ordered by ascending (date, time).
func (s *AppointmentStore) List() []domain.Appointment {
	s.mu.Lock()
	out := make([]domain.Appointment, len(s.items))
	copy(out, s.items)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// Timeline partitions the ordered collection for display: active holds
// everything not yet confirmed or missed, finished the rest.
func (s *AppointmentStore) Timeline() (active, finished []domain.Appointment) {
	active = []domain.Appointment{}
	finished = []domain.Appointment{}
	for _, a := range s.List() {
		if a.Finished() {
			finished = append(finished, a)
		} else {
			active = append(active, a)
		}
	}
	return active, finished
}

func (s *AppointmentStore) snapshot() {
	if err := s.snapshots.Save(snapshotKey, s.items); err != nil {
		s.logger.Warn("appointment snapshot write failed", zap.Error(err))
	}
}
