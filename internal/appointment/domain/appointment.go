package domain

// Urgency is an ordinal classification used only for display styling.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// ParseUrgency maps a raw string onto the enumeration, defaulting to medium.
func ParseUrgency(s string) Urgency {
	switch s {
	case "low":
		return UrgencyLow
	case "high":
		return UrgencyHigh
	case "urgent":
		return UrgencyUrgent
	default:
		return UrgencyMedium
	}
}

// Status is the lifecycle stage of an appointment. Only upcoming and
// confirmed are ever produced by store operations; missed and rescheduled can
// appear through external data edits and must render without error.
type Status string

const (
	StatusUpcoming    Status = "upcoming"
	StatusConfirmed   Status = "confirmed"
	StatusMissed      Status = "missed"
	StatusRescheduled Status = "rescheduled"
)

// Appointment is a single scheduled event. The JSON tags match the snapshot
// document format, which is shared with earlier clients.
type Appointment struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Time        string  `json:"time"` // HH:mm
	Location    string  `json:"location,omitempty"`
	Urgency     Urgency `json:"urgency"`
	Status      Status  `json:"status"`
	Description string  `json:"description,omitempty"`
	VoiceInput  bool    `json:"isVoiceInput"`
}

// SortKey orders appointments chronologically: zero-padded ISO date and time
// concatenated with a space compare lexicographically in calendar order.
func (a Appointment) SortKey() string {
	return a.Date + " " + a.Time
}

// Finished reports whether the appointment belongs in the finished partition
// of the timeline (confirmed or missed). The partition is a read-time
// projection, not stored state.
func (a Appointment) Finished() bool {
	return a.Status == StatusConfirmed || a.Status == StatusMissed
}
