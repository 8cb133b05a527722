package domain

// VoicePersona names one of the prebuilt synthetic voices.
type VoicePersona string

const (
	PersonaKore   VoicePersona = "Kore"
	PersonaPuck   VoicePersona = "Puck"
	PersonaCharon VoicePersona = "Charon"
	PersonaFenrir VoicePersona = "Fenrir"
	PersonaZephyr VoicePersona = "Zephyr"
)

type ReminderIntensity string

const (
	IntensityGentle     ReminderIntensity = "gentle"
	IntensityStandard   ReminderIntensity = "standard"
	IntensityPersistent ReminderIntensity = "persistent"
)

// Preferences are the process-wide user settings. The JSON tags match the
// snapshot document format, which is shared with earlier clients.
type Preferences struct {
	VoicePersona       VoicePersona      `json:"voiceTone"`
	ReminderIntensity  ReminderIntensity `json:"reminderIntensity"`
	OnboardingComplete bool              `json:"onboardingComplete"`
	DisplayName        string            `json:"name"`
}

func Defaults() Preferences {
	return Preferences{
		VoicePersona:      PersonaZephyr,
		ReminderIntensity: IntensityStandard,
	}
}
