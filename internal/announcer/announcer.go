// Package announcer turns an appointment into a short spoken utterance.
// The contract is best-effort and never fatal: synthesis, decoding and
// playback failures are logged and swallowed, and at most one announcement
// is ever in flight. A call that loses the gate is dropped, not queued.
package announcer

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	apptdomain "calvoro-backend/internal/appointment/domain"
	prefdomain "calvoro-backend/internal/preference/domain"
	"calvoro-backend/pkg/audio"
)

type Result string

const (
	// ResultSpoken means this call owned the in-flight gate. Failures inside
	// the attempt are swallowed per the best-effort contract, so Spoken does
	// not guarantee audio actually reached the speaker.
	ResultSpoken Result = "spoken"
	// ResultDropped means another announcement was in flight; no external
	// request was made.
	ResultDropped Result = "dropped"
)

// Synthesizer is the slice of the assistant service the announcer needs.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, utterance, voice string) ([]byte, error)
}

// PersonaSource yields the current preferences; the voice is read at call
// time so persona changes take effect immediately.
type PersonaSource interface {
	Get() prefdomain.Preferences
}

type Announcer struct {
	synth    Synthesizer
	player   audio.Player
	prefs    PersonaSource
	inFlight atomic.Bool
	logger   *zap.Logger
}

func New(synth Synthesizer, player audio.Player, prefs PersonaSource, logger *zap.Logger) *Announcer {
	return &Announcer{
		synth:  synth,
		player: player,
		prefs:  prefs,
		logger: logger,
	}
}

// Announce synthesizes and plays a reminder for the appointment. The call
// suspends until playback finishes. It never returns an error.
func (a *Announcer) Announce(appt apptdomain.Appointment) Result {
	if !a.inFlight.CompareAndSwap(false, true) {
		a.logger.Debug("announcement already in flight, dropping",
			zap.String("appointment", appt.ID))
		return ResultDropped
	}
	defer a.inFlight.Store(false)

	utterance := Utterance(appt)
	voice := string(a.prefs.Get().VoicePersona)

	pcm, err := a.synth.SynthesizeSpeech(context.Background(), utterance, voice)
	if err != nil {
		a.logger.Warn("speech synthesis failed",
			zap.String("appointment", appt.ID), zap.Error(err))
		return ResultSpoken
	}
	if err := a.player.Play(pcm); err != nil {
		a.logger.Warn("audio playback failed",
			zap.String("appointment", appt.ID), zap.Error(err))
	}
	return ResultSpoken
}

// Utterance is the fixed reminder template. Minimal phrasing keeps the TTS
// model reliably in the audio modality.
func Utterance(appt apptdomain.Appointment) string {
	u := fmt.Sprintf("Hi, this is your reminder for %s at %s", appt.Title, appt.Time)
	if appt.Location != "" {
		u += " at " + appt.Location
	}
	return u + "."
}
