package ai

// ParseApology is the user-facing message shown when intake cannot make sense
// of the input. The wording is part of the product surface.
const ParseApology = "I couldn't quite catch the details of that appointment. Could you try again?"

// ParseFailure reports that a provider reply could not be decoded as a valid
// appointment extraction. Message is safe to show the user; Err carries the
// technical cause for logs.
type ParseFailure struct {
	Message string
	Err     error
}

func (e *ParseFailure) Error() string {
	if e.Err != nil {
		return "intake parse failure: " + e.Err.Error()
	}
	return "intake parse failure: " + e.Message
}

func (e *ParseFailure) Unwrap() error { return e.Err }

// SynthesisFailure reports that speech synthesis produced no playable audio.
// It is never surfaced to the user; the announcer logs and swallows it.
type SynthesisFailure struct {
	Reason string
	Err    error
}

func (e *SynthesisFailure) Error() string {
	if e.Err != nil {
		return "speech synthesis failure: " + e.Reason + ": " + e.Err.Error()
	}
	return "speech synthesis failure: " + e.Reason
}

func (e *SynthesisFailure) Unwrap() error { return e.Err }
