package transcriber

import (
	"errors"
	"fmt"
)

// ErrNoSpeech is returned by adapters when the service found no speech in the audio
var ErrNoSpeech = errors.New("no speech recognized")

// ErrSilentAudio is returned when audio carries no samples above the silence threshold
var ErrSilentAudio = errors.New("audio is silent")

// StatusError reports a non-OK response from a recognition service
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
