package analysis

import "errors"

// Fatal per-track errors: the whole analysis is abandoned and no partial
// result is produced.
var (
	ErrDecodeFailure = errors.New("audio decode failure")
	ErrNoAudioData   = errors.New("no audio data")
)
