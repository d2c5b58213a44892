package embedding

import (
	"errors"
	"fmt"
	"sync"

	"github.com/soundcrate/mixplan/logging"
)

// Embedding stage errors
var (
	// ErrInsufficientAudio means the track is shorter than one analysis window
	ErrInsufficientAudio = errors.New("insufficient audio for embedding window")

	// ErrModelUnavailable means the inference backend could not be loaded
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrPredictionFailed means the backend rejected a window spectrogram
	ErrPredictionFailed = errors.New("embedding prediction failed")
)

// Inferencer is the external inference boundary: a black-box mapping from one
// normalized log-mel spectrogram [MelBands][MelFrames] to a raw embedding
// vector of Dim values. Implementations are owned outside this module.
type Inferencer interface {
	Infer(spectrogram [][]float64) ([]float64, error)
}

// ModelLoader lazily constructs the inference backend
type ModelLoader func() (Inferencer, error)

// ModelHandle guards a loaded model context. The model is bound to
// specialized hardware and is not reentrant, so every Infer call is
// serialized through a single mutex and loading happens at most once per
// call attempt, never concurrently.
type ModelHandle struct {
	mu     sync.Mutex
	loader ModelLoader
	model  Inferencer
	logger logging.Logger
}

// NewModelHandle creates a handle that loads the model on first use
func NewModelHandle(loader ModelLoader) *ModelHandle {
	return &ModelHandle{
		loader: loader,
		logger: logging.WithFields(logging.Fields{"component": "model_handle"}),
	}
}

// NewModelHandleFromInferencer wraps an already-loaded backend. Useful for
// tests and for hosts that manage model lifetime themselves.
func NewModelHandleFromInferencer(model Inferencer) *ModelHandle {
	return &ModelHandle{model: model, logger: logging.WithFields(logging.Fields{"component": "model_handle"})}
}

// Infer runs one window through the model, holding exclusive access for the
// duration of the call. If the model is not loaded, one lazy load is
// attempted; a load failure surfaces as ErrModelUnavailable.
func (h *ModelHandle) Infer(spectrogram [][]float64) ([]float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.model == nil {
		if h.loader == nil {
			return nil, ErrModelUnavailable
		}

		h.logger.Info("lazily loading embedding model")
		model, err := h.loader()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		h.model = model
	}

	vec, err := h.model.Infer(spectrogram)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}
	return vec, nil
}
