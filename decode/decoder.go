// Package decode turns audio files into mono float64 PCM for analysis. It is
// the SignalSource collaborator of the analysis pipeline; pure Go, no ffmpeg
// dependency.
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"

	"github.com/soundcrate/mixplan/analysis"
	"github.com/soundcrate/mixplan/logging"
)

// DecodeFile decodes an MP3 file to a mono AudioSignal. Stereo sources are
// downmixed by averaging channels.
func DecodeFile(path string) (analysis.AudioSignal, error) {
	logger := logging.WithFields(logging.Fields{"component": "decoder", "path": path})

	f, err := os.Open(path)
	if err != nil {
		return analysis.AudioSignal{}, fmt.Errorf("%w: open %s: %v", analysis.ErrDecodeFailure, path, err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return analysis.AudioSignal{}, fmt.Errorf("%w: %s: %v", analysis.ErrDecodeFailure, path, err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return analysis.AudioSignal{}, fmt.Errorf("%w: read %s: %v", analysis.ErrDecodeFailure, path, err)
	}

	// go-mp3 emits 16-bit little-endian stereo frames (4 bytes per frame)
	frameCount := len(pcm) / 4
	if frameCount == 0 {
		return analysis.AudioSignal{}, fmt.Errorf("%w: %s", analysis.ErrNoAudioData, path)
	}

	samples := make([]float64, frameCount)
	for i := 0; i < frameCount; i++ {
		left := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		samples[i] = (float64(left) + float64(right)) / 2.0 / 32768.0
	}

	logger.Debug("decoded audio", logging.Fields{
		"frames":      frameCount,
		"sample_rate": decoder.SampleRate(),
	})

	return analysis.AudioSignal{Samples: samples, SampleRate: decoder.SampleRate()}, nil
}
