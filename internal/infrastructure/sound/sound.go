// Package sound plays short synthesized cues.
package sound

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/younwookim/auraboros/internal/infrastructure/config"
)

// SampleRate is the audio context sample rate.
const SampleRate = 44100

// Player plays a named cue. Unknown names are ignored.
type Player interface {
	Play(name string)
}

// Silent is a Player that plays nothing.
type Silent struct{}

func (Silent) Play(string) {}

// Synth renders each configured cue once and plays it from memory.
type Synth struct {
	ctx    *audio.Context
	cues   map[string][]byte
	logger *log.Logger
}

// NewSynth renders cues into PCM. Only one audio context may exist per
// process, so NewSynth must be called at most once.
func NewSynth(cues map[string]config.SoundConfig, logger *log.Logger) *Synth {
	if logger == nil {
		logger = log.Default()
	}
	s := &Synth{
		ctx:    audio.NewContext(SampleRate),
		cues:   make(map[string][]byte, len(cues)),
		logger: logger,
	}
	for name, cfg := range cues {
		pcm := Tone(cfg, SampleRate)
		if pcm == nil {
			s.logger.Printf("sound: cue %q renders no samples, skipping", name)
			continue
		}
		s.cues[name] = pcm
	}
	return s
}

func (s *Synth) Play(name string) {
	pcm, ok := s.cues[name]
	if !ok {
		return
	}
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.Play()
}

// Tone renders a square wave sweeping linearly from Frequency to Sweep,
// with a linear fade out, as 16-bit little-endian stereo PCM.
func Tone(cfg config.SoundConfig, sampleRate int) []byte {
	n := sampleRate * cfg.DurationMs / 1000
	if n <= 0 || cfg.Frequency <= 0 {
		return nil
	}
	end := cfg.Sweep
	if end <= 0 {
		end = cfg.Frequency
	}
	volume := math.Max(0, math.Min(1, cfg.Volume))

	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := cfg.Frequency + (end-cfg.Frequency)*t
		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)

		v := volume * (1 - t)
		if phase >= 0.5 {
			v = -v
		}
		sample := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}
