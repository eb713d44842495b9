// Package audio provides Notifier implementations for overtime alerts:
// an oto-backed tone generator, a terminal-bell fallback, a rate-limited
// decorator, and a recorder for tests.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"

	"github.com/dgnsrekt/studypace/schedule"
)

const (
	sampleRate = 44100
	channels   = 1
)

// tone describes one beep of a severity pattern.
type tone struct {
	freq     float64
	duration time.Duration
}

// patterns maps each severity to its beep sequence. More severe alerts
// use higher pitches and more repetitions.
var patterns = map[schedule.Severity][]tone{
	schedule.SeverityWarning: {
		{freq: 880, duration: 150 * time.Millisecond},
	},
	schedule.SeverityUrgent: {
		{freq: 988, duration: 150 * time.Millisecond},
		{freq: 988, duration: 150 * time.Millisecond},
	},
	schedule.SeverityFinal: {
		{freq: 1047, duration: 250 * time.Millisecond},
		{freq: 1047, duration: 250 * time.Millisecond},
		{freq: 1047, duration: 400 * time.Millisecond},
	},
}

// Beeper plays short sine-wave alert tones through the system audio
// device. It implements schedule.Notifier and never propagates failures
// to the caller: a broken audio device degrades to silence.
type Beeper struct {
	context *oto.Context
	volume  float64
}

// NewBeeper initializes the audio device. Volume is 0.0 to 1.0.
func NewBeeper(volume float64) (*Beeper, error) {
	if volume < 0 || volume > 1 {
		return nil, fmt.Errorf("volume must be between 0.0 and 1.0, got %f", volume)
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio context: %w", err)
	}
	<-readyChan

	return &Beeper{context: ctx, volume: volume}, nil
}

// Notify plays the tone pattern for severity. Playback happens on its own
// goroutine; the caller is never blocked or failed.
func (b *Beeper) Notify(severity schedule.Severity) {
	pattern, ok := patterns[severity]
	if !ok {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warn("Audio alert failed", "severity", severity, "err", r)
			}
		}()
		for i, t := range pattern {
			if i > 0 {
				time.Sleep(100 * time.Millisecond)
			}
			b.playTone(t)
		}
	}()
}

// playTone synthesizes and plays one tone synchronously.
func (b *Beeper) playTone(t tone) {
	data := b.synthesize(t)

	player := b.context.NewPlayer(bytes.NewReader(data))
	player.Play()

	// NewPlayer buffers internally; wait out the tone before closing so
	// the tail is not cut off.
	time.Sleep(t.duration + 50*time.Millisecond)
	_ = player.Close()
}

// synthesize renders a sine tone as 16-bit little-endian PCM with a short
// linear fade at both ends to avoid clicks.
func (b *Beeper) synthesize(t tone) []byte {
	samples := int(float64(sampleRate) * t.duration.Seconds())
	fade := sampleRate / 100 // 10ms
	if fade*2 > samples {
		fade = samples / 2
	}

	data := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		amp := b.volume
		if i < fade {
			amp *= float64(i) / float64(fade)
		} else if i > samples-fade {
			amp *= float64(samples-i) / float64(fade)
		}

		v := int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*t.freq*float64(i)/sampleRate))
		data[i*2] = byte(v)
		data[i*2+1] = byte(v >> 8)
	}
	return data
}
