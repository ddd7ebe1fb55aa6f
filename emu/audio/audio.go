// Package audio plays the CHIP-8 beep on the system speaker.
package audio

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)
	toneFreq   = 440.0
	toneLength = time.Second / 10
	volume     = 0.2
)

var format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Speaker holds a pre-rendered beep and plays it on demand.
type Speaker struct {
	tone *beep.Buffer
}

// NewSpeaker initialises the speaker. With an empty beepFile a square tone is
// generated, otherwise the mp3 at beepFile is decoded and used.
func NewSpeaker(beepFile string) (*Speaker, error) {
	tone, err := loadTone(beepFile)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(SampleRate, SampleRate.N(toneLength)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Speaker{tone: tone}, nil
}

// Beep plays the tone once without waiting for it to finish.
func (s *Speaker) Beep() {
	speaker.Play(s.tone.Streamer(0, s.tone.Len()))
}

func loadTone(beepFile string) (*beep.Buffer, error) {
	buf := beep.NewBuffer(format)
	if beepFile == "" {
		buf.Append(squareWave(SampleRate, toneFreq, toneLength))
		return buf, nil
	}

	f, err := os.Open(beepFile)
	if err != nil {
		return nil, err
	}
	streamer, fileFormat, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", beepFile, err)
	}
	defer streamer.Close()

	buf.Append(beep.Resample(4, fileFormat.SampleRate, SampleRate, streamer))
	return buf, nil
}

// squareWave streams d worth of a square wave at freq Hz.
func squareWave(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	period := float64(sr) / freq
	total := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			v := volume
			if math.Mod(float64(pos), period) >= period/2 {
				v = -volume
			}
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}
