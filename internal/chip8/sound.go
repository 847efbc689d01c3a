package chip8

import (
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const bufferDuration = time.Second / 10

// Sound is the CHIP-8 sound gate: a binary on/off ~440 Hz square wave at
// 25% amplitude, driven by the dispatcher whenever the sound timer is
// non-zero. Play and Stop are both total and idempotent (§8).
type Sound struct {
	stream *squareWave
}

const (
	soundSampleRate = beep.SampleRate(44100)
	soundFrequency  = 440.0
	soundAmplitude  = 0.25
)

// NewSound initializes the speaker backend (once per process) and starts
// a continuously-streaming square wave that is silent until Play is
// called, matching the teacher's "always-running device, toggle playback"
// approach from sound.rs's AudioDevice.
func NewSound() (*Sound, error) {
	if err := speaker.Init(soundSampleRate, soundSampleRate.N(bufferDuration)); err != nil {
		return nil, err
	}

	s := &Sound{stream: &squareWave{phaseInc: soundFrequency / float64(soundSampleRate)}}
	speaker.Play(s.stream)

	return s, nil
}

// Play begins emitting the tone. Calling Play while already playing has no
// additional effect.
func (s *Sound) Play() {
	s.stream.setPlaying(true)
}

// Stop silences the tone. Calling Stop while already stopped is a no-op.
func (s *Sound) Stop() {
	s.stream.setPlaying(false)
}

// squareWave is a beep.Streamer that emits a square wave while playing is
// set, and silence otherwise.
type squareWave struct {
	phaseInc float64
	phase    float64
	playing  int32
}

func (sq *squareWave) setPlaying(v bool) {
	if v {
		atomic.StoreInt32(&sq.playing, 1)
	} else {
		atomic.StoreInt32(&sq.playing, 0)
	}
}

// Stream fills samples with one tick of the square wave, or silence when
// not playing. It never fails, so Err always returns nil.
func (sq *squareWave) Stream(samples [][2]float64) (n int, ok bool) {
	playing := atomic.LoadInt32(&sq.playing) != 0

	for i := range samples {
		var v float64
		if playing {
			if sq.phase < 0.5 {
				v = soundAmplitude
			} else {
				v = -soundAmplitude
			}
		}
		samples[i][0], samples[i][1] = v, v

		sq.phase += sq.phaseInc
		if sq.phase >= 1 {
			sq.phase -= 1
		}
	}

	return len(samples), true
}

// Err satisfies beep.Streamer; the square wave generator never fails.
func (sq *squareWave) Err() error {
	return nil
}
