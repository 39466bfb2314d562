package main

import (
	"sync"

	"github.com/GeFeC/nesgo/internal/system"
)

// pcmStream adapts the APU's resampled float32 callback into the
// little-endian 16-bit stereo PCM stream ebiten's audio.Context.NewPlayer
// expects. Its Read method is the audio device's pull, which in turn is the
// sole driver of System.Tick while audio is enabled: Read ticks the system
// until enough bytes have been produced to satisfy the request.
type pcmStream struct {
	sys *system.System
	mu  *sync.Mutex
	buf []byte
}

func newPCMStream(sys *system.System, mu *sync.Mutex, sampleRate float64) *pcmStream {
	s := &pcmStream{sys: sys, mu: mu}
	sys.SetAudioSink(sampleRate, s.push)
	return s
}

// push is invoked synchronously from within sys.Tick, on the same goroutine
// that holds s.mu in Read, so it never needs its own lock.
func (s *pcmStream) push(sample float32) {
	if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}
	v := int16(sample * 32767)
	lo, hi := byte(v), byte(v>>8)
	// Duplicate the mono mix into both stereo channels.
	s.buf = append(s.buf, lo, hi, lo, hi)
}

func (s *pcmStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.buf) < len(p) {
		s.sys.Tick()
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}
