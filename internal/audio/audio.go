package audio

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// maxVoices caps simultaneous effects to avoid clipping.
const maxVoices = 6

// System plays procedurally generated effects through oto.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	log    *slog.Logger
	volume atomic.Uint64 // math.Float64bits
	voices atomic.Int32

	mu    sync.Mutex
	cache map[Sound][]byte
}

// New opens the audio device. The context becomes usable once the device is
// ready; effects played before that are dropped.
func New(volume float64, log *slog.Logger) (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	s := &System{ctx: ctx, ready: ready, log: log, cache: make(map[Sound][]byte)}
	s.SetVolume(volume)
	return s, nil
}

// SetVolume sets the effect volume in [0, 1].
func (s *System) SetVolume(v float64) {
	s.volume.Store(math.Float64bits(clampF(v, 0, 1)))
}

func (s *System) Volume() float64 {
	return math.Float64frombits(s.volume.Load())
}

// Play starts an effect without blocking.
func (s *System) Play(kind Sound) {
	if s == nil {
		return
	}
	select {
	case <-s.ready:
	default:
		return
	}
	vol := s.Volume()
	if vol <= 0 {
		return
	}
	if s.voices.Add(1) > maxVoices {
		s.voices.Add(-1)
		return
	}
	samples := s.samples(kind)
	if len(samples) == 0 {
		s.voices.Add(-1)
		return
	}
	go func() {
		defer s.voices.Add(-1)
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(vol)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil && s.log != nil {
			s.log.Debug("audio player close", "sound", kind.String(), "err", err)
		}
	}()
}

func (s *System) samples(kind Sound) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.cache[kind]; ok {
		return b
	}
	b := Generate(kind)
	s.cache[kind] = b
	return b
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
