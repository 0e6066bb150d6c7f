package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// DrainTimeout bounds how long a caller should wait for a sound to finish
// after the overlay is gone.
const DrainTimeout = 5 * time.Second

// Player plays the overlay's show sound once through the default device.
// Playback outlives the call to Play; Wait blocks until it has finished.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	volume float64 // linear gain, 0 to 1

	initialized bool
	sampleRate  beep.SampleRate

	// playing counts sounds from the start of decoding until their last
	// sample has been handed to the device.
	playing sync.WaitGroup
}

// NewPlayer creates a player at full volume.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
	}
}

// SetVolume sets the linear playback gain, clamped to [0, 1].
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Min(math.Max(volume, 0), 1)
}

// Volume returns the linear playback gain.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play decodes a WAV, OGG or MP3 file and queues it on the speaker.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}
	p.playing.Add(1)
	return p.play(path)
}

// PlayAsync is Play without blocking the caller on decoding. Failures are
// logged. A Wait that follows PlayAsync covers the sound.
func (p *Player) PlayAsync(path string) {
	if path == "" {
		return
	}
	p.playing.Add(1)
	go func() {
		if err := p.play(path); err != nil {
			p.logger.Warn("failed to play sound", "path", path, "error", err)
		}
	}()
}

// play decodes and queues path. The caller holds a playing slot, which is
// released when the sound ends or decoding fails.
func (p *Player) play(path string) error {
	buffer, err := p.load(path)
	if err != nil {
		p.playing.Done()
		return err
	}

	p.mu.Lock()
	volume := p.volume
	deviceRate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if rate := buffer.Format().SampleRate; rate != deviceRate {
		streamer = beep.Resample(4, rate, deviceRate, streamer)
	}

	speaker.Play(p.track(withVolume(streamer, volume)))
	p.logger.Debug("playing sound", "path", path, "volume", volume, "duration", buffer.Format().SampleRate.D(buffer.Len()))
	return nil
}

// Wait blocks until every sound passed to Play has finished or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.playing.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sound still playing: %w", ctx.Err())
	}
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.logger.Debug("audio player closed")
}

// track appends a completion marker to s that releases one playing slot.
// The caller must already hold that slot.
func (p *Player) track(s beep.Streamer) beep.Streamer {
	var once sync.Once
	return beep.Seq(s, beep.Callback(func() {
		once.Do(p.playing.Done)
	}))
}

// load decodes path into memory and opens the device at its sample rate.
func (p *Player) load(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.openDevice(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// openDevice initializes the speaker once, with a 100 ms buffer.
func (p *Player) openDevice(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	p.sampleRate = sampleRate
	p.initialized = true
	return nil
}

// withVolume scales every sample of s by the linear gain volume.
// effects.Volume multiplies by Base^Volume, so the exponent is log2(gain).
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(volume),
		Silent:   volume <= 0,
	}
}
