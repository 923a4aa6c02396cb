// Package audio generates the CHIP-8 buzzer. The machine only says whether the
// tone is on so this is a fixed frequency sine wave gated by that flag.
package audio

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	SAMPLE_RATE = 44100 // Samples per second, mono.
	FREQUENCY   = 440.0 // Tone in Hz.
	VOLUME      = 32.0  // Peak amplitude around BIAS.
	BIAS        = 127   // Unsigned 8 bit silence.
)

// Tone is an io.Reader producing unsigned 8 bit mono samples at SAMPLE_RATE.
// While on it's a sine wave at FREQUENCY, otherwise silence. SetActive may be
// called from any goroutine while another is reading.
type Tone struct {
	active atomic.Bool
	mu     sync.Mutex
	pos    float64 // Phase of the wave in radians.
}

// SetActive turns the tone on or off. It has the signature chip8.Def.ToneChanged expects.
func (t *Tone) SetActive(on bool) {
	t.active.Store(on)
}

// Active returns whether the tone is currently on.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read implements io.Reader. It always fills p and never returns an error.
func (t *Tone) Read(p []byte) (int, error) {
	if !t.active.Load() {
		for i := range p {
			p[i] = BIAS
		}
		return len(p), nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range p {
		p[i] = uint8(math.Sin(t.pos)*VOLUME + BIAS)
		t.pos += FREQUENCY * 2 * math.Pi / SAMPLE_RATE
		if t.pos >= 2*math.Pi {
			t.pos -= 2 * math.Pi
		}
	}
	return len(p), nil
}

// Player plays a Tone on the default audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewPlayer opens the audio device and starts playing t. Only one Player can
// exist per process.
func NewPlayer(t *Tone) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SAMPLE_RATE,
		ChannelCount: 1,
		Format:       oto.FormatUnsignedInt8,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	p := &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(t),
	}
	p.player.Play()
	return p, nil
}

// Close stops playback.
func (p *Player) Close() error {
	return p.player.Close()
}
