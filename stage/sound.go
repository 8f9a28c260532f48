package stage

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate is the audio context rate used by NewChime.
const SampleRate = 44100

// Chime is a short tone played on each successful placement.
type Chime struct {
	player *audio.Player
}

// NewChime renders a sine tone at freq Hz for d and wraps it in a player on
// ctx. The context's sample rate must be SampleRate.
func NewChime(ctx *audio.Context, freq float64, d time.Duration) *Chime {
	return &Chime{player: ctx.NewPlayerFromBytes(sinePCM(freq, d, SampleRate))}
}

// Play restarts the chime from the beginning.
func (c *Chime) Play() {
	if err := c.player.Rewind(); err != nil {
		return
	}
	c.player.Play()
}

// sinePCM renders a sine tone as 16-bit little-endian stereo PCM with a
// linear fade-out so the tone ends without a click.
func sinePCM(freq float64, d time.Duration, rate int) []byte {
	n := int(d.Seconds() * float64(rate))
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/float64(rate)) * env * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
