// Package audio is the procedural sound-effect adapter: it subscribes
// to sim.Callbacks and synthesizes short waveforms on the fly rather
// than decoding asset files, the same approach the teacher's audio
// system uses for its whole sound library.
package audio

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"tacsim/internal/sim"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // oto.FormatFloat32LE
)

// Router owns the oto playback context and routes sim.Callbacks sound
// events to synthesized one-shot players.
type Router struct {
	ctx   *oto.Context
	ready chan struct{}

	activeExplosions int32
}

// NewRouter opens the oto context. Until r.Ready() is closed the
// router drops every sound it is asked to play, matching oto's async
// init.
func NewRouter() (*Router, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, err
	}
	return &Router{ctx: ctx, ready: ready}, nil
}

func (r *Router) Ready() <-chan struct{} { return r.ready }

// Callbacks builds a sim.Callbacks wired to this router, suitable for
// assigning directly to Simulation.Callbacks.
func (r *Router) Callbacks() sim.Callbacks {
	return sim.Callbacks{
		OnSound: func(soundID int, _ sim.SimVector) {
			r.playSoundID(soundID)
		},
		OnExplosion: func(_, _ string, _ sim.SimVector) {
			r.playExplosion()
		},
	}
}

func (r *Router) playSoundID(id int) {
	select {
	case <-r.ready:
	default:
		return
	}
	samples := genWeaponFire(id)
	r.play(samples, 0.6)
}

func (r *Router) playExplosion() {
	select {
	case <-r.ready:
	default:
		return
	}
	if atomic.LoadInt32(&r.activeExplosions) >= 3 {
		return
	}
	atomic.AddInt32(&r.activeExplosions, 1)
	samples := genExplosion()
	go func() {
		defer atomic.AddInt32(&r.activeExplosions, -1)
		r.playSync(samples, 0.8)
	}()
}

func (r *Router) play(samples []byte, gain float64) {
	go r.playSync(samples, gain)
}

func (r *Router) playSync(samples []byte, gain float64) {
	if len(samples) == 0 {
		return
	}
	reader := &sampleReader{data: samples}
	player := r.ctx.NewPlayer(reader)
	player.SetVolume(clamp01(gain))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	player.Close()
}

type sampleReader struct {
	data []byte
	pos  int
}

func (s *sampleReader) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += n
	return n, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ---- synthesis --------------------------------------------------------

func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < 2; c++ {
		o := i*8 + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// genWeaponFire synthesizes a short crack whose pitch varies with
// weapon soundID, distinguishing weapon types audibly without needing
// sample assets.
func genWeaponFire(id int) []byte {
	n := int(0.09 * sampleRate)
	buf := make([]byte, n*8)
	seed := uint64(12345 + id*7919)
	baseFreq := 200.0 + float64(id%8)*60.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.002, 0.4, 0.0, 0.2)
		tone := math.Sin(2*math.Pi*baseFreq*(1-0.3*p)*t) * env
		crack := 0.0
		if p < 0.02 {
			crack = lcg(&seed) * (1 - p/0.02)
		}
		s := tone*0.5 + crack*0.6
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

func genExplosion() []byte {
	dur := 0.4
	n := int(dur * sampleRate)
	buf := make([]byte, n*8)
	seed := uint64(time.Now().UnixNano())
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		subFreq := 140 * math.Pow(34.0/140.0, p*1.8)
		subPhase += 2 * math.Pi * subFreq / sampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*6.5) * 0.5

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*5.5) * 0.35

		s := sub + body
		putStereoF32(buf, i, softSat(s*0.85))
	}
	return buf
}
