package dynamics

import (
	"math"

	"github.com/cwbudde/algo-meter/dsp/core"
)

// smoothingCoeff returns the one-pole coefficient exp(-1/(rate·τ)) for a
// time constant in milliseconds.
func smoothingCoeff(ms, sampleRate float64) float64 {
	tau := ms * 0.001
	if !(tau > minTimeConstant) {
		tau = minTimeConstant
	}
	return math.Exp(-1 / (sampleRate * tau))
}

// follower is an attack/release envelope: env = c·env + (1-c)·x with the
// attack coefficient when x rises above env and the release coefficient
// otherwise.
type follower struct {
	attack  float64
	release float64
	env     float64
}

func newFollower(attackMs, releaseMs, sampleRate float64) follower {
	return follower{
		attack:  smoothingCoeff(attackMs, sampleRate),
		release: smoothingCoeff(releaseMs, sampleRate),
	}
}

func (f *follower) process(x float64) float64 {
	c := f.release
	if x > f.env {
		c = f.attack
	}
	f.env = core.FlushDenormals(c*f.env + (1-c)*x)
	return f.env
}

// rmsWindow is a moving mean of squares over a fixed number of samples.
// Until the window fills, the missing samples count as zero.
type rmsWindow struct {
	squares []float64
	idx     int
	sum     float64
}

func newRMSWindow(samples int) rmsWindow {
	return rmsWindow{squares: make([]float64, max(1, samples))}
}

func (w *rmsWindow) process(x float64) float64 {
	sq := x * x
	w.sum += sq - w.squares[w.idx]
	w.squares[w.idx] = sq
	w.idx++
	if w.idx == len(w.squares) {
		w.idx = 0
	}
	if w.sum < 0 {
		w.sum = 0
	}
	return mathSqrt(w.sum / float64(len(w.squares)))
}

func (w *rmsWindow) reset() {
	clear(w.squares)
	w.idx = 0
	w.sum = 0
}
