package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-meter/dsp/core"
)

const (
	defaultAttackMs    = 10.0
	defaultReleaseMs   = 100.0
	defaultRMSWindowMs = 50.0

	minRMSWindowMs = 1.0
	maxRMSWindowMs = 1000.0

	// minTimeConstant is the floor for non-positive attack/release times in seconds.
	minTimeConstant = 1e-4
)

// Detector selects the level envelope input.
type Detector int

const (
	// DetectorRMS feeds the square root of a moving mean of squares.
	DetectorRMS Detector = iota
	// DetectorRectified feeds the rectified sample.
	DetectorRectified
)

// String returns the detector name.
func (d Detector) String() string {
	switch d {
	case DetectorRMS:
		return "rms"
	case DetectorRectified:
		return "rectified"
	default:
		return fmt.Sprintf("Detector(%d)", int(d))
	}
}

// MeterConfig defines configuration for the dynamics meter.
type MeterConfig struct {
	core.ProcessorConfig

	AttackMs    float64
	ReleaseMs   float64
	Detector    Detector
	RMSWindowMs float64
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns 48 kHz stereo, 10 ms attack, 100 ms release and
// a 50 ms RMS window.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		ProcessorConfig: core.DefaultProcessorConfig(),
		AttackMs:        defaultAttackMs,
		ReleaseMs:       defaultReleaseMs,
		Detector:        DetectorRMS,
		RMSWindowMs:     defaultRMSWindowMs,
	}
}

// WithAttack sets the attack time in milliseconds. Non-positive values
// select the 0.1 ms floor.
func WithAttack(ms float64) MeterOption {
	return func(cfg *MeterConfig) { cfg.AttackMs = ms }
}

// WithRelease sets the release time in milliseconds. Non-positive values
// select the 0.1 ms floor.
func WithRelease(ms float64) MeterOption {
	return func(cfg *MeterConfig) { cfg.ReleaseMs = ms }
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		core.WithSampleRate(sampleRate)(&cfg.ProcessorConfig)
	}
}

// WithChannels sets the number of channels (1 for mono, 2 for stereo).
func WithChannels(channels int) MeterOption {
	return func(cfg *MeterConfig) {
		core.WithChannels(channels)(&cfg.ProcessorConfig)
	}
}

// WithDetector selects the level detector. Unknown values are ignored.
func WithDetector(d Detector) MeterOption {
	return func(cfg *MeterConfig) {
		if d == DetectorRMS || d == DetectorRectified {
			cfg.Detector = d
		}
	}
}

// WithRMSWindow sets the RMS averaging window, clamped to [1, 1000] ms.
func WithRMSWindow(ms float64) MeterOption {
	return func(cfg *MeterConfig) {
		if ms > 0 {
			cfg.RMSWindowMs = core.Clamp(ms, minRMSWindowMs, maxRMSWindowMs)
		}
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
