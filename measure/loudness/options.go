package loudness

import "github.com/cwbudde/algo-meter/dsp/core"

// DefaultHistoryCapacity holds about five minutes of 100 ms blocks.
const DefaultHistoryCapacity = 3000

// MeterConfig defines configuration for the loudness meter.
type MeterConfig struct {
	core.ProcessorConfig

	// TruePeakOversample is 1 (sample peak), 2 or 4.
	TruePeakOversample int
	// HistoryCapacity bounds the number of 100 ms blocks kept for
	// integrated loudness and loudness range.
	HistoryCapacity int
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns 48 kHz stereo with sample-peak detection.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		ProcessorConfig:    core.DefaultProcessorConfig(),
		TruePeakOversample: 1,
		HistoryCapacity:    DefaultHistoryCapacity,
	}
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

// WithTruePeakOversample selects the true-peak oversampling factor.
// Factors other than 2 or 4 select plain sample-peak detection.
func WithTruePeakOversample(factor int) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.TruePeakOversample = normalizeOversample(factor)
	}
}

// WithHistoryCapacity sets how many 100 ms blocks are retained.
func WithHistoryCapacity(blocks int) MeterOption {
	return func(cfg *MeterConfig) {
		if blocks > 0 {
			cfg.HistoryCapacity = blocks
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

func normalizeOversample(factor int) int {
	switch factor {
	case 2, 4:
		return factor
	default:
		return 1
	}
}
