package core

// Channel limits shared by every engine. Interleaved blocks carry at most two
// channels.
const (
	MinChannels = 1
	MaxChannels = 2
)

// ProcessorConfig holds the settings every streaming engine is constructed with.
type ProcessorConfig struct {
	SampleRate float64
	Channels   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz stereo.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		Channels:   2,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive rates are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the interleaved channel count. Values outside
// [MinChannels, MaxChannels] are ignored.
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if ValidChannels(channels) {
			cfg.Channels = channels
		}
	}
}

// ValidChannels reports whether n is a supported channel count.
func ValidChannels(n int) bool {
	return n >= MinChannels && n <= MaxChannels
}

// Frames returns the number of whole frames in an interleaved block, or 0 when
// the block is empty, the channel count is unsupported, or the length is not a
// multiple of the channel count.
func Frames(block []float64, channels int) int {
	if len(block) == 0 || !ValidChannels(channels) || len(block)%channels != 0 {
		return 0
	}
	return len(block) / channels
}
