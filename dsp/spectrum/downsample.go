package spectrum

// Display sizes produced by the stride-4 downsamplers.
const (
	DisplayBins     = Bins / 4
	DisplayWaveform = FrameSize / 4
)

// Downsample picks every stride-th byte of src into dst and returns the
// number written.
func Downsample(dst, src []uint8, stride int) int {
	if stride <= 0 {
		return 0
	}
	n := 0
	for i := 0; i < len(src) && n < len(dst); i += stride {
		dst[n] = src[i]
		n++
	}
	return n
}

// DownsampleMagnitude reduces a 1024-bin magnitude frame to 256 bins.
func DownsampleMagnitude(dst *[DisplayBins]uint8, src *[Bins]uint8) {
	Downsample(dst[:], src[:], 4)
}

// DownsampleWaveform reduces a 2048-sample waveform to 512 samples.
func DownsampleWaveform(dst *[DisplayWaveform]uint8, src *[FrameSize]uint8) {
	Downsample(dst[:], src[:], 4)
}
