package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-meter/dsp/window"
	"github.com/cwbudde/algo-meter/internal/testutil"
	"github.com/ktye/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

func TestBitReverse11(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1024, 2: 512, 1024: 1, 2047: 2047, 0x555: 0x555}
	for in, want := range tests {
		if got := bitReverse11(in); got != want {
			t.Errorf("bitReverse11(%#x) = %#x, want %#x", in, got, want)
		}
	}
}

func fft2048Of(x []float64) (re, im [FrameSize]float64) {
	copy(re[:], x)
	FFT2048{}.Transform(&re, &im)
	return re, im
}

func TestFFT2048MatchesAlgoFFT(t *testing.T) {
	x := testutil.Noise(7, 1, FrameSize)
	re, im := fft2048Of(x)

	plan, err := algofft.NewPlan64(FrameSize)
	if err != nil {
		t.Fatal(err)
	}
	src := make([]complex128, FrameSize)
	for i, v := range x {
		src[i] = complex(v, 0)
	}
	dst := make([]complex128, FrameSize)
	if err := plan.Forward(dst, src); err != nil {
		t.Fatal(err)
	}

	for k := range dst {
		if math.Abs(re[k]-real(dst[k])) > 1e-9 || math.Abs(im[k]-imag(dst[k])) > 1e-9 {
			t.Fatalf("bin %d: got %v%+vi, want %v", k, re[k], im[k], dst[k])
		}
	}
}

func TestFFT2048MatchesGonum(t *testing.T) {
	x := testutil.Noise(11, 0.5, FrameSize)
	re, im := fft2048Of(x)

	coeffs := fourier.NewFFT(FrameSize).Coefficients(nil, x)
	for k, c := range coeffs {
		if math.Abs(re[k]-real(c)) > 1e-9 || math.Abs(im[k]-imag(c)) > 1e-9 {
			t.Fatalf("bin %d: got %v%+vi, want %v", k, re[k], im[k], c)
		}
	}
}

func TestFFT2048MagnitudeMatchesKtye(t *testing.T) {
	x := testutil.Sine(3000, 48000, 0.8, FrameSize)
	re, im := fft2048Of(x)

	f, err := fft.New(FrameSize)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]complex128, FrameSize)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}
	ref := make([]float64, FrameSize)
	for k, c := range f.Transform(buf) {
		ref[k] = cmplx.Abs(c)
	}

	got := make([]float64, FrameSize)
	for k := range got {
		got[k] = math.Hypot(re[k], im[k])
	}

	// Compare spectral shape; the reference may apply its own scaling.
	normalize(got)
	normalize(ref)
	testutil.RequireClose(t, got, ref, 1e-9)
}

func normalize(x []float64) {
	peak := 0.0
	for _, v := range x {
		peak = math.Max(peak, v)
	}
	for i := range x {
		x[i] /= peak
	}
}

func argmax(mag []uint8) int {
	best := 0
	for k, v := range mag {
		if v > mag[best] {
			best = k
		}
	}
	return best
}

func TestBinAlignedSinePeaks(t *testing.T) {
	for _, kind := range []window.Type{window.TypeRectangular, window.TypeHann} {
		a := NewAnalyzer(kind)
		for _, k := range []int{5, 64, 300, 1000} {
			x := testutil.BinSine(k, FrameSize, 0.9)
			mag := make([]uint8, Bins)
			wave := make([]uint8, FrameSize)
			if err := a.Transform(x, mag, wave); err != nil {
				t.Fatal(err)
			}
			if got := argmax(mag); got != k {
				t.Errorf("%v window, bin %d: peak at %d", kind, k, got)
			}
		}
	}
}

func TestMagnitudeScaling(t *testing.T) {
	// 2/N·|X[0]|·255 for DC 0.25 is exactly 127.5.
	a := NewAnalyzer(window.TypeRectangular)
	mag := make([]uint8, Bins)
	wave := make([]uint8, FrameSize)
	if err := a.Transform(testutil.DC(0.25, FrameSize), mag, wave); err != nil {
		t.Fatal(err)
	}
	if mag[0] != 128 {
		t.Fatalf("DC bin = %d, want 128", mag[0])
	}
	if mag[1] != 0 || mag[512] != 0 {
		t.Fatalf("leakage from DC: %d %d", mag[1], mag[512])
	}
	if wave[0] != 159 {
		t.Fatalf("wave byte = %d, want 159", wave[0])
	}

	// Full-scale sine with a rectangular window saturates its bin.
	x := testutil.BinSine(64, FrameSize, 1)
	if err := a.Transform(x, mag, wave); err != nil {
		t.Fatal(err)
	}
	if mag[64] != 255 {
		t.Fatalf("full-scale bin = %d, want 255", mag[64])
	}
}

func TestWaveformBytes(t *testing.T) {
	a := NewAnalyzer(window.TypeHann)
	x := make([]float64, FrameSize)
	x[0], x[1], x[2], x[3], x[4] = -1, 0, 1, -3, 2

	mag := make([]uint8, Bins)
	wave := make([]uint8, FrameSize)
	if err := a.Transform(x, mag, wave); err != nil {
		t.Fatal(err)
	}
	want := []uint8{0, 128, 255, 0, 255}
	for i, w := range want {
		if wave[i] != w {
			t.Errorf("wave[%d] = %d, want %d", i, wave[i], w)
		}
	}
}

func TestTransformSizeErrors(t *testing.T) {
	a := NewAnalyzer(window.TypeHann)
	tests := []struct {
		name         string
		in, mag, wav int
	}{
		{"short frame", 2047, Bins, FrameSize},
		{"short magnitude", FrameSize, Bins - 1, FrameSize},
		{"long waveform", FrameSize, Bins, FrameSize + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Transform(make([]float64, tt.in), make([]uint8, tt.mag), make([]uint8, tt.wav))
			if err != ErrFrameSize {
				t.Fatalf("err = %v, want ErrFrameSize", err)
			}
		})
	}
}

func TestPushCarriesRemainder(t *testing.T) {
	a := NewAnalyzer(window.TypeHann)
	block := testutil.Noise(3, 0.3, 2*(FrameSize+100))

	if !a.Push(block, 2) {
		t.Fatal("expected a completed frame")
	}
	var f Frame
	a.Consume(&f)

	// 100 samples were carried over, so FrameSize-101 more must not complete.
	if a.Push(make([]float64, 2*(FrameSize-101)), 2) {
		t.Fatal("no frame should complete")
	}
	if !a.Push(make([]float64, 2), 2) {
		t.Fatal("carried remainder should complete the next frame")
	}
}

func TestPushStereoIsMonoSum(t *testing.T) {
	left := testutil.Sine(1000, 48000, 0.25, FrameSize)
	right := testutil.Noise(5, 0.25, FrameSize)
	stereo := make([]float64, 2*FrameSize)
	sum := make([]float64, FrameSize)
	for i := range left {
		stereo[2*i] = left[i]
		stereo[2*i+1] = right[i]
		sum[i] = left[i] + right[i]
	}

	a := NewAnalyzer(window.TypeHann)
	if !a.Push(stereo, 2) {
		t.Fatal("expected a completed frame")
	}
	var got Frame
	if !a.Consume(&got) {
		t.Fatal("expected a pending frame")
	}

	var want Frame
	ref := NewAnalyzer(window.TypeHann)
	if err := ref.Transform(sum, want.Magnitude[:], want.Waveform[:]); err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatal("streamed frame differs from direct transform of the mono sum")
	}
	if a.Consume(&got) {
		t.Fatal("frame should be consumed only once")
	}
}

func TestMailboxOverwritesUnconsumed(t *testing.T) {
	a := NewAnalyzer(window.TypeRectangular)

	a.Push(testutil.DC(0.1, FrameSize), 1)
	a.Push(testutil.DC(0.2, FrameSize), 1)
	a.Push(testutil.DC(0.25, FrameSize), 1)

	if a.Dropped() != 2 {
		t.Fatalf("dropped = %d, want 2", a.Dropped())
	}
	var f Frame
	if !a.Consume(&f) {
		t.Fatal("expected pending frame")
	}
	if f.Magnitude[0] != 128 {
		t.Fatalf("mailbox holds %d, want newest frame (128)", f.Magnitude[0])
	}

	a.Push(testutil.DC(0.1, FrameSize), 1)
	if a.Dropped() != 2 {
		t.Fatal("consumed slot must not count as a drop")
	}
}

func TestPushInvalidInput(t *testing.T) {
	a := NewAnalyzer(window.TypeHann)
	if a.Push(nil, 2) || a.Push(make([]float64, 3), 2) || a.Push(make([]float64, 9), 3) {
		t.Fatal("invalid blocks must not complete frames")
	}
	if !a.Push(make([]float64, FrameSize), 1) {
		t.Fatal("invalid blocks must not leave samples in the accumulator")
	}
}

func TestReset(t *testing.T) {
	a := NewAnalyzer(window.TypeHann)
	a.Push(make([]float64, FrameSize+5), 1)
	a.Reset()
	var f Frame
	if a.Consume(&f) || a.Dropped() != 0 {
		t.Fatal("reset should clear streaming state")
	}
	if a.Push(make([]float64, FrameSize-1), 1) {
		t.Fatal("reset should clear the accumulator")
	}
	if a.Window() != window.TypeHann {
		t.Fatal("reset must keep the window")
	}
}

func TestDownsample(t *testing.T) {
	var mag [Bins]uint8
	var wave [FrameSize]uint8
	for i := range wave {
		wave[i] = uint8(i)
		if i < Bins {
			mag[i] = uint8(i / 4)
		}
	}

	var dm [DisplayBins]uint8
	var dw [DisplayWaveform]uint8
	DownsampleMagnitude(&dm, &mag)
	DownsampleWaveform(&dw, &wave)

	for o := range dm {
		if dm[o] != mag[4*o] {
			t.Fatalf("dm[%d] = %d, want %d", o, dm[o], mag[4*o])
		}
	}
	for o := range dw {
		if dw[o] != wave[4*o] {
			t.Fatalf("dw[%d] = %d, want %d", o, dw[o], wave[4*o])
		}
	}
	if n := Downsample(make([]uint8, 4), wave[:], 0); n != 0 {
		t.Fatalf("stride 0 wrote %d", n)
	}
}
