package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-meter/internal/testutil"
)

func TestSmoothingCoeff(t *testing.T) {
	tests := []struct {
		name string
		ms   float64
		want float64
	}{
		{"10ms", 10, math.Exp(-1 / (48000 * 0.01))},
		{"zero floors", 0, math.Exp(-1 / (48000 * minTimeConstant))},
		{"negative floors", -5, math.Exp(-1 / (48000 * minTimeConstant))},
		{"nan floors", math.NaN(), math.Exp(-1 / (48000 * minTimeConstant))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := smoothingCoeff(tt.ms, 48000); math.Abs(got-tt.want) > 1e-15 {
				t.Fatalf("smoothingCoeff(%v) = %v, want %v", tt.ms, got, tt.want)
			}
		})
	}
}

func TestCrestOfSine(t *testing.T) {
	m := NewMeter(WithChannels(1), WithAttack(0.1), WithRelease(2000))
	m.ProcessBlock(testutil.Sine(1000, 48000, 1, 48000))

	want := 20 * math.Log10(math.Sqrt2)
	if got := m.Crest(0); math.Abs(got-want) > 0.1 {
		t.Fatalf("crest = %.3f dB, want %.3f", got, want)
	}
}

func TestRMSDetectorReadsTrueRMS(t *testing.T) {
	m := NewMeter(WithChannels(1), WithAttack(50), WithRelease(50))
	m.ProcessBlock(testutil.Sine(1000, 48000, 0.5, 48000))

	want := 0.5 / math.Sqrt2
	if got := m.RMS(0); math.Abs(got-want) > 0.005 {
		t.Fatalf("RMS = %v, want %v", got, want)
	}
}

func TestRectifiedDetectorReadsMeanAbs(t *testing.T) {
	m := NewMeter(WithChannels(1), WithDetector(DetectorRectified), WithAttack(100), WithRelease(100))
	m.ProcessBlock(testutil.Sine(1000, 48000, 1, 2*48000))

	if got := m.RMS(0); math.Abs(got-2/math.Pi) > 0.01 {
		t.Fatalf("rectified level = %v, want ~%v", got, 2/math.Pi)
	}
	if got := m.Crest(0); math.Abs(got) > 0.2 {
		t.Fatalf("rectified crest = %v, want ~0 with symmetric times", got)
	}
}

func TestEnvelopesDecayMonotonically(t *testing.T) {
	for _, d := range []Detector{DetectorRMS, DetectorRectified} {
		t.Run(d.String(), func(t *testing.T) {
			m := NewMeter(WithChannels(1), WithDetector(d))
			m.ProcessBlock(testutil.Sine(440, 48000, 0.8, 4800))

			// Let the RMS window drain before checking.
			m.ProcessBlock(make([]float64, 2400))
			prevRMS, prevPeak := m.RMS(0), m.Peak(0)
			for i := 0; i < 300; i++ {
				m.ProcessBlock(make([]float64, 480))
				if m.RMS(0) > prevRMS || m.Peak(0) > prevPeak {
					t.Fatalf("envelope rose during silence at block %d", i)
				}
				prevRMS, prevPeak = m.RMS(0), m.Peak(0)
			}
			if prevRMS > 1e-6 || prevPeak > 1e-6 {
				t.Fatalf("envelopes did not decay: rms=%v peak=%v", prevRMS, prevPeak)
			}
		})
	}
}

func TestSilenceStaysZero(t *testing.T) {
	m := NewMeter()
	m.ProcessBlock(make([]float64, 1024))

	for ch := 0; ch < 2; ch++ {
		if m.RMS(ch) != 0 || m.Peak(ch) != 0 || m.Crest(ch) != 0 {
			t.Fatalf("ch %d: rms=%v peak=%v crest=%v", ch, m.RMS(ch), m.Peak(ch), m.Crest(ch))
		}
		if m.RMSDB(ch) != MinDB || m.PeakDB(ch) != MinDB {
			t.Fatalf("ch %d: dB floors = %v/%v", ch, m.RMSDB(ch), m.PeakDB(ch))
		}
	}
}

func TestChannelsAreIndependent(t *testing.T) {
	left := testutil.Sine(1000, 48000, 1, 4800)
	right := make([]float64, len(left))
	m := NewMeter(WithChannels(2))
	m.ProcessBlock(testutil.Interleave(left, right))

	if m.Peak(0) <= 0.1 {
		t.Fatalf("left peak = %v", m.Peak(0))
	}
	if m.Peak(1) != 0 || m.RMS(1) != 0 {
		t.Fatalf("right channel leaked: peak=%v rms=%v", m.Peak(1), m.RMS(1))
	}
}

func TestInvalidChannelAndInput(t *testing.T) {
	m := NewMeter(WithChannels(1))
	m.ProcessBlock(testutil.DC(1, 480))

	for _, ch := range []int{-1, 1, 2} {
		if m.RMS(ch) != 0 || m.Peak(ch) != 0 || m.Crest(ch) != 0 {
			t.Fatalf("invalid channel %d should read 0", ch)
		}
	}

	s := NewMeter(WithChannels(2))
	s.ProcessBlock([]float64{1, 1, 1})
	s.ProcessBlock(nil)
	if s.Peak(0) != 0 {
		t.Fatal("malformed block should be ignored")
	}
}

func TestPeakIsFasterThanRMS(t *testing.T) {
	m := NewMeter(WithChannels(1), WithDetector(DetectorRectified), WithAttack(20), WithRelease(20))
	m.ProcessBlock(testutil.DC(1, 48))

	// Same input, but the peak follower uses half the time constant.
	if !(m.Peak(0) > m.RMS(0)) {
		t.Fatalf("peak %v should lead rms %v", m.Peak(0), m.RMS(0))
	}
}

func TestReset(t *testing.T) {
	m := NewMeter(WithChannels(1))
	m.ProcessBlock(testutil.Sine(1000, 48000, 1, 4800))
	cfg := m.Config()
	m.Reset()

	if m.RMS(0) != 0 || m.Peak(0) != 0 {
		t.Fatal("reset should zero envelopes")
	}
	if m.Config() != cfg {
		t.Fatal("reset must keep configuration")
	}

	// The RMS window is cleared too: a fresh run matches a fresh meter.
	fresh := NewMeter(WithChannels(1))
	sig := testutil.Sine(500, 48000, 0.3, 2400)
	m.ProcessBlock(sig)
	fresh.ProcessBlock(sig)
	if m.RMS(0) != fresh.RMS(0) {
		t.Fatalf("after reset rms=%v, fresh=%v", m.RMS(0), fresh.RMS(0))
	}
}

func TestSetTimesKeepsEnvelope(t *testing.T) {
	m := NewMeter(WithChannels(1))
	m.ProcessBlock(testutil.DC(1, 4800))
	before := m.RMS(0)

	m.SetTimes(5, 500)
	if m.RMS(0) != before {
		t.Fatal("SetTimes must not touch envelopes")
	}
	if cfg := m.Config(); cfg.AttackMs != 5 || cfg.ReleaseMs != 500 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestOptions(t *testing.T) {
	cfg := ApplyMeterOptions(WithRMSWindow(5000), WithDetector(Detector(7)), WithChannels(0))
	if cfg.RMSWindowMs != maxRMSWindowMs || cfg.Detector != DetectorRMS || cfg.Channels != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if got := Detector(7).String(); got != "Detector(7)" {
		t.Fatalf("String() = %q", got)
	}
}
