//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-meter/dsp/spectrum"
	"github.com/cwbudde/algo-meter/internal/embed"
)

var (
	reg   = embed.NewRegistry()
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	api.Set("destroy", export(func(args []js.Value) any {
		return len(args) > 0 && reg.Destroy(handle(args, 0))
	}))

	// Loudness.
	api.Set("loudnessCreate", export(func(args []js.Value) any {
		return reg.LoudnessCreate(intArg(args, 0, 48000), intArg(args, 1, 1))
	}))
	api.Set("loudnessProcess", export(func(args []js.Value) any {
		block := float32s(arg(args, 1))
		reg.LoudnessProcess(handle(args, 0), block, intArg(args, 2, 0), intArg(args, 3, 2))
		return js.Null()
	}))
	api.Set("loudnessReset", export(func(args []js.Value) any {
		reg.LoudnessReset(handle(args, 0))
		return js.Null()
	}))
	api.Set("loudness", export(func(args []js.Value) any {
		h := handle(args, 0)
		obj := js.Global().Get("Object").New()
		obj.Set("momentary", reg.LoudnessMomentary(h))
		obj.Set("shortTerm", reg.LoudnessShortTerm(h))
		obj.Set("integrated", reg.LoudnessIntegrated(h))
		obj.Set("range", reg.LoudnessRange(h))
		obj.Set("truePeak", reg.LoudnessTruePeak(h))
		obj.Set("maxTruePeak", reg.LoudnessMaxTruePeak(h))
		return obj
	}))

	// Dynamics.
	api.Set("dynamicsCreate", export(func(args []js.Value) any {
		return reg.DynamicsCreate(floatArg(args, 0, 10), floatArg(args, 1, 100), floatArg(args, 2, 48000))
	}))
	api.Set("dynamicsSetTimes", export(func(args []js.Value) any {
		reg.DynamicsSetTimes(handle(args, 0), floatArg(args, 1, 10), floatArg(args, 2, 100))
		return js.Null()
	}))
	api.Set("dynamicsSetDetector", export(func(args []js.Value) any {
		reg.DynamicsSetDetector(handle(args, 0), intArg(args, 1, embed.DetectorRMS))
		return js.Null()
	}))
	api.Set("dynamicsProcess", export(func(args []js.Value) any {
		block := float32s(arg(args, 1))
		reg.DynamicsProcess(handle(args, 0), block, intArg(args, 2, 0), intArg(args, 3, 2))
		return js.Null()
	}))
	api.Set("dynamicsReset", export(func(args []js.Value) any {
		reg.DynamicsReset(handle(args, 0))
		return js.Null()
	}))
	api.Set("dynamics", export(func(args []js.Value) any {
		h := handle(args, 0)
		obj := js.Global().Get("Object").New()
		obj.Set("rmsLeft", reg.DynamicsRMSLeft(h))
		obj.Set("rmsRight", reg.DynamicsRMSRight(h))
		obj.Set("peakLeft", reg.DynamicsPeak(h, 0))
		obj.Set("peakRight", reg.DynamicsPeak(h, 1))
		obj.Set("crestLeft", reg.DynamicsCrestLeft(h))
		obj.Set("crestRight", reg.DynamicsCrestRight(h))
		return obj
	}))

	// Spectrum.
	api.Set("spectrumCreate", export(func(args []js.Value) any {
		return reg.SpectrumCreate(intArg(args, 0, embed.WindowHann))
	}))
	api.Set("spectrumPush", export(func(args []js.Value) any {
		block := float32s(arg(args, 1))
		return reg.SpectrumPush(handle(args, 0), block, intArg(args, 2, 0), intArg(args, 3, 2)) == 1
	}))
	api.Set("spectrumConsume", export(func(args []js.Value) any {
		mag := make([]uint8, spectrum.Bins)
		wave := make([]uint8, spectrum.FrameSize)
		if reg.SpectrumConsume(handle(args, 0), mag, wave) == 0 {
			return js.Null()
		}
		return frameObject(mag, wave)
	}))
	api.Set("spectrumTransform", export(func(args []js.Value) any {
		mag := make([]uint8, spectrum.Bins)
		wave := make([]uint8, spectrum.FrameSize)
		if reg.SpectrumTransform(handle(args, 0), float32s(arg(args, 1)), mag, wave) == 0 {
			return js.Null()
		}
		return frameObject(mag, wave)
	}))
	api.Set("spectrumDropped", export(func(args []js.Value) any {
		return reg.SpectrumDropped(handle(args, 0))
	}))
	api.Set("spectrumReset", export(func(args []js.Value) any {
		reg.SpectrumReset(handle(args, 0))
		return js.Null()
	}))

	// Features.
	api.Set("featuresCreate", export(func(args []js.Value) any {
		return reg.FeaturesCreate(intArg(args, 0, 2048), intArg(args, 1, 48000))
	}))
	api.Set("featuresUpdate", export(func(args []js.Value) any {
		reg.FeaturesUpdate(handle(args, 0), uint8s(arg(args, 1)))
		return js.Null()
	}))
	api.Set("features", export(func(args []js.Value) any {
		h := handle(args, 0)
		obj := js.Global().Get("Object").New()
		obj.Set("centroid", reg.FeaturesCentroid(h))
		obj.Set("flux", reg.FeaturesFlux(h))
		obj.Set("flatness", reg.FeaturesFlatness(h))
		obj.Set("peakIndex", reg.FeaturesPeakIndex(h))
		obj.Set("peakHz", reg.FeaturesPeakHz(h))
		obj.Set("rolloff", reg.FeaturesRolloff(h, floatArg(args, 1, 0.85)))
		return obj
	}))
	api.Set("featuresBands", export(func(args []js.Value) any {
		out := make([]uint8, max(0, int(intArg(args, 1, 32))))
		n := reg.FeaturesBandEnergies(handle(args, 0), out, int32(len(out)))
		return uint8Array(out[:n])
	}))

	// Convolver.
	api.Set("convolverCreate", export(func(args []js.Value) any {
		return reg.ConvolverCreate(float32s(arg(args, 0)), intArg(args, 1, 128), intArg(args, 2, 2))
	}))
	api.Set("convolverProcess", export(func(args []js.Value) any {
		in := float32s(arg(args, 1))
		out := make([]float32, len(in))
		n := reg.ConvolverProcess(handle(args, 0), in, out, intArg(args, 2, 0))
		if n == 0 {
			return float32Array(nil)
		}
		return float32Array(out)
	}))

	// Resampler.
	api.Set("resamplerCreate", export(func(args []js.Value) any {
		return reg.ResamplerCreate(intArg(args, 0, 44100), intArg(args, 1, 48000), intArg(args, 2, 2), intArg(args, 3, 32))
	}))
	api.Set("resamplerProcess", export(func(args []js.Value) any {
		h := handle(args, 0)
		frames := intArg(args, 2, 0)
		channels := int(reg.ResamplerChannels(h))
		out := make([]float32, int(reg.ResamplerMaxOutput(h, frames))*channels)
		n := reg.ResamplerProcess(h, float32s(arg(args, 1)), frames, out)
		return float32Array(out[:int(n)*channels])
	}))

	api.Set("downsampleMagnitude", export(func(args []js.Value) any {
		out := make([]uint8, spectrum.DisplayBins)
		return uint8Array(out[:embed.DownsampleMagnitude(out, uint8s(arg(args, 0)))])
	}))
	api.Set("downsampleWaveform", export(func(args []js.Value) any {
		out := make([]uint8, spectrum.DisplayWaveform)
		return uint8Array(out[:embed.DownsampleWaveform(out, uint8s(arg(args, 0)))])
	}))

	js.Global().Set("AlgoMeter", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

func arg(args []js.Value, i int) js.Value {
	if i >= len(args) {
		return js.Undefined()
	}
	return args[i]
}

func handle(args []js.Value, i int) int32 { return intArg(args, i, 0) }

func intArg(args []js.Value, i int, def int32) int32 {
	v := arg(args, i)
	if v.Type() != js.TypeNumber {
		return def
	}
	return int32(v.Int())
}

func floatArg(args []js.Value, i int, def float32) float32 {
	v := arg(args, i)
	if v.Type() != js.TypeNumber {
		return def
	}
	return float32(v.Float())
}

func float32s(v js.Value) []float32 {
	if v.Type() != js.TypeObject {
		return nil
	}
	n := v.Length()
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = float32(v.Index(i).Float())
	}
	return out
}

func uint8s(v js.Value) []uint8 {
	if v.Type() != js.TypeObject || !v.InstanceOf(js.Global().Get("Uint8Array")) {
		return nil
	}
	out := make([]uint8, v.Length())
	js.CopyBytesToGo(out, v)
	return out
}

func uint8Array(b []uint8) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func float32Array(x []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(x))
	for i, v := range x {
		arr.SetIndex(i, v)
	}
	return arr
}

func frameObject(mag, wave []uint8) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("magnitude", uint8Array(mag))
	obj.Set("waveform", uint8Array(wave))
	return obj
}
