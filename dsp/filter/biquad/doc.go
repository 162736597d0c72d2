// Package biquad provides the second-order IIR runtime used by the meters.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections are cascaded via
// [Chain]; the loudness meter keeps one chain per channel for its
// pre-filter and shelf stages.
//
// Coefficient design lives in dsp/filter/design.
package biquad
