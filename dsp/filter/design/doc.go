// Package design provides closed-form biquad coefficient designers.
//
// The functions return [biquad.Coefficients] consumable by dsp/filter/biquad.
// Invalid frequencies or sample rates produce zero coefficients rather than
// NaN-laden filters.
package design
