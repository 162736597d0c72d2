// Package embed exposes the meters and processors through a flat,
// handle-based API of primitive types, for hosts such as WebAssembly that
// cannot hold Go values.
//
// Samples cross the boundary as float32, quantized spectra as uint8 and
// counts and handles as int32. Handle 0 is never issued. Calls never
// return errors or panic: an unknown handle, a wrong-kind handle or a
// malformed buffer turns the call into a no-op that returns 0.
//
// The handle table is safe for concurrent use. Calls through one handle
// must still come from a single goroutine at a time.
package embed
