// Package decode reads audio files into interleaved float64 samples in
// [-1, 1]. Formats are looked up by file extension in a Registry; the
// default registry knows WAV (go-audio/wav), MP3 (go-mp3) and Ogg Vorbis
// (oggvorbis).
package decode
