package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrUnsupportedFormat is returned for unknown extensions or encodings.
	ErrUnsupportedFormat = errors.New("decode: unsupported format")
	// ErrInvalidFile is returned when a file cannot be parsed.
	ErrInvalidFile = errors.New("decode: invalid file")
)

// Source is a decoded PCM stream.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels is the interleaved channel count.
	Channels() int
	// Read fills dst with interleaved samples and returns the number of
	// values written, always whole frames. It returns 0, io.EOF at the end.
	Read(dst []float64) (int, error)
	// Close releases the underlying file.
	Close() error
}

// Decoder opens a Source on r.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry maps lower-case file extensions (without dot) to decoders.
type Registry struct {
	mu     sync.Mutex
	codecs map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register associates ext with d, replacing any earlier decoder.
func (r *Registry) Register(ext string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[normalizeExt(ext)] = d
}

// Get returns the decoder for ext.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Formats returns the registered extensions.
func (r *Registry) Formats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		out = append(out, ext)
	}
	return out
}

// Open decodes the file at path with the decoder registered for its
// extension. Closing the Source closes the file.
func (r *Registry) Open(path string) (Source, error) {
	ext := filepath.Ext(path)
	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode: open %s: %w", path, err)
	}

	src, err := d.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode: %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

// NewDefaultRegistry returns a registry with the built-in decoders.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", WAV{})
	r.Register("mp3", MP3{})
	r.Register("ogg", Vorbis{})
	r.Register("oga", Vorbis{})
	return r
}

var defaultRegistry = NewDefaultRegistry()

// Open decodes path with the default registry.
func Open(path string) (Source, error) {
	return defaultRegistry.Open(path)
}

// maxEmptyReads bounds consecutive empty reads before ReadAll gives up.
const maxEmptyReads = 100

// ReadAll drains src and returns all samples.
func ReadAll(src Source) ([]float64, error) {
	var out []float64
	buf := make([]float64, 4096*max(1, src.Channels()))
	empty := 0
	for {
		n, err := src.Read(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return out, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}
}

type fileSource struct {
	Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// frameLen returns the largest whole-frame length not above n.
func frameLen(n, channels int) int {
	return n - n%channels
}
