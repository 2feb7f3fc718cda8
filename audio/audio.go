// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Format describes an uncompressed PCM stream.
type Format struct {
	SampleRate int
	BitDepth   int
	Channels   int
	BigEndian  bool
}

// BytesPerSample is the storage width of one sample of one channel.
func (f Format) BytesPerSample() int { return (f.BitDepth + 7) / 8 }

// FrameSize is the number of bytes for one sample of every channel.
func (f Format) FrameSize() int { return f.Channels * f.BytesPerSample() }

// MaxChannels is the largest channel count a WAV header can declare.
const MaxChannels = 65535

// Check rejects formats above the supported limits.
func (f Format) Check(maxBitDepth, maxSampleRate int) error {
	switch {
	case f.Channels < 1 || f.Channels > MaxChannels:
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, f.Channels)
	case f.BitDepth < 1 || f.BitDepth > maxBitDepth:
		return fmt.Errorf("%w: bit depth %d (max %d)", ErrUnsupportedFormat, f.BitDepth, maxBitDepth)
	case f.SampleRate < 1 || f.SampleRate > maxSampleRate:
		return fmt.Errorf("%w: sample rate %d Hz (max %d)", ErrUnsupportedFormat, f.SampleRate, maxSampleRate)
	}

	return nil
}

func (f Format) String() string {
	order := "LE"
	if f.BigEndian {
		order = "BE"
	}

	return fmt.Sprintf("%d Hz, %d-bit %s, %d ch", f.SampleRate, f.BitDepth, order, f.Channels)
}

type Source interface {
	// Format of the PCM stream.
	Format() Format
	// ReadSamples fills dst with interleaved integer samples at the stream's
	// native bit depth. Returns number of values written (not frames). When
	// n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []int) (n int, err error)
	// DataSize is the length in bytes of the audio data.
	DataSize() int64
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from a seekable input.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry for decoders by file extension (e.g., "wav", "aiff", "au").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func normaliseExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normaliseExt(ext)] = d
}

// Get looks up a decoder. The extension is matched case-insensitively with
// or without a leading dot.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normaliseExt(ext)]
	return d, ok
}

// Extensions lists the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	slices.Sort(exts)

	return exts
}

// Buffer is a fully decoded mono recording.
type Buffer struct {
	// Samples holds one value per frame at Format.BitDepth.
	Samples []int
	// Format is the format of the source; Channels is the original count.
	Format Format
}

// Seconds is the duration of the buffer.
func (b *Buffer) Seconds() float64 {
	if b.Format.SampleRate == 0 {
		return 0
	}

	return float64(len(b.Samples)) / float64(b.Format.SampleRate)
}
