// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/internal/audiotest"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	samples      []int
	offset       int
	returnErrors bool
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	samplesToRead := min(len(buf.Data), len(m.samples)-m.offset)
	copy(buf.Data, m.samples[m.offset:m.offset+samplesToRead])
	m.offset += samplesToRead

	if m.offset >= len(m.samples) {
		return samplesToRead, io.EOF
	}

	return samplesToRead, nil
}

func newMockSource(channels int, samples []int, remaining int64) *source {
	return &source{
		dec:       &mockAiffReader{samples: samples},
		format:    audio.Format{SampleRate: 44100, BitDepth: 16, Channels: channels, BigEndian: true},
		remaining: remaining,
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() on empty input returned nil error")
	}
}

func TestDecoder_RealFile(t *testing.T) {
	t.Parallel()

	format := audio.Format{SampleRate: 44100, BitDepth: 16, Channels: 2, BigEndian: true}
	samples := []int{1, -1, 300, -300, 32767, -32768}

	src, err := Decoder{}.Decode(bytes.NewReader(audiotest.AIFF(format, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.Format() != format {
		t.Errorf("Format() = %v, want %v", src.Format(), format)
	}
	if src.DataSize() != 12 {
		t.Errorf("DataSize() = %d, want 12", src.DataSize())
	}

	buf := make([]int, 16)
	n, err := src.ReadSamples(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if !slices.Equal(buf[:n], samples) {
		t.Errorf("ReadSamples() = %v, want %v", buf[:n], samples)
	}
}

func TestReadHeader(t *testing.T) {
	t.Parallel()

	format := audio.Format{SampleRate: 8000, BitDepth: 16, Channels: 1, BigEndian: true}
	data := audiotest.AIFF(format, []int{1, 2, 3, 4})

	h, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	// FORM(12) + COMM(8+18) + SSND header(16)
	if h.DataOffset != 54 {
		t.Errorf("DataOffset = %d, want 54", h.DataOffset)
	}
	if h.DataSize != 8 {
		t.Errorf("DataSize = %d, want 8", h.DataSize)
	}
	if h.Format != format {
		t.Errorf("Format = %v, want %v", h.Format, format)
	}
}

func TestReadHeader_SkipsTextChunks(t *testing.T) {
	t.Parallel()

	chunk := func(id, body string, pad bool) []byte {
		b := []byte(id)
		b = append(b, 0, 0, 0, byte(len(body)))
		b = append(b, body...)
		if pad {
			b = append(b, 0)
		}
		return b
	}

	tests := []struct {
		name  string
		extra []byte
		// padded chunks are only walked here; go-audio parses the rest.
		walkOnly bool
	}{
		{"annotation", chunk("ANNO", "note SSND here!!", false), false},
		{"odd length name", chunk("NAME", "SSND!", true), true},
		{"two chunks", append(chunk("NAME", "SSND", false), chunk("ANNO", "SSNDSSND", false)...), false},
	}

	format := audio.Format{SampleRate: 8000, BitDepth: 16, Channels: 1, BigEndian: true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := audiotest.AIFFWithChunks(format, []int{1, 2, 3, 4}, tt.extra)
			at, err := findSSND(bytes.NewReader(data))
			if err != nil || at != int64(38+len(tt.extra)) {
				t.Fatalf("findSSND() = %d, %v, want %d", at, err, 38+len(tt.extra))
			}
			if tt.walkOnly {
				return
			}

			h, err := ReadHeader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("ReadHeader() error = %v", err)
			}
			if want := int64(54 + len(tt.extra)); h.DataOffset != want {
				t.Errorf("DataOffset = %d, want %d", h.DataOffset, want)
			}
			if h.DataSize != 8 {
				t.Errorf("DataSize = %d, want 8", h.DataSize)
			}
		})
	}
}

func TestReadHeader_NoSoundChunk(t *testing.T) {
	t.Parallel()

	data := audiotest.AIFF(audio.Format{SampleRate: 8000, BitDepth: 16, Channels: 1, BigEndian: true}, nil)
	// Rename SSND so the chunk list holds no sound data.
	copy(data[38:42], "JUNK")

	_, err := findSSND(bytes.NewReader(data))
	if !errors.Is(err, ErrUnsupportedAiffLayout) {
		t.Errorf("findSSND() error = %v, want ErrUnsupportedAiffLayout", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, []int{1, 2, 3, 4, 5, 6}, 6)

	buf := make([]int, 4)
	n, err := src.ReadSamples(buf)
	if n != 4 || err != nil {
		t.Fatalf("first ReadSamples() = (%d, %v), want (4, nil)", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Fatalf("second ReadSamples() = (%d, %v), want (2, EOF)", n, err)
	}
	if buf[0] != 5 || buf[1] != 6 {
		t.Errorf("second read = %v, want [5 6]", buf[:2])
	}
}

func TestSource_StopsAtDeclaredLength(t *testing.T) {
	t.Parallel()

	// Trailing chunk bytes that the decoder might hand back are ignored.
	src := newMockSource(1, []int{1, 2, 3, 99, 99}, 3)

	buf := make([]int, 8)
	n, err := src.ReadSamples(buf)
	if n != 3 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = (%d, %v), want (3, EOF)", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newMockSource(1, nil, 10)
	src.dec = &mockAiffReader{returnErrors: true}

	_, err := src.ReadSamples(make([]int, 4))
	if !errors.Is(err, audio.ErrIO) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrIO wrapping ErrUnexpectedEOF", err)
	}
}

func TestSource_ReadSamples_MisalignedDst(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, []int{1, 2}, 2)
	if _, err := src.ReadSamples(make([]int, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	format := audio.Format{SampleRate: 22050, BitDepth: 16, Channels: 1, BigEndian: true}
	samples := []int{0, 1000, -1000, 32767}

	path := filepath.Join(t.TempDir(), "out.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWriter(f, format)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Write(samples); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	f.Close()

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	src, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	buf := make([]int, 8)
	n, _ := src.ReadSamples(buf)
	if !slices.Equal(buf[:n], samples) {
		t.Errorf("round trip = %v, want %v", buf[:n], samples)
	}
}

func TestNewWriter_BadBitDepth(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.aiff"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, err = NewWriter(f, audio.Format{SampleRate: 8000, BitDepth: 20, Channels: 1})
	if !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("NewWriter() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrNotAiffFile, "unsupported audio format: not an AIFF file"},
		{ErrUnsupportedBitDepth, "unsupported audio format: unsupported AIFF bit depth"},
		{ErrUnsupportedAiffLayout, "unsupported audio format: unsupported AIFF layout"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
		if !errors.Is(tt.err, audio.ErrUnsupportedFormat) {
			t.Errorf("errors.Is(%v, ErrUnsupportedFormat) = false", tt.err)
		}
	}
}
