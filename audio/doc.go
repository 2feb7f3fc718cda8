// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM primitives the analysers are built on.
//
// This package contains:
//   - Source interface for integer PCM input
//   - Format describing sample rate, bit depth, channels and byte order
//   - MonoMixer for channel mixing
//   - Read, which loads a whole source as a mono Buffer in chunks
//   - Format registry for decoder registration
//
// # Source Interface
//
//	type Source interface {
//	    Format() Format
//	    ReadSamples(dst []int) (int, error)
//	    DataSize() int64
//	    Close() error
//	}
//
// Samples are signed integers at the stream's native bit depth, so a
// 16-bit file yields values in [-32768, 32767]. Analysers scale them
// against the bit depth themselves.
//
// # Channel Mixing
//
// The MonoMixer averages the channels of each frame, rounding half up:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]int, 4096)
//	n, err := mono.ReadFrames(buf, nil)
//
// # Reading
//
// Read pulls whole frames, BufferSize bytes at a time, reports progress
// and stops when the context is cancelled:
//
//	buf, err := audio.Read(ctx, source, audio.ReadOptions{Reporter: rep})
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. Other errors
// wrap ErrIO, ErrUnsupportedFormat or ErrInvalidDstSize.
package audio
