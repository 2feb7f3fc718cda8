// SPDX-License-Identifier: EPL-2.0

// Package audiscope loads uncompressed recordings for analysis.
//
// Load picks a decoder from the file extension, decodes the file chunk by
// chunk and returns a mono audio.Buffer with leading and trailing silence
// removed:
//
//	buf, err := audiscope.Load(ctx, "take.wav", audio.ReadOptions{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(buf.Format, buf.Seconds())
//
// WAV, AIFF and AU files are decoded. MP3 and Ogg Vorbis files are
// recognised and rejected with an error wrapping audio.ErrUnsupportedFormat
// that describes the stream.
//
// The analysis, split and engine packages build on the buffer; see their
// documentation for the individual tools.
package audiscope
