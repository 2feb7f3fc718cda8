// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audiscope/audio"
)

// encodeSamples writes samples at the format's width. 8-bit output is
// unsigned when unsigned8 is set.
func encodeSamples(buf *bytes.Buffer, samples []int, bitDepth int, order binary.ByteOrder, unsigned8 bool) {
	width := (bitDepth + 7) / 8
	tmp := make([]byte, 4)

	for _, s := range samples {
		switch width {
		case 1:
			if unsigned8 {
				buf.WriteByte(byte(s + 128))
			} else {
				buf.WriteByte(byte(int8(s)))
			}
		case 2:
			order.PutUint16(tmp, uint16(int16(s)))
			buf.Write(tmp[:2])
		case 3:
			if order == binary.BigEndian {
				buf.Write(goaudio.Int32toInt24BEBytes(int32(s)))
			} else {
				buf.Write(goaudio.Int32toInt24LEBytes(int32(s)))
			}
		case 4:
			order.PutUint32(tmp, uint32(int32(s)))
			buf.Write(tmp)
		}
	}
}

// WAV builds a canonical 44-byte-header PCM WAV file holding interleaved
// samples.
func WAV(format audio.Format, samples []int) []byte {
	return WAVWithChunks(format, samples, nil)
}

// WAVWithChunks is WAV with extra raw chunks placed between "fmt " and
// "data".
func WAVWithChunks(format audio.Format, samples []int, extra []byte) []byte {
	var data bytes.Buffer
	encodeSamples(&data, samples, format.BitDepth, binary.LittleEndian, true)
	if data.Len()%2 == 1 {
		data.WriteByte(0)
	}

	buf := new(bytes.Buffer)
	blockAlign := format.FrameSize()
	byteRate := format.SampleRate * blockAlign
	dataSize := uint32(len(samples) * format.BytesPerSample())

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(4+24+len(extra)+8+data.Len()))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(format.BitDepth))

	buf.Write(extra)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(data.Bytes())

	return buf.Bytes()
}

// AIFF builds an uncompressed AIFF file holding interleaved samples.
func AIFF(format audio.Format, samples []int) []byte {
	return AIFFWithChunks(format, samples, nil)
}

// AIFFWithChunks is AIFF with extra raw chunks placed between "COMM" and
// "SSND".
func AIFFWithChunks(format audio.Format, samples []int, extra []byte) []byte {
	var data bytes.Buffer
	encodeSamples(&data, samples, format.BitDepth, binary.BigEndian, false)

	frames := len(samples) / format.Channels
	buf := new(bytes.Buffer)

	buf.WriteString("FORM")
	binary.Write(buf, binary.BigEndian, uint32(4+8+18+len(extra)+8+8+data.Len()))
	buf.WriteString("AIFF")

	buf.WriteString("COMM")
	binary.Write(buf, binary.BigEndian, uint32(18))
	binary.Write(buf, binary.BigEndian, uint16(format.Channels))
	binary.Write(buf, binary.BigEndian, uint32(frames))
	binary.Write(buf, binary.BigEndian, uint16(format.BitDepth))
	rate := goaudio.IntToIEEEFloat(format.SampleRate)
	buf.Write(rate[:])

	buf.Write(extra)

	buf.WriteString("SSND")
	binary.Write(buf, binary.BigEndian, uint32(8+data.Len()))
	binary.Write(buf, binary.BigEndian, uint32(0))
	binary.Write(buf, binary.BigEndian, uint32(0))
	buf.Write(data.Bytes())

	return buf.Bytes()
}

// AU builds a Sun/NeXT .snd file with linear PCM encoding.
func AU(format audio.Format, samples []int) []byte {
	var data bytes.Buffer
	encodeSamples(&data, samples, format.BitDepth, binary.BigEndian, false)

	buf := new(bytes.Buffer)
	buf.WriteString(".snd")
	binary.Write(buf, binary.BigEndian, uint32(24))
	binary.Write(buf, binary.BigEndian, uint32(data.Len()))
	binary.Write(buf, binary.BigEndian, uint32(format.BytesPerSample()+1))
	binary.Write(buf, binary.BigEndian, uint32(format.SampleRate))
	binary.Write(buf, binary.BigEndian, uint32(format.Channels))
	buf.Write(data.Bytes())

	return buf.Bytes()
}
