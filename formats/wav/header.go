// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// HeaderSize is the size of the canonical RIFF/WAVE header.
const HeaderSize = 44

const formatPCM = 1

// Header is the canonical 44-byte PCM WAV header: a RIFF chunk holding a
// 16-byte fmt chunk followed directly by the data chunk.
type Header struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// NewPCM16Header describes frames frames of 16-bit PCM.
func NewPCM16Header(sampleRate, channels, frames int) (Header, error) {
	if channels <= 0 || channels > math.MaxUint16/2 {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedChannelCount, channels)
	}

	blockAlign := uint64(channels) * 2
	dataSize := uint64(frames) * blockAlign
	if dataSize > math.MaxUint32-36 {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrDataTooLarge, dataSize)
	}

	return Header{
		AudioFormat:   formatPCM,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: 16,
		DataSize:      uint32(dataSize),
	}, nil
}

// RIFFSize is the value of the RIFF chunk size field.
func (h Header) RIFFSize() uint32 {
	return 36 + h.DataSize
}

// Frames returns the number of frames in the data chunk.
func (h Header) Frames() int {
	if h.BlockAlign == 0 {
		return 0
	}
	return int(h.DataSize / uint32(h.BlockAlign))
}

// MarshalBinary encodes the header in its 44-byte wire form.
func (h Header) MarshalBinary() ([]byte, error) {
	header := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], h.RIFFSize())
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], h.AudioFormat)
	binary.LittleEndian.PutUint16(header[22:24], h.Channels)
	binary.LittleEndian.PutUint32(header[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(header[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(header[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(header[34:36], h.BitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], h.DataSize)

	return header, nil
}

// ParseHeader decodes a canonical 44-byte header. Files with extra chunks
// between fmt and data are valid WAV but not canonical; use Decoder for them.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d header bytes", ErrNotWavFile, len(data))
	}

	if !bytes.HasPrefix(data[:4], []byte("RIFF")) || !bytes.HasPrefix(data[8:12], []byte("WAVE")) {
		return Header{}, ErrNotWavFile
	}
	if !bytes.HasPrefix(data[12:16], []byte("fmt ")) || binary.LittleEndian.Uint32(data[16:20]) != 16 {
		return Header{}, ErrUnsupportedWavLayout
	}
	if !bytes.HasPrefix(data[36:40], []byte("data")) {
		return Header{}, ErrUnsupportedWavChunks
	}

	return Header{
		AudioFormat:   binary.LittleEndian.Uint16(data[20:22]),
		Channels:      binary.LittleEndian.Uint16(data[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(data[24:28]),
		ByteRate:      binary.LittleEndian.Uint32(data[28:32]),
		BlockAlign:    binary.LittleEndian.Uint16(data[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(data[34:36]),
		DataSize:      binary.LittleEndian.Uint32(data[40:44]),
	}, nil
}
