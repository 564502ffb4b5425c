package audio

import (
	"bytes"
	"encoding/binary"
)

// EncodeWAV wraps mono 16-bit PCM samples in a RIFF/WAVE container. Every
// network transcription and diarization backend ships chunks in this form.
func EncodeWAV(pcm []int16, sampleRate int) ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.WriteString("RIFF")

	// ChunkSize, patched once the full payload is known
	chunkSizePos := buf.Len()
	binary.Write(buf, binary.LittleEndian, uint32(0))

	buf.WriteString("WAVE")
	buf.WriteString("fmt ")

	// Subchunk1Size
	binary.Write(buf, binary.LittleEndian, uint32(16))

	// AudioFormat (PCM = 1)
	binary.Write(buf, binary.LittleEndian, uint16(1))

	// NumChannels
	binary.Write(buf, binary.LittleEndian, uint16(1))

	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))

	// ByteRate = sampleRate * channels * bytesPerSample
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*1*2))

	// BlockAlign
	binary.Write(buf, binary.LittleEndian, uint16(2))

	// BitsPerSample
	binary.Write(buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)*2))

	for _, sample := range pcm {
		binary.Write(buf, binary.LittleEndian, sample)
	}

	wavData := buf.Bytes()
	chunkSize := uint32(len(wavData) - 8)
	binary.LittleEndian.PutUint32(wavData[chunkSizePos:chunkSizePos+4], chunkSize)

	return wavData, nil
}
