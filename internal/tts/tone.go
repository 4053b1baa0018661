package tts

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	toneSampleRate = 44100
	toneFrequency  = 440.0
	toneDuration   = 1.0 // seconds
	toneFade       = 0.1 // seconds of linear fade at each end
)

// FallbackTone generates a one-second 440 Hz sine as a mono 16-bit WAV. The
// output is deterministic: same bytes on every call.
func FallbackTone() []byte {
	n := int(toneSampleRate * toneDuration)
	fadeSamples := int(toneFade * toneSampleRate)

	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / toneSampleRate
		v := math.Sin(2*math.Pi*toneFrequency*t) * 0.5
		if i < fadeSamples {
			v *= float64(i) / float64(fadeSamples)
		} else if i >= n-fadeSamples {
			v *= float64(n-1-i) / float64(fadeSamples)
		}
		samples[i] = int16(v * 32767)
	}
	return wavEncode(samples, toneSampleRate)
}

// wavEncode wraps 16-bit mono PCM samples in a RIFF/WAVE container.
func wavEncode(samples []int16, sampleRate int) []byte {
	dataLen := len(samples) * 2
	var buf bytes.Buffer

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))            // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))           // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
