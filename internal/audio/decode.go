package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Provider speech is headerless PCM16 little-endian mono at 24 kHz.
const (
	SampleRate     = 24000
	Channels       = 1
	BytesPerSample = 2
)

// DecodeError reports a malformed audio payload.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio decode: %s: %v", e.Reason, e.Err)
	}
	return "audio decode: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Buffer holds decoded samples normalized to [-1, 1).
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Duration is the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 || b.Channels <= 0 {
		return 0
	}
	frames := len(b.Samples) / b.Channels
	return time.Duration(frames) * time.Second / time.Duration(b.SampleRate)
}

// PCM16 converts the normalized samples back to signed 16-bit integers.
func (b *Buffer) PCM16() []int16 {
	if b == nil {
		return nil
	}
	out := make([]int16, len(b.Samples))
	for i, s := range b.Samples {
		v := s * 32768
		switch {
		case v > 32767:
			v = 32767
		case v < -32768:
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}

// Decode turns a base64 PCM16 payload into a playable Buffer.
func Decode(payload string) (*Buffer, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, &DecodeError{Reason: "empty payload"}
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Reason: "invalid base64", Err: err}
	}
	return DecodePCM16(raw)
}

// DecodePCM16 normalizes raw little-endian PCM16 bytes.
func DecodePCM16(raw []byte) (*Buffer, error) {
	if len(raw) == 0 {
		return nil, &DecodeError{Reason: "no audio data"}
	}
	if len(raw)%BytesPerSample != 0 {
		return nil, &DecodeError{Reason: fmt.Sprintf("odd byte count %d for 16-bit samples", len(raw))}
	}
	samples := make([]float32, len(raw)/BytesPerSample)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[i*BytesPerSample:]))
		samples[i] = float32(v) / 32768.0
	}
	return &Buffer{Samples: samples, SampleRate: SampleRate, Channels: Channels}, nil
}
