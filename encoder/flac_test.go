package encoder

import (
	"bytes"
	"math"
	"testing"

	"github.com/mewkiz/flac"
)

const testRate = 16000

func sineSamples(n int, freq float64) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/testRate))
	}
	return samples
}

func TestEncodeSamples(t *testing.T) {
	samples := sineSamples(BlockSize+BlockSize/2, 440)

	enc, err := NewFlac(testRate)
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	data, err := EncodeSamples(enc, samples)
	if err != nil {
		t.Fatalf("EncodeSamples: %v", err)
	}

	if len(data) < 4 || string(data[:4]) != "fLaC" {
		t.Fatal("output does not start with FLAC magic")
	}
	if enc.TotalFrames() != uint64(len(samples)) {
		t.Errorf("TotalFrames = %d, want %d", enc.TotalFrames(), len(samples))
	}
}

func TestNewFlacCarriesSampleRate(t *testing.T) {
	enc, err := NewFlac(48000)
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	data, err := EncodeSamples(enc, sineSamples(BlockSize, 440))
	if err != nil {
		t.Fatalf("EncodeSamples: %v", err)
	}

	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parsing encoded stream: %v", err)
	}
	if stream.Info.SampleRate != 48000 {
		t.Errorf("stream sample rate = %d, want 48000", stream.Info.SampleRate)
	}
}

func TestEncodeSamplesClips(t *testing.T) {
	samples := []float32{2.0, -2.0, 0.0}
	enc, err := NewFlac(testRate)
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	if _, err := EncodeSamples(enc, samples); err != nil {
		t.Fatalf("EncodeSamples with out-of-range input: %v", err)
	}
}

func TestEncodeSamplesEmpty(t *testing.T) {
	enc, err := NewFlac(testRate)
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	data, err := EncodeSamples(enc, nil)
	if err != nil {
		t.Fatalf("EncodeSamples(nil): %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "fLaC" {
		t.Error("empty encode should still produce a FLAC header")
	}
}
