// Package encoder compresses raw PCM for upload to transcription APIs.
package encoder

const (
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 4096
)

type Encoder interface {
	EncodeBlock(block []int16) error
	Close() error
	Bytes() []byte
	TotalFrames() uint64
}

// EncodeSamples drives an encoder over a float32 buffer in BlockSize
// blocks, clipping to the int16 range, and returns the encoded bytes.
func EncodeSamples(enc Encoder, samples []float32) ([]byte, error) {
	block := make([]int16, 0, BlockSize)
	for i := 0; i < len(samples); i += BlockSize {
		end := min(i+BlockSize, len(samples))
		block = block[:0]
		for _, s := range samples[i:end] {
			v := s * 32767
			if v > 32767 {
				v = 32767
			} else if v < -32768 {
				v = -32768
			}
			block = append(block, int16(v))
		}
		if err := enc.EncodeBlock(block); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}
