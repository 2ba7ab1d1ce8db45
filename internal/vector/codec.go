package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

const float32Size = 4

// Encode packs a vector as little-endian float32 bytes for BLOB storage.
func Encode(s []float32) []byte {
	out := make([]byte, len(s)*float32Size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*float32Size:(i+1)*float32Size], math.Float32bits(v))
	}
	return out
}

// Decode unpacks bytes written by Encode. An empty input decodes to nil.
func Decode(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%float32Size != 0 {
		return nil, fmt.Errorf("invalid vector blob length %d", len(b))
	}
	out := make([]float32, len(b)/float32Size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*float32Size : (i+1)*float32Size]))
	}
	return out, nil
}
