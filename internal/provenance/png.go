package provenance

import "encoding/binary"

const (
	pngSignatureLen = 8
	// length + type + CRC
	pngChunkOverhead = 12

	chunkTypeJUMBF = "caBX"
)

var textChunkTypes = map[string]bool{
	"tEXt": true,
	"zTXt": true,
	"iTXt": true,
}

// Chunk is a PNG chunk. Payload aliases the scanned buffer and is nil when
// the declared length runs past the end of the buffer.
type Chunk struct {
	Offset    int
	Type      string
	Length    uint32
	Payload   []byte
	Truncated bool
}

// walkPNG calls fn for every chunk after the PNG signature until fn returns
// false. A chunk whose declared length does not fit in data is passed with
// Truncated set and ends the walk.
func walkPNG(data []byte, fn func(Chunk) bool) {
	offset := pngSignatureLen
	for offset+8 < len(data) {
		length := binary.BigEndian.Uint32(data[offset : offset+4])
		chunk := Chunk{
			Offset: offset,
			Type:   string(data[offset+4 : offset+8]),
			Length: length,
		}
		next := int64(offset) + pngChunkOverhead + int64(length)
		if next > int64(len(data)) {
			chunk.Truncated = true
			fn(chunk)
			return
		}
		chunk.Payload = data[offset+8 : offset+8+int(length)]
		if !fn(chunk) {
			return
		}
		offset = int(next)
	}
}
