package provenance

import (
	"encoding/binary"
	"hash/crc32"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func pngChunk(typ string, payload []byte) []byte {
	out := binary.BigEndian.AppendUint32(nil, uint32(len(payload)))
	out = append(out, typ...)
	out = append(out, payload...)
	crc := crc32.ChecksumIEEE(append([]byte(typ), payload...))
	return binary.BigEndian.AppendUint32(out, crc)
}

func buildPNG(chunks ...[]byte) []byte {
	out := append([]byte{}, pngSignature...)
	out = append(out, pngChunk("IHDR", make([]byte, 13))...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return append(out, pngChunk("IEND", nil)...)
}

// jpegSegment uses the declared length convention of the format: the two
// length bytes are included.
func jpegSegment(marker byte, payload []byte) []byte {
	out := []byte{0xFF, marker}
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)+2))
	return append(out, payload...)
}

func buildJPEG(segments ...[]byte) []byte {
	out := []byte{0xFF, 0xD8}
	out = append(out, jpegSegment(0xE0, []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"))...)
	for _, s := range segments {
		out = append(out, s...)
	}
	return append(out, 0xFF, 0xD9)
}
