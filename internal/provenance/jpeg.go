package provenance

import "encoding/binary"

const (
	markerAPP1  = 0xE1 // XMP, Exif
	markerAPP11 = 0xEB // JUMBF boxes
)

var segmentContexts = map[byte]Context{
	markerAPP11: ContextJUMBF,
	markerAPP1:  ContextXMP,
}

// Segment is a JPEG marker segment. Payload aliases the scanned buffer.
type Segment struct {
	Offset    int
	Marker    byte
	Length    uint16
	Payload   []byte
	Truncated bool
}

// walkJPEG calls fn for every APP1 and APP11 marker found in data, in offset
// order, until fn returns false. Every 0xFF byte is treated as a potential
// marker, so segments are found even inside entropy-coded data.
//
// The payload starts right after the length field and spans the full
// declared length. The declared length counts the two length bytes too, so
// the slice runs up to two bytes past the real payload end; it is clamped to
// the buffer and flagged Truncated when the declared length does not fit.
func walkJPEG(data []byte, fn func(Segment) bool) {
	for i := 0; i+1 < len(data); i++ {
		if data[i] != 0xFF {
			continue
		}
		marker := data[i+1]
		if _, ok := segmentContexts[marker]; !ok {
			continue
		}
		if i+4 > len(data) {
			// No room for a length field.
			return
		}
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		start := i + 4
		end := start + segLen
		truncated := end > len(data)
		if truncated {
			end = len(data)
		}
		seg := Segment{
			Offset:    i,
			Marker:    marker,
			Length:    uint16(segLen),
			Payload:   data[start:end],
			Truncated: truncated,
		}
		if !fn(seg) {
			return
		}
	}
}
