package provenance

// Format is the container format of an image buffer
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatPNG:
		return "PNG"
	default:
		return "Unknown"
	}
}

var pngMagic = [4]byte{0x89, 'P', 'N', 'G'}

// DetectFormat classifies data from its magic bytes. Buffers too short to
// carry a signature are Unknown.
func DetectFormat(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}
	// SOI marker: FF D8
	if data[0] == 0xFF && data[1] == 0xD8 {
		return FormatJPEG
	}
	if [4]byte(data[:4]) == pngMagic {
		return FormatPNG
	}
	return FormatUnknown
}
