package provenance

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// decodeText decodes b as UTF-8, replacing invalid sequences with U+FFFD
// and dropping a leading byte order mark. It never fails.
func decodeText(b []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
