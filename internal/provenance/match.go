package provenance

import "strings"

// Context selects the marker token set a decoded payload is checked against.
type Context int

const (
	ContextJUMBF   Context = iota // JPEG APP11 (0xEB)
	ContextXMP                    // JPEG APP1 (0xE1)
	ContextPNGText                // PNG tEXt, zTXt, iTXt
)

func (c Context) String() string {
	switch c {
	case ContextJUMBF:
		return "jpeg-app11"
	case ContextXMP:
		return "jpeg-app1"
	case ContextPNGText:
		return "png-text"
	default:
		return "unknown"
	}
}

// Tokens are matched case-sensitively, exactly as listed. Upper and lower
// case spellings are separate entries where both count.
var provenanceTokens = map[Context][]string{
	ContextJUMBF:   {"c2pa", "C2PA", "contentauth", "cai"},
	ContextXMP:     {"c2pa", "provenance"},
	ContextPNGText: {"c2pa", "C2PA", "contentauth", "cai"},
}

// MatchProvenance reports whether text carries a provenance marker token
// for the given context.
func MatchProvenance(text string, ctx Context) bool {
	_, ok := matchProvenanceToken(text, ctx)
	return ok
}

func matchProvenanceToken(text string, ctx Context) (string, bool) {
	for _, token := range provenanceTokens[ctx] {
		if strings.Contains(text, token) {
			return token, true
		}
	}
	return "", false
}

var aiIndicators = lowerAll([]string{
	// IPTC digital source types
	"trainedAlgorithmicMedia",
	"algorithmicMedia",
	"compositeSynthetic",

	// generator products
	"ChatGPT",
	"GPT-4",
	"GPT-3",
	"DALL-E",
	"DALL·E",
	"Midjourney",
	"Stable Diffusion",
	"StableDiffusion",
	"Adobe Firefly",
	"Firefly",
	"Google Imagen",
	"Imagen",

	"generativeAi",
	"ai-generated",
	"synthetic",
})

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// MatchAIIndicator reports whether text mentions a known generative-AI
// source type or product. The comparison is case-insensitive.
func MatchAIIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range aiIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
