package provenance

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/BrunoKrugel/c2pafinder/internal/model"
)

// attributionRule extracts one field value. Rules without a capture group
// use the whole match.
type attributionRule struct {
	pattern *regexp.Regexp
}

func (r attributionRule) find(text string) (string, bool) {
	m := r.pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) > 1 && m[1] != "" {
		return m[1], true
	}
	return m[0], true
}

func rules(patterns ...string) []attributionRule {
	out := make([]attributionRule, len(patterns))
	for i, p := range patterns {
		out[i] = attributionRule{pattern: regexp.MustCompile(p)}
	}
	return out
}

var softwareRules = rules(
	// CBOR text without quotes around the value
	`(?i)Claim_Generator_InfoName['":\s]*([A-Za-z0-9\s\-.]+?)(?:["',\n]|$)`,
	`(?i)ActionsSoftwareAgentName['":\s]*([A-Za-z0-9\s\-.]+?)(?:["',\n]|$)`,

	// JSON
	`(?i)"Claim_Generator_InfoName"[:\s]*"([^"]+)"`,
	`(?i)"claim_generator"[:\s]*"([^"]+)"`,
	`(?i)claim_generator_info[:\s]*\{[^}]*"name"[:\s]*"([^"]+)"`,
	`(?i)"softwareAgent"[:\s]*"([^"]+)"`,

	// bare product names
	`(?i)ChatGPT`,
	`(?i)GPT-4o`,
	`(?i)DALL-E`,
	`(?i)Midjourney`,
	`(?i)Stable Diffusion`,
)

var creatorRules = rules(
	`(?i)"creator"[:\s]*"([^"]+)"`,
	`(?i)"author"[:\s]*"([^"]+)"`,
	`(?i)"dc:creator"[:\s]*"([^"]+)"`,
)

var softwareCharset = regexp.MustCompile(`^[A-Za-z0-9\s\-.]+$`)

func validSoftware(v string) bool {
	return utf8.RuneCountInString(v) >= 3 &&
		!strings.ContainsRune(v, 0) &&
		softwareCharset.MatchString(v)
}

func validCreator(v string) bool {
	return utf8.RuneCountInString(v) >= 2 && !strings.ContainsRune(v, 0)
}

// firstValid returns the trimmed value of the first rule that matches text.
// Later rules are only tried when an earlier one does not match or its
// value fails validation.
func firstValid(text string, rs []attributionRule, valid func(string) bool) string {
	for _, r := range rs {
		v, ok := r.find(text)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if valid(v) {
			return v
		}
	}
	return ""
}

// ExtractAttribution pulls creator and software attribution out of data.
// Fields that are not found are left empty.
func ExtractAttribution(data []byte) model.Metadata {
	return extractAttribution(decodeText(data))
}

func extractAttribution(text string) model.Metadata {
	return model.Metadata{
		Creator:  firstValid(text, creatorRules, validCreator),
		Software: firstValid(text, softwareRules, validSoftware),
	}
}
