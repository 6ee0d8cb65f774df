// Package provenance detects embedded content-provenance manifests in JPEG
// and PNG buffers and, when one is present, looks for signs of generative-AI
// origin and creator attribution.
//
// Detection is heuristic: manifests are recognized by marker tokens and
// chunk types, never parsed or verified. Every function is a pure function
// of its input buffer and tolerates truncated or malformed data.
package provenance

import (
	"log/slog"

	"github.com/BrunoKrugel/c2pafinder/internal/model"
)

// Analyzer runs provenance analysis and reports diagnostics to its logger.
// It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	log *slog.Logger
}

// NewAnalyzer returns an Analyzer logging to logger. A nil logger discards
// diagnostics.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{log: logger}
}

var defaultAnalyzer = NewAnalyzer(nil)

// Analyze runs the full analysis of data without diagnostics.
func Analyze(data []byte) model.AnalysisResult {
	return defaultAnalyzer.Analyze(data)
}

// HasProvenanceMarker reports whether data, read as format, carries a
// provenance marker.
func HasProvenanceMarker(data []byte, format Format) bool {
	return defaultAnalyzer.HasProvenanceMarker(data, format)
}

// IsLikelyAIGenerated reports whether data mentions a known generative-AI
// indicator anywhere. It does not check for provenance first; Analyze only
// calls it for images that carry a provenance marker.
func IsLikelyAIGenerated(data []byte) bool {
	return MatchAIIndicator(decodeText(data))
}

// Analyze sniffs the format of data, looks for a provenance marker and, when
// one is found, checks the whole buffer for AI indicators and attribution.
// Images without a marker are reported as not AI generated.
func (a *Analyzer) Analyze(data []byte) model.AnalysisResult {
	format := DetectFormat(data)
	result := model.AnalysisResult{IsAIGenerated: model.AINo}

	result.HasProvenance = a.HasProvenanceMarker(data, format)
	if !result.HasProvenance {
		return result
	}

	text := decodeText(data)
	result.IsAIGenerated = model.AIStatusOf(MatchAIIndicator(text))
	meta := extractAttribution(text)
	result.Metadata = &meta

	a.log.Debug("provenance found",
		"format", format,
		"size", len(data),
		"ai", result.IsAIGenerated,
		"software", meta.Software,
		"creator", meta.Creator)
	return result
}

// HasProvenanceMarker reports whether data, read as format, carries a
// provenance marker. Unknown formats never do.
func (a *Analyzer) HasProvenanceMarker(data []byte, format Format) bool {
	switch format {
	case FormatJPEG:
		return a.scanJPEG(data)
	case FormatPNG:
		return a.scanPNG(data)
	default:
		return false
	}
}

func (a *Analyzer) scanJPEG(data []byte) bool {
	found := false
	walkJPEG(data, func(seg Segment) bool {
		if seg.Truncated {
			a.log.Debug("jpeg segment clamped to buffer",
				"offset", seg.Offset, "marker", seg.Marker, "declared", seg.Length)
		}
		ctx := segmentContexts[seg.Marker]
		token, ok := matchProvenanceToken(decodeText(seg.Payload), ctx)
		if !ok {
			return true
		}
		a.log.Debug("jpeg provenance marker",
			"offset", seg.Offset, "context", ctx, "token", token)
		found = true
		return false
	})
	return found
}

func (a *Analyzer) scanPNG(data []byte) bool {
	found := false
	walkPNG(data, func(chunk Chunk) bool {
		if chunk.Type == chunkTypeJUMBF {
			a.log.Debug("png jumbf chunk", "offset", chunk.Offset)
			found = true
			return false
		}
		if chunk.Truncated {
			a.log.Debug("png chunk runs past end of buffer",
				"offset", chunk.Offset, "type", chunk.Type, "declared", chunk.Length)
			return false
		}
		if !textChunkTypes[chunk.Type] {
			return true
		}
		token, ok := matchProvenanceToken(decodeText(chunk.Payload), ContextPNGText)
		if !ok {
			return true
		}
		a.log.Debug("png provenance marker",
			"offset", chunk.Offset, "type", chunk.Type, "token", token)
		found = true
		return false
	})
	return found
}
