package scan

import (
	"fmt"

	"github.com/BrunoKrugel/c2pafinder/internal/model"
)

// Filter selects results by verdict
type Filter string

const (
	FilterAll       Filter = "all"
	FilterAI        Filter = "ai"
	FilterAuthentic Filter = "authentic"
)

func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterAI, FilterAuthentic:
		return Filter(s), nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

func (f Filter) Match(r model.ImageResult) bool {
	switch f {
	case FilterAI:
		return r.IsAIGenerated == model.AIYes
	case FilterAuthentic:
		return r.HasProvenance && r.IsAIGenerated != model.AIYes
	default:
		return true
	}
}

func FilterResults(results []model.ImageResult, f Filter) []model.ImageResult {
	if f == FilterAll || f == "" {
		return results
	}
	out := make([]model.ImageResult, 0, len(results))
	for _, r := range results {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
