package model

import "encoding/json"

// AIStatus is the tri-state AI verdict of an analysis
type AIStatus int8

const (
	AIUnknown AIStatus = iota
	AINo
	AIYes
)

func AIStatusOf(generated bool) AIStatus {
	if generated {
		return AIYes
	}
	return AINo
}

func (s AIStatus) Known() bool {
	return s != AIUnknown
}

func (s AIStatus) String() string {
	switch s {
	case AIYes:
		return "true"
	case AINo:
		return "false"
	default:
		return "null"
	}
}

func (s AIStatus) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AIStatus) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch {
	case v == nil:
		*s = AIUnknown
	case *v:
		*s = AIYes
	default:
		*s = AINo
	}
	return nil
}

// Metadata holds attribution fields extracted from provenance text.
// An empty field was not found.
type Metadata struct {
	Creator  string `json:"creator,omitempty"`
	Software string `json:"software,omitempty"`
}

func (m Metadata) IsZero() bool {
	return m.Creator == "" && m.Software == ""
}

// AnalysisResult is the outcome of analyzing one image buffer
type AnalysisResult struct {
	HasProvenance bool     `json:"hasC2PA"`
	IsAIGenerated AIStatus `json:"isAIGenerated"`
	// Confidence stays nil: it needs full manifest parsing.
	Confidence *float64  `json:"confidence"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// Status is the badge a result is presented with
type Status string

const (
	StatusUnknown      Status = "unknown"
	StatusAIGenerated  Status = "ai-generated"
	StatusAuthentic    Status = "authentic"
	StatusNoProvenance Status = "no-provenance"
)

func (r AnalysisResult) Status() Status {
	switch {
	case !r.IsAIGenerated.Known():
		return StatusUnknown
	case r.IsAIGenerated == AIYes:
		return StatusAIGenerated
	case r.HasProvenance:
		return StatusAuthentic
	default:
		return StatusNoProvenance
	}
}
