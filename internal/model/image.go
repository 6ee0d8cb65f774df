package model

// PageImage is an image reference reported by the page scanner
type PageImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Alt    string `json:"alt,omitempty"`
}

// ImageResult is an analysis bound to the image URL it came from
type ImageResult struct {
	URL string `json:"url"`
	AnalysisResult
	Error string `json:"error,omitempty"`
}

// FailedResult is the error-shaped result for an image that could not be fetched
func FailedResult(url string, err error) ImageResult {
	return ImageResult{
		URL:            url,
		AnalysisResult: AnalysisResult{IsAIGenerated: AIUnknown},
		Error:          err.Error(),
	}
}

func (r ImageResult) Failed() bool {
	return r.Error != ""
}

// ScanSummary counts the results of one page scan
type ScanSummary struct {
	Total       int `json:"total"`
	Analyzed    int `json:"analyzed"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
	Provenance  int `json:"provenance"`
	AIGenerated int `json:"aiGenerated"`
	Authentic   int `json:"authentic"`
}

// ScanReport is the response to a page scan
type ScanReport struct {
	Results []ImageResult `json:"results"`
	Summary ScanSummary   `json:"summary"`
}

// ErrorResponse is the JSON body of a failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
