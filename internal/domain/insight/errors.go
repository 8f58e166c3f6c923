package insight

import "errors"

var (
	ErrInvalidDreamID = errors.New("dream ID is required")

	// ErrIncompleteAnalysis is returned for model output lacking a summary or full analysis
	ErrIncompleteAnalysis = errors.New("analysis is missing required fields")
)
