package analyzer

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
)

// Request is the dream text plus optional hints passed to the model.
type Request struct {
	DreamText string
	Mood      string
	Tags      []string
}

// Analyzer is the generative-text service that interprets a dream.
// Implementations must honour ctx cancellation; a timeout is treated like any other failure.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*insight.Analysis, error)
	// Model names the model version stored with each insight
	Model() string
}
