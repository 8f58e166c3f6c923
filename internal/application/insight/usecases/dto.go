package usecases

import (
	"time"

	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
	"github.com/dreamlog-app/dreamlog/internal/shared/services/markdown"
)

// InsightDTO is the client view of a stored insight.
type InsightDTO struct {
	ID                     string    `json:"id"`
	DreamID                string    `json:"dream_id"`
	Summary                string    `json:"summary"`
	EmotionalTone          []string  `json:"emotional_tone"`
	SymbolicInterpretation string    `json:"symbolic_interpretation"`
	AnalysisText           string    `json:"analysis_text"`
	AnalysisHTML           string    `json:"analysis_html,omitempty"`
	Model                  string    `json:"model,omitempty"`
	GeneratedAt            time.Time `json:"generated_at"`
}

// ToInsightDTO converts an insight, rendering the analysis when a renderer is given.
// A rendering failure leaves AnalysisHTML empty; the raw text is always present.
func ToInsightDTO(i *insight.Insight, renderer markdown.Service) *InsightDTO {
	dto := &InsightDTO{
		ID:                     i.ID(),
		DreamID:                i.DreamID(),
		Summary:                i.Summary(),
		EmotionalTone:          i.EmotionalTones(),
		SymbolicInterpretation: i.SymbolicInterpretation(),
		AnalysisText:           i.AnalysisText(),
		Model:                  i.Model(),
		GeneratedAt:            i.GeneratedAt(),
	}
	if dto.EmotionalTone == nil {
		dto.EmotionalTone = []string{}
	}
	if renderer != nil {
		if rendered, err := renderer.Render(i.AnalysisText()); err == nil {
			dto.AnalysisHTML = rendered
		}
	}
	return dto
}
