package insight

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Analysis is the structured output of the generative model for one dream.
type Analysis struct {
	Summary                string `json:"summary"`
	EmotionalTone          string `json:"emotionalTone"`
	SymbolicInterpretation string `json:"symbolicInterpretation"`
	FullAnalysis           string `json:"fullAnalysis"`
}

// Validate rejects model output that is missing the parts every insight needs.
func (a Analysis) Validate() error {
	if strings.TrimSpace(a.Summary) == "" || strings.TrimSpace(a.FullAnalysis) == "" {
		return ErrIncompleteAnalysis
	}
	return nil
}

// Insight is an immutable record of one generated analysis. There is no update path.
type Insight struct {
	id                     string
	dreamID                string
	userID                 string
	summary                string
	emotionalTones         []string
	symbolicInterpretation string
	analysisText           string
	model                  string
	generatedAt            time.Time
}

// NewInsight builds an insight from a validated analysis.
func NewInsight(dreamID, userID, model string, a Analysis) (*Insight, error) {
	if dreamID == "" {
		return nil, ErrInvalidDreamID
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Insight{
		id:                     uuid.NewString(),
		dreamID:                dreamID,
		userID:                 userID,
		summary:                strings.TrimSpace(a.Summary),
		emotionalTones:         SplitTones(a.EmotionalTone),
		symbolicInterpretation: strings.TrimSpace(a.SymbolicInterpretation),
		analysisText:           strings.TrimSpace(a.FullAnalysis),
		model:                  model,
		generatedAt:            time.Now().UTC(),
	}, nil
}

// ReconstructInsight reconstructs an insight from persistence
func ReconstructInsight(
	id, dreamID, userID, summary string,
	emotionalTones []string,
	symbolicInterpretation, analysisText, model string,
	generatedAt time.Time,
) *Insight {
	return &Insight{
		id:                     id,
		dreamID:                dreamID,
		userID:                 userID,
		summary:                summary,
		emotionalTones:         emotionalTones,
		symbolicInterpretation: symbolicInterpretation,
		analysisText:           analysisText,
		model:                  model,
		generatedAt:            generatedAt,
	}
}

func (i *Insight) ID() string                     { return i.id }
func (i *Insight) DreamID() string                { return i.dreamID }
func (i *Insight) UserID() string                 { return i.userID }
func (i *Insight) Summary() string                { return i.summary }
func (i *Insight) EmotionalTones() []string       { return i.emotionalTones }
func (i *Insight) SymbolicInterpretation() string { return i.symbolicInterpretation }
func (i *Insight) AnalysisText() string           { return i.analysisText }
func (i *Insight) Model() string                  { return i.model }
func (i *Insight) GeneratedAt() time.Time         { return i.generatedAt }

// SplitTones turns "wistful, anxious and hopeful" style model output into a tone list.
func SplitTones(tone string) []string {
	fields := strings.FieldsFunc(tone, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.TrimPrefix(f, "and ")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
