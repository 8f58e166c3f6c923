package mappers

import (
	"gorm.io/datatypes"

	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
)

func DreamEntryToModel(e *dream.Entry) *models.DreamEntryModel {
	return &models.DreamEntryModel{
		ID:         e.ID(),
		UserID:     e.UserID(),
		Title:      e.Title(),
		Content:    e.Content(),
		RecordedAt: e.RecordedAt(),
		WordCount:  e.WordCount(),
		CreatedAt:  e.CreatedAt(),
	}
}

func DreamEntryToDomain(model *models.DreamEntryModel) *dream.Entry {
	return dream.ReconstructEntry(
		model.ID,
		model.UserID,
		model.Title,
		model.Content,
		model.RecordedAt,
		model.WordCount,
		model.CreatedAt,
	)
}

func DreamMetadataToModel(m *dream.Metadata) *models.DreamMetadataModel {
	return &models.DreamMetadataModel{
		DreamID:   m.DreamID(),
		UserMood:  nullableString(m.Mood()),
		Tags:      datatypes.NewJSONSlice(m.Tags()),
		UpdatedAt: m.UpdatedAt(),
	}
}

func DreamMetadataToDomain(model *models.DreamMetadataModel) *dream.Metadata {
	return dream.ReconstructMetadata(
		model.DreamID,
		derefString(model.UserMood),
		[]string(model.Tags),
		model.UpdatedAt,
	)
}

func InsightToModel(i *insight.Insight) *models.DreamInsightModel {
	return &models.DreamInsightModel{
		ID:                     i.ID(),
		DreamID:                i.DreamID(),
		UserID:                 i.UserID(),
		Summary:                i.Summary(),
		EmotionalTone:          datatypes.NewJSONSlice(i.EmotionalTones()),
		SymbolicInterpretation: i.SymbolicInterpretation(),
		AnalysisText:           i.AnalysisText(),
		Model:                  i.Model(),
		GeneratedAt:            i.GeneratedAt(),
	}
}

func InsightToDomain(model *models.DreamInsightModel) *insight.Insight {
	return insight.ReconstructInsight(
		model.ID,
		model.DreamID,
		model.UserID,
		model.Summary,
		[]string(model.EmotionalTone),
		model.SymbolicInterpretation,
		model.AnalysisText,
		model.Model,
		model.GeneratedAt,
	)
}
