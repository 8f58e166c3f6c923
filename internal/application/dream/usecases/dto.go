package usecases

import (
	"time"

	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
)

type DreamDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	RecordedAt time.Time `json:"recorded_at"`
	WordCount  int       `json:"word_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type MetadataDTO struct {
	Mood string   `json:"user_mood,omitempty"`
	Tags []string `json:"tags"`
}

func ToDreamDTO(e *dream.Entry) *DreamDTO {
	return &DreamDTO{
		ID:         e.ID(),
		UserID:     e.UserID(),
		Title:      e.Title(),
		Content:    e.Content(),
		RecordedAt: e.RecordedAt(),
		WordCount:  e.WordCount(),
		CreatedAt:  e.CreatedAt(),
	}
}

func toMetadataDTO(m *dream.Metadata) *MetadataDTO {
	if m == nil {
		return nil
	}
	tags := m.Tags()
	if tags == nil {
		tags = []string{}
	}
	return &MetadataDTO{Mood: m.Mood(), Tags: tags}
}
