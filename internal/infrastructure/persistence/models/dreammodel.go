package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
)

type DreamEntryModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     string    `gorm:"not null;size:36;index:idx_dream_entries_user_recorded,priority:1"`
	Title      string    `gorm:"not null;size:255"`
	Content    string    `gorm:"not null;type:text"`
	RecordedAt time.Time `gorm:"not null;index:idx_dream_entries_user_recorded,priority:2,sort:desc"`
	WordCount  int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (DreamEntryModel) TableName() string {
	return constants.TableDreamEntries
}

type DreamMetadataModel struct {
	DreamID   string  `gorm:"primaryKey;size:36"`
	UserMood  *string `gorm:"size:100"`
	Tags      datatypes.JSONSlice[string]
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (DreamMetadataModel) TableName() string {
	return constants.TableDreamMetadata
}

// DreamInsightModel rows are insert-only.
type DreamInsightModel struct {
	ID                     string `gorm:"primaryKey;size:36"`
	DreamID                string `gorm:"not null;size:36;index:idx_dream_insights_dream"`
	UserID                 string `gorm:"not null;size:36;index:idx_dream_insights_user"`
	Summary                string `gorm:"type:text"`
	EmotionalTone          datatypes.JSONSlice[string]
	SymbolicInterpretation string    `gorm:"type:text"`
	AnalysisText           string    `gorm:"not null;type:text"`
	Model                  string    `gorm:"size:100"`
	GeneratedAt            time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DreamInsightModel) TableName() string {
	return constants.TableDreamInsights
}
