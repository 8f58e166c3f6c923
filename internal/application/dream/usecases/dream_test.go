package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/services/markdown"
)

func TestCreateDreamUseCase(t *testing.T) {
	repo := newMockDreamRepository()
	uc := NewCreateDreamUseCase(repo, markdown.NewService(), logger.NewNopLogger())

	recorded := time.Date(2026, 10, 16, 7, 30, 0, 0, time.UTC)
	content := "I walked through a <b>library</b> where every book was blank and the shelves kept growing taller"

	result, err := uc.Execute(context.Background(), CreateDreamCommand{
		UserID:     "user-1",
		Content:    content,
		RecordedAt: &recorded,
		Mood:       "curious",
		Tags:       []string{"Library", "library", "books"},
	})
	require.NoError(t, err)

	assert.NotContains(t, result.Dream.Content, "<b>")
	assert.True(t, strings.HasSuffix(result.Dream.Title, "..."))
	assert.Equal(t, 16, result.Dream.WordCount)
	assert.True(t, recorded.Equal(result.Dream.RecordedAt))
	require.NotNil(t, result.Metadata)
	assert.Equal(t, []string{"library", "books"}, result.Metadata.Tags)
	assert.Len(t, repo.entries, 1)
}

func TestCreateDreamUseCase_Errors(t *testing.T) {
	tests := []struct {
		name         string
		cmd          CreateDreamCommand
		repoErr      error
		expectedCode int
	}{
		{"no user", CreateDreamCommand{Content: "a dream"}, nil, 401},
		{"only markup", CreateDreamCommand{UserID: "user-1", Content: "<script>x()</script>"}, nil, 400},
		{"too many tags", CreateDreamCommand{UserID: "user-1", Content: "a dream", Tags: manyTags(21)}, nil, 400},
		{"store failure", CreateDreamCommand{UserID: "user-1", Content: "a dream"}, errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockDreamRepository()
			repo.CreateErr = tt.repoErr
			uc := NewCreateDreamUseCase(repo, markdown.NewService(), logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.expectedCode, appErr.Code)
		})
	}
}

func TestListDreamsUseCase(t *testing.T) {
	repo := newMockDreamRepository()
	create := NewCreateDreamUseCase(repo, nil, logger.NewNopLogger())
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		_, err := create.Execute(context.Background(), CreateDreamCommand{UserID: "user-1", Content: "dream", RecordedAt: &at})
		require.NoError(t, err)
	}
	_, err := create.Execute(context.Background(), CreateDreamCommand{UserID: "user-2", Content: "other"})
	require.NoError(t, err)

	uc := NewListDreamsUseCase(repo, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), ListDreamsQuery{UserID: "user-1", Page: 1, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Total)
	require.Len(t, result.Dreams, 2)
	assert.True(t, result.Dreams[0].RecordedAt.After(result.Dreams[1].RecordedAt))
	for _, d := range result.Dreams {
		assert.Equal(t, "user-1", d.UserID)
	}
}

func TestGetDreamUseCase(t *testing.T) {
	repo := newMockDreamRepository()
	created, err := NewCreateDreamUseCase(repo, nil, logger.NewNopLogger()).Execute(context.Background(), CreateDreamCommand{
		UserID: "user-1", Content: "falling from a tower", Mood: "anxious",
	})
	require.NoError(t, err)

	analysis := insight.Analysis{Summary: "Falling.", EmotionalTone: "anxious", FullAnalysis: "# Falling\nLoss of *control*."}
	rec, err := insight.NewInsight(created.Dream.ID, "user-1", "gemini-test", analysis)
	require.NoError(t, err)

	insights := &mockInsightRepository{byDream: map[string][]*insight.Insight{created.Dream.ID: {rec}}}
	uc := NewGetDreamUseCase(repo, insights, markdown.NewService(), logger.NewNopLogger())

	detail, err := uc.Execute(context.Background(), "user-1", created.Dream.ID)
	require.NoError(t, err)
	assert.Equal(t, "anxious", detail.Metadata.Mood)
	require.Len(t, detail.Insights, 1)
	assert.Contains(t, detail.Insights[0].AnalysisHTML, "<em>control</em>")

	_, err = uc.Execute(context.Background(), "user-2", created.Dream.ID)
	require.Error(t, err)
	assert.Equal(t, 404, err.(*apperrors.AppError).Code)

	insights.ListErr = errors.New("db down")
	_, err = uc.Execute(context.Background(), "user-1", created.Dream.ID)
	require.Error(t, err)
	assert.Equal(t, 500, err.(*apperrors.AppError).Code)
}

func manyTags(n int) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = "tag" + strings.Repeat("x", i+1)
	}
	return tags
}
