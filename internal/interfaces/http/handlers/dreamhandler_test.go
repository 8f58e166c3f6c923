package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamlog-app/dreamlog/internal/application/dream/usecases"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/handlers/testutil"
	"github.com/dreamlog-app/dreamlog/internal/shared/errors"
)

type mockCreateDreamUC struct {
	result *usecases.CreateDreamResult
	err    error
	got    usecases.CreateDreamCommand
}

func (m *mockCreateDreamUC) Execute(ctx context.Context, cmd usecases.CreateDreamCommand) (*usecases.CreateDreamResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListDreamsUC struct {
	result *usecases.ListDreamsResult
	err    error
	got    usecases.ListDreamsQuery
}

func (m *mockListDreamsUC) Execute(ctx context.Context, query usecases.ListDreamsQuery) (*usecases.ListDreamsResult, error) {
	m.got = query
	return m.result, m.err
}

type mockGetDreamUC struct {
	result  *usecases.DreamDetail
	err     error
	userID  string
	dreamID string
}

func (m *mockGetDreamUC) Execute(ctx context.Context, userID, dreamID string) (*usecases.DreamDetail, error) {
	m.userID = userID
	m.dreamID = dreamID
	return m.result, m.err
}

func TestDreamHandler_CreateDream(t *testing.T) {
	create := &mockCreateDreamUC{result: &usecases.CreateDreamResult{
		Dream: &usecases.DreamDTO{ID: "dream-1", UserID: "user-1", Content: "Lost in a library", WordCount: 4},
	}}
	h := NewDreamHandler(create, &mockListDreamsUC{}, &mockGetDreamUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/dreams", map[string]interface{}{
		"title":     "Library",
		"content":   "Lost in a library",
		"user_mood": "curious",
		"tags":      []string{"books"},
	})
	testutil.SetAuthContext(c, "user-1", "")

	h.CreateDream(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", create.got.UserID)
	assert.Equal(t, "Library", create.got.Title)
	assert.Equal(t, "curious", create.got.Mood)
	assert.Equal(t, []string{"books"}, create.got.Tags)
}

func TestDreamHandler_CreateDream_MissingContent(t *testing.T) {
	h := NewDreamHandler(&mockCreateDreamUC{}, &mockListDreamsUC{}, &mockGetDreamUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/dreams", map[string]string{"title": "Empty"})
	testutil.SetAuthContext(c, "user-1", "")

	h.CreateDream(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDreamHandler_ListDreams(t *testing.T) {
	list := &mockListDreamsUC{result: &usecases.ListDreamsResult{
		Dreams:   []*usecases.DreamDTO{{ID: "dream-2"}, {ID: "dream-1"}},
		Total:    12,
		Page:     2,
		PageSize: 10,
	}}
	h := NewDreamHandler(&mockCreateDreamUC{}, list, &mockGetDreamUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/dreams", nil)
	testutil.SetAuthContext(c, "user-1", "")
	testutil.SetQueryParams(c, map[string]string{"page": "2", "page_size": "10"})

	h.ListDreams(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecases.ListDreamsQuery{UserID: "user-1", Page: 2, PageSize: 10}, list.got)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data struct {
		Items      []usecases.DreamDTO `json:"items"`
		Total      int64               `json:"total"`
		TotalPages int                 `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.Items, 2)
	assert.Equal(t, int64(12), data.Total)
	assert.Equal(t, 2, data.TotalPages)
}

func TestDreamHandler_GetDream(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		get := &mockGetDreamUC{result: &usecases.DreamDetail{Dream: &usecases.DreamDTO{ID: "dream-1"}}}
		h := NewDreamHandler(&mockCreateDreamUC{}, &mockListDreamsUC{}, get, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/dreams/dream-1", nil)
		testutil.SetAuthContext(c, "user-1", "")
		testutil.SetURLParam(c, "id", "dream-1")

		h.GetDream(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", get.userID)
		assert.Equal(t, "dream-1", get.dreamID)
	})

	t.Run("not found", func(t *testing.T) {
		get := &mockGetDreamUC{err: errors.NewNotFoundError("Dream not found")}
		h := NewDreamHandler(&mockCreateDreamUC{}, &mockListDreamsUC{}, get, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/dreams/missing", nil)
		testutil.SetAuthContext(c, "user-1", "")
		testutil.SetURLParam(c, "id", "missing")

		h.GetDream(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDreamHandler_RequiresAuth(t *testing.T) {
	h := NewDreamHandler(&mockCreateDreamUC{}, &mockListDreamsUC{}, &mockGetDreamUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/dreams", nil)
	h.ListDreams(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
