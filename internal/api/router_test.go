package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/llm"
	"github.com/okanevale/temperament/internal/personality"
	"github.com/okanevale/temperament/internal/service"
	"github.com/okanevale/temperament/internal/store"
)

func newTestApp(t *testing.T) (*App, *llm.MockClient) {
	t.Helper()

	logger := zap.NewNop()
	fileStore, err := store.NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)

	p := personality.DefaultTemplate()
	engine := service.NewPersonalityEngine(context.Background(), p, fileStore, fileStore, logger)

	client := llm.NewMockClient()
	decision := service.NewDecisionService(engine, client, logger)

	return NewApp(engine, decision, logger), client
}

func doJSON(t *testing.T, app *App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "uptime_seconds")
	assert.Contains(t, body, "request_count")
}

func TestRouter_ProcessContent(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/content", map[string]any{
		"content": []map[string]string{
			{"id": "1", "source": "alice", "text": "an amazing take on ai"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["processed"])

	emotion := body["emotion"].(map[string]any)
	assert.Equal(t, "excited", emotion["name"])
}

func TestRouter_ProcessContentRejectsEmpty(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/content", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RecordAction(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/actions", map[string]any{
		"action": map[string]string{"type": "post", "content": "hello world"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, app, http.MethodPost, "/v1/actions", map[string]any{
		"action": map[string]string{"type": "none"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Engagement(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/engagement", map[string]any{
		"content": "big ai news",
		"metrics": map[string]int{"amplification": 100},
		"topics":  []string{"ai"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1.0, body["engagement_score"])
}

func TestRouter_Context(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/v1/context", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	snapshot := body["personality"].(map[string]any)
	assert.Equal(t, "Template Agent", snapshot["name"])
	assert.Contains(t, body, "emotional_state")
	assert.Contains(t, body, "memory")
	assert.Contains(t, body, "learning")
}

func TestRouter_Decide(t *testing.T) {
	app, client := newTestApp(t)
	client.GenerateResponse = `{"type": "message", "content": "hi there", "reason": "friendly"}`

	rec := doJSON(t, app, http.MethodPost, "/v1/decide", map[string]any{
		"content": []map[string]string{
			{"id": "1", "source": "bob", "text": "hello agent"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "message", body["type"])
	assert.Equal(t, "hi there", body["content"])
}

func TestRouter_Relationships(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodPut, "/v1/relationships/alice", map[string]float64{
		"familiarity": 0.8,
		"sentiment":   0.2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/v1/relationships/alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0.8, body["familiarity"])
}

func TestRouter_Topics(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/v1/topics/unseen", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, app, http.MethodPut, "/v1/topics/art", map[string]float64{"interest_level": 0.9})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/v1/topics/art", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0.9, body["interest_level"])
}

func TestRouter_Interactions(t *testing.T) {
	app, _ := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/v1/content", map[string]any{
		"content": []map[string]string{
			{"id": "1", "source": "carol", "text": "first"},
			{"id": "2", "source": "dave", "text": "second"},
		},
	})

	rec := doJSON(t, app, http.MethodGet, "/v1/interactions?counterpart=carol", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "carol", items[0]["user"])
}

func TestRouter_StateSave(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/v1/state/save", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_APIKeyAuth(t *testing.T) {
	t.Setenv("API_KEY", "sekrit")
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/context", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/context", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/context", nil)
	req.Header.Set("X-API-Key", "sekrit")
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health never requires a key
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
