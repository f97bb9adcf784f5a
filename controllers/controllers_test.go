package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerva/config"
	"minerva/models"
	"minerva/services"
	"minerva/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router  *gin.Engine
	manager *services.Manager
	store   *storage.MemStore
}

func newTestApp(t *testing.T, openai config.OpenAIConfig) *testApp {
	t.Helper()

	store := storage.NewMemStore()
	manager := services.NewManager(store)
	require.NoError(t, manager.Load())

	session := services.NewSession(services.StaticAuthenticator{
		Username: "admin",
		Password: "minerva",
	}, store)

	auth := NewAuthController(session)
	notes := NewNoteController(manager)
	projects := NewProjectController(manager)
	analysis := NewAnalysisController(manager)
	readme := NewReadmeController(manager, services.NewReadmeService(openai))

	router := gin.New()
	router.Use(ZLogMiddleware())

	router.POST("/login", auth.Login)
	authed := router.Group("/", auth.RequireAuth)
	authed.POST("/logout", auth.Logout)
	authed.GET("/notes", notes.List)
	authed.GET("/notes/:id", notes.Get)
	authed.POST("/notes", notes.Save)
	authed.DELETE("/notes/:id", notes.Delete)
	authed.GET("/projects", projects.List)
	authed.GET("/projects/:id", projects.Get)
	authed.POST("/projects", projects.Save)
	authed.DELETE("/projects/:id", projects.Delete)
	authed.GET("/stats", analysis.Stats)
	authed.GET("/suggestions", analysis.Suggestions)
	authed.GET("/roadmap", analysis.Roadmap)
	authed.POST("/readme", readme.Generate)

	return &testApp{router: router, manager: manager, store: store}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (app *testApp) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	var resp envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func (app *testApp) login(t *testing.T) {
	t.Helper()
	code, _ := app.do(t, http.MethodPost, "/login", gin.H{"username": "admin", "password": "minerva"})
	require.Equal(t, http.StatusOK, code)
}

func TestRoutesRequireAuthentication(t *testing.T) {
	app := newTestApp(t, config.OpenAIConfig{})

	for _, path := range []string{"/notes", "/projects", "/stats", "/suggestions", "/roadmap"} {
		code, resp := app.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.Equal(t, "error", resp.Status, path)
	}
}

func TestLoginLogout(t *testing.T) {
	app := newTestApp(t, config.OpenAIConfig{})

	code, _ := app.do(t, http.MethodPost, "/login", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)

	app.login(t)

	var flag bool
	found, err := app.store.Load(storage.KeyAuthenticated, &flag)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, flag)

	code, _ = app.do(t, http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = app.do(t, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = app.do(t, http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	found, err = app.store.Load(storage.KeyAuthenticated, &flag)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNoteValidation(t *testing.T) {
	app := newTestApp(t, config.OpenAIConfig{})
	app.login(t)

	// binding rejects missing required fields outright
	code, _ := app.do(t, http.MethodPost, "/notes", gin.H{"content": "c", "projectId": "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	// blank title survives binding but fails manager validation
	code, resp := app.do(t, http.MethodPost, "/notes", gin.H{"title": "   ", "content": "c", "projectId": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "error", resp.Status)

	// a note must reference a live project
	code, resp = app.do(t, http.MethodPost, "/notes", gin.H{"title": "t", "content": "c", "projectId": "missing"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "project not found", resp.Message)

	code, _ = app.do(t, http.MethodGet, "/notes", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, app.manager.Notes())
}

func TestProjectAndNoteLifecycle(t *testing.T) {
	app := newTestApp(t, config.OpenAIConfig{})
	app.login(t)

	// create project
	code, resp := app.do(t, http.MethodPost, "/projects", gin.H{"name": "Alpha", "status": "nuovo"})
	require.Equal(t, http.StatusCreated, code)
	var project models.Project
	require.NoError(t, json.Unmarshal(resp.Data, &project))
	assert.Equal(t, 1, project.Version)
	require.Len(t, project.VersionHistory, 1)

	// update its description
	code, resp = app.do(t, http.MethodPost, "/projects", gin.H{
		"id":          project.ID,
		"name":        "Alpha",
		"description": "tracking the first effort",
		"status":      "nuovo",
	})
	require.Equal(t, http.StatusOK, code)
	var updated models.Project
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, project.ID, updated.ID)
	assert.Equal(t, 2, updated.Version)
	assert.Len(t, updated.VersionHistory, 2)

	// attach a note
	code, resp = app.do(t, http.MethodPost, "/notes", gin.H{
		"title":     "kickoff",
		"content":   "initial thoughts",
		"projectId": project.ID,
	})
	require.Equal(t, http.StatusCreated, code)
	var note models.Note
	require.NoError(t, json.Unmarshal(resp.Data, &note))
	assert.Equal(t, 1, note.Version)

	// deleting the project keeps the note as an orphan
	code, _ = app.do(t, http.MethodDelete, "/projects/"+project.ID, nil)
	require.Equal(t, http.StatusOK, code)

	code, resp = app.do(t, http.MethodGet, "/notes", nil)
	require.Equal(t, http.StatusOK, code)
	var views []NoteView
	require.NoError(t, json.Unmarshal(resp.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, note.ID, views[0].ID)
	assert.Equal(t, project.ID, views[0].ProjectID)
	assert.Equal(t, "project not found", views[0].ProjectName)

	// deleting a missing note is a silent no-op
	code, _ = app.do(t, http.MethodDelete, "/notes/not-there", nil)
	assert.Equal(t, http.StatusOK, code)

	// fetching the deleted project reports not found
	code, _ = app.do(t, http.MethodGet, "/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = app.do(t, http.MethodGet, "/notes/"+note.ID, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestNoteListAnnotatesProjectName(t *testing.T) {
	app := newTestApp(t, config.OpenAIConfig{})
	app.login(t)

	_, resp := app.do(t, http.MethodPost, "/projects", gin.H{"name": "Alpha"})
	var project models.Project
	require.NoError(t, json.Unmarshal(resp.Data, &project))

	code, _ := app.do(t, http.MethodPost, "/notes", gin.H{"title": "t", "content": "c", "projectId": project.ID})
	require.Equal(t, http.StatusCreated, code)

	code, resp = app.do(t, http.MethodGet, "/notes", nil)
	require.Equal(t, http.StatusOK, code)
	var views []NoteView
	require.NoError(t, json.Unmarshal(resp.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Alpha", views[0].ProjectName)
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t, config.OpenAIConfig{})
	app.login(t)

	_, resp := app.do(t, http.MethodPost, "/projects", gin.H{"name": "Alpha", "status": "in_corso"})
	var project models.Project
	require.NoError(t, json.Unmarshal(resp.Data, &project))

	code, resp := app.do(t, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, code)

	var stats services.Stats
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 0, stats.TotalNotes)
	assert.Equal(t, 1, stats.TotalProjects)
	assert.Equal(t, services.LastUpdatedNone, stats.LastUpdated)
	assert.Equal(t, 1, stats.ProjectsByStatus[models.StatusInProgress])
}

func TestReadmeEndpoint(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "# generated"}},
			},
		})
	}))
	defer backend.Close()

	app := newTestApp(t, config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: backend.URL,
		Model:   "gpt-3.5-turbo",
	})
	app.login(t)

	_, resp := app.do(t, http.MethodPost, "/projects", gin.H{"name": "Alpha"})
	var project models.Project
	require.NoError(t, json.Unmarshal(resp.Data, &project))

	// no notes yet: fixed message, remote untouched
	code, resp := app.do(t, http.MethodPost, "/readme", gin.H{"projectId": project.ID})
	require.Equal(t, http.StatusOK, code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	assert.Contains(t, payload["readme"], "No notes available")

	code, _ = app.do(t, http.MethodPost, "/notes", gin.H{"title": "t", "content": "c", "projectId": project.ID})
	require.Equal(t, http.StatusCreated, code)

	code, resp = app.do(t, http.MethodPost, "/readme", gin.H{"projectId": project.ID})
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	assert.Equal(t, "# generated", payload["readme"])

	// unknown project
	code, _ = app.do(t, http.MethodPost, "/readme", gin.H{"projectId": "missing"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReadmeMissingAPIKey(t *testing.T) {
	app := newTestApp(t, config.OpenAIConfig{})
	app.login(t)

	_, resp := app.do(t, http.MethodPost, "/projects", gin.H{"name": "Alpha"})
	var project models.Project
	require.NoError(t, json.Unmarshal(resp.Data, &project))

	code, _ := app.do(t, http.MethodPost, "/notes", gin.H{"title": "t", "content": "c", "projectId": project.ID})
	require.Equal(t, http.StatusCreated, code)

	code, resp = app.do(t, http.MethodPost, "/readme", gin.H{"projectId": project.ID})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "openai api key not configured", resp.Message)
}
