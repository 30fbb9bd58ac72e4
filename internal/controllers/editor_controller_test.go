package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqqye/evaluasi_backend/internal/middleware"
	"github.com/zaqqye/evaluasi_backend/internal/models"
	"github.com/zaqqye/evaluasi_backend/internal/roster"
	"github.com/zaqqye/evaluasi_backend/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// editorRouter serves the editor as the Matematika admin under the session
// named by the X-Session header.
func editorRouter(t *testing.T) (*gin.Engine, *EditorController) {
	t.Helper()
	store := roster.NewStore(storage.NewMemoryStore(), "studentData", []string{"Matematika"})
	store.Replace(context.Background(), models.Roster{
		{ID: "murid-1", NIM: "23001001", Name: "Ahmad Budi", Scores: map[string]models.Scores{"Matematika": models.NeutralScores()}},
	})
	ctrl := &EditorController{Store: store}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.IdentityKey, models.Identity{Role: models.RoleAdmin, Subject: "Matematika", DisplayName: "Matematika"})
		c.Set(middleware.SessionIDKey, c.GetHeader("X-Session"))
		c.Next()
	})
	r.GET("/editor/draft", ctrl.Draft)
	r.POST("/editor/students", ctrl.AddStudent)
	return r, ctrl
}

func draftDirty(t *testing.T, r *gin.Engine, session string) bool {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/editor/draft", nil)
	req.Header.Set("X-Session", session)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp draftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Dirty
}

func addStudent(t *testing.T, r *gin.Engine, session, name string) {
	t.Helper()
	body, _ := json.Marshal(gin.H{"name": name})
	req := httptest.NewRequest(http.MethodPost, "/editor/students", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session", session)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestEditorController_DraftBelongsToSession(t *testing.T) {
	r, _ := editorRouter(t)

	addStudent(t, r, "s1", "Dewi")
	assert.True(t, draftDirty(t, r, "s1"))

	// same identity, new session
	assert.False(t, draftDirty(t, r, "s2"))
	// the s1 draft is gone for good
	assert.False(t, draftDirty(t, r, "s1"))
}

func TestEditorController_Discard(t *testing.T) {
	r, ctrl := editorRouter(t)

	addStudent(t, r, "s1", "Dewi")
	ctrl.Discard()
	assert.False(t, draftDirty(t, r, "s1"))
}
