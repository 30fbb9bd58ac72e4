package controllers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zaqqye/evaluasi_backend/internal/editor"
	"github.com/zaqqye/evaluasi_backend/internal/middleware"
	"github.com/zaqqye/evaluasi_backend/internal/models"
)

// EditorController holds the one open draft. Requests are serialized on mu;
// the draft belongs to the session that opened it and is reopened whenever
// another session reaches it.
type EditorController struct {
	Store     editor.Store
	Notifier  editor.Notifier
	NoticeTTL time.Duration
	Clock     func() time.Time

	mu      sync.Mutex
	current *editor.Editor
	session string
}

type draftResponse struct {
	Subject  string          `json:"subject"`
	Tab      models.Category `json:"tab"`
	Dirty    bool            `json:"dirty"`
	Students models.Roster   `json:"students"`
	Notice   *editor.Notice  `json:"notice,omitempty"`
}

type tabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

type editRequest struct {
	StudentID string         `json:"student_id" binding:"required"`
	Subject   string         `json:"subject"`
	Category  string         `json:"category" binding:"required"`
	Field     string         `json:"field" binding:"required"`
	Value     FlexibleString `json:"value"`
}

type addStudentRequest struct {
	Name string `json:"name"`
}

// Discard drops the open draft, if any.
func (e *EditorController) Discard() {
	e.mu.Lock()
	e.current = nil
	e.session = ""
	e.mu.Unlock()
}

// editorFor returns the caller's editor, opening a fresh one when reopen is
// set or the caller's session did not open the current one. Callers must
// hold mu.
func (e *EditorController) editorFor(c *gin.Context, reopen bool) (*editor.Editor, error) {
	identity, _ := middleware.CurrentIdentity(c)
	session := middleware.CurrentSessionID(c)
	if !reopen && e.current != nil && session != "" && e.session == session {
		return e.current, nil
	}
	opts := []editor.Option{editor.WithNoticeTTL(e.NoticeTTL), editor.WithNotifier(e.Notifier)}
	if e.Clock != nil {
		opts = append(opts, editor.WithClock(e.Clock))
	}
	ed, err := editor.Open(e.Store, identity, opts...)
	if err != nil {
		return nil, err
	}
	e.current = ed
	e.session = session
	return ed, nil
}

func (e *EditorController) respondDraft(c *gin.Context, status int, ed *editor.Editor) {
	resp := draftResponse{
		Subject:  ed.Subject(),
		Tab:      ed.Tab(),
		Dirty:    ed.Dirty(),
		Students: ed.Draft(),
	}
	if n, ok := ed.Notice(); ok {
		resp.Notice = &n
	}
	c.JSON(status, resp)
}

// POST /editor/open
func (e *EditorController) Open(c *gin.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ed, err := e.editorFor(c, true)
	if err != nil {
		respondError(c, err)
		return
	}
	e.respondDraft(c, http.StatusOK, ed)
}

// GET /editor/draft
func (e *EditorController) Draft(c *gin.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ed, err := e.editorFor(c, false)
	if err != nil {
		respondError(c, err)
		return
	}
	e.respondDraft(c, http.StatusOK, ed)
}

// PUT /editor/tab
func (e *EditorController) SelectTab(c *gin.Context) {
	var req tabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := models.ParseCategory(req.Tab)
	if err != nil {
		respondError(c, err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	ed, err := e.editorFor(c, false)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ed.SelectTab(cat); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tab": ed.Tab()})
}

// PUT /editor/scores
func (e *EditorController) EditScore(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := models.ParseCategory(req.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	ed, err := e.editorFor(c, false)
	if err != nil {
		respondError(c, err)
		return
	}
	subject := req.Subject
	if subject == "" {
		subject = ed.Subject()
	}
	if err := ed.EditField(req.StudentID, subject, cat, models.Field(req.Field), req.Value.String()); err != nil {
		respondError(c, err)
		return
	}

	st, _ := ed.Draft().Find(req.StudentID)
	c.JSON(http.StatusOK, gin.H{"data": st, "dirty": ed.Dirty()})
}

// POST /editor/students
func (e *EditorController) AddStudent(c *gin.Context) {
	var req addStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	ed, err := e.editorFor(c, false)
	if err != nil {
		respondError(c, err)
		return
	}
	st, err := ed.AddStudent(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	n, _ := ed.Notice()
	c.JSON(http.StatusCreated, gin.H{"data": st, "notice": n})
}

// DELETE /editor/students/:id?confirm=true
func (e *EditorController) DeleteStudent(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	e.mu.Lock()
	defer e.mu.Unlock()
	ed, err := e.editorFor(c, false)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ed.DeleteStudent(c.Param("id"), confirmed); err != nil {
		respondError(c, err)
		return
	}
	n, _ := ed.Notice()
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "notice": n})
}

// POST /editor/submit
func (e *EditorController) Submit(c *gin.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ed, err := e.editorFor(c, false)
	if err != nil {
		respondError(c, err)
		return
	}
	ed.Submit(c.Request.Context())
	e.respondDraft(c, http.StatusOK, ed)
}

// POST /editor/revise
func (e *EditorController) Revise(c *gin.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ed, err := e.editorFor(c, false)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ed.Revise(c.Request.Context()); err != nil {
		// the draft is kept; surface the notice with the failure
		n, _ := ed.Notice()
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "notice": n})
		return
	}
	e.respondDraft(c, http.StatusOK, ed)
}
