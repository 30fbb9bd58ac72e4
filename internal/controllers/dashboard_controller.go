package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zaqqye/evaluasi_backend/internal/dashboard"
	"github.com/zaqqye/evaluasi_backend/internal/middleware"
	"github.com/zaqqye/evaluasi_backend/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RosterReader is the committed-roster view the dashboard renders from.
type RosterReader interface {
	Get() models.Roster
	Subjects() []string
}

type DashboardController struct {
	Store RosterReader
}

// GET /dashboard?subject=&student_id=
func (d *DashboardController) View(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	view, err := dashboard.Build(d.Store.Get(), d.Store.Subjects(), identity, c.Query("subject"), c.Query("student_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /dashboard/ranking?subject=
func (d *DashboardController) Ranking(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	subject, entries, err := dashboard.Ranking(d.Store.Get(), d.Store.Subjects(), identity, c.Query("subject"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subject": subject, "data": entries})
}

// GET /dashboard/ranking/export?subject=
func (d *DashboardController) ExportRanking(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	subject, entries, err := dashboard.Ranking(d.Store.Get(), d.Store.Subjects(), identity, c.Query("subject"))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := dashboard.ExportRanking(&buf, subject, entries); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "peringkat-"+subject+".xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (d *DashboardController) Subjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": d.Store.Subjects()})
}
