package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SaveStatus reports the outcome of the most recent roster write.
type SaveStatus interface {
	LastSaveErr() error
}

type HealthController struct {
	Store   SaveStatus
	Driver  string
	Version string
}

// Health stays 200 while persistence is failing; the committed roster is
// still served from memory.
func (h *HealthController) Health(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"store":   h.Driver,
		"version": h.Version,
	}
	if err := h.Store.LastSaveErr(); err != nil {
		resp["status"] = "degraded"
		resp["persist_error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
