package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zaqqye/evaluasi_backend/internal/auth"
	"github.com/zaqqye/evaluasi_backend/internal/middleware"
	"github.com/zaqqye/evaluasi_backend/internal/ws"
)

// AuthController exposes the single live session over HTTP.
type AuthController struct {
	Sessions *auth.Sessions
	Editor   *EditorController
	Hub      *ws.Hub
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := a.Sessions.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if sess.Replaced {
		a.endSession(sess.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": sess.Token,
		"token_type":   "Bearer",
		"expires_in":   int(sess.ExpiresAt.Sub(sess.IssuedAt).Seconds()),
		"role":         sess.Identity.Role,
		"identity":     sess.Identity,
	})
}

func (a *AuthController) Me(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	c.JSON(http.StatusOK, identity)
}

func (a *AuthController) Logout(c *gin.Context) {
	a.Sessions.Logout()
	a.endSession("")
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// endSession drops state tied to sessions other than live.
func (a *AuthController) endSession(live string) {
	if a.Editor != nil {
		a.Editor.Discard()
	}
	a.Hub.SessionEnded(live)
}
