package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zaqqye/evaluasi_backend/internal/logger"
	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{apperrors.ErrAuthenticationFailed, http.StatusUnauthorized},
	{apperrors.ErrInvalidSession, http.StatusUnauthorized},
	{apperrors.ErrNotAdmin, http.StatusForbidden},
	{apperrors.ErrSubjectOutOfScope, http.StatusForbidden},
	{apperrors.ErrStudentNotFound, http.StatusNotFound},
	{apperrors.ErrUnknownSubject, http.StatusNotFound},
	{apperrors.ErrSnapshotNotFound, http.StatusNotFound},
	{apperrors.ErrUnknownCategory, http.StatusBadRequest},
	{apperrors.ErrUnknownField, http.StatusBadRequest},
	{apperrors.ErrInvalidScoreValue, http.StatusBadRequest},
	{apperrors.ErrNameRequired, http.StatusBadRequest},
	{apperrors.ErrCategoryNotActive, http.StatusConflict},
	{apperrors.ErrConfirmationRequired, http.StatusPreconditionRequired},
	{apperrors.ErrSnapshotCorrupt, http.StatusUnprocessableEntity},
}

func statusFor(err error) int {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err in the {"error": ...} shape. Unknown errors are
// logged and reported without detail.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log := logger.Component("http")
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	var confirm apperrors.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		c.JSON(status, gin.H{
			"error":                 err.Error(),
			"confirmation_required": true,
			"student_id":            confirm.StudentID,
			"name":                  confirm.Name,
		})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
