package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blazebomb/vidai/internal/logger"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	principal, err := h.authority.LoginWithCredentials(
		c.Request.Context(),
		req.Email,
		req.Password,
	)

	if err != nil {
		// The sub-reason (missing fields, unknown user, bad password)
		// is logged but never surfaced: all failures look alike.
		if credErr, ok := isCredentialError(err); ok {
			logger.Warn("credential login rejected", map[string]any{
				"reason": credErr.Reason,
			})
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
			return
		}

		logger.Error("credential login failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	if !h.issueSession(c, principal) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged_in"})
}
