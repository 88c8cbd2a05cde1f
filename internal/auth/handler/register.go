package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blazebomb/vidai/internal/auth/credentials"
	"github.com/blazebomb/vidai/internal/logger"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	user, err := h.registration.Register(
		c.Request.Context(),
		req.Email,
		req.Password,
	)

	if err != nil {
		var validationErr *credentials.ValidationError
		var conflictErr *credentials.ConflictError

		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		case errors.As(err, &conflictErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		default:
			logger.Error("registration failed", map[string]any{
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		}
		return
	}

	logger.Info("user registered", map[string]any{
		"user_id": user.ID,
	})

	// No session here: registration does not log the user in.
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}
