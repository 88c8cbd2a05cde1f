package videos

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blazebomb/vidai/internal/logger"
	"github.com/blazebomb/vidai/internal/middleware"
)

type Handler struct {
	cache *ListCache
}

func NewHandler(cache *ListCache) *Handler {
	return &Handler{cache: cache}
}

type createVideoRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	VideoURL       string `json:"videoUrl"`
	ThumbnailURL   string `json:"thumbnailUrl"`
	Controls       *bool  `json:"controls"`
	Transformation struct {
		Quality *int `json:"quality"`
	} `json:"transformation"`
}

// List returns the full library, newest first. Public.
func (h *Handler) List(c *gin.Context) {
	list, err := h.cache.List(c.Request.Context())
	if err != nil {
		logger.Error("video listing failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Create stores a new video for the authenticated user. Runs behind
// the auth middleware; the session view supplies the owner.
func (h *Handler) Create(c *gin.Context) {
	view, ok := middleware.SessionFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Title == "" || req.Description == "" || req.VideoURL == "" || req.ThumbnailURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	controls := true
	if req.Controls != nil {
		controls = *req.Controls
	}

	// Only an absent quality gets the default; an explicit 0 is kept.
	quality := DefaultQuality
	if req.Transformation.Quality != nil {
		quality = *req.Transformation.Quality
	}

	video := Video{
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Controls:     controls,
		Transformation: Transformation{
			Quality: quality,
		},
	}

	created, err := h.cache.Create(c.Request.Context(), view.User.ID, video)
	if err != nil {
		logger.Error("video creation failed", map[string]any{
			"error":   err.Error(),
			"user_id": view.User.ID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
		return
	}

	c.JSON(http.StatusOK, created)
}
